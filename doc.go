// Package eventrec 是活动推荐服务（Event Recommendation）。
//
// 设计要点：
// - 两种排序策略：有兴趣画像时个性化打分，否则按热度（trending）打分
// - Pipeline-first: 召回之后的步骤通过 Node 串联（Enrich → Filter → Rank → ReRank）
// - 降级优先: 画像、统计数据读取失败时使用默认值，而不是让请求失败
package eventrec

import (
	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/pipeline"
	"github.com/rushteam/eventrec/recommend"
)

// 轻量 facade：便于直接 import "eventrec" 使用核心抽象。
type (
	Engine   = recommend.Engine
	Options  = recommend.Options
	Result   = recommend.Result
	Strategy = core.Strategy
	Pipeline = pipeline.Pipeline
	Node     = pipeline.Node
	Kind     = pipeline.Kind
)

const (
	StrategyPersonalized = core.StrategyPersonalized
	StrategyTrending     = core.StrategyTrending
	StrategyNone         = core.StrategyNone
)

var (
	NewEngine      = recommend.NewEngine
	DefaultOptions = recommend.DefaultOptions
)
