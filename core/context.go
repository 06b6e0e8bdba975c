package core

import (
	"time"

	"github.com/rushteam/eventrec/pkg/utils"
)

// Strategy 标记产出结果的排序策略，即响应中的 source 字段。
type Strategy string

const (
	StrategyPersonalized Strategy = "personalized"
	StrategyTrending     Strategy = "trending"
	// StrategyNone 表示没有候选活动，是终止状态而不是错误。
	StrategyNone Strategy = "none"
)

// RecommendContext 承载一次推荐调用的用户信息与信号，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID string

	// Now 在调用开始时捕获一次，所有"是否过期"的判断都使用它。
	Now time.Time

	// Limit 是调用方请求的返回条数（区别于内部候选上限）。
	Limit int

	// Profile 为 nil 表示无画像。
	Profile *InterestProfile

	// Analytics 以活动 ID 为 key；缺失的活动趋势分为 0。
	Analytics map[string]EventAnalytics

	// Strategy 由排序阶段写入。
	Strategy Strategy

	// Labels 是请求级标签，用于解释与观测。
	Labels map[string]utils.Label
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}

// NowOr 返回上下文中的 Now，未设置时返回当前 UTC 时间。
func (rctx *RecommendContext) NowOr() time.Time {
	if rctx == nil || rctx.Now.IsZero() {
		return time.Now().UTC()
	}
	return rctx.Now
}
