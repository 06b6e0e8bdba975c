package recommend

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/model"
	"github.com/rushteam/eventrec/pkg/metrics"
)

// Options 配置推荐引擎。数值字段 <= 0 时使用默认值。
type Options struct {
	// MaxCandidates 内部候选池上限，默认 100
	MaxCandidates int
	// MaxAnalytics 单次最多查询统计数据的活动数，默认 50
	MaxAnalytics int
	// DefaultLimit 调用方未指定 limit 时的返回条数，默认 10
	DefaultLimit int
	// MaxLimit 返回条数上限，默认 50
	MaxLimit int

	// StoreTimeout 单次存储调用的超时，默认 2s
	StoreTimeout time.Duration
	// ConcurrentFetch 为 true 时画像与统计并发读取
	ConcurrentFetch bool
	// FetchConcurrency 统计数据的并发读取数，默认 8
	FetchConcurrency int

	// BlockedEventIDs 永不推荐的活动
	BlockedEventIDs []string
	// Expression 可选的 CEL 资格表达式，为 false 的活动被过滤
	Expression string
	// TrendingWeights 趋势模型权重，为 nil 时使用默认权重
	TrendingWeights *model.TrendingWeights

	// Now 时钟，默认 time.Now
	Now     func() time.Time
	Logger  zerolog.Logger
	Metrics *metrics.Recorder
}

// DefaultOptions 返回默认配置（并发读取开启）。
func DefaultOptions() Options {
	def := &core.DefaultRecommendConfig{}
	return Options{
		MaxCandidates:    def.DefaultMaxCandidates(),
		MaxAnalytics:     def.DefaultMaxAnalytics(),
		DefaultLimit:     def.DefaultLimit(),
		MaxLimit:         def.DefaultMaxLimit(),
		StoreTimeout:     def.DefaultTimeout(),
		ConcurrentFetch:  true,
		FetchConcurrency: 8,
		Now:              time.Now,
		Logger:           zerolog.Nop(),
	}
}

func (o Options) withDefaults() Options {
	def := &core.DefaultRecommendConfig{}
	if o.MaxCandidates <= 0 {
		o.MaxCandidates = def.DefaultMaxCandidates()
	}
	if o.MaxAnalytics <= 0 {
		o.MaxAnalytics = def.DefaultMaxAnalytics()
	}
	if o.DefaultLimit <= 0 {
		o.DefaultLimit = def.DefaultLimit()
	}
	if o.MaxLimit <= 0 {
		o.MaxLimit = def.DefaultMaxLimit()
	}
	if o.DefaultLimit > o.MaxLimit {
		o.DefaultLimit = o.MaxLimit
	}
	if o.StoreTimeout <= 0 {
		o.StoreTimeout = def.DefaultTimeout()
	}
	if o.FetchConcurrency <= 0 {
		o.FetchConcurrency = 8
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
