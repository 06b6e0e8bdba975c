// Package recommend 是活动推荐的入口：召回候选、读取信号、选择策略、打分排序、截断并序列化。
//
//	engine, err := recommend.NewEngine(store, recommend.DefaultOptions())
//	res, err := engine.Recommend(ctx, userID, 10)
//	// res.Source: personalized / trending / none
package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/feature"
	"github.com/rushteam/eventrec/filter"
	"github.com/rushteam/eventrec/model"
	"github.com/rushteam/eventrec/pipeline"
	"github.com/rushteam/eventrec/pkg/logging"
	"github.com/rushteam/eventrec/pkg/serialize"
	"github.com/rushteam/eventrec/recall"
	"github.com/rushteam/eventrec/rank"
	"github.com/rushteam/eventrec/rerank"
)

// ErrNoStore 表示引擎没有配置文档存储。
var ErrNoStore = errors.New("recommend: document store is required")

// Result 是一次推荐的结果。Events 按排序顺序排列，每个活动都带有 id 字段。
type Result struct {
	Events []map[string]any `json:"events"`
	Source core.Strategy    `json:"source"`
}

// Engine 是推荐引擎。无状态，可并发调用。
type Engine struct {
	opts   Options
	recall recall.Source
	rest   *pipeline.Pipeline
}

// NewEngine 创建推荐引擎。store 为 nil 或资格表达式无效时返回错误。
func NewEngine(store core.DocumentStore, opts Options) (*Engine, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	opts = opts.withDefaults()
	logger := opts.Logger.With().Str("component", "recommend").Logger()
	degrader := feature.NewDegrader(logger, opts.Metrics, opts.StoreTimeout)

	filters := []filter.Filter{&filter.PastEventFilter{}}
	if len(opts.BlockedEventIDs) > 0 {
		filters = append(filters, filter.NewBlocklistFilter(opts.BlockedEventIDs))
	}
	if opts.Expression != "" {
		f, err := filter.NewExprFilter(opts.Expression)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}

	trendingWeights := model.DefaultTrendingWeights()
	if opts.TrendingWeights != nil {
		trendingWeights = *opts.TrendingWeights
	}

	return &Engine{
		opts: opts,
		recall: &recall.UpcomingEvents{
			Store:    store,
			Degrader: degrader,
			Limit:    opts.MaxCandidates,
		},
		rest: &pipeline.Pipeline{
			Logger: logger,
			Nodes: []pipeline.Node{
				&feature.EnrichNode{
					Profiles: &feature.ProfileFetcher{Store: store, Degrader: degrader},
					Analytics: &feature.AnalyticsFetcher{
						Store:       store,
						Degrader:    degrader,
						MaxIDs:      opts.MaxAnalytics,
						Concurrency: opts.FetchConcurrency,
					},
					Concurrent: opts.ConcurrentFetch,
				},
				&filter.FilterNode{Filters: filters, Logger: logger},
				&rank.StrategyNode{Trending: model.NewTrendingModel(trendingWeights)},
				&rerank.TopNNode{},
			},
		},
	}, nil
}

// Limit 将调用方的 limit 规范到 [1, MaxLimit]；<= 0 时使用默认值。
func (e *Engine) Limit(limit int) int {
	switch {
	case limit <= 0:
		return e.opts.DefaultLimit
	case limit > e.opts.MaxLimit:
		return e.opts.MaxLimit
	}
	return limit
}

// Recommend 为用户推荐活动，userID 可以为空。
// 存储不可用时降级（结果可能为空或只用部分信号），不返回错误；
// 只有引擎未正确构建或出现意外错误时才返回错误。
func (e *Engine) Recommend(ctx context.Context, userID string, limit int) (res *Result, err error) {
	if e == nil || e.recall == nil {
		return nil, ErrNoStore
	}
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = core.NewDomainError(core.ModuleRecommend, core.ErrorCodeInternalError, fmt.Sprintf("recommend panic: %v", r))
		}
	}()

	start := time.Now()
	rctx := &core.RecommendContext{
		UserID: userID,
		Now:    e.opts.Now().UTC(),
		Limit:  e.Limit(limit),
	}
	logger := logging.From(ctx, e.rest.Logger)

	candidates, err := e.recall.Recall(ctx, rctx)
	if err != nil {
		return nil, fmt.Errorf("recall: %w", err)
	}
	if len(candidates) == 0 {
		res = &Result{Events: []map[string]any{}, Source: core.StrategyNone}
		e.observe(res, 0, start)
		logger.Debug().Str("user_id", userID).Msg("no candidate events")
		return res, nil
	}

	items, err := e.rest.Run(ctx, rctx, candidates)
	if err != nil {
		return nil, err
	}

	res = &Result{
		Events: make([]map[string]any, 0, len(items)),
		Source: rctx.Strategy,
	}
	for _, it := range items {
		res.Events = append(res.Events, serialize.Document(it.ID, it.Event.Data))
	}
	e.observe(res, len(candidates), start)
	logger.Debug().
		Str("user_id", userID).
		Int("candidates", len(candidates)).
		Int("returned", len(res.Events)).
		Str("source", string(res.Source)).
		Bool("profile", rctx.Profile != nil).
		Int("analytics", len(rctx.Analytics)).
		Msg("recommendation served")
	return res, nil
}

func (e *Engine) observe(res *Result, candidates int, start time.Time) {
	e.opts.Metrics.ObserveRecommendation(string(res.Source), candidates, time.Since(start))
}
