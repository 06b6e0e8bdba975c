package feature

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/eventrec/core"
)

// AnalyticsFetcher 批量读取活动统计数据。
type AnalyticsFetcher struct {
	Store    core.DocumentStore
	Degrader *Degrader

	// MaxIDs 只查询前 MaxIDs 个活动，<= 0 时使用默认值 50
	MaxIDs int
	// Concurrency 是并发读取数，<= 0 时串行
	Concurrency int
}

// Fetch 返回 活动 ID -> 统计 的映射。
// 单个活动读取失败只影响该活动（趋势分为 0），不影响其余活动。
func (f *AnalyticsFetcher) Fetch(ctx context.Context, ids []string) map[string]core.EventAnalytics {
	out := make(map[string]core.EventAnalytics)
	if f == nil || f.Store == nil || len(ids) == 0 {
		return out
	}

	maxIDs := f.MaxIDs
	if maxIDs <= 0 {
		maxIDs = (&core.DefaultRecommendConfig{}).DefaultMaxAnalytics()
	}
	if len(ids) > maxIDs {
		ids = ids[:maxIDs]
	}

	var (
		mu sync.Mutex
		eg errgroup.Group
	)
	limit := f.Concurrency
	if limit <= 0 {
		limit = 1
	}
	eg.SetLimit(limit)

	for _, id := range ids {
		if id == "" {
			continue
		}
		eg.Go(func() error {
			a, ok := FetchOrDefault(ctx, f.Degrader, "analytics", zerolog.DebugLevel, analyticsResult{},
				func(ctx context.Context) (analyticsResult, error) {
					doc, err := f.Store.Get(ctx, core.CollectionEventAnalytics, id)
					if err != nil {
						return analyticsResult{}, err
					}
					a, ok := core.AnalyticsFromDocument(doc)
					return analyticsResult{a, ok}, nil
				}).unpack()
			if !ok {
				return nil
			}
			mu.Lock()
			out[id] = a
			mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()
	return out
}

type analyticsResult struct {
	analytics core.EventAnalytics
	ok        bool
}

func (r analyticsResult) unpack() (core.EventAnalytics, bool) {
	return r.analytics, r.ok
}
