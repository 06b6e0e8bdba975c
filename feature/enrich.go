package feature

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/pipeline"
	"github.com/rushteam/eventrec/pkg/utils"
)

// EnrichNode 是信号注入节点：读取用户画像与候选活动的统计数据，写入 RecommendContext。
// 不修改候选列表。两类信号互不依赖，Concurrent 为 true 时并发读取。
//
// 读取失败一律降级（画像为 nil / 统计为空），节点本身不返回错误。
type EnrichNode struct {
	Profiles  *ProfileFetcher
	Analytics *AnalyticsFetcher

	// Concurrent 为 true 时画像与统计并发读取
	Concurrent bool
}

func (n *EnrichNode) Name() string {
	return "feature.enrich"
}

func (n *EnrichNode) Kind() pipeline.Kind {
	return pipeline.KindPostProcess
}

func (n *EnrichNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if rctx == nil || len(items) == 0 {
		return items, nil
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it != nil {
			ids = append(ids, it.ID)
		}
	}

	var (
		profile   *core.InterestProfile
		analytics map[string]core.EventAnalytics
	)
	if n.Concurrent {
		var eg errgroup.Group
		eg.Go(func() error {
			profile = n.Profiles.Fetch(ctx, rctx.UserID)
			return nil
		})
		eg.Go(func() error {
			analytics = n.Analytics.Fetch(ctx, ids)
			return nil
		})
		_ = eg.Wait()
	} else {
		profile = n.Profiles.Fetch(ctx, rctx.UserID)
		analytics = n.Analytics.Fetch(ctx, ids)
	}
	if analytics == nil {
		analytics = map[string]core.EventAnalytics{}
	}

	rctx.Profile = profile
	rctx.Analytics = analytics
	if profile != nil {
		rctx.PutLabel("profile", utils.NewLabel("hit", n.Name()))
	}
	return items, nil
}
