package recall

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/feature"
	"github.com/rushteam/eventrec/pipeline"
	"github.com/rushteam/eventrec/pkg/utils"
)

// UpcomingEvents 召回即将开始的活动：status == active，最多 Limit 条。
// 召回后剔除 isPublic 显式为 false 以及日期早于 rctx.Now 的活动，
// 没有日期或日期无法解析的活动保留。
//
// 读取失败时降级为空候选，不返回错误。
// UpcomingEvents 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type UpcomingEvents struct {
	Store    core.DocumentStore
	Degrader *feature.Degrader

	// Limit 是内部候选上限，与调用方的返回条数无关；<= 0 时使用默认值 100
	Limit int
}

var _ Source = (*UpcomingEvents)(nil)

func (r *UpcomingEvents) Name() string        { return "recall.upcoming" }
func (r *UpcomingEvents) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *UpcomingEvents) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *UpcomingEvents) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Store == nil {
		return nil, nil
	}
	limit := r.Limit
	if limit <= 0 {
		limit = (&core.DefaultRecommendConfig{}).DefaultMaxCandidates()
	}

	docs := feature.FetchOrDefault(ctx, r.Degrader, "events", zerolog.WarnLevel, []core.Document(nil),
		func(ctx context.Context) ([]core.Document, error) {
			return r.Store.Query(ctx, core.CollectionEvents, core.Query{
				Field: core.FieldStatus,
				Value: core.StatusActive,
				Limit: limit,
			})
		})
	if len(docs) > limit {
		docs = docs[:limit]
	}

	now := rctx.NowOr()
	out := make([]*core.Item, 0, len(docs))
	for _, doc := range docs {
		ev := core.NormalizeEvent(doc)
		if ev.ID == "" || !ev.IsActive() || !ev.Visible || ev.IsPast(now) {
			continue
		}
		it := core.NewItem(ev)
		it.PutLabel("recall_source", utils.NewLabel(r.Name(), "recall"))
		out = append(out, it)
	}
	return out, nil
}
