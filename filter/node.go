package filter

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/pipeline"
	"github.com/rushteam/eventrec/pkg/logging"
	"github.com/rushteam/eventrec/pkg/utils"
)

// FilterNode 是过滤 Node，可以组合多个过滤器进行过滤。
// 如果任何一个过滤器返回 true，该活动就会被过滤掉。
type FilterNode struct {
	Filters []Filter

	// Logger 记录过滤器错误（可选）
	Logger zerolog.Logger
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	filtered := 0

	for _, item := range items {
		if item == nil {
			continue
		}

		shouldFilter := false
		filterReason := ""

		// 依次检查每个过滤器
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				// 过滤器错误时保留活动，不中断流程
				logger := logging.From(ctx, n.Logger)
				logger.Debug().Err(err).Str("filter", f.Name()).Str("event_id", item.ID).Msg("filter error, keeping event")
				continue
			}
			if ok {
				shouldFilter = true
				filterReason = f.Name()
				break
			}
		}

		if shouldFilter {
			filtered++
			item.PutLabel("filtered", utils.NewLabel("true", filterReason))
			continue
		}

		out = append(out, item)
	}

	if rctx != nil && filtered > 0 {
		rctx.PutLabel("filtered", utils.NewLabel(strconv.Itoa(filtered), n.Name()))
	}
	return out, nil
}
