package filter

import (
	"context"

	"github.com/rushteam/eventrec/core"
)

// PastEventFilter 过滤掉日期早于 rctx.Now 的活动。
// 没有日期（或日期无法解析）的活动永远保留。
type PastEventFilter struct{}

func (f *PastEventFilter) Name() string {
	return "filter.past_event"
}

func (f *PastEventFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || item.Event == nil {
		return true, nil
	}
	return item.Event.IsPast(rctx.NowOr()), nil
}
