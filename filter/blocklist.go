package filter

import (
	"context"

	"github.com/rushteam/eventrec/core"
)

// BlocklistFilter 是屏蔽列表过滤器，过滤掉配置中屏蔽的活动。
type BlocklistFilter struct {
	ids map[string]struct{}
}

// NewBlocklistFilter 创建一个屏蔽列表过滤器，空 ID 会被忽略。
func NewBlocklistFilter(eventIDs []string) *BlocklistFilter {
	ids := make(map[string]struct{}, len(eventIDs))
	for _, id := range eventIDs {
		if id != "" {
			ids[id] = struct{}{}
		}
	}
	return &BlocklistFilter{ids: ids}
}

func (f *BlocklistFilter) Name() string {
	return "filter.blocklist"
}

// Len 返回屏蔽的活动数量。
func (f *BlocklistFilter) Len() int {
	return len(f.ids)
}

func (f *BlocklistFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	_, blocked := f.ids[item.ID]
	return blocked, nil
}
