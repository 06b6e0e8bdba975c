package core

import "github.com/rushteam/eventrec/pkg/utils"

// Item 是推荐链路中的统一承载结构：候选活动、分数、标签。
// Labels 用于解释与观测；Score 用于排序决策。
// Item 只存活于一次推荐调用内。
type Item struct {
	ID     string
	Score  float64
	Event  *Event
	Labels map[string]utils.Label
}

// NewItem 以规范化后的活动构建候选。
func NewItem(ev *Event) *Item {
	it := &Item{
		Event:  ev,
		Labels: make(map[string]utils.Label),
	}
	if ev != nil {
		it.ID = ev.ID
	}
	return it
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// Items 将活动列表包装为候选列表，保持原有顺序。
func Items(events []*Event) []*Item {
	out := make([]*Item, 0, len(events))
	for _, ev := range events {
		if ev == nil {
			continue
		}
		out = append(out, NewItem(ev))
	}
	return out
}
