package rank

import (
	"context"
	"math"
	"sort"
	"strconv"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/model"
	"github.com/rushteam/eventrec/pipeline"
	"github.com/rushteam/eventrec/pkg/utils"
)

// SelectStrategy 选择排序策略：画像有类别或城市亲和度时使用个性化，否则使用趋势。
// 只有价格偏好的画像同样走趋势策略。
func SelectStrategy(p *core.InterestProfile) core.Strategy {
	if p.HasAffinities() {
		return core.StrategyPersonalized
	}
	return core.StrategyTrending
}

// StrategyNode 是排序 Node：按 rctx.Profile 选择策略，为每个候选打分并排序。
//   - 写入 rctx.Strategy 与 label：rank_strategy
//   - 分数降序；同分时日期早的在前，没有日期的排在所有有日期的之后
//   - 仍然相同时保持召回顺序（稳定排序）
type StrategyNode struct {
	// Trending 趋势模型，为 nil 时使用默认权重
	Trending model.RankModel
}

func (n *StrategyNode) Name() string        { return "rank.strategy" }
func (n *StrategyNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *StrategyNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if rctx == nil {
		rctx = &core.RecommendContext{}
	}
	strategy := SelectStrategy(rctx.Profile)
	rctx.Strategy = strategy
	rctx.PutLabel("rank_strategy", utils.NewLabel(string(strategy), "rank"))

	trending := n.Trending
	if trending == nil {
		trending = defaultTrending
	}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil || it.Event == nil {
			continue
		}
		if strategy == core.StrategyPersonalized {
			it.Score = ScoreWithProfile(it.Event, rctx.Profile)
		} else {
			it.Score = ScoreTrendingWith(trending, it.Event, rctx.Analytics)
		}
		it.PutLabel("rank_strategy", utils.NewLabel(string(strategy), "rank"))
		it.PutLabel("rank_score", utils.NewLabel(strconv.FormatFloat(it.Score, 'g', -1, 64), "rank"))
		out = append(out, it)
	}

	SortItems(out)
	return out, nil
}

// SortItems 按分数降序稳定排序，同分时按活动日期升序，没有日期视为正无穷。
func SortItems(items []*core.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return rankTime(items[i]) < rankTime(items[j])
	})
}

// rankTime 返回用于同分排序的时间戳（秒）。
func rankTime(it *core.Item) float64 {
	if it.Event == nil || it.Event.Date == nil {
		return math.Inf(1)
	}
	d := it.Event.Date
	return float64(d.Unix()) + float64(d.Nanosecond())/1e9
}
