package rank

import (
	"math"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/model"
)

// 价格偏好加分。
const (
	FreePreferenceBoost = 5.0
	PaidPreferenceBoost = 2.0
)

var defaultTrending = model.NewTrendingModel(model.DefaultTrendingWeights())

// ScoreWithProfile 计算个性化分数：类别权重 + 城市权重 + 价格偏好加分。
//
// 价格偏好只在活动 price 非空且画像设置了偏好时生效：
//   - free 偏好且活动免费：+5
//   - paid 偏好且活动不免费：+2
//
// 其余组合不加分也不扣分。画像为 nil 时分数为 0。
// 权重之和溢出时截断为 ±math.MaxFloat64，分数始终有限。
func ScoreWithProfile(ev *core.Event, p *core.InterestProfile) float64 {
	if ev == nil || p == nil {
		return 0
	}
	var score float64
	if w, ok := p.CategoryWeight(ev.Category); ok {
		score += w
	}
	if w, ok := p.CityWeight(ev.City); ok {
		score += w
	}
	if ev.HasPrice && p.PricePreference != "" {
		free := ev.IsFree()
		switch {
		case p.PricePreference == core.PricePreferenceFree && free:
			score += FreePreferenceBoost
		case p.PricePreference == core.PricePreferencePaid && !free:
			score += PaidPreferenceBoost
		}
	}
	return clampFinite(score)
}

func clampFinite(score float64) float64 {
	switch {
	case math.IsNaN(score):
		return 0
	case math.IsInf(score, 1):
		return math.MaxFloat64
	case math.IsInf(score, -1):
		return -math.MaxFloat64
	}
	return score
}

// ScoreTrending 使用默认权重计算趋势分数。没有 ID 或没有统计数据的活动为 0。
func ScoreTrending(ev *core.Event, analytics map[string]core.EventAnalytics) float64 {
	return ScoreTrendingWith(defaultTrending, ev, analytics)
}

// ScoreTrendingWith 使用指定模型计算趋势分数；模型出错时为 0。
func ScoreTrendingWith(m model.RankModel, ev *core.Event, analytics map[string]core.EventAnalytics) float64 {
	if ev == nil || ev.ID == "" || m == nil {
		return 0
	}
	a, ok := analytics[ev.ID]
	if !ok {
		return 0
	}
	score, err := m.Predict(a.Features())
	if err != nil {
		return 0
	}
	return score
}
