package model

import (
	"fmt"
	"math"
)

// Term 是线性模型中的一项：Weight * features[Feature]。
type Term struct {
	Feature string
	Weight  float64
}

// LinearModel 是线性加权打分模型：score = Bias + sum(Weight_i * Feature_i)。
// 与 LR 不同，输出不做 Sigmoid 变换，分数直接可加。
// 各项按 Terms 顺序累加，保证浮点结果稳定。缺失的特征按 0 处理。
type LinearModel struct {
	Label string
	Bias  float64
	Terms []Term
}

func (m *LinearModel) Name() string {
	if m.Label == "" {
		return "linear"
	}
	return m.Label
}

func (m *LinearModel) Predict(features map[string]float64) (float64, error) {
	score := m.Bias
	for _, t := range m.Terms {
		score += t.Weight * features[t.Feature]
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, fmt.Errorf("%s: non-finite score", m.Name())
	}
	return score, nil
}

// 趋势模型的默认权重。
const (
	DefaultViewsWeight          = 0.1
	DefaultFavoritesWeight      = 2.0
	DefaultSharesWeight         = 1.5
	DefaultConversionRateWeight = 10.0
)

// TrendingWeights 是趋势模型的权重配置。
type TrendingWeights struct {
	Views          float64
	Favorites      float64
	Shares         float64
	ConversionRate float64
}

// DefaultTrendingWeights 返回默认权重：views*0.1 + favorites*2 + shares*1.5 + conversionRate*10。
func DefaultTrendingWeights() TrendingWeights {
	return TrendingWeights{
		Views:          DefaultViewsWeight,
		Favorites:      DefaultFavoritesWeight,
		Shares:         DefaultSharesWeight,
		ConversionRate: DefaultConversionRateWeight,
	}
}

// NewTrendingModel 以给定权重构建趋势模型，特征名与 eventAnalytics 文档字段一致。
func NewTrendingModel(w TrendingWeights) *LinearModel {
	return &LinearModel{
		Label: "trending",
		Terms: []Term{
			{Feature: "views", Weight: w.Views},
			{Feature: "favorites", Weight: w.Favorites},
			{Feature: "shares", Weight: w.Shares},
			{Feature: "conversionRate", Weight: w.ConversionRate},
		},
	}
}
