package core

import "github.com/rushteam/eventrec/pkg/conv"

// 活动统计字段名。
const (
	FieldViews          = "views"
	FieldFavorites      = "favorites"
	FieldShares         = "shares"
	FieldConversionRate = "conversionRate"
)

// EventAnalytics 是单个活动的聚合互动数据（eventAnalytics 文档）。
// ConversionRate 取值范围 0-1。
type EventAnalytics struct {
	Views          float64
	Favorites      float64
	Shares         float64
	ConversionRate float64
}

// AnalyticsFromDocument 从文档构建统计数据；空文档返回 ok=false。
// 缺失或非数值字段按 0 处理。
func AnalyticsFromDocument(doc Document) (EventAnalytics, bool) {
	if len(doc.Data) == 0 {
		return EventAnalytics{}, false
	}
	return EventAnalytics{
		Views:          conv.ParseFloat64(doc.Data[FieldViews]),
		Favorites:      conv.ParseFloat64(doc.Data[FieldFavorites]),
		Shares:         conv.ParseFloat64(doc.Data[FieldShares]),
		ConversionRate: conv.ParseFloat64(doc.Data[FieldConversionRate]),
	}, true
}

// Features 以 eventAnalytics 字段名为 key 返回统计特征。
func (a EventAnalytics) Features() map[string]float64 {
	return map[string]float64{
		FieldViews:          a.Views,
		FieldFavorites:      a.Favorites,
		FieldShares:         a.Shares,
		FieldConversionRate: a.ConversionRate,
	}
}
