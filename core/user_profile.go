package core

import "github.com/rushteam/eventrec/pkg/conv"

// 用户兴趣画像字段名。
const (
	FieldTopCategories   = "topCategories"
	FieldTopCities       = "topCities"
	FieldPricePreference = "pricePreference"

	PricePreferenceFree = "free"
	PricePreferencePaid = "paid"
)

// InterestProfile 是用户兴趣画像（userInterestProfiles 文档）。
//
//	维度              作用
//	TopCategories    类别亲和度（category -> weight）
//	TopCities        城市亲和度（city -> weight）
//	PricePreference  价格偏好：free / paid / 空
type InterestProfile struct {
	UserID          string
	TopCategories   map[string]float64
	TopCities       map[string]float64
	PricePreference string
}

// ProfileFromDocument 从文档构建画像。文档为空时返回 nil，与"无画像"等价。
// 权重无法转为数值时按 0 处理。
func ProfileFromDocument(doc Document) *InterestProfile {
	if len(doc.Data) == 0 {
		return nil
	}
	p := &InterestProfile{
		UserID:        doc.ID,
		TopCategories: weights(doc.Data[FieldTopCategories]),
		TopCities:     weights(doc.Data[FieldTopCities]),
	}
	p.PricePreference, _ = doc.Data[FieldPricePreference].(string)
	if p.IsEmpty() {
		return nil
	}
	return p
}

// HasAffinities 报告画像是否有类别或城市亲和度。
// 只有价格偏好的画像不满足个性化策略的条件。
func (p *InterestProfile) HasAffinities() bool {
	return p != nil && (len(p.TopCategories) > 0 || len(p.TopCities) > 0)
}

// IsEmpty 报告画像三个字段是否全部为空。
func (p *InterestProfile) IsEmpty() bool {
	return p == nil || (!p.HasAffinities() && p.PricePreference == "")
}

// CategoryWeight 返回类别权重；ok 表示该类别在画像中。
func (p *InterestProfile) CategoryWeight(category string) (float64, bool) {
	if p == nil || category == "" {
		return 0, false
	}
	w, ok := p.TopCategories[category]
	return w, ok
}

// CityWeight 返回城市权重；ok 表示该城市在画像中。
func (p *InterestProfile) CityWeight(city string) (float64, bool) {
	if p == nil || city == "" {
		return 0, false
	}
	w, ok := p.TopCities[city]
	return w, ok
}

func weights(v any) map[string]float64 {
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, raw := range m {
		out[k] = conv.ParseFloat64(raw)
	}
	return out
}
