package core

import "testing"

func TestProfileFromDocument(t *testing.T) {
	p := ProfileFromDocument(Document{ID: "u1", Data: map[string]any{
		"topCategories":   map[string]any{"music": 3, "art": "1.5", "bad": "x"},
		"topCities":       map[string]any{"Lisbon": 2.0},
		"pricePreference": "free",
	}})
	if p == nil {
		t.Fatal("profile is nil")
	}
	if w, ok := p.CategoryWeight("music"); !ok || w != 3 {
		t.Errorf("music = %v, %v", w, ok)
	}
	if w, ok := p.CategoryWeight("art"); !ok || w != 1.5 {
		t.Errorf("art = %v, %v", w, ok)
	}
	if w, ok := p.CategoryWeight("bad"); !ok || w != 0 {
		t.Errorf("non numeric weight = %v, %v, want 0, true", w, ok)
	}
	if _, ok := p.CategoryWeight("sports"); ok {
		t.Error("sports should not be in profile")
	}
	if _, ok := p.CityWeight(""); ok {
		t.Error("empty city should never match")
	}
	if p.PricePreference != PricePreferenceFree || !p.HasAffinities() {
		t.Errorf("p = %+v", p)
	}
}

func TestProfileFromDocument_Empty(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
	}{
		{"no data", nil},
		{"empty maps", map[string]any{"topCategories": map[string]any{}, "topCities": map[string]any{}}},
		{"wrong types", map[string]any{"topCategories": []any{"music"}, "pricePreference": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if p := ProfileFromDocument(Document{ID: "u1", Data: tt.data}); p != nil {
				t.Errorf("profile = %+v, want nil", p)
			}
		})
	}
}

func TestInterestProfile_PriceOnly(t *testing.T) {
	p := ProfileFromDocument(Document{ID: "u1", Data: map[string]any{"pricePreference": "paid"}})
	if p == nil || p.IsEmpty() {
		t.Fatal("price only profile should not be empty")
	}
	if p.HasAffinities() {
		t.Error("price only profile has no affinities")
	}
	var nilProfile *InterestProfile
	if !nilProfile.IsEmpty() || nilProfile.HasAffinities() {
		t.Error("nil profile should be empty")
	}
}

func TestAnalyticsFromDocument(t *testing.T) {
	a, ok := AnalyticsFromDocument(Document{ID: "e1", Data: map[string]any{
		"views":          int64(100),
		"favorites":      "4",
		"conversionRate": 0.25,
	}})
	if !ok {
		t.Fatal("ok = false")
	}
	want := EventAnalytics{Views: 100, Favorites: 4, ConversionRate: 0.25}
	if a != want {
		t.Errorf("analytics = %+v, want %+v", a, want)
	}
	f := a.Features()
	if f[FieldViews] != 100 || f[FieldShares] != 0 || len(f) != 4 {
		t.Errorf("features = %v", f)
	}

	if _, ok := AnalyticsFromDocument(Document{ID: "e2"}); ok {
		t.Error("empty document should report ok = false")
	}
}
