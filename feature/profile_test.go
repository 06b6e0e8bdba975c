package feature

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/eventrec/core"
)

func TestProfileFetcher_Fetch(t *testing.T) {
	s := newFaultyStore()
	s.put(t, core.CollectionUserInterests, "u1", map[string]any{
		"topCategories":   map[string]any{"music": 5.0},
		"topCities":       map[string]any{"Paris": "3"},
		"pricePreference": "free",
	})
	s.put(t, core.CollectionUserInterests, "u2", map[string]any{
		"topCategories": map[string]any{},
	})
	d, _, _ := testDegrader(t)
	f := &ProfileFetcher{Store: s, Degrader: d}
	ctx := context.Background()

	p := f.Fetch(ctx, "u1")
	if p == nil {
		t.Fatal("Fetch(u1) = nil, want profile")
	}
	if p.UserID != "u1" || p.PricePreference != "free" {
		t.Errorf("profile = %+v", p)
	}
	if w, ok := p.CityWeight("Paris"); !ok || w != 3 {
		t.Errorf("CityWeight(Paris) = %v, %v, want 3, true", w, ok)
	}

	if p := f.Fetch(ctx, "u2"); p != nil {
		t.Errorf("Fetch(u2) = %+v, want nil for empty profile", p)
	}
	if p := f.Fetch(ctx, "missing"); p != nil {
		t.Errorf("Fetch(missing) = %+v, want nil", p)
	}
	if p := f.Fetch(ctx, ""); p != nil {
		t.Errorf("Fetch(\"\") = %+v, want nil", p)
	}

	s.failAll[core.CollectionUserInterests] = errors.New("unavailable")
	if p := f.Fetch(ctx, "u1"); p != nil {
		t.Errorf("Fetch() on failing store = %+v, want nil", p)
	}
}
