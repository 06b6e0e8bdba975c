package filter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rushteam/eventrec/core"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func event(id string, data map[string]any) *core.Item {
	return core.NewItem(core.NormalizeEvent(core.Document{ID: id, Data: data}))
}

func ids(items []*core.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

type errFilter struct{}

func (errFilter) Name() string { return "filter.err" }
func (errFilter) ShouldFilter(context.Context, *core.RecommendContext, *core.Item) (bool, error) {
	return true, errors.New("broken")
}

func TestFilterNode_Process(t *testing.T) {
	items := []*core.Item{
		event("a", map[string]any{"date": "2026-06-01"}),
		event("b", map[string]any{"date": "2026-04-01"}),
		event("c", nil),
		nil,
		event("d", map[string]any{"date": "2026-07-01"}),
	}
	n := &FilterNode{Filters: []Filter{
		errFilter{},
		&PastEventFilter{},
		NewBlocklistFilter([]string{"d", ""}),
	}}
	rctx := &core.RecommendContext{Now: testNow}

	out, err := n.Process(context.Background(), rctx, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if got, want := ids(out), []string{"a", "c"}; !equalIDs(got, want) {
		t.Errorf("Process() = %v, want %v", got, want)
	}
	if lbl := items[1].Labels["filtered"]; lbl.Source != "filter.past_event" {
		t.Errorf("b filtered label = %+v", lbl)
	}
	if lbl := items[4].Labels["filtered"]; lbl.Source != "filter.blocklist" {
		t.Errorf("d filtered label = %+v", lbl)
	}
	if lbl, ok := rctx.GetLabel("filtered"); !ok || lbl.Value != "2" {
		t.Errorf("rctx filtered label = %+v, %v", lbl, ok)
	}
}

func TestFilterNode_NoFilters(t *testing.T) {
	items := []*core.Item{event("a", nil)}
	out, err := (&FilterNode{}).Process(context.Background(), &core.RecommendContext{}, items)
	if err != nil || len(out) != 1 {
		t.Errorf("Process() = %v, %v", ids(out), err)
	}
}

func TestPastEventFilter(t *testing.T) {
	tests := []struct {
		name string
		date any
		want bool
	}{
		{"future", "2026-05-02T00:00:00Z", false},
		{"past", "2026-04-30T23:59:59Z", true},
		{"exactly now", testNow, false},
		{"missing", nil, false},
		{"unparseable", "next friday", false},
	}
	f := &PastEventFilter{}
	rctx := &core.RecommendContext{Now: testNow}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.ShouldFilter(context.Background(), rctx, event("e", map[string]any{"date": tt.date}))
			if err != nil {
				t.Fatalf("ShouldFilter() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBlocklistFilter(t *testing.T) {
	f := NewBlocklistFilter([]string{"x", "", "y"})
	if f.Len() != 2 {
		t.Errorf("Len() = %d, want 2", f.Len())
	}
	for id, want := range map[string]bool{"x": true, "y": true, "z": false} {
		got, _ := f.ShouldFilter(context.Background(), nil, event(id, nil))
		if got != want {
			t.Errorf("ShouldFilter(%s) = %v, want %v", id, got, want)
		}
	}
}
