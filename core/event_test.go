package core

import (
	"testing"
	"time"
)

func TestNormalizeEvent(t *testing.T) {
	ev := NormalizeEvent(Document{ID: "e1", Data: map[string]any{
		"status":       "active",
		"categoryName": "music",
		"location":     " Lisbon , Portugal",
		"price":        int64(15),
		"date":         "2026-06-01T20:00:00+02:00",
	}})

	if ev.ID != "e1" || ev.Category != "music" || ev.City != "Lisbon" {
		t.Errorf("ev = %+v", ev)
	}
	if !ev.HasPrice || ev.Price == nil || *ev.Price != 15 {
		t.Errorf("price = %v (has %v)", ev.Price, ev.HasPrice)
	}
	if !ev.IsActive() || !ev.Visible {
		t.Errorf("active = %v, visible = %v", ev.IsActive(), ev.Visible)
	}
	want := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)
	if ev.Date == nil || !ev.Date.Equal(want) || ev.Date.Location() != time.UTC {
		t.Errorf("date = %v, want %v", ev.Date, want)
	}
}

func TestNormalizeEvent_Aliases(t *testing.T) {
	tests := []struct {
		name     string
		data     map[string]any
		category string
		city     string
	}{
		{"category wins", map[string]any{"category": "a", "categoryName": "b"}, "a", ""},
		{"empty category falls back", map[string]any{"category": "", "categoryName": "b"}, "b", ""},
		{"city wins over location", map[string]any{"city": "Porto", "location": "Lisbon, PT"}, "", "Porto"},
		{"location without comma", map[string]any{"location": "Berlin"}, "", "Berlin"},
		{"non string location", map[string]any{"location": 42}, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := NormalizeEvent(Document{ID: "x", Data: tt.data})
			if ev.Category != tt.category || ev.City != tt.city {
				t.Errorf("category = %q, city = %q, want %q, %q", ev.Category, ev.City, tt.category, tt.city)
			}
		})
	}
}

func TestEvent_IsFree(t *testing.T) {
	tests := []struct {
		name     string
		data     map[string]any
		free     bool
		hasPrice bool
	}{
		{"zero price", map[string]any{"price": 0}, true, true},
		{"zero float price", map[string]any{"price": 0.0}, true, true},
		{"paid", map[string]any{"price": 20.5}, false, true},
		{"missing price is unknown", map[string]any{}, false, false},
		{"null price is unknown", map[string]any{"price": nil}, false, false},
		{"string price", map[string]any{"price": "10"}, false, true},
		{"free ticket tier", map[string]any{"price": 30, "ticketTypes": map[string]any{
			"free": map[string]any{"price": 0},
			"vip":  map[string]any{"price": 80},
		}}, true, true},
		{"free tier with price", map[string]any{"ticketTypes": map[string]any{
			"free": map[string]any{"price": 5},
		}}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := NormalizeEvent(Document{ID: "x", Data: tt.data})
			if ev.IsFree() != tt.free || ev.HasPrice != tt.hasPrice {
				t.Errorf("IsFree() = %v, HasPrice = %v, want %v, %v", ev.IsFree(), ev.HasPrice, tt.free, tt.hasPrice)
			}
		})
	}
}

func TestEvent_Visibility(t *testing.T) {
	for _, tt := range []struct {
		public  any
		visible bool
	}{
		{nil, true},
		{true, true},
		{false, false},
		{"false", true},
	} {
		data := map[string]any{}
		if tt.public != nil {
			data["isPublic"] = tt.public
		}
		if got := NormalizeEvent(Document{Data: data}).Visible; got != tt.visible {
			t.Errorf("isPublic=%v: Visible = %v, want %v", tt.public, got, tt.visible)
		}
	}
}

func TestEvent_IsPast(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	if !(&Event{Date: &past}).IsPast(now) {
		t.Error("event before now should be past")
	}
	if (&Event{Date: &future}).IsPast(now) {
		t.Error("event after now should not be past")
	}
	if (&Event{Date: &now}).IsPast(now) {
		t.Error("event at now should not be past")
	}
	if (&Event{}).IsPast(now) {
		t.Error("event without date should never be past")
	}
}

func TestParseDate(t *testing.T) {
	utc := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	local := time.Date(2026, 6, 1, 22, 0, 0, 0, time.FixedZone("CEST", 2*3600))

	tests := []struct {
		name string
		in   any
		want *time.Time
	}{
		{"rfc3339", "2026-06-01T20:00:00Z", &utc},
		{"offset", "2026-06-01T22:00:00+02:00", &utc},
		{"naive is utc", "2026-06-01T20:00:00", &utc},
		{"space separator", "2026-06-01 20:00:00", &utc},
		{"space separator with offset", "2026-06-01 22:00:00+02:00", &utc},
		{"space separator with utc offset", "2026-06-01 20:00:00+00:00", &utc},
		{"space separator with fraction and offset", "2026-06-01 20:00:00.000123+00:00", ptr(utc.Add(123 * time.Microsecond))},
		{"space separator with basic offset", "2026-06-01 22:00:00+0200", &utc},
		{"basic offset", "2026-06-01T21:00:00+0100", &utc},
		{"minutes with offset", "2026-06-01T22:00+02:00", &utc},
		{"minutes with z", "2026-06-01T20:00Z", &utc},
		{"minutes with basic offset", "2026-06-01T19:00-0100", &utc},
		{"space minutes with offset", "2026-06-01 22:00+02:00", &utc},
		{"space minutes", "2026-06-01 20:00", &utc},
		{"minutes", "2026-06-01T20:00", &utc},
		{"time value", local, &utc},
		{"time pointer", &local, &utc},
		{"date only", "2026-06-01", ptr(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))},
		{"garbage", "next friday", nil},
		{"empty", "  ", nil},
		{"number", 1717272000, nil},
		{"nil", nil, nil},
		{"zero time", time.Time{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.in)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("ParseDate(%v) = %v, want nil", tt.in, got)
			case tt.want != nil && (got == nil || !got.Equal(*tt.want)):
				t.Errorf("ParseDate(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func ptr(t time.Time) *time.Time { return &t }
