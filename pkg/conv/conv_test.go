package conv

import (
	"encoding/json"
	"math"
	"testing"
)

func TestToFloat64(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{1.5, 1.5, true},
		{float32(2), 2, true},
		{int64(7), 7, true},
		{uint8(3), 3, true},
		{json.Number("4.25"), 4.25, true},
		{json.Number("x"), 0, false},
		{true, 1, true},
		{false, 0, true},
		{"3", 0, false},
		{nil, 0, false},
		{math.NaN(), 0, false},
		{math.Inf(1), 0, false},
		{[]any{1}, 0, false},
	}
	for _, tt := range tests {
		got, ok := ToFloat64(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ToFloat64(%#v) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseFloat64(t *testing.T) {
	tests := []struct {
		in   any
		want float64
	}{
		{12, 12},
		{" 2.5 ", 2.5},
		{"1e2", 100},
		{"many", 0},
		{"NaN", 0},
		{"", 0},
		{nil, 0},
		{map[string]any{}, 0},
	}
	for _, tt := range tests {
		if got := ParseFloat64(tt.in); got != tt.want {
			t.Errorf("ParseFloat64(%#v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
