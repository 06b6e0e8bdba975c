package model

import (
	"math"
	"testing"
)

func TestTrendingModel_Predict(t *testing.T) {
	m := NewTrendingModel(DefaultTrendingWeights())
	tests := []struct {
		name     string
		features map[string]float64
		want     float64
	}{
		{"all signals", map[string]float64{"views": 10, "favorites": 5, "shares": 2, "conversionRate": 0.3}, 17.0},
		{"views only", map[string]float64{"views": 250}, 25},
		{"unknown feature ignored", map[string]float64{"clicks": 99}, 0},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Predict(tt.features)
			if err != nil {
				t.Fatalf("Predict() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Predict() = %v, want %v", got, tt.want)
			}
		})
	}
	if m.Name() != "trending" {
		t.Errorf("Name() = %q", m.Name())
	}
}

func TestLinearModel_NonFinite(t *testing.T) {
	m := &LinearModel{Terms: []Term{{Feature: "x", Weight: math.MaxFloat64}}}
	if _, err := m.Predict(map[string]float64{"x": math.MaxFloat64}); err == nil {
		t.Error("Predict() expected error for overflow")
	}
	if m.Name() != "linear" {
		t.Errorf("Name() = %q", m.Name())
	}
}
