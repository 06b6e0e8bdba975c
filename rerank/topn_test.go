package rerank

import (
	"context"
	"testing"

	"github.com/rushteam/eventrec/core"
)

func TestTopNNode_Process(t *testing.T) {
	items := core.Items([]*core.Event{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	tests := []struct {
		name  string
		n     int
		limit int
		want  int
	}{
		{"fixed N", 2, 0, 2},
		{"N wins over context", 1, 3, 1},
		{"context limit", 0, 2, 2},
		{"limit above size", 0, 10, 3},
		{"no limit", 0, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := (&TopNNode{N: tt.n}).Process(context.Background(), &core.RecommendContext{Limit: tt.limit}, items)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(out) != tt.want {
				t.Errorf("len = %d, want %d", len(out), tt.want)
			}
			if len(out) > 0 && out[0].ID != "a" {
				t.Errorf("first = %q, want a", out[0].ID)
			}
		})
	}
}
