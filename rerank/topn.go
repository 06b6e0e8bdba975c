package rerank

import (
	"context"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于在排序后截取前 N 个活动。
//
// 示例：
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &rank.StrategyNode{},     // 排序
//	        &rerank.TopNNode{},       // 按 rctx.Limit 截断
//	    },
//	}
type TopNNode struct {
	// N 要保留的活动数量（Top N）
	// 如果 N <= 0，则使用 rctx.Limit；两者都 <= 0 时不截断
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	limit := n.N
	if limit <= 0 && rctx != nil {
		limit = rctx.Limit
	}
	if limit <= 0 || len(items) <= limit {
		return items, nil
	}
	return items[:limit], nil
}
