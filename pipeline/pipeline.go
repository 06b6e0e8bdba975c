package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/pkg/logging"
)

// Pipeline 把推荐逻辑拆成可组合的 Node 链：召回 -> 信号 -> 过滤 -> 排序 -> 截断。
type Pipeline struct {
	Nodes []Node

	// Logger 用于按节点打点（可选，零值不输出）
	Logger zerolog.Logger
}

// Run 依次执行每个 Node，前一个 Node 的输出作为下一个的输入。
// 任一 Node 返回错误时立即中止，错误带上节点名。
func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	logger := logging.From(ctx, p.Logger)
	cur := items
	for _, node := range p.Nodes {
		start := time.Now()
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", node.Kind(), node.Name(), err)
		}
		logger.Debug().
			Str("node", node.Name()).
			Str("kind", string(node.Kind())).
			Int("in", len(cur)).
			Int("out", len(next)).
			Dur("elapsed", time.Since(start)).
			Msg("pipeline node done")
		cur = next
	}
	return cur, nil
}
