package filter

import (
	"context"
	"fmt"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/pkg/dsl"
)

// ExprFilter 使用 CEL 表达式判断活动是否有资格被推荐，表达式为 false 时过滤。
// 求值出错时返回错误，由 FilterNode 保留该活动。
//
//	f, err := filter.NewExprFilter(`event.category != "adult"`)
type ExprFilter struct {
	prg *dsl.Program
}

// NewExprFilter 编译表达式；表达式无效时返回错误。
func NewExprFilter(expr string) (*ExprFilter, error) {
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleRecommend, core.ErrorCodeInvalidInput,
			fmt.Sprintf("invalid eligibility expression: %v", err))
	}
	return &ExprFilter{prg: prg}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	ok, err := f.prg.Evaluate(item, rctx)
	if err != nil {
		return false, err
	}
	return !ok, nil
}
