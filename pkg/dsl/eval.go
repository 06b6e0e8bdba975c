package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/eventrec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("event", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
		cel.CrossTypeNumericComparisons(true),
	)
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = initCELEnv()
	})
	return celEnv, celEnvErr
}

// Program 是编译后的活动资格表达式，使用 CEL (Common Expression Language) 实现。
// 编译一次，可并发多次求值。
//
// 可用变量：
//   - event.id / event.category / event.city / event.status：字符串
//   - event.price：数值，未知时为 null
//   - event.free / event.public：布尔
//   - event.date：timestamp，缺失时为 null
//   - event.data：原始文档字段
//   - label.<key>：候选上的 label 值
//   - rctx.user_id / rctx.now / rctx.limit
//
// 示例：
//   - `event.category != "adult"`
//   - `event.price == null || event.price <= 50`
//   - `event.city == "Kinshasa" && event.free`
//   - `event.date == null || event.date < rctx.now + duration("720h")`
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式。表达式结果必须是布尔值（或动态类型）。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}
	if t := ast.OutputType(); !t.IsExactType(cel.BoolType) && !t.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("compile %q: expression must return bool, got %s", expr, t)
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// String 返回原始表达式。
func (p *Program) String() string {
	return p.expr
}

// Evaluate 对候选求值，返回布尔结果。
// 访问不存在的字段会返回错误，可以用 has(event.data.key) 检查存在性。
func (p *Program) Evaluate(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	out, _, err := p.prg.Eval(buildInput(item, rctx))
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", p.expr, err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("eval %q: expression must return bool, got %T", p.expr, out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(item *core.Item, rctx *core.RecommendContext) map[string]any {
	event := map[string]any{}
	label := map[string]any{}
	if item != nil {
		for k, v := range item.Labels {
			label[k] = v.Value
		}
		if ev := item.Event; ev != nil {
			event["id"] = ev.ID
			event["category"] = ev.Category
			event["city"] = ev.City
			event["status"] = ev.Status
			event["free"] = ev.IsFree()
			event["public"] = ev.Visible
			event["price"] = nil
			if ev.Price != nil {
				event["price"] = *ev.Price
			}
			event["date"] = nil
			if ev.Date != nil {
				event["date"] = *ev.Date
			}
			event["data"] = ev.Data
		}
	}

	ctx := map[string]any{
		"user_id": "",
		"now":     nil,
		"limit":   0,
	}
	if rctx != nil {
		ctx["user_id"] = rctx.UserID
		ctx["now"] = rctx.NowOr()
		ctx["limit"] = rctx.Limit
	}

	return map[string]any{
		"event": event,
		"label": label,
		"rctx":  ctx,
	}
}
