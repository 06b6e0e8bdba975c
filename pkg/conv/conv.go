// Package conv 提供类型转换工具，用于把文档存储中的动态值收敛为强类型。
package conv

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToFloat64 将数值类型的 any 转为 float64。
// 支持所有整型/浮点型与 json.Number；bool 视为 1.0/0.0；字符串不转换。
// NaN 与 Inf 视为无法转换。
func ToFloat64(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case int32:
		f = float64(val)
	case int16:
		f = float64(val)
	case int8:
		f = float64(val)
	case uint:
		f = float64(val)
	case uint64:
		f = float64(val)
	case uint32:
		f = float64(val)
	case uint16:
		f = float64(val)
	case uint8:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case bool:
		if val {
			return 1.0, true
		}
		return 0.0, true
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseFloat64 宽松地将 any 转为 float64：数值直接转换，数字字符串会被解析，
// 其他值（包括无法解析的字符串）返回 0。
func ParseFloat64(v any) float64 {
	if f, ok := ToFloat64(v); ok {
		return f
	}
	s, ok := v.(string)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
