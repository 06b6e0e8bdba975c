// Package serialize 将文档存储中的原生值转换为 JSON 安全的普通值。
//
// 规则：
//   - 时间类值 → UTC 的 ISO-8601 字符串
//   - map → 同 key 的 map，value 递归转换
//   - 切片/数组 → 逐元素递归转换
//   - 其他标量原样返回，nil 返回 nil
//
// 转换是幂等的：对已转换的值再次调用返回相同结果。
package serialize

import (
	"fmt"
	"reflect"
	"time"
)

// Timestamper 是可以转换为 time.Time 的时间类值（如 protobuf Timestamp）。
type Timestamper interface {
	AsTime() time.Time
}

// Value 递归转换单个值。
func Value(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string, bool, float64, float32, int, int64, int32, uint, uint64, uint32:
		return val
	case time.Time:
		return formatTime(val)
	case *time.Time:
		if val == nil {
			return nil
		}
		return formatTime(*val)
	case Timestamper:
		if rv := reflect.ValueOf(val); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil
		}
		return formatTime(val.AsTime())
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = Value(e)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = Value(e)
		}
		return out
	case []byte:
		return val
	}
	return reflectValue(v)
}

// Document 转换整份文档并写入 id 字段（id 覆盖文档中的同名字段）。
func Document(id string, data map[string]any) map[string]any {
	out := make(map[string]any, len(data)+1)
	for k, e := range data {
		out[k] = Value(e)
	}
	out["id"] = id
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// reflectValue 处理非 any 元素类型的 map/slice（例如 map[string]float64）。
func reflectValue(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return Value(rv.Elem().Interface())
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[mapKey(iter.Key())] = Value(iter.Value().Interface())
		}
		return out
	case reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		fallthrough
	case reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = Value(rv.Index(i).Interface())
		}
		return out
	}
	return v
}

func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return fmt.Sprint(k.Interface())
}
