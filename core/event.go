package core

import (
	"strings"
	"time"

	"github.com/rushteam/eventrec/pkg/conv"
)

// 活动文档字段名。category 与 categoryName 互为别名，按顺序取第一个非空值。
const (
	FieldStatus       = "status"
	FieldIsPublic     = "isPublic"
	FieldDate         = "date"
	FieldCategory     = "category"
	FieldCategoryName = "categoryName"
	FieldCity         = "city"
	FieldLocation     = "location"
	FieldPrice        = "price"
	FieldTicketTypes  = "ticketTypes"

	StatusActive = "active"
)

// Event 是规范化后的活动。
// 字段别名、location 推导城市等规则只在 NormalizeEvent 中解析一次，
// 打分代码只读取这里的规范字段。
type Event struct {
	ID       string
	Category string
	City     string

	// HasPrice 表示文档中 price 非空；Price 仅在 price 为数值时非 nil。
	// price 缺失表示"未知"，不是"免费"。
	HasPrice bool
	Price    *float64

	// FreeTier 表示 ticketTypes.free.price == 0。
	FreeTier bool

	Status string
	// Visible 只有在 isPublic 显式为 false 时才为 false。
	Visible bool
	// Date 为 nil 表示缺失或无法解析。
	Date *time.Time

	// Data 是原始文档字段，用于序列化输出。
	Data map[string]any
}

// NormalizeEvent 将存储文档转换为规范化的 Event。
func NormalizeEvent(doc Document) *Event {
	data := doc.Data
	if data == nil {
		data = map[string]any{}
	}
	ev := &Event{
		ID:      doc.ID,
		Visible: true,
		Data:    data,
	}

	ev.Category = firstString(data, FieldCategory, FieldCategoryName)

	if city, ok := data[FieldCity].(string); ok && city != "" {
		ev.City = city
	} else if loc, ok := data[FieldLocation].(string); ok {
		ev.City = strings.TrimSpace(strings.SplitN(loc, ",", 2)[0])
	}

	if raw, ok := data[FieldPrice]; ok && raw != nil {
		ev.HasPrice = true
		if p, ok := conv.ToFloat64(raw); ok {
			ev.Price = &p
		}
	}
	ev.FreeTier = hasFreeTier(data[FieldTicketTypes])

	ev.Status, _ = data[FieldStatus].(string)
	if public, ok := data[FieldIsPublic].(bool); ok && !public {
		ev.Visible = false
	}
	ev.Date = ParseDate(data[FieldDate])
	return ev
}

// IsActive 报告活动状态是否为 active。
func (e *Event) IsActive() bool { return e.Status == StatusActive }

// IsPast 报告活动日期是否早于 now。没有日期的活动永远不算过期。
func (e *Event) IsPast(now time.Time) bool {
	return e.Date != nil && e.Date.Before(now)
}

// IsFree 报告活动是否免费：price == 0，或存在价格为 0 的 free 票种。
func (e *Event) IsFree() bool {
	return (e.Price != nil && *e.Price == 0) || e.FreeTier
}

func firstString(data map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := data[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func hasFreeTier(v any) bool {
	tiers, ok := v.(map[string]any)
	if !ok {
		return false
	}
	free, ok := tiers["free"].(map[string]any)
	if !ok {
		return false
	}
	p, ok := conv.ToFloat64(free["price"])
	return ok && p == 0
}

// dateLayouts 覆盖 ISO-8601 的常见写法：T 或空格分隔，精确到分或秒（可带小数），
// 时区为 Z、+hh:mm、+hhmm 或缺省。
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDate 解析活动日期，统一为 UTC。
// 支持 time.Time、*time.Time 与 ISO-8601 字符串（不带时区时按 UTC 处理）。
// 无法识别的值返回 nil。
func ParseDate(v any) *time.Time {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return nil
		}
		t := d.UTC()
		return &t
	case *time.Time:
		if d == nil || d.IsZero() {
			return nil
		}
		t := d.UTC()
		return &t
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				t = t.UTC()
				return &t
			}
		}
	}
	return nil
}
