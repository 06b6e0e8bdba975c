package core

import (
	"context"
	"reflect"
)

// 集合名称。
const (
	CollectionEvents         = "events"
	CollectionUserInterests  = "userInterestProfiles"
	CollectionEventAnalytics = "eventAnalytics"
)

// Document 是文档存储中的一条原始记录。
type Document struct {
	ID   string
	Data map[string]any
}

// Query 是集合上的等值查询，Limit <= 0 表示不限制。
type Query struct {
	Field string
	Value any
	Limit int
}

// Matches 报告文档是否满足等值条件。Field 为空时匹配所有文档。
func (q Query) Matches(doc Document) bool {
	if q.Field == "" {
		return true
	}
	v, ok := doc.Data[q.Field]
	if !ok {
		return false
	}
	if v == nil || q.Value == nil {
		return v == q.Value
	}
	if !reflect.TypeOf(v).Comparable() {
		return false
	}
	return v == q.Value
}

// DocumentStore 是文档存储的领域接口（只读）。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 推荐引擎只读，不做任何写入
//   - 按集合名 + 文档 ID 访问
//
// 实现：
//   - store.MemoryStore / store.RedisStore / store.BadgerStore / store.FirestoreStore
//   - store.Breaker 为任意实现加熔断
type DocumentStore interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// Query 按等值条件查询集合，结果最多 q.Limit 条
	Query(ctx context.Context, collection string, q Query) ([]Document, error)

	// Get 读取单个文档；不存在时返回 ErrStoreNotFound
	Get(ctx context.Context, collection, id string) (Document, error)

	// Close 关闭连接/释放资源
	Close() error
}

// DocumentWriter 用于导入数据（fixtures / 运维工具），推荐引擎不会使用。
type DocumentWriter interface {
	Put(ctx context.Context, collection string, doc Document) error
}

// Store 错误定义（使用统一的 DomainError）
var (
	// ErrStoreNotFound 表示文档不存在
	ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: document not found")

	// ErrStoreNotSupported 表示操作不支持
	ErrStoreNotSupported = NewDomainError(ModuleStore, ErrorCodeNotSupported, "store: operation not supported")

	// ErrStoreUnavailable 表示存储不可用（例如熔断打开）
	ErrStoreUnavailable = NewDomainError(ModuleStore, ErrorCodeUnavailable, "store: unavailable")
)

// IsStoreNotFound 检查错误是否为文档不存在
func IsStoreNotFound(err error) bool {
	domainErr := GetDomainError(err)
	if domainErr != nil && domainErr.Module == ModuleStore {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}
