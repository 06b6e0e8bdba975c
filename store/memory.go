package store

import (
	"context"
	"sync"

	"github.com/rushteam/eventrec/core"
)

// MemoryStore 是内存实现的文档存储，用于测试/开发/原型。
// 查询结果按写入顺序返回，便于测试断言。
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

type collection struct {
	order []string
	docs  map[string]map[string]any
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*collection)}
}

func (m *MemoryStore) Name() string { return "memory" }

func (m *MemoryStore) Query(ctx context.Context, name string, q core.Query) ([]core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.collections[name]
	if !ok {
		return nil, nil
	}
	out := make([]core.Document, 0, len(c.order))
	for _, id := range c.order {
		if limitReached(q, len(out)) {
			break
		}
		doc := core.Document{ID: id, Data: copyData(c.docs[id])}
		if q.Matches(doc) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *MemoryStore) Get(ctx context.Context, name, id string) (core.Document, error) {
	if err := ctx.Err(); err != nil {
		return core.Document{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.collections[name]
	if !ok {
		return core.Document{}, ErrNotFound
	}
	data, ok := c.docs[id]
	if !ok {
		return core.Document{}, ErrNotFound
	}
	return core.Document{ID: id, Data: copyData(data)}, nil
}

// Put 写入或覆盖文档。覆盖不改变文档的查询顺序。
func (m *MemoryStore) Put(_ context.Context, name string, doc core.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[name]
	if !ok {
		c = &collection{docs: make(map[string]map[string]any)}
		m.collections[name] = c
	}
	if _, exists := c.docs[doc.ID]; !exists {
		c.order = append(c.order, doc.ID)
	}
	c.docs[doc.ID] = copyData(doc.Data)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// copyData 浅拷贝顶层字段，避免调用方修改存储内部状态。
func copyData(data map[string]any) map[string]any {
	if data == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

var (
	_ core.DocumentStore  = (*MemoryStore)(nil)
	_ core.DocumentWriter = (*MemoryStore)(nil)
)
