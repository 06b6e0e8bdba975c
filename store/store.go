// Package store 提供 core.DocumentStore 的各种实现。
//
// 注意：此包只包含实现，接口定义在 core 包。
//
//	var s core.DocumentStore = store.NewMemoryStore()
//	s = store.NewBreaker(s, store.BreakerConfig{})
package store

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/rushteam/eventrec/core"
)

// 保持与 core 一致的错误，方便实现内部直接返回。
var (
	ErrNotFound     = core.ErrStoreNotFound
	ErrNotSupported = core.ErrStoreNotSupported
)

// encodeDocument 将文档字段编码为 JSON（redis / badger 使用）。
func encodeDocument(data map[string]any) ([]byte, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return b, nil
}

// decodeDocument 解码 JSON 文档字段。
func decodeDocument(id string, raw []byte) (core.Document, error) {
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return core.Document{}, fmt.Errorf("decode document %s: %w", id, err)
	}
	return core.Document{ID: id, Data: data}, nil
}

func limitReached(q core.Query, n int) bool {
	return q.Limit > 0 && n >= q.Limit
}
