package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/rushteam/eventrec/core"
)

// BadgerStore 是基于 Badger 的嵌入式文档存储，适合单机部署或离线快照。
// key 为 {collection}/{id}，value 为 JSON；Query 按 id 字典序扫描前缀。
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore 打开 path 下的数据库；path 为空时使用纯内存模式。
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger %q: %w", path, err)
	}
	return &BadgerStore{db: db}, nil
}

func (b *BadgerStore) Name() string { return "badger" }

func badgerKey(collection, id string) []byte {
	return []byte(collection + "/" + id)
}

func (b *BadgerStore) Query(ctx context.Context, collection string, q core.Query) ([]core.Document, error) {
	prefix := []byte(collection + "/")
	var out []core.Document
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			id := string(item.Key()[len(prefix):])
			raw, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			doc, err := decodeDocument(id, raw)
			if err != nil {
				return err
			}
			if !q.Matches(doc) {
				continue
			}
			out = append(out, doc)
			if limitReached(q, len(out)) {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("badger query %s: %w", collection, err)
	}
	return out, nil
}

func (b *BadgerStore) Get(ctx context.Context, collection, id string) (core.Document, error) {
	if err := ctx.Err(); err != nil {
		return core.Document{}, err
	}
	var raw []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(collection, id))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return core.Document{}, core.ErrStoreNotFound
	}
	if err != nil {
		return core.Document{}, fmt.Errorf("badger get %s/%s: %w", collection, id, err)
	}
	return decodeDocument(id, raw)
}

func (b *BadgerStore) Put(_ context.Context, collection string, doc core.Document) error {
	raw, err := encodeDocument(doc.Data)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(collection, doc.ID), raw)
	})
}

func (b *BadgerStore) Close() error {
	return b.db.Close()
}

var (
	_ core.DocumentStore  = (*BadgerStore)(nil)
	_ core.DocumentWriter = (*BadgerStore)(nil)
)
