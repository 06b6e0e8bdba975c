package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rushteam/eventrec/core"
)

// redisScanBatch 是 Query 每轮从 id 索引读取的数量。
const redisScanBatch = 100

// RedisStore 是 Redis 实现的文档存储。
//
// 数据布局：
//   - 文档：{prefix}{collection}:{id} → JSON
//   - 索引：{prefix}{collection}:__ids 有序集合，score 为写入序号
//   - 序号：{prefix}{collection}:__seq
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisOptions 是 RedisStore 的连接配置。
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return &RedisStore{client: client, prefix: opts.Prefix}, nil
}

func (r *RedisStore) Name() string { return "redis" }

func (r *RedisStore) docKey(collection, id string) string {
	return r.prefix + collection + ":" + id
}

func (r *RedisStore) indexKey(collection string) string {
	return r.prefix + collection + ":__ids"
}

func (r *RedisStore) seqKey(collection string) string {
	return r.prefix + collection + ":__seq"
}

func (r *RedisStore) Query(ctx context.Context, collection string, q core.Query) ([]core.Document, error) {
	var out []core.Document
	for start := int64(0); ; start += redisScanBatch {
		ids, err := r.client.ZRange(ctx, r.indexKey(collection), start, start+redisScanBatch-1).Result()
		if err != nil {
			return nil, fmt.Errorf("redis zrange %s: %w", collection, err)
		}
		if len(ids) == 0 {
			return out, nil
		}

		keys := make([]string, len(ids))
		for i, id := range ids {
			keys[i] = r.docKey(collection, id)
		}
		vals, err := r.client.MGet(ctx, keys...).Result()
		if err != nil {
			return nil, fmt.Errorf("redis mget %s: %w", collection, err)
		}
		for i, v := range vals {
			s, ok := v.(string)
			if !ok {
				continue
			}
			doc, err := decodeDocument(ids[i], []byte(s))
			if err != nil {
				return nil, err
			}
			if !q.Matches(doc) {
				continue
			}
			out = append(out, doc)
			if limitReached(q, len(out)) {
				return out, nil
			}
		}
		if len(ids) < redisScanBatch {
			return out, nil
		}
	}
}

func (r *RedisStore) Get(ctx context.Context, collection, id string) (core.Document, error) {
	raw, err := r.client.Get(ctx, r.docKey(collection, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return core.Document{}, core.ErrStoreNotFound
	}
	if err != nil {
		return core.Document{}, fmt.Errorf("redis get %s/%s: %w", collection, id, err)
	}
	return decodeDocument(id, raw)
}

// Put 写入文档并维护 id 索引；已存在的 id 保留原有顺序。
func (r *RedisStore) Put(ctx context.Context, collection string, doc core.Document) error {
	raw, err := encodeDocument(doc.Data)
	if err != nil {
		return err
	}
	seq, err := r.client.Incr(ctx, r.seqKey(collection)).Result()
	if err != nil {
		return fmt.Errorf("redis incr %s: %w", collection, err)
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.docKey(collection, doc.ID), raw, 0)
		pipe.ZAddNX(ctx, r.indexKey(collection), redis.Z{Score: float64(seq), Member: doc.ID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis put %s/%s: %w", collection, doc.ID, err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

// 确保 RedisStore 实现了 core.DocumentStore 和 core.DocumentWriter 接口
var (
	_ core.DocumentStore  = (*RedisStore)(nil)
	_ core.DocumentWriter = (*RedisStore)(nil)
)
