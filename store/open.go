package store

import (
	"context"
	"fmt"

	"github.com/rushteam/eventrec/core"
)

// 存储后端名称。
const (
	BackendMemory    = "memory"
	BackendRedis     = "redis"
	BackendFirestore = "firestore"
	BackendBadger    = "badger"
)

// DefaultFirestoreProject 是未配置项目时使用的 Firestore 项目。
const DefaultFirestoreProject = "biso-event"

// Options 描述如何打开一个文档存储。
type Options struct {
	Backend string

	Redis            RedisOptions
	FirestoreProject string
	BadgerPath       string

	// Fixtures 非空时在打开后导入该 YAML 文件（后端必须支持写入）
	Fixtures string

	// Breaker 非 nil 时为存储加熔断
	Breaker *BreakerConfig
}

// Open 按配置打开文档存储，返回的存储由调用方负责 Close。
func Open(ctx context.Context, opts Options) (core.DocumentStore, error) {
	var (
		s   core.DocumentStore
		err error
	)
	switch opts.Backend {
	case BackendMemory, "":
		s = NewMemoryStore()
	case BackendRedis:
		s, err = NewRedisStore(ctx, opts.Redis)
	case BackendFirestore:
		project := opts.FirestoreProject
		if project == "" {
			project = DefaultFirestoreProject
		}
		s, err = NewFirestoreStore(ctx, project)
	case BackendBadger:
		s, err = NewBadgerStore(opts.BadgerPath)
	default:
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeNotSupported,
			fmt.Sprintf("unknown store backend %q", opts.Backend))
	}
	if err != nil {
		return nil, err
	}

	if opts.Fixtures != "" {
		w, ok := s.(core.DocumentWriter)
		if !ok {
			_ = s.Close()
			return nil, fmt.Errorf("store %s does not support fixtures: %w", s.Name(), ErrNotSupported)
		}
		if _, err := LoadFixtures(ctx, w, opts.Fixtures); err != nil {
			_ = s.Close()
			return nil, err
		}
	}

	if opts.Breaker != nil {
		s = NewBreaker(s, *opts.Breaker)
	}
	return s, nil
}
