package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/rushteam/eventrec/core"
)

// BreakerConfig 是熔断配置，零值字段使用默认值。
type BreakerConfig struct {
	// FailureThreshold 连续失败多少次后打开熔断，默认 5
	FailureThreshold uint32
	// OpenTimeout 熔断打开后多久进入半开状态，默认 10s
	OpenTimeout time.Duration
	// MaxHalfOpen 半开状态允许通过的请求数，默认 1
	MaxHalfOpen uint32
	// OnStateChange 状态变化回调（可选，用于日志）
	OnStateChange func(name string, from, to gobreaker.State)
}

// Breaker 为任意 DocumentStore 加熔断。
// 熔断打开时所有调用立即返回 core.ErrStoreUnavailable，
// 上层按普通读取失败处理（降级，不传播）。
// 文档不存在不计为失败。
type Breaker struct {
	next core.DocumentStore
	cb   *gobreaker.CircuitBreaker[any]
}

func NewBreaker(next core.DocumentStore, cfg BreakerConfig) *Breaker {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	timeout := cfg.OpenTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxHalfOpen := cfg.MaxHalfOpen
	if maxHalfOpen == 0 {
		maxHalfOpen = 1
	}
	settings := gobreaker.Settings{
		Name:        next.Name(),
		MaxRequests: maxHalfOpen,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || core.IsStoreNotFound(err)
		},
		OnStateChange: cfg.OnStateChange,
	}
	return &Breaker{next: next, cb: gobreaker.NewCircuitBreaker[any](settings)}
}

func (b *Breaker) Name() string { return b.next.Name() }

// State 返回当前熔断状态（closed / half-open / open）。
func (b *Breaker) State() string { return b.cb.State().String() }

func (b *Breaker) Query(ctx context.Context, collection string, q core.Query) ([]core.Document, error) {
	res, err := b.cb.Execute(func() (any, error) {
		return b.next.Query(ctx, collection, q)
	})
	if err != nil {
		return nil, b.wrap(err)
	}
	docs, _ := res.([]core.Document)
	return docs, nil
}

func (b *Breaker) Get(ctx context.Context, collection, id string) (core.Document, error) {
	res, err := b.cb.Execute(func() (any, error) {
		return b.next.Get(ctx, collection, id)
	})
	if err != nil {
		return core.Document{}, b.wrap(err)
	}
	doc, _ := res.(core.Document)
	return doc, nil
}

func (b *Breaker) Close() error {
	return b.next.Close()
}

func (b *Breaker) wrap(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %s breaker %v", core.ErrStoreUnavailable, b.next.Name(), err)
	}
	return err
}

var _ core.DocumentStore = (*Breaker)(nil)
