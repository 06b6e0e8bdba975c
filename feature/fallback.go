package feature

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/pkg/logging"
	"github.com/rushteam/eventrec/pkg/metrics"
)

// Degrader 是存储读取的统一降级策略：读取失败时记录日志与指标并返回默认值，
// 不向上传播错误。所有信号读取（候选、画像、统计）都经过 FetchOrDefault。
type Degrader struct {
	Logger  zerolog.Logger
	Metrics *metrics.Recorder
	// Timeout 是单次存储调用的超时，<= 0 表示不额外限制
	Timeout time.Duration
}

// NewDegrader 创建降级策略。
func NewDegrader(logger zerolog.Logger, rec *metrics.Recorder, timeout time.Duration) *Degrader {
	return &Degrader{Logger: logger, Metrics: rec, Timeout: timeout}
}

// FetchOrDefault 执行 fetch；失败（包括超时）时返回 def。
// 文档不存在视为正常的"无数据"，只返回 def，不记录失败。
// level 是失败日志的级别。
func FetchOrDefault[T any](
	ctx context.Context,
	d *Degrader,
	op string,
	level zerolog.Level,
	def T,
	fetch func(ctx context.Context) (T, error),
) T {
	callCtx := ctx
	if d != nil && d.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	v, err := fetch(callCtx)
	if err == nil {
		return v
	}
	if core.IsStoreNotFound(err) {
		return def
	}

	if d != nil {
		d.Metrics.IncFetchFailure(op)
		logger := logging.From(ctx, d.Logger)
		logger.WithLevel(level).Err(err).Str("op", op).Msg("store fetch failed, degrading")
	}
	return def
}
