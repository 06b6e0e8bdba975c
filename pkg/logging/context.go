package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// NewRequestID 生成新的请求 ID。
func NewRequestID() string {
	return uuid.NewString()
}

// ContextWithRequestID 将请求 ID 写入 context。
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext 读取请求 ID，不存在时返回空字符串。
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// Ctx 返回带有 request_id 字段的全局 logger。
func Ctx(ctx context.Context) *zerolog.Logger {
	l := From(ctx, Logger())
	return &l
}

// From 在 base 上附加 context 中的 request_id。
func From(ctx context.Context, base zerolog.Logger) zerolog.Logger {
	if id := RequestIDFromContext(ctx); id != "" {
		return base.With().Str("request_id", id).Logger()
	}
	return base
}
