// Package server 是推荐服务的 HTTP 接口。
//
//	GET /recommendations?user_id=u1&limit=10
//	GET /healthz
//	GET /metrics
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/pkg/logging"
	"github.com/rushteam/eventrec/pkg/metrics"
	"github.com/rushteam/eventrec/recommend"
)

// Recommender 是 HTTP 层依赖的推荐接口，由 recommend.Engine 实现。
type Recommender interface {
	Recommend(ctx context.Context, userID string, limit int) (*recommend.Result, error)
}

var _ Recommender = (*recommend.Engine)(nil)

// Options 配置 HTTP 服务。
type Options struct {
	// RateLimitPerMinute 每个客户端 IP 每分钟的 /recommendations 请求上限，0 表示不限流
	RateLimitPerMinute int
	// RequestTimeout 单个请求 context 的超时，0 表示不限制
	RequestTimeout time.Duration
	// DefaultLimit / MaxLimit 是 limit 参数的默认值与上限，默认 10 / 50
	DefaultLimit int
	MaxLimit     int

	Logger   zerolog.Logger
	Metrics  *metrics.Recorder
	Gatherer prometheus.Gatherer

	// Health 就绪检查（可选），返回错误时 /healthz 响应 503
	Health func(ctx context.Context) error
}

// Server 持有路由与处理器依赖。
type Server struct {
	rec      Recommender
	opts     Options
	validate *validator.Validate
	router   chi.Router
}

// New 创建 HTTP 服务。
func New(rec Recommender, opts Options) *Server {
	def := &core.DefaultRecommendConfig{}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = def.DefaultLimit()
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = def.DefaultMaxLimit()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	s := &Server{
		rec:      rec,
		opts:     opts,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	s.router = s.routes()
	return s
}

// ServeHTTP 实现 http.Handler。
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestContext)
	r.Use(s.accessLog)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		if s.opts.RateLimitPerMinute > 0 {
			r.Use(httprate.LimitByIP(s.opts.RateLimitPerMinute, time.Minute))
		}
		if s.opts.RequestTimeout > 0 {
			r.Use(s.requestDeadline)
		}
		r.Get("/recommendations", s.handleRecommendations)
	})
	return r
}

// requestDeadline 只给请求 context 设置截止时间，不改写响应。
// 存储调用超时后引擎降级并照常返回 200。
func (s *Server) requestDeadline(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), s.opts.RequestTimeout)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestContext 把 chi 生成的请求 ID 写入日志 context 与响应头。
func (s *Server) requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chimiddleware.GetReqID(r.Context())
		if id == "" {
			id = logging.NewRequestID()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(logging.ContextWithRequestID(r.Context(), id)))
	})
}

// accessLog 记录访问日志与 http_requests_total 指标。
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			s.opts.Metrics.IncHTTPRequest(route, status)

			logger := logging.From(r.Context(), s.opts.Logger)
			logger.Info().
				Str("method", r.Method).
				Str("route", route).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", time.Since(start)).
				Msg("http request")
		}()
		next.ServeHTTP(ww, r)
	})
}
