// Package metrics 提供推荐服务的 Prometheus 指标。
// nil *Recorder 是合法的空实现，所有方法都可以安全调用。
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder 汇总推荐链路的核心指标。
type Recorder struct {
	namespace string
	registry  prometheus.Registerer

	recommendations  *prometheus.CounterVec
	recommendLatency prometheus.Histogram
	candidates       prometheus.Histogram
	fetchFailures    *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
}

// Option 配置 Recorder。
type Option func(*Recorder)

// WithNamespace 设置指标命名空间，默认 eventrec。
func WithNamespace(namespace string) Option {
	return func(r *Recorder) {
		if namespace != "" {
			r.namespace = namespace
		}
	}
}

// WithRegistry 设置注册表，默认 prometheus.DefaultRegisterer。
func WithRegistry(reg prometheus.Registerer) Option {
	return func(r *Recorder) {
		if reg != nil {
			r.registry = reg
		}
	}
}

// NewRecorder 创建并注册所有指标。
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		namespace: "eventrec",
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(r)
	}

	auto := promauto.With(r.registry)
	r.recommendations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "recommendations_total",
		Help:      "Recommendation calls by result source.",
	}, []string{"source"})
	r.recommendLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      "recommend_duration_seconds",
		Help:      "End-to-end latency of a recommendation call.",
		Buckets:   prometheus.DefBuckets,
	})
	r.candidates = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      "candidates",
		Help:      "Number of candidate events retrieved per call.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 75, 100},
	})
	r.fetchFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "store_fetch_failures_total",
		Help:      "Store fetches that failed and degraded to a default value.",
	}, []string{"op"})
	r.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status code.",
	}, []string{"route", "status"})
	return r
}

// ObserveRecommendation 记录一次推荐调用。
func (r *Recorder) ObserveRecommendation(source string, candidates int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.recommendations.WithLabelValues(source).Inc()
	r.candidates.Observe(float64(candidates))
	r.recommendLatency.Observe(elapsed.Seconds())
}

// IncFetchFailure 记录一次降级的存储读取。
func (r *Recorder) IncFetchFailure(op string) {
	if r == nil {
		return
	}
	r.fetchFailures.WithLabelValues(op).Inc()
}

// IncHTTPRequest 记录一次 HTTP 请求。
func (r *Recorder) IncHTTPRequest(route string, status int) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
