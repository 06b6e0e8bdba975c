// Package config 加载 eventrec 服务配置。
//
// 配置按以下顺序叠加（后者覆盖前者）：
//  1. 内置默认值（Default）
//  2. YAML 配置文件（EVENTREC_CONFIG 指定时）
//  3. 环境变量（EVENTREC_ 前缀，"__" 表示层级，例如 EVENTREC_STORE__BACKEND=redis）
package config

import (
	"time"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/model"
	"github.com/rushteam/eventrec/pkg/logging"
	"github.com/rushteam/eventrec/recommend"
	"github.com/rushteam/eventrec/server"
	"github.com/rushteam/eventrec/store"
)

// Config 是服务的完整配置。
type Config struct {
	HTTP      HTTPConfig      `koanf:"http"`
	Log       LogConfig       `koanf:"log"`
	Store     StoreConfig     `koanf:"store"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// HTTPConfig 是 HTTP 服务配置。
type HTTPConfig struct {
	Addr string `koanf:"addr" validate:"required"`
	// RateLimitPerMinute 每个客户端 IP 每分钟的请求上限，0 表示不限流
	RateLimitPerMinute int           `koanf:"rate_limit_per_minute" validate:"gte=0"`
	RequestTimeout     time.Duration `koanf:"request_timeout" validate:"gte=0"`
	ShutdownTimeout    time.Duration `koanf:"shutdown_timeout" validate:"gte=0"`
}

// LogConfig 是日志配置。
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// StoreConfig 是文档存储配置。
type StoreConfig struct {
	Backend   string          `koanf:"backend" validate:"oneof=memory redis firestore badger"`
	Timeout   time.Duration   `koanf:"timeout" validate:"gte=0"`
	Fixtures  string          `koanf:"fixtures"`
	Redis     RedisConfig     `koanf:"redis"`
	Firestore FirestoreConfig `koanf:"firestore"`
	Badger    BadgerConfig    `koanf:"badger"`
	Breaker   BreakerConfig   `koanf:"breaker"`
}

type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"gte=0"`
	Prefix   string `koanf:"prefix"`
}

type FirestoreConfig struct {
	Project string `koanf:"project"`
}

type BadgerConfig struct {
	// Path 为空时使用内存模式
	Path string `koanf:"path"`
}

type BreakerConfig struct {
	Enabled          bool          `koanf:"enabled"`
	FailureThreshold uint32        `koanf:"failure_threshold"`
	OpenTimeout      time.Duration `koanf:"open_timeout" validate:"gte=0"`
	MaxHalfOpen      uint32        `koanf:"max_half_open"`
}

// RecommendConfig 是推荐引擎配置。
type RecommendConfig struct {
	MaxCandidates    int            `koanf:"max_candidates" validate:"min=1,max=1000"`
	MaxAnalytics     int            `koanf:"max_analytics" validate:"min=1,max=500"`
	DefaultLimit     int            `koanf:"default_limit" validate:"min=1,ltefield=MaxLimit"`
	MaxLimit         int            `koanf:"max_limit" validate:"min=1"`
	ConcurrentFetch  bool           `koanf:"concurrent_fetch"`
	FetchConcurrency int            `koanf:"fetch_concurrency" validate:"min=1,max=64"`
	BlockedEventIDs  []string       `koanf:"blocked_event_ids"`
	Expression       string         `koanf:"expression"`
	Trending         TrendingConfig `koanf:"trending"`
}

// TrendingConfig 是趋势分数的权重。
type TrendingConfig struct {
	Views          float64 `koanf:"views" validate:"gte=0"`
	Favorites      float64 `koanf:"favorites" validate:"gte=0"`
	Shares         float64 `koanf:"shares" validate:"gte=0"`
	ConversionRate float64 `koanf:"conversion_rate" validate:"gte=0"`
}

// Default 返回默认配置。
func Default() Config {
	rc := &core.DefaultRecommendConfig{}
	w := model.DefaultTrendingWeights()
	return Config{
		HTTP: HTTPConfig{
			Addr:               ":8080",
			RateLimitPerMinute: 120,
			RequestTimeout:     10 * time.Second,
			ShutdownTimeout:    15 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Store: StoreConfig{
			Backend:   store.BackendMemory,
			Timeout:   rc.DefaultTimeout(),
			Redis:     RedisConfig{Addr: "localhost:6379", Prefix: "eventrec:"},
			Firestore: FirestoreConfig{Project: store.DefaultFirestoreProject},
			Breaker: BreakerConfig{
				Enabled:          true,
				FailureThreshold: 5,
				OpenTimeout:      10 * time.Second,
				MaxHalfOpen:      1,
			},
		},
		Recommend: RecommendConfig{
			MaxCandidates:    rc.DefaultMaxCandidates(),
			MaxAnalytics:     rc.DefaultMaxAnalytics(),
			DefaultLimit:     rc.DefaultLimit(),
			MaxLimit:         rc.DefaultMaxLimit(),
			ConcurrentFetch:  true,
			FetchConcurrency: 8,
			Trending: TrendingConfig{
				Views:          w.Views,
				Favorites:      w.Favorites,
				Shares:         w.Shares,
				ConversionRate: w.ConversionRate,
			},
		},
	}
}

// LoggingConfig 转换为 logging.Config。
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{Level: c.Log.Level, Format: c.Log.Format}
}

// StoreOptions 转换为 store.Options。
func (c *Config) StoreOptions() store.Options {
	opts := store.Options{
		Backend: c.Store.Backend,
		Redis: store.RedisOptions{
			Addr:     c.Store.Redis.Addr,
			Password: c.Store.Redis.Password,
			DB:       c.Store.Redis.DB,
			Prefix:   c.Store.Redis.Prefix,
		},
		FirestoreProject: c.Store.Firestore.Project,
		BadgerPath:       c.Store.Badger.Path,
		Fixtures:         c.Store.Fixtures,
	}
	if c.Store.Breaker.Enabled {
		opts.Breaker = &store.BreakerConfig{
			FailureThreshold: c.Store.Breaker.FailureThreshold,
			OpenTimeout:      c.Store.Breaker.OpenTimeout,
			MaxHalfOpen:      c.Store.Breaker.MaxHalfOpen,
		}
	}
	return opts
}

// RecommendOptions 转换为 recommend.Options；Logger、Metrics 由调用方设置。
func (c *Config) RecommendOptions() recommend.Options {
	opts := recommend.DefaultOptions()
	opts.MaxCandidates = c.Recommend.MaxCandidates
	opts.MaxAnalytics = c.Recommend.MaxAnalytics
	opts.DefaultLimit = c.Recommend.DefaultLimit
	opts.MaxLimit = c.Recommend.MaxLimit
	opts.StoreTimeout = c.Store.Timeout
	opts.ConcurrentFetch = c.Recommend.ConcurrentFetch
	opts.FetchConcurrency = c.Recommend.FetchConcurrency
	opts.BlockedEventIDs = c.Recommend.BlockedEventIDs
	opts.Expression = c.Recommend.Expression
	opts.TrendingWeights = &model.TrendingWeights{
		Views:          c.Recommend.Trending.Views,
		Favorites:      c.Recommend.Trending.Favorites,
		Shares:         c.Recommend.Trending.Shares,
		ConversionRate: c.Recommend.Trending.ConversionRate,
	}
	return opts
}

// ServerOptions 转换为 server.Options；Logger、Metrics、Health 由调用方设置。
func (c *Config) ServerOptions() server.Options {
	return server.Options{
		RateLimitPerMinute: c.HTTP.RateLimitPerMinute,
		RequestTimeout:     c.HTTP.RequestTimeout,
		DefaultLimit:       c.Recommend.DefaultLimit,
		MaxLimit:           c.Recommend.MaxLimit,
	}
}
