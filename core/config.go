package core

import "time"

// RecommendConfig 是推荐相关的配置接口，用于提供默认值。
type RecommendConfig interface {
	// DefaultMaxCandidates 返回候选池上限（与调用方的 limit 无关）
	DefaultMaxCandidates() int

	// DefaultMaxAnalytics 返回单次最多查询统计数据的活动数
	DefaultMaxAnalytics() int

	// DefaultLimit 返回默认返回条数
	DefaultLimit() int

	// DefaultMaxLimit 返回允许的最大返回条数
	DefaultMaxLimit() int

	// DefaultTimeout 返回单次存储调用的超时时间
	DefaultTimeout() time.Duration
}

// DefaultRecommendConfig 是默认的推荐配置实现。
type DefaultRecommendConfig struct{}

func (c *DefaultRecommendConfig) DefaultMaxCandidates() int {
	return 100
}

func (c *DefaultRecommendConfig) DefaultMaxAnalytics() int {
	return 50
}

func (c *DefaultRecommendConfig) DefaultLimit() int {
	return 10
}

func (c *DefaultRecommendConfig) DefaultMaxLimit() int {
	return 50
}

func (c *DefaultRecommendConfig) DefaultTimeout() time.Duration {
	return 2 * time.Second
}
