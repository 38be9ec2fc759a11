package config

import "errors"

// RateLimitConfig 单对端接收限速配置
//
// 启用后每个连接拥有独立的令牌桶，超出速率的数据包被丢弃。
type RateLimitConfig struct {
	// Enabled 是否启用
	Enabled bool `json:"enabled"`

	// PacketsPerSecond 每秒允许的数据包数
	PacketsPerSecond float64 `json:"packets_per_second"`

	// Burst 突发容量
	Burst int `json:"burst"`
}

// DefaultRateLimitConfig 返回默认限速配置（不限速）
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:          false,
		PacketsPerSecond: 1000,
		Burst:            200,
	}
}

// Validate 验证限速配置
func (c RateLimitConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.PacketsPerSecond <= 0 {
		return errors.New("rate limit packets per second must be positive")
	}
	if c.Burst <= 0 {
		return errors.New("rate limit burst must be positive")
	}
	return nil
}
