package config

import (
	"errors"
	"math"
)

// TimeoutConfig 对端超时配置
//
// 启用后，每个新连接的对端句柄都会设置：
// 基础超时 BaseTicks 毫秒，最大超时 BaseTicks*Multiplier 毫秒。
type TimeoutConfig struct {
	// CustomTimeoutLimit 是否启用自定义超时
	CustomTimeoutLimit bool `json:"custom_timeout_limit"`

	// BaseTicks 基础超时（毫秒）
	BaseTicks uint32 `json:"base_ticks"`

	// Multiplier 最大超时倍数
	Multiplier uint32 `json:"multiplier"`
}

// DefaultTimeoutConfig 返回默认超时配置
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		CustomTimeoutLimit: false,
		BaseTicks:          5000, // 5 秒
		Multiplier:         3,    // 最长 15 秒
	}
}

// Validate 验证超时配置
func (c TimeoutConfig) Validate() error {
	if !c.CustomTimeoutLimit {
		return nil
	}
	if c.BaseTicks == 0 {
		return errors.New("timeout base ticks must be positive when custom timeout is enabled")
	}
	if c.Multiplier == 0 {
		return errors.New("timeout multiplier must be positive when custom timeout is enabled")
	}
	if c.BaseTicks > math.MaxUint32/c.Multiplier {
		return errors.New("timeout base ticks * multiplier overflows uint32")
	}
	return nil
}

// MaxTicks 返回最大超时（毫秒）
func (c TimeoutConfig) MaxTicks() uint32 {
	return c.BaseTicks * c.Multiplier
}

// WithCustomTimeout 启用自定义超时
func (c TimeoutConfig) WithCustomTimeout(baseTicks, multiplier uint32) TimeoutConfig {
	c.CustomTimeoutLimit = true
	c.BaseTicks = baseTicks
	c.Multiplier = multiplier
	return c
}
