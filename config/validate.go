package config

import (
	"errors"
	"fmt"
)

// ValidateAll 验证整个配置的有效性
//
// 这是 Config.Validate() 的别名，额外处理 nil。
func ValidateAll(c *Config) error {
	if c == nil {
		return errors.New("config is nil")
	}
	return c.Validate()
}

// ValidateAndFix 验证配置并尝试自动修复常见问题
//
// 可修复的问题：
//   - 未配置通道 -> 使用默认通道
//   - MaxPacketSize 小于 PacketCacheSize -> 提升到 PacketCacheSize
//   - 轮询超时为负 -> 使用默认值
//   - 休眠间隔不为正 -> 使用默认值
func ValidateAndFix(c *Config) (*Config, error) {
	if c == nil {
		return NewConfig(), nil
	}

	if len(c.Channels.Types) == 0 {
		c.Channels = DefaultChannelsConfig()
	}
	if c.Packet.MaxPacketSize < c.Packet.PacketCacheSize {
		c.Packet.MaxPacketSize = c.Packet.PacketCacheSize
	}
	if c.Server.PollTimeoutMs < 0 {
		c.Server.PollTimeoutMs = DefaultServerConfig().PollTimeoutMs
	}
	if c.Server.TickInterval <= 0 {
		c.Server.TickInterval = DefaultServerConfig().TickInterval
	}
	if c.Diagnostics.ReapedPeerMemory <= 0 {
		c.Diagnostics.ReapedPeerMemory = DefaultDiagnosticsConfig().ReapedPeerMemory
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed after fixes: %w", err)
	}
	return c, nil
}

// MustValidate 验证配置，如果失败则 panic
//
// 仅用于初始化阶段或测试代码。
func MustValidate(c *Config) {
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("config validation failed: %v", err))
	}
}
