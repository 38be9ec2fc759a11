package config

import (
	"errors"
	"fmt"
	"time"
)

// 传输提供者名称
const (
	// ProviderQUIC 基于 quic-go 的传输
	ProviderQUIC = "quic"

	// ProviderMemory 进程内传输（测试与嵌入）
	ProviderMemory = "memory"
)

// TransportConfig 传输提供者配置
type TransportConfig struct {
	// Provider 传输提供者名称
	Provider string `json:"provider"`

	// QUIC 配置
	QUIC QUICConfig `json:"quic,omitempty"`
}

// QUICConfig QUIC 传输配置
type QUICConfig struct {
	// MaxIdleTimeout 最大空闲超时
	MaxIdleTimeout Duration `json:"max_idle_timeout"`

	// KeepAlivePeriod KeepAlive 周期
	KeepAlivePeriod Duration `json:"keep_alive_period"`

	// ALPN 应用层协议标识
	ALPN string `json:"alpn"`

	// EventQueueSize 主机事件队列容量
	EventQueueSize int `json:"event_queue_size"`
}

// DefaultTransportConfig 返回默认传输配置
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		Provider: ProviderQUIC,
		QUIC: QUICConfig{
			MaxIdleTimeout:  Duration(30 * time.Second), // 空闲超时：30 秒
			KeepAlivePeriod: Duration(5 * time.Second),  // KeepAlive 间隔：5 秒
			ALPN:            "ignorance",
			EventQueueSize:  4096,
		},
	}
}

// Validate 验证传输配置
func (c TransportConfig) Validate() error {
	switch c.Provider {
	case ProviderQUIC:
		if c.QUIC.MaxIdleTimeout <= 0 {
			return errors.New("QUIC max idle timeout must be positive")
		}
		if c.QUIC.KeepAlivePeriod < 0 {
			return errors.New("QUIC keep alive period must not be negative")
		}
		if c.QUIC.ALPN == "" {
			return errors.New("QUIC ALPN is required")
		}
		if c.QUIC.EventQueueSize <= 0 {
			return errors.New("QUIC event queue size must be positive")
		}
	case ProviderMemory:
	default:
		return fmt.Errorf("unknown transport provider %q", c.Provider)
	}
	return nil
}

// WithProvider 设置传输提供者
func (c TransportConfig) WithProvider(name string) TransportConfig {
	c.Provider = name
	return c
}
