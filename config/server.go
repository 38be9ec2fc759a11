package config

import (
	"errors"
	"time"

	"github.com/dragonslaya84/IgnoranceNG/pkg/types"
)

// ServerConfig 服务器绑定与轮询配置
type ServerConfig struct {
	// BindAll 是否绑定所有网络接口
	BindAll bool `json:"bind_all"`

	// BindAddress 绑定地址（BindAll 为 false 时生效）
	// 可以是 IP 字面量或主机名
	BindAddress string `json:"bind_address"`

	// Port 监听端口
	Port int `json:"port"`

	// MaxPeers 自定义最大对端数量（CustomMaxPeerLimit 为 true 时生效）
	MaxPeers int `json:"max_peers"`

	// CustomMaxPeerLimit 是否使用自定义对端上限
	CustomMaxPeerLimit bool `json:"custom_max_peer_limit"`

	// PollTimeoutMs 阻塞轮询超时（毫秒）
	PollTimeoutMs int `json:"poll_timeout_ms"`

	// TickInterval 每次排空事件后的让出间隔
	TickInterval Duration `json:"tick_interval"`
}

// DefaultServerConfig 返回默认服务器配置
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		BindAll:            true,
		BindAddress:        "127.0.0.1",
		Port:               7777,
		MaxPeers:           100,
		CustomMaxPeerLimit: false,
		PollTimeoutMs:      1,
		TickInterval:       Duration(time.Millisecond),
	}
}

// Validate 验证服务器配置
func (c ServerConfig) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return errors.New("port must be between 0 and 65535")
	}
	if !c.BindAll && c.BindAddress == "" {
		return errors.New("bind address is required when bind_all is disabled")
	}
	if c.CustomMaxPeerLimit && (c.MaxPeers <= 0 || c.MaxPeers > types.MaxPeers) {
		return errors.New("max peers must be between 1 and 4095")
	}
	if c.PollTimeoutMs < 0 {
		return errors.New("poll timeout must not be negative")
	}
	if c.TickInterval <= 0 {
		return errors.New("tick interval must be positive")
	}
	return nil
}

// PeerLimit 返回生效的对端上限
func (c ServerConfig) PeerLimit() int {
	if c.CustomMaxPeerLimit {
		return c.MaxPeers
	}
	return types.MaxPeers
}

// PollTimeout 返回阻塞轮询超时
func (c ServerConfig) PollTimeout() time.Duration {
	return time.Duration(c.PollTimeoutMs) * time.Millisecond
}

// WithPort 设置端口
func (c ServerConfig) WithPort(port int) ServerConfig {
	c.Port = port
	return c
}

// WithBindAddress 设置绑定地址并关闭 BindAll
func (c ServerConfig) WithBindAddress(addr string) ServerConfig {
	c.BindAll = false
	c.BindAddress = addr
	return c
}

// WithBindAll 设置是否绑定所有接口
func (c ServerConfig) WithBindAll(enabled bool) ServerConfig {
	c.BindAll = enabled
	return c
}

// WithMaxPeers 启用自定义对端上限
func (c ServerConfig) WithMaxPeers(n int) ServerConfig {
	c.CustomMaxPeerLimit = true
	c.MaxPeers = n
	return c
}
