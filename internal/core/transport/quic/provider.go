package quic

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dragonslaya84/IgnoranceNG/config"
	"github.com/dragonslaya84/IgnoranceNG/pkg/interfaces"
	"github.com/dragonslaya84/IgnoranceNG/pkg/lib/log"
)

var logger = log.Logger("core/transport/quic")

var _ interfaces.Provider = (*Provider)(nil)

// Config QUIC 提供者配置
type Config struct {
	// MaxIdleTimeout 连接空闲超时
	MaxIdleTimeout time.Duration

	// KeepAlivePeriod KeepAlive 间隔，0 表示关闭
	KeepAlivePeriod time.Duration

	// ALPN 应用层协议标识
	ALPN string

	// EventQueueSize 主机事件队列容量
	EventQueueSize int

	// Clock 对端超时看门狗使用的时钟
	Clock clock.Clock
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return ConfigFromUnified(nil)
}

// ConfigFromUnified 从统一配置创建 QUIC 配置
func ConfigFromUnified(cfg *config.Config) Config {
	tc := config.DefaultTransportConfig()
	if cfg != nil {
		tc = cfg.Transport
	}
	return Config{
		MaxIdleTimeout:  tc.QUIC.MaxIdleTimeout.Duration(),
		KeepAlivePeriod: tc.QUIC.KeepAlivePeriod.Duration(),
		ALPN:            tc.QUIC.ALPN,
		EventQueueSize:  tc.QUIC.EventQueueSize,
	}
}

func (c Config) withDefaults() Config {
	def := config.DefaultTransportConfig().QUIC
	if c.MaxIdleTimeout <= 0 {
		c.MaxIdleTimeout = def.MaxIdleTimeout.Duration()
	}
	if c.ALPN == "" {
		c.ALPN = def.ALPN
	}
	if c.EventQueueSize <= 0 {
		c.EventQueueSize = def.EventQueueSize
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	return c
}

// Provider QUIC 传输提供者
type Provider struct {
	cfg Config
}

// NewProvider 创建 QUIC 提供者
func NewProvider(cfg Config) *Provider {
	return &Provider{cfg: cfg.withDefaults()}
}

// Config 返回生效的配置
func (p *Provider) Config() Config {
	return p.cfg
}

// CreateHost 实现 interfaces.Provider
func (p *Provider) CreateHost(cfg interfaces.HostConfig) (interfaces.Host, error) {
	return newHost(p.cfg, cfg)
}
