package transport

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dragonslaya84/IgnoranceNG/config"
	"github.com/dragonslaya84/IgnoranceNG/internal/core/transport/mem"
	"github.com/dragonslaya84/IgnoranceNG/internal/core/transport/quic"
	"github.com/dragonslaya84/IgnoranceNG/pkg/interfaces"
	"github.com/dragonslaya84/IgnoranceNG/pkg/lib/log"
)

var logger = log.Logger("core/transport")

// Config 传输选择配置
type Config struct {
	// Provider 提供者名称
	Provider string

	// QUIC 配置
	QUIC quic.Config
}

// NewConfig 创建默认配置
func NewConfig() Config {
	return ConfigFromUnified(nil)
}

// ConfigFromUnified 从统一配置创建传输配置
func ConfigFromUnified(cfg *config.Config) Config {
	provider := config.DefaultTransportConfig().Provider
	if cfg != nil {
		provider = cfg.Transport.Provider
	}
	return Config{
		Provider: provider,
		QUIC:     quic.ConfigFromUnified(cfg),
	}
}

// ProviderParams 提供者构造依赖
type ProviderParams struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`

	// Network 内存提供者使用的网络，未提供时新建
	Network *mem.Network `optional:"true"`

	// Clock QUIC 超时看门狗使用的时钟
	Clock clock.Clock `optional:"true"`
}

// NewProvider 按配置创建传输提供者
func NewProvider(cfg Config, network *mem.Network, clk clock.Clock) (interfaces.Provider, error) {
	switch cfg.Provider {
	case config.ProviderQUIC:
		qcfg := cfg.QUIC
		if clk != nil {
			qcfg.Clock = clk
		}
		logger.Debug("使用 QUIC 传输", "alpn", qcfg.ALPN, "idleTimeout", qcfg.MaxIdleTimeout)
		return quic.NewProvider(qcfg), nil
	case config.ProviderMemory:
		logger.Debug("使用内存传输")
		return mem.NewProvider(network), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

// ProvideProvider 从 Fx 依赖提供传输提供者
func ProvideProvider(p ProviderParams) (interfaces.Provider, error) {
	return NewProvider(ConfigFromUnified(p.UnifiedCfg), p.Network, p.Clock)
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("transport",
		fx.Provide(ProvideProvider),
	)
}
