package ignorance

import (
	"errors"
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dragonslaya84/IgnoranceNG/config"
	"github.com/dragonslaya84/IgnoranceNG/internal/core/transport/mem"
	"github.com/dragonslaya84/IgnoranceNG/pkg/interfaces"
	"github.com/dragonslaya84/IgnoranceNG/pkg/types"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	// config 统一配置，选项直接修改它
	config *config.Config

	// provider 自定义传输提供者
	provider interfaces.Provider

	// network 内存传输使用的网络
	network *mem.Network

	// registry 指标注册表
	registry *prometheus.Registry

	// clock 分发循环与超时看门狗使用的时钟
	clock clock.Clock

	// userFxOptions 用户自定义 Fx 选项
	userFxOptions []fx.Option
}

// newOptions 创建默认选项
func newOptions() *options {
	return &options{
		config: config.NewConfig(),
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              配置
// ════════════════════════════════════════════════════════════════════════════

// WithConfig 使用完整配置替换默认配置
//
// 配置会被复制，之后的选项在副本上生效。
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return errors.New("config is nil")
		}
		o.config = config.CloneConfig(cfg)
		return nil
	}
}

// WithBindAddress 绑定到指定地址（IP 字面量或主机名），关闭 BindAll
func WithBindAddress(addr string) Option {
	return func(o *options) error {
		if addr == "" {
			return errors.New("bind address is empty")
		}
		o.config.Server = o.config.Server.WithBindAddress(addr)
		return nil
	}
}

// WithPort 设置监听端口
func WithPort(port int) Option {
	return func(o *options) error {
		if port < 0 || port > 65535 {
			return fmt.Errorf("invalid port %d", port)
		}
		o.config.Server = o.config.Server.WithPort(port)
		return nil
	}
}

// WithBindAll 是否绑定所有网络接口
func WithBindAll(enabled bool) Option {
	return func(o *options) error {
		o.config.Server = o.config.Server.WithBindAll(enabled)
		return nil
	}
}

// WithChannels 设置通道策略，下标即通道 ID
func WithChannels(channels ...types.ChannelType) Option {
	return func(o *options) error {
		if len(channels) == 0 {
			return errors.New("at least one channel is required")
		}
		o.config.Channels = o.config.Channels.WithTypes(channels...)
		return nil
	}
}

// WithMaxPeers 启用自定义对端上限
func WithMaxPeers(n int) Option {
	return func(o *options) error {
		if n <= 0 || n > types.MaxPeers {
			return fmt.Errorf("max peers must be between 1 and %d", types.MaxPeers)
		}
		o.config.Server = o.config.Server.WithMaxPeers(n)
		return nil
	}
}

// WithPacketCacheSize 设置工作缓冲区大小（同时是最大数据包大小的下限）
func WithPacketCacheSize(size int) Option {
	return func(o *options) error {
		if size <= 0 {
			return fmt.Errorf("invalid packet cache size %d", size)
		}
		o.config.Packet = o.config.Packet.WithPacketCacheSize(size)
		return nil
	}
}

// WithCustomTimeout 为每个新对端设置超时
//
// 基础超时 baseTicks 毫秒，最大超时 baseTicks*multiplier 毫秒。
func WithCustomTimeout(baseTicks, multiplier uint32) Option {
	return func(o *options) error {
		o.config.Timeout = o.config.Timeout.WithCustomTimeout(baseTicks, multiplier)
		return nil
	}
}

// WithDebug 开关调试诊断
func WithDebug(enabled bool) Option {
	return func(o *options) error {
		o.config.Diagnostics.DebugEnabled = enabled
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              依赖注入
// ════════════════════════════════════════════════════════════════════════════

// WithProvider 使用自定义传输提供者
func WithProvider(p interfaces.Provider) Option {
	return func(o *options) error {
		if p == nil {
			return errors.New("provider is nil")
		}
		o.provider = p
		return nil
	}
}

// WithMemoryNetwork 使用进程内传输，服务器绑定在 network 上
func WithMemoryNetwork(network *mem.Network) Option {
	return func(o *options) error {
		if network == nil {
			return errors.New("network is nil")
		}
		o.network = network
		o.config.Transport = o.config.Transport.WithProvider(config.ProviderMemory)
		return nil
	}
}

// WithMetricsRegistry 将指标注册到 reg
func WithMetricsRegistry(reg *prometheus.Registry) Option {
	return func(o *options) error {
		o.registry = reg
		return nil
	}
}

// WithClock 注入时钟（测试中使用 clock.NewMock）
func WithClock(clk clock.Clock) Option {
	return func(o *options) error {
		o.clock = clk
		return nil
	}
}

// WithFxOptions 追加自定义 Fx 选项
func WithFxOptions(opts ...fx.Option) Option {
	return func(o *options) error {
		o.userFxOptions = append(o.userFxOptions, opts...)
		return nil
	}
}
