// Package config 提供统一的配置管理
//
// 本包采用混合配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义
//   - 支持从 JSON 加载和保存配置
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Server.Port = 7777
//	cfg.Server.BindAll = false
//	cfg.Server.BindAddress = "127.0.0.1"
//
//	// 从 JSON 加载
//	cfg, err := config.FromJSON(data)
package config

// Config 是 IgnoranceNG 服务器的完整配置结构
//
// 配置按照功能模块组织：
//   - Server: 绑定地址、端口、对端上限、轮询参数
//   - Channels: 通道可靠性策略
//   - Timeout: 自定义对端超时
//   - Packet: 数据包缓冲与入站队列
//   - RateLimit: 单对端接收限速
//   - Diagnostics: 调试与诊断
//   - Metrics: 指标收集
//   - Transport: 传输提供者选择及其参数
type Config struct {
	// Server 服务器配置
	Server ServerConfig `json:"server"`

	// Channels 通道配置
	Channels ChannelsConfig `json:"channels"`

	// Timeout 对端超时配置
	Timeout TimeoutConfig `json:"timeout"`

	// Packet 数据包配置
	Packet PacketConfig `json:"packet"`

	// RateLimit 接收限速配置
	RateLimit RateLimitConfig `json:"rate_limit"`

	// Diagnostics 诊断配置
	Diagnostics DiagnosticsConfig `json:"diagnostics"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics"`

	// Transport 传输提供者配置
	Transport TransportConfig `json:"transport"`
}

// NewConfig 创建默认配置
//
// 返回的配置使用所有组件的默认值，适用于大多数场景。
func NewConfig() *Config {
	return &Config{
		Server:      DefaultServerConfig(),
		Channels:    DefaultChannelsConfig(),
		Timeout:     DefaultTimeoutConfig(),
		Packet:      DefaultPacketConfig(),
		RateLimit:   DefaultRateLimitConfig(),
		Diagnostics: DefaultDiagnosticsConfig(),
		Metrics:     DefaultMetricsConfig(),
		Transport:   DefaultTransportConfig(),
	}
}

// Validate 验证配置的有效性
//
// 检查所有子配置是否有效，如果发现无效配置则返回错误。
// 建议在使用配置前调用此方法。
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Channels.Validate(); err != nil {
		return err
	}
	if err := c.Timeout.Validate(); err != nil {
		return err
	}
	if err := c.Packet.Validate(); err != nil {
		return err
	}
	if err := c.RateLimit.Validate(); err != nil {
		return err
	}
	if err := c.Diagnostics.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	if err := c.Transport.Validate(); err != nil {
		return err
	}
	return nil
}
