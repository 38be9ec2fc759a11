package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dragonslaya84/IgnoranceNG/config"
)

// Config 指标配置
type Config struct {
	// Enabled 是否启用指标收集
	Enabled bool

	// Namespace 指标命名空间
	Namespace string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	d := config.DefaultMetricsConfig()
	return Config{
		Enabled:   d.Enabled,
		Namespace: d.Namespace,
	}
}

// ConfigFromUnified 从统一配置创建指标配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		Enabled:   cfg.Metrics.Enabled,
		Namespace: cfg.Metrics.Namespace,
	}
}

// Params Metrics 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config       `optional:"true"`
	Registry   *prometheus.Registry `optional:"true"`
}

// Module 是 metrics 的 Fx 模块
var Module = fx.Module("metrics",
	fx.Provide(NewReporterFromParams),
)

// NewReporterFromParams 从参数创建 Reporter
//
// 未提供 Registry 时为每个实例创建独立的 Registry，
// 避免多个服务器实例（如测试中）重复注册。
func NewReporterFromParams(p Params) Reporter {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	if !cfg.Enabled {
		return Nop{}
	}
	reg := p.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	return NewPrometheus(cfg.Namespace, reg)
}
