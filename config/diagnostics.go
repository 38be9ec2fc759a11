package config

import "errors"

// DiagnosticsConfig 诊断配置
type DiagnosticsConfig struct {
	// DebugEnabled 启用调试日志
	// 关闭时，逐事件的告警（超大包、未知对端等）只计入指标
	DebugEnabled bool `json:"debug_enabled"`

	// ReapedPeerMemory 记住最近移除的对端数量
	// 用于区分重复的断开事件与从未见过的对端
	ReapedPeerMemory int `json:"reaped_peer_memory"`
}

// DefaultDiagnosticsConfig 返回默认诊断配置
func DefaultDiagnosticsConfig() DiagnosticsConfig {
	return DiagnosticsConfig{
		DebugEnabled:     false,
		ReapedPeerMemory: 256,
	}
}

// Validate 验证诊断配置
func (c DiagnosticsConfig) Validate() error {
	if c.ReapedPeerMemory <= 0 {
		return errors.New("reaped peer memory must be positive")
	}
	return nil
}
