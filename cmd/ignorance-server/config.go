package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/dragonslaya84/IgnoranceNG/config"
)

// ============================================================================
//                              环境变量
// ============================================================================

// 环境变量名
const (
	envPrefix      = "IGNORANCE_"
	envPort        = "PORT"
	envBind        = "BIND_ADDRESS"
	envMaxPeers    = "MAX_PEERS"
	envDebug       = "DEBUG"
	envMetricsAddr = "METRICS_ADDR"
	envProvider    = "TRANSPORT"
)

// applyEnvOverrides 应用环境变量覆盖配置
//
// 环境变量优先级高于配置文件，但低于命令行参数。
func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv(envPrefix + envPort); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server = cfg.Server.WithPort(p)
		}
	}
	if v := strings.TrimSpace(os.Getenv(envPrefix + envBind)); v != "" {
		cfg.Server = cfg.Server.WithBindAddress(v)
	}
	if v := os.Getenv(envPrefix + envMaxPeers); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server = cfg.Server.WithMaxPeers(n)
		}
	}
	if v := os.Getenv(envPrefix + envDebug); v != "" {
		cfg.Diagnostics.DebugEnabled = parseBool(v)
	}
	if v := os.Getenv(envPrefix + envMetricsAddr); v != "" {
		cfg.Metrics.ListenAddr = v
	}
	if v := os.Getenv(envPrefix + envProvider); v != "" {
		cfg.Transport = cfg.Transport.WithProvider(strings.ToLower(v))
	}
}

// parseBool 解析布尔值字符串
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
