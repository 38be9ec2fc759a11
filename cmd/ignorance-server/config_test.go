package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dragonslaya84/IgnoranceNG/config"
)

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("IGNORANCE_PORT", "9999")
	t.Setenv("IGNORANCE_BIND_ADDRESS", "10.0.0.1")
	t.Setenv("IGNORANCE_MAX_PEERS", "32")
	t.Setenv("IGNORANCE_DEBUG", "yes")
	t.Setenv("IGNORANCE_METRICS_ADDR", ":9100")
	t.Setenv("IGNORANCE_TRANSPORT", "MEMORY")

	cfg := config.NewConfig()
	applyEnvOverrides(cfg)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.False(t, cfg.Server.BindAll)
	assert.Equal(t, "10.0.0.1", cfg.Server.BindAddress)
	assert.Equal(t, 32, cfg.Server.PeerLimit())
	assert.True(t, cfg.Diagnostics.DebugEnabled)
	assert.Equal(t, ":9100", cfg.Metrics.ListenAddr)
	assert.Equal(t, config.ProviderMemory, cfg.Transport.Provider)

	t.Log("✅ 环境变量覆盖测试通过")
}

func TestApplyEnvOverrides_IgnoresInvalid(t *testing.T) {
	t.Setenv("IGNORANCE_PORT", "not-a-port")

	cfg := config.NewConfig()
	applyEnvOverrides(cfg)
	assert.Equal(t, config.DefaultServerConfig().Port, cfg.Server.Port)

	t.Log("✅ 无效环境变量测试通过")
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "1", "YES", " on "} {
		assert.True(t, parseBool(s), s)
	}
	for _, s := range []string{"false", "0", "", "nope"} {
		assert.False(t, parseBool(s), s)
	}

	t.Log("✅ 布尔解析测试通过")
}
