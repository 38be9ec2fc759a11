package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevelConfig(t *testing.T) {
	cfg := &levelConfig{defaultLevel: slog.LevelInfo, components: make(map[string]slog.Level)}

	parseLevelConfig(cfg, "core/dispatch=debug, transport/quic=warn,error,bogus=loud")

	assert.Equal(t, slog.LevelDebug, cfg.levelFor("core/dispatch"))
	assert.Equal(t, slog.LevelWarn, cfg.levelFor("transport/quic"))
	assert.Equal(t, slog.LevelError, cfg.levelFor("core/server"))
	_, ok := cfg.components["bogus"]
	assert.False(t, ok, "无效级别应被忽略")

	t.Log("✅ parseLevelConfig 测试通过")
}

func TestLazyLogger_ComponentFilter(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	defer slog.SetDefault(prev)
	SetOutput(&buf)

	SetComponentLevel("test/quiet", slog.LevelError)
	defer func() {
		levels.mu.Lock()
		delete(levels.components, "test/quiet")
		levels.mu.Unlock()
	}()

	quiet := Logger("test/quiet")
	quiet.Warn("不应输出")
	assert.Empty(t, buf.String())

	quiet.Error("应该输出", "peer", 7)
	assert.Contains(t, buf.String(), "component=test/quiet")
	assert.Contains(t, buf.String(), "peer=7")

	t.Log("✅ 组件级别过滤测试通过")
}

func TestSetDebug(t *testing.T) {
	defer SetLevel(slog.LevelInfo)

	l := Logger("test/debug")
	SetDebug(false)
	assert.False(t, l.Enabled(slog.LevelDebug))

	SetDebug(true)
	assert.True(t, l.Enabled(slog.LevelDebug))
}
