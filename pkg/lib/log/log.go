// Package log 提供 IgnoranceNG 统一日志接口
//
// 基于 Go 标准库 log/slog 封装，提供按组件划分的日志 API。
//
// 支持通过环境变量配置：
//   - IGNORANCE_LOG_LEVEL: 组件=级别,组件=级别,默认级别
//     示例: core/dispatch=debug,transport/quic=warn,info
//   - IGNORANCE_LOG_FORMAT: text 或 json
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// 日志级别常量（从 slog 导出，方便使用）
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// ============================================================================
//                              级别配置
// ============================================================================

// levelConfig 组件级别配置
type levelConfig struct {
	mu           sync.RWMutex
	defaultLevel slog.Level
	components   map[string]slog.Level
	json         bool
}

var levels = &levelConfig{
	defaultLevel: slog.LevelInfo,
	components:   make(map[string]slog.Level),
}

// levelFor 返回组件的有效级别
func (c *levelConfig) levelFor(component string) slog.Level {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if lvl, ok := c.components[component]; ok {
		return lvl
	}
	return c.defaultLevel
}

// parseLevelConfig 解析日志级别配置字符串
// 格式: component=level,component=level,defaultLevel
func parseLevelConfig(cfg *levelConfig, s string) {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if k, v, ok := strings.Cut(part, "="); ok {
			if lvl, ok := parseLevel(v); ok {
				cfg.components[strings.TrimSpace(k)] = lvl
			}
			continue
		}
		if lvl, ok := parseLevel(part); ok {
			cfg.defaultLevel = lvl
		}
	}
}

// parseLevel 解析日志级别名称
func parseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// SetLevel 设置默认日志级别（组件级覆盖保持不变）
func SetLevel(level slog.Level) {
	levels.mu.Lock()
	levels.defaultLevel = level
	levels.mu.Unlock()
}

// SetComponentLevel 设置指定组件的日志级别
func SetComponentLevel(component string, level slog.Level) {
	levels.mu.Lock()
	levels.components[component] = level
	levels.mu.Unlock()
}

// SetDebug 开关调试日志
func SetDebug(enabled bool) {
	if enabled {
		SetLevel(slog.LevelDebug)
		return
	}
	SetLevel(slog.LevelInfo)
}

// ============================================================================
//                              输出
// ============================================================================

// newHandler 创建输出 handler
//
// handler 本身放行全部级别，过滤由组件级别完成。
func newHandler(w io.Writer, json bool) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "ts"
			}
			return a
		},
	}
	if json {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// SetOutput 设置日志输出目标
//
// 常用于将日志输出到文件。
//
// 示例：
//
//	file, _ := os.OpenFile("server.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
//	log.SetOutput(file)
func SetOutput(w io.Writer) {
	levels.mu.RLock()
	json := levels.json
	levels.mu.RUnlock()
	slog.SetDefault(slog.New(newHandler(w, json)))
}

// SetOutputWithLevel 同时设置日志输出目标和默认级别
func SetOutputWithLevel(w io.Writer, level slog.Level) {
	SetOutput(w)
	SetLevel(level)
}

// SetDefault 设置默认 logger
func SetDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

// ============================================================================
//                              LazyLogger
// ============================================================================

// LazyLogger 懒加载 logger
//
// 每次日志调用时都从 slog.Default() 获取最新的 handler，
// 支持在运行时动态切换日志输出目标。
//
// 使用方式：
//
//	var logger = log.Logger("core/dispatch")
//	logger.Info("hello", "peer", id)
type LazyLogger struct {
	component string
}

// Logger 返回带组件名的 LazyLogger
func Logger(component string) *LazyLogger {
	return &LazyLogger{component: component}
}

// Enabled 检查指定级别是否输出
func (l *LazyLogger) Enabled(level slog.Level) bool {
	return level >= levels.levelFor(l.component)
}

func (l *LazyLogger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	slog.Default().With("component", l.component).Log(ctx, level, msg, args...)
}

// Debug 输出 Debug 级别日志
func (l *LazyLogger) Debug(msg string, args ...any) {
	l.log(context.Background(), slog.LevelDebug, msg, args...)
}

// Info 输出 Info 级别日志
func (l *LazyLogger) Info(msg string, args ...any) {
	l.log(context.Background(), slog.LevelInfo, msg, args...)
}

// Warn 输出 Warn 级别日志
func (l *LazyLogger) Warn(msg string, args ...any) {
	l.log(context.Background(), slog.LevelWarn, msg, args...)
}

// Error 输出 Error 级别日志
func (l *LazyLogger) Error(msg string, args ...any) {
	l.log(context.Background(), slog.LevelError, msg, args...)
}

// DebugContext 带 context 的 Debug 日志
func (l *LazyLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelDebug, msg, args...)
}

// WarnContext 带 context 的 Warn 日志
func (l *LazyLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelWarn, msg, args...)
}

// With 添加额外的属性
func (l *LazyLogger) With(args ...any) *slog.Logger {
	return slog.Default().With("component", l.component).With(args...)
}

// ============================================================================
//                              初始化
// ============================================================================

func init() {
	if s := os.Getenv("IGNORANCE_LOG_LEVEL"); s != "" {
		parseLevelConfig(levels, s)
	}
	if strings.EqualFold(os.Getenv("IGNORANCE_LOG_FORMAT"), "json") {
		levels.json = true
	}
	slog.SetDefault(slog.New(newHandler(os.Stderr, levels.json)))
}
