package ignorance

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dragonslaya84/IgnoranceNG/internal/core/host"
	"github.com/dragonslaya84/IgnoranceNG/internal/core/metrics"
	"github.com/dragonslaya84/IgnoranceNG/internal/core/server"
	"github.com/dragonslaya84/IgnoranceNG/internal/core/transport"
	"github.com/dragonslaya84/IgnoranceNG/pkg/interfaces"
	"github.com/dragonslaya84/IgnoranceNG/pkg/lib/log"
)

var logger = log.Logger("ignorance")

// buildFxApp 构建 Fx 应用
//
// 加载顺序（按依赖）：
//  1. 配置与指标注册表
//  2. Metrics → Transport → Host → Server
//  3. 用户扩展
func buildFxApp(o *options, s *Server) (*fx.App, error) {
	// ════════════════════════════════════════════════════════════════════════
	// 1. 配置验证（前置）
	// ════════════════════════════════════════════════════════════════════════
	if err := o.config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	registry := o.registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	s.registry = registry

	modules := []fx.Option{
		fx.Supply(o.config),
		fx.Supply(registry),
		metrics.Module,
	}

	// ════════════════════════════════════════════════════════════════════════
	// 2. 传输层
	// ════════════════════════════════════════════════════════════════════════
	if o.provider != nil {
		provider := o.provider
		modules = append(modules, fx.Provide(func() interfaces.Provider { return provider }))
	} else {
		if o.network != nil {
			modules = append(modules, fx.Supply(o.network))
		}
		modules = append(modules, transport.Module())
	}

	if o.clock != nil {
		clk := o.clock
		modules = append(modules, fx.Provide(func() clock.Clock { return clk }))
	}

	// ════════════════════════════════════════════════════════════════════════
	// 3. 主机与服务器
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		host.Module(),
		server.Module(),
	)

	// ════════════════════════════════════════════════════════════════════════
	// 4. 用户扩展（Fx Options）
	// ════════════════════════════════════════════════════════════════════════
	if len(o.userFxOptions) > 0 {
		modules = append(modules, o.userFxOptions...)
	}

	// ════════════════════════════════════════════════════════════════════════
	// 5. 组件注入与 Fx 日志
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		fx.Populate(&s.server),
		fx.WithLogger(fxLoggerFor(o.config.Diagnostics.DebugEnabled)),
	)

	app := fx.New(modules...)
	if err := app.Err(); err != nil {
		return nil, err
	}
	return app, nil
}

// fxLoggerFor 调试模式输出 Fx 事件，否则静默
func fxLoggerFor(debug bool) func() fxevent.Logger {
	return func() fxevent.Logger {
		if !debug {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}
		l, err := zap.NewDevelopment()
		if err != nil {
			logger.Warn("创建 Fx 调试日志失败", "error", err)
			l = zap.NewNop()
		}
		return &fxevent.ZapLogger{Logger: l}
	}
}
