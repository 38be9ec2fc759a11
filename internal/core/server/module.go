package server

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dragonslaya84/IgnoranceNG/config"
	"github.com/dragonslaya84/IgnoranceNG/internal/core/host"
	"github.com/dragonslaya84/IgnoranceNG/internal/core/metrics"
)

// ModuleInput 模块输入依赖
type ModuleInput struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	Controller *host.Controller
	Reporter   metrics.Reporter

	// 可选依赖
	Clock clock.Clock `optional:"true"`
}

// ProvideServer 提供服务器
func ProvideServer(input ModuleInput) *Server {
	return New(input.UnifiedCfg, input.Controller, input.Reporter, input.Clock)
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("server",
		fx.Provide(ProvideServer),
		fx.Invoke(registerLifecycle),
	)
}

// registerLifecycle 注册生命周期钩子
//
// 服务器由调用方显式 Start；应用停止时确保关闭。
func registerLifecycle(lc fx.Lifecycle, s *Server) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return s.Shutdown()
		},
	})
}
