package host

import (
	"context"
	"net"

	"go.uber.org/fx"

	"github.com/dragonslaya84/IgnoranceNG/pkg/interfaces"
)

// ModuleInput 模块输入依赖
type ModuleInput struct {
	fx.In

	Provider interfaces.Provider

	// 可选依赖
	Resolver Resolver `optional:"true"`
}

// ProvideController 提供主机控制器
func ProvideController(input ModuleInput) *Controller {
	resolver := input.Resolver
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	return NewController(input.Provider, resolver)
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("host",
		fx.Provide(ProvideController),
		fx.Invoke(registerLifecycle),
	)
}

// registerLifecycle 注册生命周期钩子
//
// 主机在服务器 Start 时按需创建，这里只负责兜底释放。
func registerLifecycle(lc fx.Lifecycle, c *Controller) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return c.Close()
		},
	})
}
