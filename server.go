package ignorance

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/dragonslaya84/IgnoranceNG/config"
	"github.com/dragonslaya84/IgnoranceNG/internal/core/server"
	"github.com/dragonslaya84/IgnoranceNG/pkg/lib/log"
)

// stopTimeout 停止 Fx 应用的超时
const stopTimeout = 10 * time.Second

// Server IgnoranceNG 服务器
type Server struct {
	mu sync.Mutex

	app      *fx.App
	server   *server.Server
	registry *prometheus.Registry

	appStarted bool
	closed     bool
}

// New 创建服务器
//
// 服务器创建后处于未启动状态，需要调用 Start。
//
// 示例：
//
//	srv, err := ignorance.New(
//	    ignorance.WithBindAddress("127.0.0.1"),
//	    ignorance.WithPort(7777),
//	)
func New(opts ...Option) (*Server, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	if o.config.Diagnostics.DebugEnabled {
		log.SetDebug(true)
	}

	s := &Server{}
	app, err := buildFxApp(o, s)
	if err != nil {
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	s.app = app
	return s, nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              生命周期
// ════════════════════════════════════════════════════════════════════════════

// Start 启动服务器
//
// 首次调用时启动内部 Fx 应用；运行中再次调用返回 ErrAlreadyStarted。
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrServerClosed
	}

	if !s.appStarted {
		if err := s.app.Start(ctx); err != nil {
			logger.Error("Fx 应用启动失败", "error", err)
			return fmt.Errorf("start fx app: %w", err)
		}
		s.appStarted = true
	}

	return s.server.Start(ctx)
}

// Shutdown 停止服务器，释放全部连接与主机
//
// 未运行时为空操作，停止后可以再次 Start。
func (s *Server) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	return s.server.Shutdown()
}

// Close 停止服务器并释放全部资源，可重复调用
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	errs := s.server.Shutdown()
	if s.appStarted {
		ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		errs = multierr.Append(errs, s.app.Stop(ctx))
		s.appStarted = false
	}

	if errs != nil {
		logger.Warn("关闭服务器时出现错误", "error", errs)
	}
	return errs
}

// Started 服务器是否在运行
func (s *Server) Started() bool {
	return s.server.Started()
}

// ════════════════════════════════════════════════════════════════════════════
//                              信息
// ════════════════════════════════════════════════════════════════════════════

// ID 返回服务器实例 ID
func (s *Server) ID() string {
	return s.server.ID().String()
}

// Addr 返回绑定地址，未运行时返回 nil
func (s *Server) Addr() net.Addr {
	return s.server.Addr()
}

// Config 返回生效的配置
func (s *Server) Config() *config.Config {
	return s.server.Config()
}

// Gatherer 返回指标注册表
func (s *Server) Gatherer() prometheus.Gatherer {
	return s.registry
}

// ════════════════════════════════════════════════════════════════════════════
//                              连接
// ════════════════════════════════════════════════════════════════════════════

// Accept 等待下一个新连接
func (s *Server) Accept(ctx context.Context) (*Connection, error) {
	return s.server.Accept(ctx)
}

// TryAccept 非阻塞地取出一个新连接
func (s *Server) TryAccept() (*Connection, bool) {
	return s.server.TryAccept()
}

// ConnectionCount 返回当前连接数
func (s *Server) ConnectionCount() int {
	return s.server.ConnectionCount()
}

// Connections 返回按对端 ID 排序的连接快照
func (s *Server) Connections() []*Connection {
	return s.server.Connections()
}
