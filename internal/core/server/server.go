package server

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/dragonslaya84/IgnoranceNG/config"
	"github.com/dragonslaya84/IgnoranceNG/internal/core/connection"
	"github.com/dragonslaya84/IgnoranceNG/internal/core/dispatch"
	"github.com/dragonslaya84/IgnoranceNG/internal/core/host"
	"github.com/dragonslaya84/IgnoranceNG/internal/core/metrics"
	"github.com/dragonslaya84/IgnoranceNG/internal/core/registry"
	"github.com/dragonslaya84/IgnoranceNG/pkg/lib/log"
)

var logger = log.Logger("core/server")

// shutdownTimeout 等待分发循环退出的上限
const shutdownTimeout = 5 * time.Second

// Server 服务器
type Server struct {
	id         uuid.UUID
	cfg        *config.Config
	controller *host.Controller
	reporter   metrics.Reporter
	clk        clock.Clock

	registry *registry.Registry
	incoming *connection.Queue[*connection.Connection]

	// stopTimeout 等待分发循环退出的上限
	stopTimeout time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	// done 与 loop 在循环超时未退出时保留，直到该 goroutine 结束
	done chan struct{}
	loop *dispatch.Loop
}

// New 创建服务器
func New(cfg *config.Config, controller *host.Controller, reporter metrics.Reporter, clk clock.Clock) *Server {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if reporter == nil {
		reporter = metrics.Nop{}
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Server{
		id:         uuid.New(),
		cfg:        cfg,
		controller: controller,
		reporter:   reporter,
		clk:        clk,
		registry:   registry.New(),
		incoming:   connection.NewQueue[*connection.Connection](0),

		stopTimeout: shutdownTimeout,
	}
}

// ID 返回服务器实例 ID
func (s *Server) ID() uuid.UUID {
	return s.id
}

// Config 返回服务器配置
func (s *Server) Config() *config.Config {
	return s.cfg
}

// ════════════════════════════════════════════════════════════════════════════
// 生命周期
// ════════════════════════════════════════════════════════════════════════════

// Start 打开主机并启动分发循环
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyStarted
	}
	if err := s.reapStaleLoop(); err != nil {
		return err
	}

	logger.Info("正在启动服务器", "server", s.id, "port", s.cfg.Server.Port, "bindAll", s.cfg.Server.BindAll)

	h, err := s.controller.Open(ctx, s.cfg)
	if err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	loop, err := dispatch.New(h, dispatch.Options{
		Config:   s.cfg,
		Registry: s.registry,
		Incoming: s.incoming,
		Reporter: s.reporter,
		Clock:    s.clk,
	})
	if err != nil {
		return multierr.Append(fmt.Errorf("start server: %w", err), s.controller.Close())
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		loop.Run(loopCtx)
	}()

	s.loop = loop
	s.cancel = cancel
	s.done = done
	s.running = true

	logger.Info("服务器已启动", "server", s.id, "addr", h.LocalAddr(), "peerLimit", s.cfg.Server.PeerLimit())
	return nil
}

// Shutdown 停止服务器
//
// 顺序：停止分发循环 → 断开并释放所有连接 → 释放主机。
// 未运行时为空操作。
func (s *Server) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	logger.Info("正在停止服务器", "server", s.id, "connections", s.registry.Len())

	var errs error

	s.cancel()
	select {
	case <-s.done:
		released := s.loop.ReleaseAll()
		logger.Debug("连接已释放", "count", released)
		s.loop = nil
		s.done = nil
	case <-time.After(s.stopTimeout):
		// 旧循环仍持有注册表，保留 done 供下次 Start 检查
		errs = multierr.Append(errs, ErrShutdownTimeout)
	}

	errs = multierr.Append(errs, s.controller.Close())

	// 未被取走的新连接已经失效
	if stale := s.incoming.TakeAll(); len(stale) > 0 {
		logger.Debug("丢弃未被接受的连接", "count", len(stale))
	}

	s.cancel = nil

	if errs != nil {
		logger.Warn("服务器停止时出现错误", "server", s.id, "error", errs)
		return errs
	}
	logger.Info("服务器已停止", "server", s.id)
	return nil
}

// Started 服务器是否在运行
func (s *Server) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Addr 返回绑定地址，未运行时返回 nil
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()

	if !running {
		return nil
	}
	h := s.controller.Host()
	if h == nil || !h.IsSet() {
		return nil
	}
	return h.LocalAddr()
}

// ════════════════════════════════════════════════════════════════════════════
// 连接
// ════════════════════════════════════════════════════════════════════════════

// TryAccept 非阻塞地取出一个新连接
func (s *Server) TryAccept() (*connection.Connection, bool) {
	return s.incoming.TryTake()
}

// Accept 等待下一个新连接
func (s *Server) Accept(ctx context.Context) (*connection.Connection, error) {
	for {
		if conn, ok := s.incoming.TryTake(); ok {
			return conn, nil
		}
		select {
		case <-s.incoming.Ready():
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// ConnectionCount 返回注册的连接数
func (s *Server) ConnectionCount() int {
	return s.registry.Len()
}

// Connections 返回按对端 ID 排序的连接快照
func (s *Server) Connections() []*connection.Connection {
	return s.registry.Snapshot()
}

// reapStaleLoop 检查上次超时未退出的分发循环，调用方持有锁
//
// 旧循环已退出时释放它遗留的连接；仍在运行时返回 ErrLoopStillRunning。
func (s *Server) reapStaleLoop() error {
	if s.done == nil {
		return nil
	}
	select {
	case <-s.done:
	default:
		return ErrLoopStillRunning
	}

	if released := s.loop.ReleaseAll(); released > 0 {
		logger.Debug("释放旧循环遗留的连接", "count", released)
	}
	s.loop = nil
	s.done = nil
	return nil
}
