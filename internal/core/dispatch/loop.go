package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dragonslaya84/IgnoranceNG/config"
	"github.com/dragonslaya84/IgnoranceNG/internal/core/connection"
	"github.com/dragonslaya84/IgnoranceNG/internal/core/metrics"
	"github.com/dragonslaya84/IgnoranceNG/internal/core/registry"
	"github.com/dragonslaya84/IgnoranceNG/pkg/interfaces"
	"github.com/dragonslaya84/IgnoranceNG/pkg/lib/log"
	"github.com/dragonslaya84/IgnoranceNG/pkg/types"
)

var logger = log.Logger("core/dispatch")

// Options 循环依赖
type Options struct {
	// Config 统一配置（nil 使用默认配置）
	Config *config.Config

	// Registry 连接注册表（nil 时新建）
	Registry *registry.Registry

	// Incoming 新连接队列（nil 时新建）
	Incoming *connection.Queue[*connection.Connection]

	// Reporter 指标（nil 使用 metrics.Nop）
	Reporter metrics.Reporter

	// Clock 时钟（nil 使用真实时钟）
	Clock clock.Clock
}

// Loop 事件分发循环
type Loop struct {
	cfg      *config.Config
	host     interfaces.Host
	registry *registry.Registry
	incoming *connection.Queue[*connection.Connection]
	reporter metrics.Reporter
	clk      clock.Clock

	// reaped 最近移除的对端，用于区分迟到的事件与陌生对端
	reaped *lru.Cache[types.PeerID, struct{}]

	// buf 工作缓冲区，长度即 PacketCacheSize
	buf []byte

	pollTimeout time.Duration
	tick        time.Duration
}

// New 创建绑定到 host 的分发循环
func New(host interfaces.Host, opts Options) (*Loop, error) {
	if host == nil {
		return nil, ErrNoHost
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if opts.Registry == nil {
		opts.Registry = registry.New()
	}
	if opts.Incoming == nil {
		opts.Incoming = connection.NewQueue[*connection.Connection](0)
	}
	if opts.Reporter == nil {
		opts.Reporter = metrics.Nop{}
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}

	reaped, err := lru.New[types.PeerID, struct{}](cfg.Diagnostics.ReapedPeerMemory)
	if err != nil {
		return nil, fmt.Errorf("create reaped peer cache: %w", err)
	}

	return &Loop{
		cfg:         cfg,
		host:        host,
		registry:    opts.Registry,
		incoming:    opts.Incoming,
		reporter:    opts.Reporter,
		clk:         opts.Clock,
		reaped:      reaped,
		buf:         make([]byte, cfg.Packet.PacketCacheSize),
		pollTimeout: cfg.Server.PollTimeout(),
		tick:        cfg.Server.TickInterval.Duration(),
	}, nil
}

// Registry 返回连接注册表
func (l *Loop) Registry() *registry.Registry {
	return l.registry
}

// Incoming 返回新连接队列
func (l *Loop) Incoming() *connection.Queue[*connection.Connection] {
	return l.incoming
}

// ════════════════════════════════════════════════════════════════════════════
// 运行
// ════════════════════════════════════════════════════════════════════════════

// Run 运行循环直到 ctx 被取消
//
// 主机无效时每个 tick 只休眠，不返回错误。
func (l *Loop) Run(ctx context.Context) {
	logger.Debug("分发循环已启动", "pollTimeout", l.pollTimeout, "tick", l.tick)
	defer logger.Debug("分发循环已退出")

	for {
		if ctx.Err() != nil {
			return
		}

		if l.host.IsSet() {
			start := l.clk.Now()
			n := l.Tick()
			l.reporter.TickCompleted(n, l.clk.Since(start))
		}

		if !l.sleep(ctx) {
			return
		}
	}
}

// Tick 执行一次排空，返回分发的事件数
func (l *Loop) Tick() int {
	n := 0
	polled := false

	for {
		ev, ok := l.host.CheckEvents()
		if !ok {
			if polled {
				break
			}
			polled = true

			var err error
			ev, ok, err = l.host.Service(l.pollTimeout)
			if err != nil {
				if l.host.IsSet() {
					logger.Warn("轮询主机失败", "error", err)
				}
				break
			}
			if !ok {
				break
			}
		}

		l.dispatch(ev)
		n++
	}
	return n
}

// sleep 在 tick 之间让出，ctx 取消时返回 false
func (l *Loop) sleep(ctx context.Context) bool {
	if l.tick <= 0 {
		return ctx.Err() == nil
	}

	timer := l.clk.Timer(l.tick)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// ReleaseAll 断开并释放注册表中的所有连接
//
// 只能在循环退出后调用。返回释放的连接数。
func (l *Loop) ReleaseAll() int {
	conns := l.registry.Clear()
	for _, conn := range conns {
		l.retire(conn, types.EventDisconnect)
	}
	return len(conns)
}
