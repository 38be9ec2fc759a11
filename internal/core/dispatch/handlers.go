package dispatch

import (
	"fmt"
	"runtime/debug"

	"golang.org/x/time/rate"

	"github.com/dragonslaya84/IgnoranceNG/internal/core/connection"
	"github.com/dragonslaya84/IgnoranceNG/internal/core/metrics"
	"github.com/dragonslaya84/IgnoranceNG/pkg/interfaces"
	"github.com/dragonslaya84/IgnoranceNG/pkg/types"
)

// dispatch 处理单个事件
//
// 事件携带的数据包在这里统一释放一次。
func (l *Loop) dispatch(ev interfaces.Event) {
	defer ev.DisposePacket()
	defer func() {
		if r := recover(); r != nil {
			l.reporter.PanicRecovered()
			logger.Error("分发事件时发生 panic",
				"type", ev.Type,
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()

	l.reporter.EventProcessed(ev.Type)

	switch ev.Type {
	case types.EventConnect:
		l.handleConnect(ev)
	case types.EventDisconnect, types.EventTimeout:
		l.handleDisconnect(ev)
	case types.EventReceive:
		l.handleReceive(ev)
	default:
	}
}

// ════════════════════════════════════════════════════════════════════════════
// Connect
// ════════════════════════════════════════════════════════════════════════════

func (l *Loop) handleConnect(ev interfaces.Event) {
	peer := ev.Peer
	if peer == nil {
		l.warnTransient("连接事件缺少对端句柄")
		return
	}
	id := peer.ID()

	if tc := l.cfg.Timeout; tc.CustomTimeoutLimit {
		peer.Timeout(types.ThrottleScale, tc.BaseTicks, tc.MaxTicks())
	}

	conn := connection.New(peer, connection.Options{
		Clock:        l.clk,
		InboundLimit: l.cfg.Packet.InboundQueueLimit,
		Limiter:      l.newLimiter(),
	})

	// 注册表中残留同 ID 的旧连接：先退役再替换
	if stale, ok := l.registry.Remove(id); ok {
		logger.Warn("对端 ID 被复用，替换旧连接", "peer", id, "staleSession", stale.SessionID())
		if stale.Peer() == peer {
			stale.MarkDisconnected(types.EventDisconnect)
			l.reporter.ConnectionClosed(types.EventDisconnect)
		} else {
			l.retire(stale, types.EventDisconnect)
		}
	}

	l.incoming.Publish(conn)
	l.registry.Insert(id, conn)
	l.reaped.Remove(id)
	l.reporter.ConnectionOpened()

	logger.Info("新连接",
		"peer", id,
		"addr", peer.Addr(),
		"session", conn.SessionID())
}

func (l *Loop) newLimiter() *rate.Limiter {
	rl := l.cfg.RateLimit
	if !rl.Enabled {
		return nil
	}
	return rate.NewLimiter(rate.Limit(rl.PacketsPerSecond), rl.Burst)
}

// ════════════════════════════════════════════════════════════════════════════
// Disconnect / Timeout
// ════════════════════════════════════════════════════════════════════════════

func (l *Loop) handleDisconnect(ev interfaces.Event) {
	id, ok := ev.PeerID()
	if !ok {
		l.warnTransient("断开事件缺少对端句柄", "type", ev.Type)
		return
	}

	conn, ok := l.registry.Remove(id)
	if !ok {
		if l.reaped.Contains(id) {
			logger.Debug("对端已移除，忽略重复的断开事件", "peer", id, "type", ev.Type)
		} else {
			l.warnTransient("未知对端的断开事件", "peer", id, "type", ev.Type)
		}
		return
	}

	l.retire(conn, ev.Type)
}

// retire 将连接置为断开、释放句柄并记录
func (l *Loop) retire(conn *connection.Connection, reason types.EventType) {
	conn.MarkDisconnected(reason)
	conn.Release()
	l.reaped.Add(conn.ID(), struct{}{})
	l.reporter.ConnectionClosed(reason)

	logger.Info("连接已断开",
		"peer", conn.ID(),
		"reason", reason,
		"session", conn.SessionID(),
		"pending", conn.Pending())
}

// ════════════════════════════════════════════════════════════════════════════
// Receive
// ════════════════════════════════════════════════════════════════════════════

func (l *Loop) handleReceive(ev interfaces.Event) {
	id, ok := ev.PeerID()
	if !ok {
		l.drop(metrics.DropOwnershipMismatch, "数据包缺少对端句柄")
		return
	}

	// 所有权校验：必须是已注册且句柄一致的对端
	conn, known := l.registry.Lookup(id)
	if !known {
		if l.reaped.Contains(id) {
			l.reporter.PacketDropped(metrics.DropUnknownPeer)
			logger.Debug("丢弃已移除对端的数据包", "peer", id)
			return
		}
		l.drop(metrics.DropUnknownPeer, "收到未知对端的数据包，频繁出现可能意味着攻击", "peer", id)
		return
	}
	// ID 会被提供方复用，必须同时比较句柄本身
	if registered := conn.Peer(); registered != ev.Peer || registered.ID() != id {
		l.drop(metrics.DropOwnershipMismatch, "数据包对端与注册连接不一致",
			"peer", id,
			"session", conn.SessionID())
		return
	}
	if conn.State() != connection.StateActive {
		l.reporter.PacketDropped(metrics.DropInactive)
		logger.Debug("丢弃已断开连接的数据包", "peer", id)
		return
	}

	pkt := ev.Packet
	if pkt == nil || !pkt.IsSet() {
		l.drop(metrics.DropNoPacket, "接收事件的数据包无效", "peer", id)
		return
	}

	length := pkt.Length()
	if length > len(l.buf) {
		l.drop(metrics.DropOversized, "数据包超过缓冲区大小",
			"peer", id,
			"packet_len", length,
			"cache_len", len(l.buf))
		return
	}

	if !conn.AllowReceive() {
		l.drop(metrics.DropRateLimited, "对端超出接收速率", "peer", id)
		return
	}

	data, err := l.copyPacket(pkt)
	if err != nil {
		l.reporter.PacketDropped(metrics.DropCopyFailed)
		logger.Error("拷贝数据包失败",
			"peer", id,
			"work_buffer", len(l.buf),
			"packet_len", length,
			"error", err)
		return
	}

	if err := conn.Enqueue(connection.Message{ChannelID: ev.ChannelID, Data: data}); err != nil {
		l.drop(metrics.DropQueueFull, "入站队列已满", "peer", id, "pending", conn.Pending())
		return
	}
	l.reporter.MessageQueued(ev.ChannelID, len(data))
}

// copyPacket 经由工作缓冲区拷贝出数据包负载
//
// 所有失败（包括 Provider 内部 panic）都以 ErrPacketCopy 返回。
func (l *Loop) copyPacket(pkt interfaces.Packet) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = fmt.Errorf("%w: panic: %v", ErrPacketCopy, r)
		}
	}()

	n := pkt.Length()
	if n < 0 || n > len(l.buf) {
		return nil, fmt.Errorf("%w: %d bytes do not fit a %d byte work buffer", ErrPacketCopy, n, len(l.buf))
	}

	copied, err := pkt.CopyTo(l.buf[:n])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPacketCopy, err)
	}
	if copied != n {
		return nil, fmt.Errorf("%w: copied %d of %d bytes", ErrPacketCopy, copied, n)
	}

	data = make([]byte, n)
	copy(data, l.buf[:n])
	return data, nil
}

// ════════════════════════════════════════════════════════════════════════════
// 日志
// ════════════════════════════════════════════════════════════════════════════

// drop 计数并记录一个被丢弃的数据包
func (l *Loop) drop(reason metrics.DropReason, msg string, args ...any) {
	l.reporter.PacketDropped(reason)
	l.warnTransient(msg, append(args, "reason", reason)...)
}

// warnTransient 记录逐事件的异常：调试模式下为告警，否则为调试级别
func (l *Loop) warnTransient(msg string, args ...any) {
	if l.cfg.Diagnostics.DebugEnabled {
		logger.Warn(msg, args...)
		return
	}
	logger.Debug(msg, args...)
}
