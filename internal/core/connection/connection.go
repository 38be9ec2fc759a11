package connection

import (
	"context"
	"fmt"
	"net/netip"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dragonslaya84/IgnoranceNG/pkg/interfaces"
	"github.com/dragonslaya84/IgnoranceNG/pkg/lib/log"
	"github.com/dragonslaya84/IgnoranceNG/pkg/types"
)

var logger = log.Logger("core/connection")

// Options 连接创建参数
type Options struct {
	// Clock 时钟（默认真实时钟）
	Clock clock.Clock

	// InboundLimit 入站队列上限（0 = 不限制）
	InboundLimit int

	// Limiter 接收限速器（nil = 不限速）
	Limiter *rate.Limiter
}

// Connection 表示一个已接纳的远端对端
//
// 生命周期状态仅由事件分发循环推进（MarkDisconnected / Release），
// 应用侧通过 TryReceive / Receive / Drain 消费入站消息。
type Connection struct {
	id      types.PeerID
	peer    interfaces.Peer
	session uuid.UUID
	remote  netip.AddrPort

	clk          clock.Clock
	connectedAt  time.Time
	lastReceived atomic.Int64

	inbound *Queue[Message]
	limiter *rate.Limiter

	state  atomic.Int32
	reason atomic.Int32

	closeOnce   sync.Once
	closed      chan struct{}
	releaseOnce sync.Once
}

// New 为对端句柄创建连接
func New(peer interfaces.Peer, opts Options) *Connection {
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}

	c := &Connection{
		id:          peer.ID(),
		peer:        peer,
		session:     uuid.New(),
		remote:      peer.Addr(),
		clk:         clk,
		connectedAt: clk.Now(),
		inbound:     NewQueue[Message](opts.InboundLimit),
		limiter:     opts.Limiter,
		closed:      make(chan struct{}),
	}
	c.state.Store(int32(StateActive))
	c.reason.Store(int32(types.EventNone))
	return c
}

// ════════════════════════════════════════════════════════════════════════════
// 标识与状态
// ════════════════════════════════════════════════════════════════════════════

// ID 返回对端 ID
func (c *Connection) ID() types.PeerID {
	return c.id
}

// Peer 返回对端句柄
func (c *Connection) Peer() interfaces.Peer {
	return c.peer
}

// SessionID 返回会话 ID
//
// 对端 ID 会被传输层复用，SessionID 在整个进程内唯一。
func (c *Connection) SessionID() uuid.UUID {
	return c.session
}

// RemoteAddr 返回远端地址
func (c *Connection) RemoteAddr() netip.AddrPort {
	return c.remote
}

// State 返回当前状态
func (c *Connection) State() State {
	return State(c.state.Load())
}

// ConnectedAt 返回建立时间
func (c *Connection) ConnectedAt() time.Time {
	return c.connectedAt
}

// LastReceived 返回最后一次入队消息的时间，从未收到时返回零值
func (c *Connection) LastReceived() time.Time {
	ns := c.lastReceived.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

// DisconnectReason 返回断开原因
//
// 活跃连接返回 EventNone；由应用主动断开或收到断开事件返回 EventDisconnect；
// 超时返回 EventTimeout。
func (c *Connection) DisconnectReason() types.EventType {
	return types.EventType(c.reason.Load())
}

// Done 返回在连接断开时关闭的通道
func (c *Connection) Done() <-chan struct{} {
	return c.closed
}

// String 返回可读描述
func (c *Connection) String() string {
	return fmt.Sprintf("conn(%s %s %s)", c.id, c.remote, c.State())
}

// ════════════════════════════════════════════════════════════════════════════
// 应用侧接口
// ════════════════════════════════════════════════════════════════════════════

// TryReceive 非阻塞地取出一条入站消息
func (c *Connection) TryReceive() (Message, bool) {
	return c.inbound.TryTake()
}

// Drain 按到达顺序取出所有已排队的入站消息
func (c *Connection) Drain() []Message {
	return c.inbound.TakeAll()
}

// Receive 等待下一条入站消息
//
// 连接断开后仍会先返回已排队的消息，队列排空后返回 ErrConnectionClosed。
func (c *Connection) Receive(ctx context.Context) (Message, error) {
	for {
		if msg, ok := c.inbound.TryTake(); ok {
			return msg, nil
		}
		select {
		case <-c.inbound.Ready():
		case <-c.closed:
			if msg, ok := c.inbound.TryTake(); ok {
				return msg, nil
			}
			return Message{}, ErrConnectionClosed
		case <-ctx.Done():
			return Message{}, ctx.Err()
		}
	}
}

// Pending 返回排队中的入站消息数
func (c *Connection) Pending() int {
	return c.inbound.Len()
}

// Send 在指定通道上发送数据
func (c *Connection) Send(channelID uint8, data []byte) error {
	if c.State() != StateActive {
		return ErrConnectionClosed
	}
	if err := c.peer.Send(channelID, data); err != nil {
		return fmt.Errorf("send to %s on channel %d: %w", c.id, channelID, err)
	}
	return nil
}

// Disconnect 请求优雅断开
//
// 传输层随后会产生断开事件，由分发循环将连接移出注册表。
func (c *Connection) Disconnect() error {
	if !c.MarkDisconnected(types.EventDisconnect) {
		return ErrConnectionClosed
	}
	logger.Debug("应用请求断开连接", "peer", c.id, "session", c.session)
	c.peer.Disconnect(0)
	return nil
}

// Statistics 返回对端统计
func (c *Connection) Statistics() types.PeerStatistics {
	return c.peer.Statistics()
}

// ════════════════════════════════════════════════════════════════════════════
// 分发循环侧接口
// ════════════════════════════════════════════════════════════════════════════

// Enqueue 追加一条入站消息，队列已满时返回 ErrQueueFull
func (c *Connection) Enqueue(msg Message) error {
	if !c.inbound.Publish(msg) {
		return ErrQueueFull
	}
	c.lastReceived.Store(c.clk.Now().UnixNano())
	return nil
}

// AllowReceive 判断限速器是否放行一条数据包
func (c *Connection) AllowReceive() bool {
	if c.limiter == nil {
		return true
	}
	return c.limiter.AllowN(c.clk.Now(), 1)
}

// MarkDisconnected 将连接置为断开状态
//
// 只有第一次调用生效并返回 true。
func (c *Connection) MarkDisconnected(reason types.EventType) bool {
	if !c.state.CompareAndSwap(int32(StateActive), int32(StateDisconnected)) {
		return false
	}
	c.reason.Store(int32(reason))
	c.closeOnce.Do(func() { close(c.closed) })
	return true
}

// Release 释放对端句柄，多次调用只生效一次
func (c *Connection) Release() {
	c.releaseOnce.Do(func() {
		c.peer.Reset()
	})
}
