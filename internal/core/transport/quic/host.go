package quic

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/quic-go/quic-go"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/dragonslaya84/IgnoranceNG/pkg/interfaces"
	"github.com/dragonslaya84/IgnoranceNG/pkg/types"
)

var _ interfaces.Host = (*Host)(nil)

// Host QUIC 主机
//
// 后台 goroutine（接受循环与每个对端的读取循环）只向事件通道写入，
// CheckEvents/Service 由唯一的消费者调用。
type Host struct {
	cfg  interfaces.HostConfig
	qcfg Config

	udp      *net.UDPConn
	tr       *quic.Transport
	listener *quic.Listener

	ctx    context.Context
	cancel context.CancelFunc
	group  errgroup.Group

	events chan interfaces.Event

	mu    sync.Mutex
	slots []*Peer
	count int

	disposed atomic.Bool
}

func newHost(qcfg Config, cfg interfaces.HostConfig) (*Host, error) {
	if cfg.PeerLimit <= 0 || cfg.PeerLimit > types.MaxPeers {
		return nil, fmt.Errorf("peer limit %d out of range", cfg.PeerLimit)
	}

	tlsConf, err := serverTLSConfig(qcfg.ALPN)
	if err != nil {
		return nil, err
	}

	udp, err := net.ListenUDP("udp", net.UDPAddrFromAddrPort(cfg.Addr))
	if err != nil {
		return nil, fmt.Errorf("listen udp %s: %w", cfg.Addr, err)
	}

	tr := &quic.Transport{Conn: udp}
	ln, err := tr.Listen(tlsConf, &quic.Config{
		MaxIdleTimeout:        qcfg.MaxIdleTimeout,
		KeepAlivePeriod:       qcfg.KeepAlivePeriod,
		EnableDatagrams:       true,
		MaxIncomingStreams:    -1,
		MaxIncomingUniStreams: 1024,
	})
	if err != nil {
		_ = udp.Close()
		return nil, fmt.Errorf("listen quic: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &Host{
		cfg:      cfg,
		qcfg:     qcfg,
		udp:      udp,
		tr:       tr,
		listener: ln,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan interfaces.Event, qcfg.EventQueueSize),
		slots:    make([]*Peer, cfg.PeerLimit),
	}
	h.group.Go(h.acceptLoop)

	logger.Info("QUIC 主机已创建", "addr", udp.LocalAddr(), "peerLimit", cfg.PeerLimit, "channels", cfg.ChannelCount())
	return h, nil
}

// IsSet 实现 interfaces.Host
func (h *Host) IsSet() bool {
	return !h.disposed.Load()
}

// LocalAddr 实现 interfaces.Host
func (h *Host) LocalAddr() net.Addr {
	return h.udp.LocalAddr()
}

// CheckEvents 实现 interfaces.Host
func (h *Host) CheckEvents() (interfaces.Event, bool) {
	if h.disposed.Load() {
		return interfaces.Event{}, false
	}
	select {
	case ev := <-h.events:
		return ev, true
	default:
		return interfaces.Event{}, false
	}
}

// Service 实现 interfaces.Host
func (h *Host) Service(timeout time.Duration) (interfaces.Event, bool, error) {
	if h.disposed.Load() {
		return interfaces.Event{}, false, ErrHostDisposed
	}

	select {
	case ev := <-h.events:
		return ev, true, nil
	default:
	}
	if timeout <= 0 {
		return interfaces.Event{}, false, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev := <-h.events:
		return ev, true, nil
	case <-timer.C:
		return interfaces.Event{}, false, nil
	case <-h.ctx.Done():
		return interfaces.Event{}, false, ErrHostDisposed
	}
}

// Dispose 实现 interfaces.Host
//
// 关闭全部对端连接与监听，等待后台 goroutine 退出，释放未被消费的数据包。
func (h *Host) Dispose() error {
	if !h.disposed.CompareAndSwap(false, true) {
		return nil
	}
	h.cancel()

	h.mu.Lock()
	peers := make([]*Peer, 0, h.count)
	for i, p := range h.slots {
		if p != nil {
			peers = append(peers, p)
			h.slots[i] = nil
		}
	}
	h.count = 0
	h.mu.Unlock()

	for _, p := range peers {
		p.shutdown(codeShutdown, "host disposed")
	}

	var errs error
	errs = multierr.Append(errs, ignoreClosed(h.listener.Close()))
	errs = multierr.Append(errs, ignoreClosed(h.tr.Close()))
	errs = multierr.Append(errs, ignoreClosed(h.udp.Close()))
	_ = h.group.Wait()

	pending := 0
	for {
		select {
		case ev := <-h.events:
			ev.DisposePacket()
			pending++
			continue
		default:
		}
		break
	}

	logger.Info("QUIC 主机已释放", "addr", h.udp.LocalAddr(), "peers", len(peers), "pendingEvents", pending)
	return errs
}

// PeerCount 返回当前占用的槽位数
func (h *Host) PeerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

// ════════════════════════════════════════════════════════════════════════════
// 后台循环
// ════════════════════════════════════════════════════════════════════════════

func (h *Host) acceptLoop() error {
	for {
		conn, err := h.listener.Accept(h.ctx)
		if err != nil {
			if h.ctx.Err() != nil {
				return nil
			}
			logger.Debug("接受连接结束", "error", err)
			return nil
		}
		h.admit(conn)
	}
}

// admit 为新连接分配槽位并产生 Connect 事件
func (h *Host) admit(conn quic.Connection) {
	h.mu.Lock()
	if h.disposed.Load() {
		h.mu.Unlock()
		_ = conn.CloseWithError(codeShutdown, "host disposed")
		return
	}
	id, ok := h.freeSlotLocked()
	if !ok {
		h.mu.Unlock()
		logger.Warn("对端数量已满，拒绝连接", "remote", conn.RemoteAddr(), "peerLimit", h.cfg.PeerLimit)
		_ = conn.CloseWithError(codeServerFull, "server full")
		return
	}
	p := newPeer(h, id, conn)
	h.slots[id] = p
	h.count++
	h.mu.Unlock()

	logger.Debug("对端已连接", "peer", id, "remote", p.addr)

	if !h.push(interfaces.Event{Type: types.EventConnect, Peer: p}) {
		p.shutdown(codeShutdown, "host disposed")
		return
	}

	h.group.Go(p.datagramLoop)
	h.group.Go(p.streamLoop)
}

func (h *Host) freeSlotLocked() (types.PeerID, bool) {
	for i, p := range h.slots {
		if p == nil {
			return types.PeerID(i), true
		}
	}
	return 0, false
}

// push 写入事件队列，主机释放时放弃并释放数据包
func (h *Host) push(ev interfaces.Event) bool {
	select {
	case h.events <- ev:
		return true
	case <-h.ctx.Done():
		ev.DisposePacket()
		return false
	}
}

// retire 将对端移出槽位
//
// emit 为 true 时先入队终止事件再释放槽位，保证同一 ID 的新 Connect 排在其后。
func (h *Host) retire(p *Peer, evType types.EventType, data uint32, emit bool) bool {
	if !p.gone.CompareAndSwap(false, true) {
		return false
	}
	if emit {
		h.push(interfaces.Event{Type: evType, Peer: p, Data: data})
	}

	h.mu.Lock()
	if int(p.id) < len(h.slots) && h.slots[p.id] == p {
		h.slots[p.id] = nil
		h.count--
	}
	h.mu.Unlock()
	return true
}

// channelType 返回通道策略
func (h *Host) channelType(ch uint8) (types.ChannelType, bool) {
	if int(ch) >= len(h.cfg.Channels) {
		return 0, false
	}
	return h.cfg.Channels[ch], true
}

// closeReason 将连接关闭原因映射为事件类型
func closeReason(err error) (types.EventType, uint32) {
	var appErr *quic.ApplicationError
	if errors.As(err, &appErr) {
		if appErr.ErrorCode == codeTimeout {
			return types.EventTimeout, 0
		}
		return types.EventDisconnect, uint32(appErr.ErrorCode)
	}
	return types.EventTimeout, 0
}

func ignoreClosed(err error) error {
	if err == nil || errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}
