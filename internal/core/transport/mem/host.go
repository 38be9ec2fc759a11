package mem

import (
	"net"
	"net/netip"
	"sync"
	"time"

	"github.com/dragonslaya84/IgnoranceNG/pkg/interfaces"
	"github.com/dragonslaya84/IgnoranceNG/pkg/lib/log"
	"github.com/dragonslaya84/IgnoranceNG/pkg/types"
)

var logger = log.Logger("core/transport/mem")

var _ interfaces.Host = (*Host)(nil)

// Host 内存主机
//
// 所有对端状态都由 mu 保护。事件按产生顺序排队，
// 对端槽位在对应的断开/超时事件入队之后才会释放。
type Host struct {
	network *Network
	cfg     interfaces.HostConfig
	addr    netip.AddrPort

	mu       sync.Mutex
	disposed bool
	events   []interfaces.Event
	slots    []*Peer
	notify   chan struct{}
}

func newHost(network *Network, cfg interfaces.HostConfig) *Host {
	return &Host{
		network: network,
		cfg:     cfg,
		slots:   make([]*Peer, cfg.PeerLimit),
		notify:  make(chan struct{}, 1),
	}
}

// ════════════════════════════════════════════════════════════════════════════
// interfaces.Host
// ════════════════════════════════════════════════════════════════════════════

// IsSet 主机是否有效
func (h *Host) IsSet() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.disposed
}

// LocalAddr 返回绑定地址
func (h *Host) LocalAddr() net.Addr {
	return net.UDPAddrFromAddrPort(h.addr)
}

// CheckEvents 非阻塞地取出一个事件
func (h *Host) CheckEvents() (interfaces.Event, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.events) == 0 {
		return interfaces.Event{}, false
	}
	ev := h.events[0]
	h.events[0] = interfaces.Event{}
	h.events = h.events[1:]
	return ev, true
}

// Service 等待最多 timeout 时间取出一个事件
func (h *Host) Service(timeout time.Duration) (interfaces.Event, bool, error) {
	if ev, ok := h.CheckEvents(); ok {
		return ev, true, nil
	}
	if !h.IsSet() {
		return interfaces.Event{}, false, ErrHostDisposed
	}
	if timeout <= 0 {
		return interfaces.Event{}, false, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-h.notify:
			if ev, ok := h.CheckEvents(); ok {
				return ev, true, nil
			}
			if !h.IsSet() {
				return interfaces.Event{}, false, ErrHostDisposed
			}
		case <-timer.C:
			return interfaces.Event{}, false, nil
		}
	}
}

// Dispose 释放主机，所有对端立即失效，未处理事件的数据包被释放
func (h *Host) Dispose() error {
	h.mu.Lock()
	if h.disposed {
		h.mu.Unlock()
		return nil
	}
	h.disposed = true

	pending := h.events
	h.events = nil

	var peers []*Peer
	for i, p := range h.slots {
		if p != nil {
			p.gone = true
			peers = append(peers, p)
			h.slots[i] = nil
		}
	}
	h.mu.Unlock()

	for _, ev := range pending {
		ev.DisposePacket()
	}
	for _, p := range peers {
		p.remote.close()
	}
	h.network.unbind(h.addr)
	h.signal()

	logger.Debug("内存主机已释放", "addr", h.addr, "peers", len(peers), "droppedEvents", len(pending))
	return nil
}

// ════════════════════════════════════════════════════════════════════════════
// 模拟接口
// ════════════════════════════════════════════════════════════════════════════

// Addr 返回绑定地址
func (h *Host) Addr() netip.AddrPort {
	return h.addr
}

// Config 返回创建主机时的配置
func (h *Host) Config() interfaces.HostConfig {
	return h.cfg
}

// Connect 模拟来自 from 的客户端接入
//
// 分配最小的空闲对端 ID 并产生一个连接事件。
func (h *Host) Connect(from netip.AddrPort) (*Remote, error) {
	h.mu.Lock()
	if h.disposed {
		h.mu.Unlock()
		return nil, ErrHostDisposed
	}

	slot := -1
	for i, p := range h.slots {
		if p == nil {
			slot = i
			break
		}
	}
	if slot < 0 {
		h.mu.Unlock()
		return nil, ErrHostFull
	}

	p := newPeer(h, types.PeerID(slot), from)
	h.slots[slot] = p
	h.events = append(h.events, interfaces.Event{Type: types.EventConnect, Peer: p})
	h.mu.Unlock()

	h.signal()
	return p.remote, nil
}

// Inject 直接放入一个事件
func (h *Host) Inject(ev interfaces.Event) error {
	h.mu.Lock()
	if h.disposed {
		h.mu.Unlock()
		return ErrHostDisposed
	}
	h.events = append(h.events, ev)
	h.mu.Unlock()

	h.signal()
	return nil
}

// PeerHandle 返回当前占用 id 槽位的对端
func (h *Host) PeerHandle(id types.PeerID) (*Peer, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if int(id) >= len(h.slots) || h.slots[id] == nil {
		return nil, false
	}
	return h.slots[id], true
}

// PeerCount 返回占用的槽位数
func (h *Host) PeerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := 0
	for _, p := range h.slots {
		if p != nil {
			n++
		}
	}
	return n
}

// Pending 返回未取出的事件数
func (h *Host) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}

// closePeerLocked 入队终止事件（若有）后释放槽位，调用方持有 mu
func (h *Host) closePeerLocked(p *Peer, ev *interfaces.Event) {
	if p.gone {
		return
	}
	p.gone = true
	if ev != nil {
		h.events = append(h.events, *ev)
	}
	if int(p.id) < len(h.slots) && h.slots[p.id] == p {
		h.slots[p.id] = nil
	}
}

func (h *Host) validChannel(ch uint8) bool {
	return int(ch) < h.cfg.ChannelCount()
}

func (h *Host) signal() {
	select {
	case h.notify <- struct{}{}:
	default:
	}
}
