package mem

import (
	"net/netip"
	"sync"

	"github.com/dragonslaya84/IgnoranceNG/pkg/interfaces"
	"github.com/dragonslaya84/IgnoranceNG/pkg/types"
)

// Delivery 服务器发往远端的一条数据
type Delivery struct {
	ChannelID uint8
	Data      []byte
}

// Remote 模拟的客户端一侧
type Remote struct {
	peer *Peer

	mu     sync.Mutex
	inbox  []Delivery
	closed bool
}

func newRemote(p *Peer) *Remote {
	return &Remote{peer: p}
}

// ID 返回服务器分配的对端 ID
func (r *Remote) ID() types.PeerID {
	return r.peer.id
}

// Addr 返回远端地址
func (r *Remote) Addr() netip.AddrPort {
	return r.peer.addr
}

// Peer 返回服务器侧对端句柄
func (r *Remote) Peer() *Peer {
	return r.peer
}

// Send 向服务器发送数据，返回入队的数据包
func (r *Remote) Send(channelID uint8, data []byte) (*Packet, error) {
	h := r.peer.host
	if !h.validChannel(channelID) {
		return nil, ErrInvalidChannel
	}

	h.mu.Lock()
	if h.disposed || r.peer.gone {
		h.mu.Unlock()
		return nil, ErrPeerClosed
	}
	pkt := NewPacket(data)
	r.peer.stats.BytesReceived += uint64(len(data))
	h.events = append(h.events, interfaces.Event{
		Type:      types.EventReceive,
		Peer:      r.peer,
		ChannelID: channelID,
		Packet:    pkt,
	})
	h.mu.Unlock()

	h.signal()
	return pkt, nil
}

// Disconnect 远端主动断开
func (r *Remote) Disconnect(data uint32) error {
	return r.terminate(types.EventDisconnect, data)
}

// TimeOut 模拟远端超时
func (r *Remote) TimeOut() error {
	return r.terminate(types.EventTimeout, 0)
}

func (r *Remote) terminate(t types.EventType, data uint32) error {
	h := r.peer.host

	h.mu.Lock()
	if h.disposed || r.peer.gone {
		h.mu.Unlock()
		return ErrPeerClosed
	}
	h.closePeerLocked(r.peer, &interfaces.Event{Type: t, Peer: r.peer, Data: data})
	h.mu.Unlock()

	r.close()
	h.signal()
	return nil
}

// Inbox 取出所有已收到的数据
func (r *Remote) Inbox() []Delivery {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.inbox
	r.inbox = nil
	return out
}

// Closed 远端是否已断开
func (r *Remote) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func (r *Remote) deliver(d Delivery) {
	r.mu.Lock()
	r.inbox = append(r.inbox, d)
	r.mu.Unlock()
}

func (r *Remote) close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}
