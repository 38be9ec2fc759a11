package mem

import (
	"net/netip"

	"github.com/dragonslaya84/IgnoranceNG/pkg/interfaces"
	"github.com/dragonslaya84/IgnoranceNG/pkg/types"
)

var _ interfaces.Peer = (*Peer)(nil)

// Timeouts 记录 Peer.Timeout 的参数
type Timeouts struct {
	Scale uint32
	Base  uint32
	Max   uint32
}

// Peer 服务器侧的对端句柄
//
// 除 id/addr 外的字段由所属 Host 的 mu 保护。
type Peer struct {
	host   *Host
	id     types.PeerID
	addr   netip.AddrPort
	remote *Remote

	gone        bool
	timeouts    Timeouts
	timeoutsSet bool
	resets      int
	stats       types.PeerStatistics
}

func newPeer(h *Host, id types.PeerID, addr netip.AddrPort) *Peer {
	p := &Peer{host: h, id: id, addr: addr}
	p.remote = newRemote(p)
	return p
}

// ID 实现 interfaces.Peer
func (p *Peer) ID() types.PeerID {
	return p.id
}

// Addr 实现 interfaces.Peer
func (p *Peer) Addr() netip.AddrPort {
	return p.addr
}

// Timeout 实现 interfaces.Peer，仅记录参数
func (p *Peer) Timeout(scale, baseTicks, maxTicks uint32) {
	p.host.mu.Lock()
	p.timeouts = Timeouts{Scale: scale, Base: baseTicks, Max: maxTicks}
	p.timeoutsSet = true
	p.host.mu.Unlock()
}

// Send 实现 interfaces.Peer，数据投递到远端收件箱
func (p *Peer) Send(channelID uint8, data []byte) error {
	if !p.host.validChannel(channelID) {
		return ErrInvalidChannel
	}

	p.host.mu.Lock()
	if p.gone {
		p.host.mu.Unlock()
		return ErrPeerClosed
	}
	p.stats.PacketsSent++
	p.stats.BytesSent += uint64(len(data))
	p.host.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	p.remote.deliver(Delivery{ChannelID: channelID, Data: buf})
	return nil
}

// Disconnect 实现 interfaces.Peer
//
// 入队一个断开事件（携带 data），随后释放槽位。
func (p *Peer) Disconnect(data uint32) {
	p.host.mu.Lock()
	wasGone := p.gone
	p.host.closePeerLocked(p, &interfaces.Event{Type: types.EventDisconnect, Peer: p, Data: data})
	p.host.mu.Unlock()

	if !wasGone {
		p.remote.close()
		p.host.signal()
	}
}

// Reset 实现 interfaces.Peer，立即释放槽位且不产生事件
func (p *Peer) Reset() {
	p.host.mu.Lock()
	p.resets++
	wasGone := p.gone
	p.host.closePeerLocked(p, nil)
	p.host.mu.Unlock()

	if !wasGone {
		p.remote.close()
	}
}

// Statistics 实现 interfaces.Peer
func (p *Peer) Statistics() types.PeerStatistics {
	p.host.mu.Lock()
	defer p.host.mu.Unlock()
	return p.stats
}

// Remote 返回对应的远端
func (p *Peer) Remote() *Remote {
	return p.remote
}

// Timeouts 返回最后一次设置的超时参数
func (p *Peer) Timeouts() (Timeouts, bool) {
	p.host.mu.Lock()
	defer p.host.mu.Unlock()
	return p.timeouts, p.timeoutsSet
}

// Resets 返回 Reset 被调用的次数
func (p *Peer) Resets() int {
	p.host.mu.Lock()
	defer p.host.mu.Unlock()
	return p.resets
}
