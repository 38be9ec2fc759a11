package quic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/netip"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/quic-go/quic-go"

	"github.com/dragonslaya84/IgnoranceNG/pkg/interfaces"
	"github.com/dragonslaya84/IgnoranceNG/pkg/types"
)

var _ interfaces.Peer = (*Peer)(nil)

// Peer QUIC 对端
type Peer struct {
	host *Host
	id   types.PeerID
	addr netip.AddrPort
	conn quic.Connection

	ctx    context.Context
	cancel context.CancelFunc

	gone atomic.Bool

	// 发送
	sendMu  sync.Mutex
	streams map[uint8]quic.SendStream
	sendSeq []atomic.Uint32

	// 接收序号，仅由数据报循环访问
	recvSeq []seqState

	// 超时看门狗
	watchMu  sync.Mutex
	watchdog *clock.Timer
	idle     time.Duration

	packetsSent   atomic.Uint64
	packetsLost   atomic.Uint64
	bytesSent     atomic.Uint64
	bytesReceived atomic.Uint64
}

type seqState struct {
	last uint32
	seen bool
}

func newPeer(h *Host, id types.PeerID, conn quic.Connection) *Peer {
	var addr netip.AddrPort
	if udp, ok := conn.RemoteAddr().(*net.UDPAddr); ok {
		addr = udp.AddrPort()
	}

	ctx, cancel := context.WithCancel(h.ctx)
	return &Peer{
		host:    h,
		id:      id,
		addr:    addr,
		conn:    conn,
		ctx:     ctx,
		cancel:  cancel,
		streams: make(map[uint8]quic.SendStream),
		sendSeq: make([]atomic.Uint32, h.cfg.ChannelCount()),
		recvSeq: make([]seqState, h.cfg.ChannelCount()),
	}
}

// ID 实现 interfaces.Peer
func (p *Peer) ID() types.PeerID {
	return p.id
}

// Addr 实现 interfaces.Peer
func (p *Peer) Addr() netip.AddrPort {
	return p.addr
}

// Timeout 实现 interfaces.Peer
//
// maxTicks 毫秒内没有收到任何数据时产生 Timeout 事件。
func (p *Peer) Timeout(scale, baseTicks, maxTicks uint32) {
	p.watchMu.Lock()
	defer p.watchMu.Unlock()

	if p.watchdog != nil {
		p.watchdog.Stop()
		p.watchdog = nil
	}
	p.idle = time.Duration(maxTicks) * time.Millisecond
	if p.idle <= 0 || p.gone.Load() {
		return
	}
	p.watchdog = p.host.qcfg.Clock.AfterFunc(p.idle, p.expire)

	logger.Debug("设置对端超时", "peer", p.id, "scale", scale, "base", baseTicks, "max", maxTicks)
}

// touch 收到数据时重置看门狗
func (p *Peer) touch() {
	p.watchMu.Lock()
	if p.watchdog != nil {
		p.watchdog.Reset(p.idle)
	}
	p.watchMu.Unlock()
}

func (p *Peer) stopWatchdog() {
	p.watchMu.Lock()
	if p.watchdog != nil {
		p.watchdog.Stop()
		p.watchdog = nil
	}
	p.watchMu.Unlock()
}

func (p *Peer) expire() {
	if p.host.retire(p, types.EventTimeout, 0, true) {
		logger.Debug("对端空闲超时", "peer", p.id, "idle", p.idle)
		p.shutdown(codeTimeout, "timeout")
	}
}

// Send 实现 interfaces.Peer
func (p *Peer) Send(channelID uint8, data []byte) error {
	if p.gone.Load() {
		return ErrPeerClosed
	}
	ct, ok := p.host.channelType(channelID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidChannel, channelID)
	}

	var err error
	switch deliveryFor(ct) {
	case deliveryStream:
		err = p.sendOnChannelStream(channelID, data)
	case deliveryStreamPerMessage:
		err = p.sendOnNewStream(channelID, data)
	case deliveryDatagramOrStream:
		if len(data) > maxDatagramPayload {
			err = p.sendOnNewStream(channelID, data)
		} else {
			err = p.sendDatagram(channelID, data)
		}
	default:
		err = p.sendDatagram(channelID, data)
	}
	if err != nil {
		return err
	}

	p.packetsSent.Add(1)
	p.bytesSent.Add(uint64(len(data)))
	return nil
}

func (p *Peer) sendDatagram(channelID uint8, data []byte) error {
	if len(data) > maxDatagramPayload {
		return fmt.Errorf("%w: %d > %d", ErrDatagramTooLarge, len(data), maxDatagramPayload)
	}
	seq := p.sendSeq[channelID].Add(1)
	return p.conn.SendDatagram(encodeDatagram(channelID, seq, data))
}

// sendOnChannelStream 写入通道的持久流，首次发送时打开
func (p *Peer) sendOnChannelStream(channelID uint8, data []byte) error {
	p.sendMu.Lock()
	defer p.sendMu.Unlock()

	s, ok := p.streams[channelID]
	if !ok {
		var err error
		s, err = p.conn.OpenUniStreamSync(p.ctx)
		if err != nil {
			return fmt.Errorf("open stream: %w", err)
		}
		if _, err := s.Write([]byte{channelID}); err != nil {
			s.CancelWrite(0)
			return fmt.Errorf("write stream header: %w", err)
		}
		p.streams[channelID] = s
	}

	if _, err := s.Write(appendFrame(nil, data)); err != nil {
		delete(p.streams, channelID)
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// sendOnNewStream 为单条消息打开一条流
func (p *Peer) sendOnNewStream(channelID uint8, data []byte) error {
	s, err := p.conn.OpenUniStreamSync(p.ctx)
	if err != nil {
		return fmt.Errorf("open stream: %w", err)
	}
	if _, err := s.Write(appendFrame([]byte{channelID}, data)); err != nil {
		s.CancelWrite(0)
		return fmt.Errorf("write frame: %w", err)
	}
	return s.Close()
}

// Disconnect 实现 interfaces.Peer
func (p *Peer) Disconnect(data uint32) {
	if p.host.retire(p, types.EventDisconnect, data, true) {
		p.shutdown(codeDisconnect, "disconnect")
	}
}

// Reset 实现 interfaces.Peer
func (p *Peer) Reset() {
	p.host.retire(p, types.EventNone, 0, false)
	p.shutdown(codeReset, "reset")
}

// Statistics 实现 interfaces.Peer
//
// quic-go 不暴露 RTT，CurrentPing 恒为 0。
func (p *Peer) Statistics() types.PeerStatistics {
	return types.PeerStatistics{
		PacketsSent:   p.packetsSent.Load(),
		PacketsLost:   p.packetsLost.Load(),
		BytesSent:     p.bytesSent.Load(),
		BytesReceived: p.bytesReceived.Load(),
	}
}

// shutdown 关闭连接并停止后台读取，可重复调用
func (p *Peer) shutdown(code quic.ApplicationErrorCode, reason string) {
	p.gone.Store(true)
	p.stopWatchdog()
	p.cancel()
	_ = p.conn.CloseWithError(code, reason)
}

// ════════════════════════════════════════════════════════════════════════════
// 读取循环
// ════════════════════════════════════════════════════════════════════════════

// datagramLoop 读取数据报，连接关闭时根据原因产生终止事件
func (p *Peer) datagramLoop() error {
	for {
		b, err := p.conn.ReceiveDatagram(p.ctx)
		if err != nil {
			p.lost(err)
			return nil
		}

		ch, seq, payload, err := decodeDatagram(b)
		if err != nil {
			p.packetsLost.Add(1)
			continue
		}
		ct, ok := p.host.channelType(ch)
		if !ok {
			logger.Debug("丢弃未知通道的数据报", "peer", p.id, "channel", ch)
			p.packetsLost.Add(1)
			continue
		}
		if deliveryFor(ct) == deliveryDatagramSequenced {
			st := &p.recvSeq[ch]
			if st.seen && !seqNewer(seq, st.last) {
				p.packetsLost.Add(1)
				continue
			}
			st.last, st.seen = seq, true
		}

		p.deliver(ch, packetFrom(payload))
	}
}

// streamLoop 接受对端打开的单向流
func (p *Peer) streamLoop() error {
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		s, err := p.conn.AcceptUniStream(p.ctx)
		if err != nil {
			return nil
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.readStream(s)
		}()
	}
}

func (p *Peer) readStream(s quic.ReceiveStream) {
	fr := newFrameReader(s, p.host.cfg.MaxPacketSize)

	ch, err := fr.readHeader()
	if err != nil {
		return
	}
	if _, ok := p.host.channelType(ch); !ok {
		logger.Debug("拒绝未知通道的流", "peer", p.id, "channel", ch)
		s.CancelRead(0)
		return
	}

	for {
		pkt, err := fr.readFrame()
		if err != nil {
			if !errors.Is(err, io.EOF) && p.ctx.Err() == nil {
				logger.Debug("流读取结束", "peer", p.id, "channel", ch, "error", err)
				s.CancelRead(0)
			}
			return
		}
		if !p.deliver(ch, pkt) {
			return
		}
	}
}

// deliver 产生 Receive 事件
func (p *Peer) deliver(ch uint8, pkt *packet) bool {
	if p.gone.Load() {
		pkt.Dispose()
		return false
	}
	p.bytesReceived.Add(uint64(pkt.Length()))
	p.touch()
	return p.host.push(interfaces.Event{Type: types.EventReceive, Peer: p, ChannelID: ch, Packet: pkt})
}

// lost 连接被远端或网络关闭
func (p *Peer) lost(err error) {
	if p.gone.Load() || p.ctx.Err() != nil {
		return
	}
	evType, data := closeReason(err)
	if p.host.retire(p, evType, data, true) {
		logger.Debug("对端连接已关闭", "peer", p.id, "event", evType, "error", err)
		p.shutdown(codeShutdown, "closed")
	}
}
