package quic

import (
	"sync"
	"sync/atomic"

	"github.com/dragonslaya84/IgnoranceNG/pkg/interfaces"
)

var _ interfaces.Packet = (*packet)(nil)

// pooledBufferCap 超过该容量的缓冲不回收
const pooledBufferCap = 64 * 1024

var bufferPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 2048)
		return &b
	},
}

// packet 池化数据包
//
// Dispose 将缓冲归还到池中，之后 CopyTo 返回 ErrPacketDisposed。
type packet struct {
	buf atomic.Pointer[[]byte]
	n   int
}

// newPacket 从池中取出长度为 n 的缓冲
func newPacket(n int) *packet {
	bp := bufferPool.Get().(*[]byte)
	if cap(*bp) < n {
		b := make([]byte, n)
		bp = &b
	}
	*bp = (*bp)[:n]

	p := &packet{n: n}
	p.buf.Store(bp)
	return p
}

// packetFrom 以 data 的拷贝创建数据包
func packetFrom(data []byte) *packet {
	p := newPacket(len(data))
	copy(p.bytes(), data)
	return p
}

func (p *packet) bytes() []byte {
	bp := p.buf.Load()
	if bp == nil {
		return nil
	}
	return *bp
}

// IsSet 实现 interfaces.Packet
func (p *packet) IsSet() bool {
	return p.buf.Load() != nil
}

// Length 实现 interfaces.Packet
func (p *packet) Length() int {
	return p.n
}

// CopyTo 实现 interfaces.Packet
func (p *packet) CopyTo(dst []byte) (int, error) {
	bp := p.buf.Load()
	if bp == nil {
		return 0, ErrPacketDisposed
	}
	if len(dst) < p.n {
		return 0, ErrShortBuffer
	}
	return copy(dst, *bp), nil
}

// Dispose 实现 interfaces.Packet
func (p *packet) Dispose() {
	bp := p.buf.Swap(nil)
	if bp == nil || cap(*bp) > pooledBufferCap {
		return
	}
	*bp = (*bp)[:0]
	bufferPool.Put(bp)
}
