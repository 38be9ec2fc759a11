package mem

import (
	"sync/atomic"

	"github.com/dragonslaya84/IgnoranceNG/pkg/interfaces"
)

var _ interfaces.Packet = (*Packet)(nil)

// Packet 内存数据包
//
// 记录 Dispose 调用次数，第一次 Dispose 后缓冲即失效。
type Packet struct {
	data     []byte
	disposed atomic.Int32
}

// NewPacket 以 data 的拷贝创建数据包
func NewPacket(data []byte) *Packet {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &Packet{data: buf}
}

// IsSet 实现 interfaces.Packet
func (p *Packet) IsSet() bool {
	return p.data != nil && p.disposed.Load() == 0
}

// Length 实现 interfaces.Packet
func (p *Packet) Length() int {
	return len(p.data)
}

// CopyTo 实现 interfaces.Packet
func (p *Packet) CopyTo(dst []byte) (int, error) {
	if p.disposed.Load() != 0 {
		return 0, ErrPacketDisposed
	}
	if len(dst) < len(p.data) {
		return 0, ErrShortBuffer
	}
	return copy(dst, p.data), nil
}

// Dispose 实现 interfaces.Packet
func (p *Packet) Dispose() {
	p.disposed.Add(1)
}

// DisposeCount 返回 Dispose 被调用的次数
func (p *Packet) DisposeCount() int {
	return int(p.disposed.Load())
}
