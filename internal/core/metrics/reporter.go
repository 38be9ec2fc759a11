package metrics

import (
	"time"

	"github.com/dragonslaya84/IgnoranceNG/pkg/types"
)

// DropReason 数据包被丢弃的原因
type DropReason int

const (
	// DropUnknownPeer 对端不在注册表中
	DropUnknownPeer DropReason = iota

	// DropOwnershipMismatch 事件对端与注册连接的对端句柄不一致
	DropOwnershipMismatch

	// DropNoPacket 接收事件未携带有效数据包
	DropNoPacket

	// DropOversized 数据包超过缓冲区大小
	DropOversized

	// DropRateLimited 超出对端接收速率
	DropRateLimited

	// DropQueueFull 入站队列已满
	DropQueueFull

	// DropCopyFailed 数据包拷贝失败
	DropCopyFailed

	// DropInactive 连接已断开
	DropInactive
)

var dropReasonNames = map[DropReason]string{
	DropUnknownPeer:       "unknown_peer",
	DropOwnershipMismatch: "ownership_mismatch",
	DropNoPacket:          "no_packet",
	DropOversized:         "oversized",
	DropRateLimited:       "rate_limited",
	DropQueueFull:         "queue_full",
	DropCopyFailed:        "copy_failed",
	DropInactive:          "inactive",
}

// String 返回原因名称（用作指标标签）
func (r DropReason) String() string {
	if name, ok := dropReasonNames[r]; ok {
		return name
	}
	return "unknown"
}

// AllDropReasons 返回全部丢弃原因
func AllDropReasons() []DropReason {
	return []DropReason{
		DropUnknownPeer,
		DropOwnershipMismatch,
		DropNoPacket,
		DropOversized,
		DropRateLimited,
		DropQueueFull,
		DropCopyFailed,
		DropInactive,
	}
}

// Reporter 记录服务器运行指标
//
// 所有方法必须并发安全且不阻塞。
type Reporter interface {
	// EventProcessed 记录处理了一个传输层事件
	EventProcessed(t types.EventType)

	// ConnectionOpened 记录新连接
	ConnectionOpened()

	// ConnectionClosed 记录连接关闭，reason 为 EventDisconnect 或 EventTimeout
	ConnectionClosed(reason types.EventType)

	// MessageQueued 记录一条消息进入入站队列
	MessageQueued(channelID uint8, bytes int)

	// PacketDropped 记录一个被丢弃的数据包
	PacketDropped(reason DropReason)

	// TickCompleted 记录一个 tick 的事件数与耗时
	TickCompleted(events int, d time.Duration)

	// PanicRecovered 记录被恢复的分发 panic
	PanicRecovered()
}

// 确保实现 Reporter 接口
var (
	_ Reporter = (*Prometheus)(nil)
	_ Reporter = Nop{}
)

// Nop 空实现
type Nop struct{}

func (Nop) EventProcessed(types.EventType)   {}
func (Nop) ConnectionOpened()                {}
func (Nop) ConnectionClosed(types.EventType) {}
func (Nop) MessageQueued(uint8, int)         {}
func (Nop) PacketDropped(DropReason)         {}
func (Nop) TickCompleted(int, time.Duration) {}
func (Nop) PanicRecovered()                  {}
