// Package interfaces 定义 IgnoranceNG 公共接口
//
// 本文件定义 Peer Transport Provider 契约，抽象底层可靠 UDP 传输。
package interfaces

//go:generate mockgen -destination=mocks/mock_transport.go -package=mocks . Provider,Host,Peer,Packet

import (
	"net"
	"net/netip"
	"time"

	"github.com/dragonslaya84/IgnoranceNG/pkg/types"
)

// ============================================================================
//                              Provider
// ============================================================================

// HostConfig 创建主机所需的绑定参数
type HostConfig struct {
	// Addr 绑定地址与端口
	Addr netip.AddrPort

	// PeerLimit 最大对端数量
	PeerLimit int

	// Channels 通道策略列表，下标即通道 ID
	Channels []types.ChannelType

	// MaxPacketSize 单个数据包的上限（Provider 读取时的硬限制）
	MaxPacketSize int
}

// ChannelCount 返回通道数量
func (c HostConfig) ChannelCount() int {
	return len(c.Channels)
}

// Provider 定义传输提供者
//
// Provider 拥有底层 socket，负责创建绑定后的主机。
type Provider interface {
	// CreateHost 创建并绑定主机
	CreateHost(cfg HostConfig) (Host, error)
}

// ============================================================================
//                              Host
// ============================================================================

// Host 定义绑定后的主机句柄
//
// Host 的事件接口只允许单一消费者（事件分发循环）调用。
type Host interface {
	// IsSet 句柄是否有效（已创建且未释放）
	IsSet() bool

	// LocalAddr 返回实际绑定地址
	LocalAddr() net.Addr

	// CheckEvents 非阻塞检查待处理事件
	CheckEvents() (Event, bool)

	// Service 阻塞等待事件，最长 timeout
	//
	// 超时返回 (Event{}, false, nil)；主机已释放返回错误。
	Service(timeout time.Duration) (Event, bool, error)

	// Dispose 释放主机，关闭 socket 并使全部对端句柄失效
	Dispose() error
}

// ============================================================================
//                              Peer
// ============================================================================

// Peer 定义远端对端句柄
type Peer interface {
	// ID 返回传输层分配的对端标识
	ID() types.PeerID

	// Addr 返回远端地址
	Addr() netip.AddrPort

	// Timeout 设置超时参数
	//
	// scale 为节流缩放基数，baseTicks/maxTicks 以毫秒计。
	Timeout(scale, baseTicks, maxTicks uint32)

	// Send 在指定通道上发送数据
	Send(channelID uint8, data []byte) error

	// Disconnect 优雅断开，Provider 随后产生 Disconnect 事件
	Disconnect(data uint32)

	// Reset 立即释放句柄，不再产生任何事件
	Reset()

	// Statistics 返回统计快照
	Statistics() types.PeerStatistics
}

// ============================================================================
//                              Packet
// ============================================================================

// Packet 定义由 Provider 持有的数据包缓冲
//
// 数据包只在收到它的分发分支内有效：拷贝后必须立即 Dispose。
type Packet interface {
	// IsSet 缓冲是否有效
	IsSet() bool

	// Length 负载长度
	Length() int

	// CopyTo 将负载拷贝到 dst，返回拷贝字节数
	CopyTo(dst []byte) (int, error)

	// Dispose 释放缓冲，可重复调用
	Dispose()
}

// ============================================================================
//                              Event
// ============================================================================

// Event 传输层事件
type Event struct {
	// Type 事件类型
	Type types.EventType

	// Peer 事件关联的对端
	Peer Peer

	// ChannelID 数据所在通道（仅 Receive）
	ChannelID uint8

	// Data 附加数据（Connect/Disconnect 携带）
	Data uint32

	// Packet 数据包（仅 Receive，可能为 nil）
	Packet Packet
}

// PeerID 返回事件对端标识，无对端时返回 0 和 false
func (e Event) PeerID() (types.PeerID, bool) {
	if e.Peer == nil {
		return 0, false
	}
	return e.Peer.ID(), true
}

// DisposePacket 释放事件携带的数据包（若有）
func (e Event) DisposePacket() {
	if e.Packet != nil {
		e.Packet.Dispose()
	}
}
