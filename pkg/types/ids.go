package types

import "strconv"

// ============================================================================
//                              PeerID - 对端标识
// ============================================================================

// PeerID 传输层分配的对端标识
//
// 由 Peer Transport Provider 分配，在当前已注册的连接中唯一。
// 对端断开后该标识可能被新连接复用。
type PeerID uint32

// String 返回十进制表示
func (id PeerID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ============================================================================
//                              常量
// ============================================================================

const (
	// MaxPeers 传输层支持的最大对端数量
	//
	// 未启用自定义上限时使用该值。
	MaxPeers = 4095

	// MaxChannels 单个主机支持的最大通道数量
	MaxChannels = 255

	// ThrottleScale 对端超时/节流计算的缩放基数
	ThrottleScale = 32
)
