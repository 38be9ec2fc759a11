package types

import "time"

// ============================================================================
//                              PeerStatistics - 对端统计
// ============================================================================

// PeerStatistics 对端统计快照
//
// 由 Provider 填充，本模块只读。
type PeerStatistics struct {
	// CurrentPing 当前往返时间估计（毫秒）
	CurrentPing uint64

	// PacketsSent 已发送包数
	PacketsSent uint64

	// PacketsLost 丢失包数
	PacketsLost uint64

	// BytesSent 已发送字节数
	BytesSent uint64

	// BytesReceived 已接收字节数
	BytesReceived uint64
}

// RTT 返回往返时间
func (s PeerStatistics) RTT() time.Duration {
	return time.Duration(s.CurrentPing) * time.Millisecond
}

// LossRate 返回丢包率（0~1）
func (s PeerStatistics) LossRate() float64 {
	if s.PacketsSent == 0 {
		return 0
	}
	return float64(s.PacketsLost) / float64(s.PacketsSent)
}
