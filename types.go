package ignorance

import (
	"github.com/dragonslaya84/IgnoranceNG/internal/core/connection"
	"github.com/dragonslaya84/IgnoranceNG/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
//                              类型别名
// ════════════════════════════════════════════════════════════════════════════

// Connection 服务器侧的一个远端连接
type Connection = connection.Connection

// Message 从连接收到的一条消息
type Message = connection.Message

// ConnectionState 连接状态
type ConnectionState = connection.State

// 连接状态
const (
	StateActive       = connection.StateActive
	StateDisconnected = connection.StateDisconnected
)

// PeerID 传输层对端标识
type PeerID = types.PeerID

// ChannelType 通道可靠性策略
type ChannelType = types.ChannelType

// PeerStatistics 对端统计
type PeerStatistics = types.PeerStatistics
