package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ============================================================================
//                              EventType - 传输事件类型
// ============================================================================

// EventType 传输层事件类型
type EventType int

const (
	// EventNone 无事件
	EventNone EventType = iota
	// EventConnect 对端建立连接
	EventConnect
	// EventDisconnect 对端断开连接
	EventDisconnect
	// EventReceive 收到数据包
	EventReceive
	// EventTimeout 对端超时
	EventTimeout
)

// String 返回事件类型的字符串表示
func (t EventType) String() string {
	switch t {
	case EventNone:
		return "none"
	case EventConnect:
		return "connect"
	case EventDisconnect:
		return "disconnect"
	case EventReceive:
		return "receive"
	case EventTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              ChannelType - 通道可靠性策略
// ============================================================================

// ChannelType 通道可靠性策略
//
// 每个通道在主机创建时绑定一种策略，Provider 负责将其映射为自身的传输能力。
type ChannelType int

const (
	// ChannelReliable 可靠、有序（TCP 语义）
	ChannelReliable ChannelType = iota
	// ChannelReliableUnsequenced 可靠、无序
	ChannelReliableUnsequenced
	// ChannelReliableUnbundledInstant 可靠且立即发送（实验性）
	ChannelReliableUnbundledInstant
	// ChannelUnbundledInstant 不可靠、立即发送，不与其他包合并
	ChannelUnbundledInstant
	// ChannelUnreliable 不可靠、无序（纯 UDP 语义）
	ChannelUnreliable
	// ChannelUnreliableFragmented 不可靠、允许分片
	ChannelUnreliableFragmented
	// ChannelUnreliableSequenced 不可靠、有序（丢弃过期包）
	ChannelUnreliableSequenced
	// ChannelUnthrottled 不受节流控制
	ChannelUnthrottled
)

// channelTypeNames 通道类型名称表
var channelTypeNames = map[ChannelType]string{
	ChannelReliable:                 "reliable",
	ChannelReliableUnsequenced:      "reliable_unsequenced",
	ChannelReliableUnbundledInstant: "reliable_unbundled_instant",
	ChannelUnbundledInstant:         "unbundled_instant",
	ChannelUnreliable:               "unreliable",
	ChannelUnreliableFragmented:     "unreliable_fragmented",
	ChannelUnreliableSequenced:      "unreliable_sequenced",
	ChannelUnthrottled:              "unthrottled",
}

// String 返回通道类型的字符串表示
func (c ChannelType) String() string {
	if name, ok := channelTypeNames[c]; ok {
		return name
	}
	return "unknown"
}

// Valid 检查是否为已定义的通道类型
func (c ChannelType) Valid() bool {
	_, ok := channelTypeNames[c]
	return ok
}

// Reliable 是否保证送达
func (c ChannelType) Reliable() bool {
	switch c {
	case ChannelReliable, ChannelReliableUnsequenced, ChannelReliableUnbundledInstant:
		return true
	default:
		return false
	}
}

// Sequenced 是否保证顺序（可靠有序，或不可靠但丢弃过期包）
func (c ChannelType) Sequenced() bool {
	switch c {
	case ChannelReliable, ChannelReliableUnbundledInstant, ChannelUnreliableSequenced:
		return true
	default:
		return false
	}
}

// ParseChannelType 解析通道类型名称（不区分大小写，允许 '-' 作为分隔符）
func ParseChannelType(s string) (ChannelType, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for ct, n := range channelTypeNames {
		if n == name {
			return ct, nil
		}
	}
	return 0, fmt.Errorf("unknown channel type %q", s)
}

// MarshalJSON 以名称形式输出
func (c ChannelType) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid channel type %d", int(c))
	}
	return json.Marshal(c.String())
}

// UnmarshalJSON 解析名称形式
func (c *ChannelType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("channel type must be a string: %w", err)
	}
	ct, err := ParseChannelType(s)
	if err != nil {
		return err
	}
	*c = ct
	return nil
}
