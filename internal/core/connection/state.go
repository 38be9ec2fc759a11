package connection

// State 连接状态
type State int32

const (
	// StateActive 活跃
	StateActive State = iota

	// StateDisconnected 已断开（终态）
	StateDisconnected
)

// String 返回状态名称
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}
