// Package types 定义 IgnoranceNG 的基础类型
//
// 这是整个系统的最底层包，不依赖任何其他内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
//
// # 文件组织
//
//   - ids.go   - PeerID 以及对端数量上限
//   - enums.go - EventType（传输事件类型）、ChannelType（通道可靠性策略）
//   - stats.go - PeerStatistics 对端统计快照
//
// # 通道类型
//
// ChannelType 是一个封闭的枚举，每个值对应一种可靠性策略。
// 本包只定义"策略是什么"，不关心"如何实现"：
// 策略到传输能力的映射集中在各 Provider 的单一翻译点完成。
package types
