// Package transport 根据配置选择 Peer Transport Provider
//
// 支持的提供者：
//
//   - quic：基于 quic-go 的真实网络传输（默认）
//   - memory：进程内传输，用于测试与嵌入
//
// Module 向 Fx 容器提供 interfaces.Provider，主机控制器据此创建主机。
package transport
