// Package interfaces 定义 IgnoranceNG 的公共接口
//
// 本包只描述服务器核心所依赖的 Peer Transport Provider 契约：
//   - transport.go - Provider / Host / Peer / Packet / Event
//
// 核心（事件分发循环、主机生命周期控制器）只通过这些窄接口与具体传输交互，
// 具体实现位于 internal/core/transport 下（quic、mem）。
package interfaces
