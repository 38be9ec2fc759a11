// Package host 实现主机生命周期控制器
//
// Controller 负责：
//   - 解析绑定地址（BindAll / IP 字面量 / 主机名）
//   - 通过 Peer Transport Provider 创建主机，或复用仍然有效的主机
//   - 关闭时释放主机（幂等）
//
// # 地址解析
//
//	BindAll=true            → [::]:port
//	BindAddress="127.0.0.1" → 127.0.0.1:port（不做任何解析）
//	BindAddress="game.lan"  → Resolver.LookupNetIP，优先 IPv4
//
// # 对端上限
//
// CustomMaxPeerLimit 为 true 时使用配置的 MaxPeers，否则使用 types.MaxPeers。
package host
