// Package quic 基于 quic-go 实现 Peer Transport Provider
//
// 一个主机对应一个 UDP socket 上的 quic.Transport，服务端使用自签名证书。
// 对端 ID 取 [0, PeerLimit) 中最小的空闲槽位，满员时拒绝新连接。
//
// # 通道映射
//
// 每个通道的可靠性策略由 deliveryFor 统一翻译：
//
//   - Reliable、ReliableUnbundledInstant：每通道一条有序单向流
//   - ReliableUnsequenced：每条消息一条单向流
//   - UnreliableSequenced：数据报，丢弃过期序号
//   - Unreliable、UnbundledInstant、Unthrottled：数据报
//   - UnreliableFragmented：数据报，超过数据报上限时改用单条流
//
// # 帧格式
//
//	数据报:  [channel u8][seq u32 BE][payload]
//	单向流:  [channel u8] 之后为若干 [uvarint len][payload]
//
// # 使用示例
//
//	provider := quic.NewProvider(quic.DefaultConfig())
//	h, err := provider.CreateHost(interfaces.HostConfig{
//	    Addr:          netip.MustParseAddrPort("0.0.0.0:7777"),
//	    PeerLimit:     64,
//	    Channels:      []types.ChannelType{types.ChannelReliable, types.ChannelUnreliable},
//	    MaxPacketSize: 33554432,
//	})
package quic
