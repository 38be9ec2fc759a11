// Package mem 实现进程内的传输提供者
//
// mem 提供者不打开任何套接字：主机按地址注册在 Network 上，
// 远端通过 Host.Connect 模拟客户端接入，并可收发数据、断开或超时。
// 适用于测试、示例以及将服务器嵌入到单进程模拟中。
//
// # 快速开始
//
//	network := mem.NewNetwork()
//	provider := mem.NewProvider(network)
//
//	h, _ := provider.CreateHost(interfaces.HostConfig{
//	    Addr:      netip.MustParseAddrPort("127.0.0.1:7777"),
//	    PeerLimit: 16,
//	    Channels:  []types.ChannelType{types.ChannelReliable},
//	})
//
//	remote, _ := network.Connect(netip.MustParseAddrPort("127.0.0.1:7777"))
//	remote.Send(0, []byte("hello"))
//
// # 构造事件
//
// Host.Inject 直接把任意事件放入队列，用于构造伪造对端、
// 超大数据包等异常输入。Packet 记录 Dispose 次数，便于检查泄漏。
package mem
