// Package ignorance 是 IgnoranceNG 服务端传输的公共入口
//
// IgnoranceNG 在一个绑定的主机上复用多个远端对端，将可靠 UDP 传输层的
// 连接、断开、超时、接收事件翻译为每个连接的消息流。
//
// # 快速开始
//
//	srv, err := ignorance.New(
//	    ignorance.WithPort(7777),
//	    ignorance.WithMaxPeers(64),
//	)
//	if err != nil {
//	    return err
//	}
//	defer srv.Close()
//
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
//
//	for {
//	    conn, err := srv.Accept(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    go serve(ctx, conn)
//	}
//
// # 生命周期
//
// Start 打开主机并启动事件分发循环；Shutdown 停止循环、释放全部连接与主机，
// 之后可以再次 Start；Close 在 Shutdown 之外还会停止内部的 Fx 应用，
// 关闭后的服务器不能再使用。
//
// # 传输
//
// 默认使用基于 QUIC 的传输，WithMemoryNetwork 切换到进程内传输，
// WithProvider 可以接入任意实现 interfaces.Provider 的传输。
package ignorance
