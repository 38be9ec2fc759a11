// Package server 组合主机控制器、事件分发循环、注册表与新连接队列
//
// # 生命周期
//
//	Start(ctx)   打开主机并启动分发循环；运行中再次调用返回 ErrAlreadyStarted
//	Shutdown()   停止循环、释放所有连接、释放主机；未运行时为空操作
//
// Start 失败时服务器保持未启动状态，可以修正配置后重试。
//
// # 消费新连接
//
//	conn, err := srv.Accept(ctx)
//	for {
//	    msg, err := conn.Receive(ctx)
//	    ...
//	}
package server
