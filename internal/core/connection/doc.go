// Package connection 实现服务器侧的连接实体
//
// 一个 Connection 对应一个已被传输层接纳的远端对端，持有：
//   - 对端句柄（interfaces.Peer）
//   - 入站消息队列（单生产者：事件分发循环；单消费者：应用）
//   - 生命周期状态（Active → Disconnected，单向）
//
// # 队列
//
// Queue[T] 是一个带就绪信号的互斥 FIFO，同时用于：
//   - 每个连接的入站消息队列
//   - 新连接通知面（Incoming-Connection Surface）
//
// Publish 从不阻塞（有上限时满则拒绝），TryTake 非阻塞，
// Ready() 返回的通道可在 select 中等待新元素。
//
// # 消息所有权
//
// Message.Data 始终是独立拷贝，不引用传输层的数据包缓冲区。
package connection
