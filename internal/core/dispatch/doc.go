// Package dispatch 实现事件分发循环
//
// Loop 在单个协程中运行，是注册表和连接生命周期的唯一写入者。
// 每个 tick：
//
//  1. 以非阻塞方式排空 Host.CheckEvents
//  2. 没有待处理事件时，最多执行一次 Host.Service(pollTimeout)
//  3. 逐个分发事件
//  4. 在注入的时钟上休眠 TickInterval
//
// 上下文取消只在 tick 边界检查。
//
// # 事件处理
//
//   - Connect: 设置自定义超时（若启用），创建连接，发布到新连接队列，写入注册表
//   - Disconnect / Timeout: 已知对端从注册表移除并释放句柄；未知对端只记录日志
//   - Receive: 所有权校验 → 数据包校验 → 大小校验 → 限速 → 拷贝 → 入队
//   - 其他: 忽略
//
// 无论走哪个分支，事件携带的数据包都恰好释放一次。
// 单个事件处理中的 panic 会被恢复并计数，循环继续运行。
package dispatch
