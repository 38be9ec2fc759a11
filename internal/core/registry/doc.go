// Package registry 维护对端 ID 到连接的映射
//
// 注册表由事件分发循环独占写入：Insert、Remove、Clear 只在循环协程
// （或循环退出后的关闭流程）中调用。Len 与 Snapshot 可在任意协程调用。
//
// 条目存在当且仅当该对端的连接事件已处理、且尚未处理对应的断开或超时事件。
package registry
