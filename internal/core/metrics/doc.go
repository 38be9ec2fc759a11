// Package metrics 提供服务器运行指标
//
// Reporter 接口由事件分发循环调用，记录：
//   - 处理的事件数（按事件类型）
//   - 连接建立/关闭（按关闭原因）与当前活跃连接数
//   - 入队消息数与字节数
//   - 丢弃的数据包（按 DropReason）
//   - 每个 tick 的耗时与事件数
//   - 被恢复的分发 panic
//
// # 实现
//
//   - Prometheus: 基于 client_golang，注册到每个服务器独立的 Registry
//   - Nop: 指标关闭时使用，所有方法为空操作
//
// # Fx 模块
//
//	app := fx.New(
//	    fx.Supply(cfg, prometheus.NewRegistry()),
//	    metrics.Module,
//	    fx.Invoke(func(r metrics.Reporter) {
//	        r.ConnectionOpened()
//	    }),
//	)
//
// # 指标名称
//
// 所有指标带配置的命名空间前缀（默认 "ignorance"），例如：
//
//	ignorance_events_total{type="receive"}
//	ignorance_packets_dropped_total{reason="oversized"}
//	ignorance_connections_active
package metrics
