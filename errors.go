package ignorance

import (
	"errors"

	"github.com/dragonslaya84/IgnoranceNG/internal/core/connection"
	"github.com/dragonslaya84/IgnoranceNG/internal/core/server"
)

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 服务器生命周期错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrServerClosed 服务器已关闭
	ErrServerClosed = errors.New("server closed")

	// ErrAlreadyStarted 服务器已在运行
	ErrAlreadyStarted = server.ErrAlreadyStarted

	// ErrShutdownTimeout 等待分发循环退出超时
	ErrShutdownTimeout = server.ErrShutdownTimeout

	// ErrLoopStillRunning 上次停止超时的分发循环尚未退出
	ErrLoopStillRunning = server.ErrLoopStillRunning

	// ────────────────────────────────────────────────────────────────────────
	// 连接错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrConnectionClosed 连接已断开
	ErrConnectionClosed = connection.ErrConnectionClosed

	// ErrQueueFull 连接的入站队列已满
	ErrQueueFull = connection.ErrQueueFull
)
