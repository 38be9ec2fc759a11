package server

import "errors"

var (
	// ErrAlreadyStarted 服务器已在运行
	ErrAlreadyStarted = errors.New("server already started")

	// ErrShutdownTimeout 分发循环未能在限定时间内退出
	ErrShutdownTimeout = errors.New("dispatch loop did not exit in time")

	// ErrLoopStillRunning 上次停止时超时的分发循环尚未退出
	ErrLoopStillRunning = errors.New("previous dispatch loop still running")
)
