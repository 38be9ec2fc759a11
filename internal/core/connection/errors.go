package connection

import "errors"

var (
	// ErrConnectionClosed 连接已断开
	ErrConnectionClosed = errors.New("connection closed")

	// ErrQueueFull 入站队列已满
	ErrQueueFull = errors.New("inbound queue full")
)
