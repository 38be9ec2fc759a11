package dispatch

import "errors"

var (
	// ErrPacketCopy 数据包拷贝失败
	ErrPacketCopy = errors.New("packet copy failed")

	// ErrNoHost 未提供主机
	ErrNoHost = errors.New("no host")
)
