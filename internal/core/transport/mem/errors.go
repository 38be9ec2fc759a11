package mem

import "errors"

var (
	// ErrAddressInUse 地址已被占用
	ErrAddressInUse = errors.New("address already in use")

	// ErrNoHost 地址上没有主机
	ErrNoHost = errors.New("no host at address")

	// ErrHostDisposed 主机已释放
	ErrHostDisposed = errors.New("host disposed")

	// ErrHostFull 主机对端已满
	ErrHostFull = errors.New("host is full")

	// ErrInvalidChannel 通道 ID 超出范围
	ErrInvalidChannel = errors.New("invalid channel")

	// ErrPeerClosed 对端已断开
	ErrPeerClosed = errors.New("peer closed")

	// ErrPacketDisposed 数据包已释放
	ErrPacketDisposed = errors.New("packet disposed")

	// ErrShortBuffer 目标缓冲区不足
	ErrShortBuffer = errors.New("short buffer")
)
