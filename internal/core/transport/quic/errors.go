package quic

import (
	"errors"

	"github.com/quic-go/quic-go"
)

var (
	// ErrHostDisposed 主机已释放
	ErrHostDisposed = errors.New("quic host disposed")

	// ErrPeerClosed 对端已关闭
	ErrPeerClosed = errors.New("quic peer closed")

	// ErrInvalidChannel 通道 ID 超出主机配置
	ErrInvalidChannel = errors.New("invalid channel")

	// ErrDatagramTooLarge 负载超过数据报上限
	ErrDatagramTooLarge = errors.New("payload exceeds datagram limit")

	// ErrFrameTooLarge 流帧超过最大数据包大小
	ErrFrameTooLarge = errors.New("frame exceeds max packet size")

	// ErrShortDatagram 数据报缺少帧头
	ErrShortDatagram = errors.New("datagram shorter than header")

	// ErrPacketDisposed 数据包已释放
	ErrPacketDisposed = errors.New("packet disposed")

	// ErrShortBuffer 目标缓冲区不足
	ErrShortBuffer = errors.New("destination buffer too small")
)

// 应用层关闭码
const (
	codeDisconnect quic.ApplicationErrorCode = 0x0
	codeServerFull quic.ApplicationErrorCode = 0x1
	codeTimeout    quic.ApplicationErrorCode = 0x2
	codeReset      quic.ApplicationErrorCode = 0x3
	codeShutdown   quic.ApplicationErrorCode = 0x4
)
