package transport

import "errors"

var (
	// ErrUnknownProvider 未知的传输提供者
	ErrUnknownProvider = errors.New("unknown transport provider")
)
