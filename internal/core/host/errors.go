package host

import "errors"

var (
	// ErrInvalidBindAddress 绑定地址无效
	ErrInvalidBindAddress = errors.New("invalid bind address")

	// ErrResolveBindAddress 绑定地址解析失败
	ErrResolveBindAddress = errors.New("failed to resolve bind address")

	// ErrCreateHost 传输层创建主机失败
	ErrCreateHost = errors.New("failed to create host")

	// ErrNoProvider 未配置传输提供者
	ErrNoProvider = errors.New("no transport provider")
)
