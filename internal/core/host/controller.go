package host

import (
	"context"
	"fmt"
	"net/netip"
	"sync"

	"github.com/dragonslaya84/IgnoranceNG/config"
	"github.com/dragonslaya84/IgnoranceNG/pkg/interfaces"
	"github.com/dragonslaya84/IgnoranceNG/pkg/lib/log"
	"github.com/dragonslaya84/IgnoranceNG/pkg/types"
)

var logger = log.Logger("core/host")

// Controller 主机生命周期控制器
type Controller struct {
	provider interfaces.Provider
	resolver Resolver

	mu   sync.Mutex
	host interfaces.Host
}

// NewController 创建控制器，resolver 为 nil 时使用 net.DefaultResolver
func NewController(provider interfaces.Provider, resolver Resolver) *Controller {
	return &Controller{
		provider: provider,
		resolver: resolver,
	}
}

// HostConfigFor 由统一配置和已解析的地址构造主机参数
func HostConfigFor(cfg *config.Config, addr netip.AddrPort) interfaces.HostConfig {
	channels := append([]types.ChannelType(nil), cfg.Channels.Types...)
	return interfaces.HostConfig{
		Addr:          addr,
		PeerLimit:     cfg.Server.PeerLimit(),
		Channels:      channels,
		MaxPacketSize: cfg.Packet.MaxPacketSize,
	}
}

// Open 返回可用的主机
//
// 当前主机仍然有效时直接复用，否则解析地址并创建新主机。
func (c *Controller) Open(ctx context.Context, cfg *config.Config) (interfaces.Host, error) {
	if c.provider == nil {
		return nil, ErrNoProvider
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.host != nil && c.host.IsSet() {
		logger.Debug("复用现有主机", "addr", c.host.LocalAddr())
		return c.host, nil
	}

	addr, err := ResolveBindAddress(ctx, c.resolver, cfg.Server)
	if err != nil {
		logger.Error("绑定地址无效", "bindAll", cfg.Server.BindAll, "bindAddress", cfg.Server.BindAddress, "error", err)
		return nil, err
	}

	hc := HostConfigFor(cfg, addr)
	h, err := c.provider.CreateHost(hc)
	if err != nil {
		logger.Error("创建主机失败", "addr", addr, "error", err)
		return nil, fmt.Errorf("%w on %s: %w", ErrCreateHost, addr, err)
	}
	if h == nil || !h.IsSet() {
		return nil, fmt.Errorf("%w on %s: provider returned an unusable host", ErrCreateHost, addr)
	}

	c.host = h
	logger.Info("主机已创建",
		"addr", h.LocalAddr(),
		"peerLimit", hc.PeerLimit,
		"channels", hc.ChannelCount())
	return h, nil
}

// Host 返回当前主机（可能为 nil 或已失效）
func (c *Controller) Host() interfaces.Host {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.host
}

// Close 释放有效的主机，没有主机时为空操作
func (c *Controller) Close() error {
	c.mu.Lock()
	h := c.host
	c.host = nil
	c.mu.Unlock()

	if h == nil || !h.IsSet() {
		return nil
	}
	if err := h.Dispose(); err != nil {
		return fmt.Errorf("dispose host: %w", err)
	}
	logger.Debug("主机已释放")
	return nil
}
