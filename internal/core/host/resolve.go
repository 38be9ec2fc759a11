package host

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"strings"

	"github.com/dragonslaya84/IgnoranceNG/config"
)

// Resolver 主机名解析器
//
// *net.Resolver 满足该接口。
type Resolver interface {
	LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error)
}

var _ Resolver = (*net.Resolver)(nil)

// ResolveBindAddress 根据服务器配置计算绑定地址
//
// IP 字面量直接使用，只有主机名才会调用 resolver。
func ResolveBindAddress(ctx context.Context, resolver Resolver, cfg config.ServerConfig) (netip.AddrPort, error) {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return netip.AddrPort{}, fmt.Errorf("%w: port %d out of range", ErrInvalidBindAddress, cfg.Port)
	}
	port := uint16(cfg.Port)

	if cfg.BindAll {
		return netip.AddrPortFrom(netip.IPv6Unspecified(), port), nil
	}

	host := strings.TrimSpace(cfg.BindAddress)
	if host == "" {
		return netip.AddrPort{}, fmt.Errorf("%w: empty address", ErrInvalidBindAddress)
	}

	// 兼容 "[::1]" 写法
	host = strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
	if ip, err := netip.ParseAddr(host); err == nil {
		return netip.AddrPortFrom(ip, port), nil
	}

	if resolver == nil {
		resolver = net.DefaultResolver
	}
	addrs, err := resolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("%w %q: %w", ErrResolveBindAddress, host, err)
	}
	if len(addrs) == 0 {
		return netip.AddrPort{}, fmt.Errorf("%w %q: no addresses", ErrResolveBindAddress, host)
	}

	logger.Debug("绑定地址已解析", "host", host, "candidates", len(addrs))
	return netip.AddrPortFrom(preferIPv4(addrs), port), nil
}

// preferIPv4 返回第一个 IPv4 地址，没有则返回第一个地址
func preferIPv4(addrs []netip.Addr) netip.Addr {
	for _, a := range addrs {
		if a.Unmap().Is4() {
			return a.Unmap()
		}
	}
	return addrs[0]
}
