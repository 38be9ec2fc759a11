package mem

import (
	"fmt"
	"net/netip"
	"sync"

	"github.com/dragonslaya84/IgnoranceNG/pkg/interfaces"
)

// Network 进程内网络，按地址索引主机
type Network struct {
	mu       sync.Mutex
	hosts    map[netip.AddrPort]*Host
	nextPort uint16
	nextCli  uint16
}

// NewNetwork 创建空网络
func NewNetwork() *Network {
	return &Network{
		hosts:    make(map[netip.AddrPort]*Host),
		nextPort: 49152,
		nextCli:  1024,
	}
}

// Host 返回绑定在 addr 上的主机
func (n *Network) Host(addr netip.AddrPort) (*Host, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	h, ok := n.lookupLocked(addr)
	return h, ok
}

// Connect 以新分配的客户端地址连接 addr 上的主机
func (n *Network) Connect(addr netip.AddrPort) (*Remote, error) {
	h, ok := n.Host(addr)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoHost, addr)
	}
	return h.Connect(n.clientAddr())
}

func (n *Network) bind(h *Host, addr netip.AddrPort) (netip.AddrPort, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if addr.Port() == 0 {
		addr = netip.AddrPortFrom(addr.Addr(), n.nextPort)
		n.nextPort++
	}
	if _, taken := n.hosts[addr]; taken {
		return netip.AddrPort{}, fmt.Errorf("%w: %s", ErrAddressInUse, addr)
	}
	n.hosts[addr] = h
	return addr, nil
}

func (n *Network) unbind(addr netip.AddrPort) {
	n.mu.Lock()
	delete(n.hosts, addr)
	n.mu.Unlock()
}

// lookupLocked 精确匹配失败时回退到同端口的通配地址主机
func (n *Network) lookupLocked(addr netip.AddrPort) (*Host, bool) {
	if h, ok := n.hosts[addr]; ok {
		return h, true
	}
	for bound, h := range n.hosts {
		if bound.Port() == addr.Port() && bound.Addr().IsUnspecified() {
			return h, true
		}
	}
	return nil, false
}

func (n *Network) clientAddr() netip.AddrPort {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextCli++
	return netip.AddrPortFrom(netip.AddrFrom4([4]byte{10, 0, 0, 1}), n.nextCli)
}

// Provider 进程内传输提供者
type Provider struct {
	network *Network
}

var _ interfaces.Provider = (*Provider)(nil)

// NewProvider 创建提供者，network 为 nil 时创建独立网络
func NewProvider(network *Network) *Provider {
	if network == nil {
		network = NewNetwork()
	}
	return &Provider{network: network}
}

// Network 返回提供者所在的网络
func (p *Provider) Network() *Network {
	return p.network
}

// CreateHost 实现 interfaces.Provider
func (p *Provider) CreateHost(cfg interfaces.HostConfig) (interfaces.Host, error) {
	if cfg.PeerLimit <= 0 {
		return nil, fmt.Errorf("invalid peer limit %d", cfg.PeerLimit)
	}
	if len(cfg.Channels) == 0 {
		return nil, fmt.Errorf("at least one channel is required")
	}

	h := newHost(p.network, cfg)
	addr, err := p.network.bind(h, cfg.Addr)
	if err != nil {
		return nil, err
	}
	h.addr = addr
	logger.Debug("内存主机已创建", "addr", addr, "peerLimit", cfg.PeerLimit, "channels", len(cfg.Channels))
	return h, nil
}
