package host

import (
	"context"
	"errors"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dragonslaya84/IgnoranceNG/config"
)

// recordingResolver 记录调用次数的解析器
type recordingResolver struct {
	calls int
	hosts []string
	addrs []netip.Addr
	err   error
}

func (r *recordingResolver) LookupNetIP(_ context.Context, _, host string) ([]netip.Addr, error) {
	r.calls++
	r.hosts = append(r.hosts, host)
	return r.addrs, r.err
}

func serverCfg(bindAll bool, addr string, port int) config.ServerConfig {
	cfg := config.DefaultServerConfig()
	cfg.BindAll = bindAll
	cfg.BindAddress = addr
	cfg.Port = port
	return cfg
}

// TestResolveBindAddress_Literal 测试 IP 字面量不触发解析
func TestResolveBindAddress_Literal(t *testing.T) {
	r := &recordingResolver{}

	addr, err := ResolveBindAddress(context.Background(), r, serverCfg(false, "127.0.0.1", 7777))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7777", addr.String())

	addr, err = ResolveBindAddress(context.Background(), r, serverCfg(false, "[::1]", 9000))
	require.NoError(t, err)
	assert.Equal(t, "[::1]:9000", addr.String())

	assert.Equal(t, 0, r.calls, "IP 字面量不应调用解析器")

	t.Log("✅ IP 字面量测试通过")
}

// TestResolveBindAddress_BindAll 测试通配绑定
func TestResolveBindAddress_BindAll(t *testing.T) {
	r := &recordingResolver{}

	addr, err := ResolveBindAddress(context.Background(), r, serverCfg(true, "game.example", 7777))
	require.NoError(t, err)
	assert.True(t, addr.Addr().IsUnspecified())
	assert.Equal(t, uint16(7777), addr.Port())
	assert.Equal(t, 0, r.calls, "BindAll 忽略绑定地址")

	t.Log("✅ BindAll 测试通过")
}

// TestResolveBindAddress_Hostname 测试主机名解析优先 IPv4
func TestResolveBindAddress_Hostname(t *testing.T) {
	r := &recordingResolver{addrs: []netip.Addr{
		netip.MustParseAddr("fe80::1"),
		netip.MustParseAddr("::ffff:192.168.1.10"),
		netip.MustParseAddr("10.0.0.1"),
	}}

	addr, err := ResolveBindAddress(context.Background(), r, serverCfg(false, "game.lan", 7000))
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.10:7000", addr.String())
	assert.Equal(t, []string{"game.lan"}, r.hosts)

	t.Run("OnlyIPv6", func(t *testing.T) {
		r := &recordingResolver{addrs: []netip.Addr{netip.MustParseAddr("2001:db8::1")}}
		addr, err := ResolveBindAddress(context.Background(), r, serverCfg(false, "v6.lan", 1))
		require.NoError(t, err)
		assert.Equal(t, "[2001:db8::1]:1", addr.String())
	})

	t.Log("✅ 主机名解析测试通过")
}

// TestResolveBindAddress_Errors 测试错误分类
func TestResolveBindAddress_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := ResolveBindAddress(ctx, &recordingResolver{}, serverCfg(false, "  ", 7777))
	assert.ErrorIs(t, err, ErrInvalidBindAddress)

	_, err = ResolveBindAddress(ctx, &recordingResolver{}, serverCfg(false, "127.0.0.1", 70000))
	assert.ErrorIs(t, err, ErrInvalidBindAddress)

	lookupErr := errors.New("no such host")
	_, err = ResolveBindAddress(ctx, &recordingResolver{err: lookupErr}, serverCfg(false, "missing.lan", 7777))
	assert.ErrorIs(t, err, ErrResolveBindAddress)
	assert.ErrorIs(t, err, lookupErr)

	_, err = ResolveBindAddress(ctx, &recordingResolver{}, serverCfg(false, "empty.lan", 7777))
	assert.ErrorIs(t, err, ErrResolveBindAddress)

	t.Log("✅ 解析错误测试通过")
}
