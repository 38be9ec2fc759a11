package mem

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dragonslaya84/IgnoranceNG/pkg/interfaces"
	"github.com/dragonslaya84/IgnoranceNG/pkg/types"
)

var testAddr = netip.MustParseAddrPort("127.0.0.1:7777")

func newTestHost(t *testing.T, peerLimit int) (*Network, *Host) {
	t.Helper()

	network := NewNetwork()
	h, err := NewProvider(network).CreateHost(interfaces.HostConfig{
		Addr:      testAddr,
		PeerLimit: peerLimit,
		Channels:  []types.ChannelType{types.ChannelReliable, types.ChannelUnreliable},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Dispose() })
	return network, h.(*Host)
}

func mustEvent(t *testing.T, h *Host) interfaces.Event {
	t.Helper()
	ev, ok := h.CheckEvents()
	require.True(t, ok, "应有事件")
	return ev
}

// TestProvider_CreateHost 测试创建主机
func TestProvider_CreateHost(t *testing.T) {
	network, h := newTestHost(t, 4)

	assert.True(t, h.IsSet())
	assert.Equal(t, "127.0.0.1:7777", h.LocalAddr().String())

	got, ok := network.Host(testAddr)
	require.True(t, ok)
	assert.Same(t, h, got)

	_, err := NewProvider(network).CreateHost(interfaces.HostConfig{
		Addr: testAddr, PeerLimit: 1, Channels: []types.ChannelType{types.ChannelReliable},
	})
	assert.ErrorIs(t, err, ErrAddressInUse)

	_, err = NewProvider(network).CreateHost(interfaces.HostConfig{Addr: testAddr, PeerLimit: 0})
	assert.Error(t, err)

	t.Log("✅ CreateHost 测试通过")
}

// TestProvider_EphemeralPort 测试端口 0 自动分配
func TestProvider_EphemeralPort(t *testing.T) {
	p := NewProvider(nil)
	h, err := p.CreateHost(interfaces.HostConfig{
		Addr:      netip.MustParseAddrPort("[::]:0"),
		PeerLimit: 1,
		Channels:  []types.ChannelType{types.ChannelReliable},
	})
	require.NoError(t, err)
	defer h.Dispose()

	port := h.(*Host).Addr().Port()
	assert.NotZero(t, port)

	// 通配地址主机可通过具体地址访问
	_, err = p.Network().Connect(netip.AddrPortFrom(netip.MustParseAddr("127.0.0.1"), port))
	assert.NoError(t, err)

	t.Log("✅ 端口自动分配测试通过")
}

// TestHost_ConnectAssignsLowestSlot 测试对端 ID 分配
func TestHost_ConnectAssignsLowestSlot(t *testing.T) {
	network, h := newTestHost(t, 2)

	r0, err := network.Connect(testAddr)
	require.NoError(t, err)
	r1, err := network.Connect(testAddr)
	require.NoError(t, err)
	assert.Equal(t, types.PeerID(0), r0.ID())
	assert.Equal(t, types.PeerID(1), r1.ID())

	_, err = network.Connect(testAddr)
	assert.ErrorIs(t, err, ErrHostFull)

	ev := mustEvent(t, h)
	assert.Equal(t, types.EventConnect, ev.Type)
	assert.Equal(t, types.PeerID(0), ev.Peer.ID())

	// 释放 0 号槽位后复用
	require.NoError(t, r0.Disconnect(0))
	r2, err := network.Connect(testAddr)
	require.NoError(t, err)
	assert.Equal(t, types.PeerID(0), r2.ID())

	t.Log("✅ 对端 ID 分配测试通过")
}

// TestHost_EventOrder 测试事件顺序与槽位释放
func TestHost_EventOrder(t *testing.T) {
	network, h := newTestHost(t, 4)

	r, err := network.Connect(testAddr)
	require.NoError(t, err)
	pkt, err := r.Send(1, []byte("abc"))
	require.NoError(t, err)
	require.NoError(t, r.TimeOut())

	assert.Equal(t, 3, h.Pending())

	ev := mustEvent(t, h)
	assert.Equal(t, types.EventConnect, ev.Type)

	ev = mustEvent(t, h)
	assert.Equal(t, types.EventReceive, ev.Type)
	assert.Equal(t, uint8(1), ev.ChannelID)
	assert.Same(t, pkt, ev.Packet)
	assert.Equal(t, 3, ev.Packet.Length())

	ev = mustEvent(t, h)
	assert.Equal(t, types.EventTimeout, ev.Type)

	_, ok := h.CheckEvents()
	assert.False(t, ok)
	assert.Equal(t, 0, h.PeerCount())
	assert.True(t, r.Closed())

	_, err = r.Send(0, []byte("late"))
	assert.ErrorIs(t, err, ErrPeerClosed)

	t.Log("✅ 事件顺序测试通过")
}

// TestHost_Service 测试阻塞轮询
func TestHost_Service(t *testing.T) {
	network, h := newTestHost(t, 4)

	start := time.Now()
	_, ok, err := h.Service(20 * time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)

	go func() {
		time.Sleep(10 * time.Millisecond)
		_, _ = network.Connect(testAddr)
	}()
	ev, ok, err := h.Service(5 * time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, types.EventConnect, ev.Type)

	require.NoError(t, h.Dispose())
	_, _, err = h.Service(time.Millisecond)
	assert.ErrorIs(t, err, ErrHostDisposed)

	t.Log("✅ Service 测试通过")
}

// TestHost_Dispose 测试释放
func TestHost_Dispose(t *testing.T) {
	network, h := newTestHost(t, 4)

	r, err := network.Connect(testAddr)
	require.NoError(t, err)
	pkt, err := r.Send(0, []byte("pending"))
	require.NoError(t, err)

	require.NoError(t, h.Dispose())
	require.NoError(t, h.Dispose(), "重复释放无错误")

	assert.False(t, h.IsSet())
	assert.Equal(t, 1, pkt.DisposeCount(), "未处理事件的数据包被释放")
	assert.True(t, r.Closed())

	_, ok := network.Host(testAddr)
	assert.False(t, ok, "地址已解绑")

	_, err = h.Connect(netip.MustParseAddrPort("10.0.0.9:1"))
	assert.ErrorIs(t, err, ErrHostDisposed)
	assert.ErrorIs(t, h.Inject(interfaces.Event{}), ErrHostDisposed)

	t.Log("✅ Dispose 测试通过")
}

// TestPeer_SendDisconnectReset 测试服务器侧对端操作
func TestPeer_SendDisconnectReset(t *testing.T) {
	network, h := newTestHost(t, 4)

	r, err := network.Connect(testAddr)
	require.NoError(t, err)
	p := r.Peer()

	require.NoError(t, p.Send(0, []byte("hi")))
	assert.ErrorIs(t, p.Send(9, []byte("x")), ErrInvalidChannel)

	inbox := r.Inbox()
	require.Len(t, inbox, 1)
	assert.Equal(t, []byte("hi"), inbox[0].Data)
	assert.Equal(t, uint64(1), p.Statistics().PacketsSent)
	assert.Equal(t, uint64(2), p.Statistics().BytesSent)

	p.Timeout(types.ThrottleScale, 1000, 3000)
	to, ok := p.Timeouts()
	require.True(t, ok)
	assert.Equal(t, Timeouts{Scale: types.ThrottleScale, Base: 1000, Max: 3000}, to)

	mustEvent(t, h) // connect

	p.Disconnect(42)
	ev := mustEvent(t, h)
	assert.Equal(t, types.EventDisconnect, ev.Type)
	assert.Equal(t, uint32(42), ev.Data)
	assert.True(t, r.Closed())

	p.Reset()
	p.Reset()
	assert.Equal(t, 2, p.Resets())
	_, ok = h.CheckEvents()
	assert.False(t, ok, "Reset 不产生事件")
	assert.ErrorIs(t, p.Send(0, []byte("x")), ErrPeerClosed)

	t.Log("✅ 对端操作测试通过")
}

// TestPacket 测试数据包
func TestPacket(t *testing.T) {
	src := []byte("payload")
	p := NewPacket(src)
	src[0] = 'X'

	assert.True(t, p.IsSet())
	assert.Equal(t, 7, p.Length())

	dst := make([]byte, 7)
	n, err := p.CopyTo(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(dst[:n]), "创建时已拷贝")

	_, err = p.CopyTo(make([]byte, 3))
	assert.ErrorIs(t, err, ErrShortBuffer)

	p.Dispose()
	assert.False(t, p.IsSet())
	assert.Equal(t, 1, p.DisposeCount())
	_, err = p.CopyTo(dst)
	assert.ErrorIs(t, err, ErrPacketDisposed)

	t.Log("✅ Packet 测试通过")
}
