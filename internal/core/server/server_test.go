package server

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"

	"github.com/dragonslaya84/IgnoranceNG/config"
	"github.com/dragonslaya84/IgnoranceNG/internal/core/connection"
	"github.com/dragonslaya84/IgnoranceNG/internal/core/host"
	"github.com/dragonslaya84/IgnoranceNG/internal/core/metrics"
	"github.com/dragonslaya84/IgnoranceNG/internal/core/transport/mem"
	"github.com/dragonslaya84/IgnoranceNG/pkg/interfaces"
	"github.com/dragonslaya84/IgnoranceNG/pkg/interfaces/mocks"
	"github.com/dragonslaya84/IgnoranceNG/pkg/types"
)

var bindAddr = netip.MustParseAddrPort("127.0.0.1:7777")

func testConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Server = cfg.Server.WithBindAddress("127.0.0.1").WithPort(7777)
	cfg.Transport = cfg.Transport.WithProvider(config.ProviderMemory)
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config) (*Server, *mem.Network) {
	t.Helper()

	provider := mem.NewProvider(nil)
	srv := New(cfg, host.NewController(provider, nil), metrics.Nop{}, nil)
	t.Cleanup(func() { _ = srv.Shutdown() })
	return srv, provider.Network()
}

func acceptWithin(t *testing.T, srv *Server) *connection.Connection {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	conn, err := srv.Accept(ctx)
	require.NoError(t, err)
	return conn
}

// TestServer_StartShutdown 测试启动与停止
func TestServer_StartShutdown(t *testing.T) {
	srv, network := newTestServer(t, testConfig())

	assert.False(t, srv.Started())
	assert.Nil(t, srv.Addr())

	require.NoError(t, srv.Start(context.Background()))
	assert.True(t, srv.Started())
	assert.Equal(t, "127.0.0.1:7777", srv.Addr().String())

	_, ok := network.Host(bindAddr)
	assert.True(t, ok, "主机绑定到配置的字面量地址")

	require.NoError(t, srv.Shutdown())
	assert.False(t, srv.Started())

	_, ok = network.Host(bindAddr)
	assert.False(t, ok, "主机已释放")

	t.Log("✅ 启动与停止测试通过")
}

// TestServer_ShutdownTwice 重复停止为空操作
func TestServer_ShutdownTwice(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())
	require.NoError(t, srv.Start(context.Background()))

	require.NoError(t, srv.Shutdown())
	assert.NotPanics(t, func() {
		assert.NoError(t, srv.Shutdown())
	})
	assert.False(t, srv.Started())

	// 从未启动时也可以停止
	fresh, _ := newTestServer(t, testConfig())
	assert.NoError(t, fresh.Shutdown())

	t.Log("✅ 重复停止测试通过")
}

// TestServer_AlreadyStarted 运行中再次启动返回错误
func TestServer_AlreadyStarted(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())
	require.NoError(t, srv.Start(context.Background()))

	err := srv.Start(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyStarted)
	assert.True(t, srv.Started())

	t.Log("✅ 重复启动测试通过")
}

// TestServer_Restart 停止后可再次启动
func TestServer_Restart(t *testing.T) {
	srv, network := newTestServer(t, testConfig())

	for i := 0; i < 3; i++ {
		require.NoError(t, srv.Start(context.Background()))

		remote, err := network.Connect(bindAddr)
		require.NoError(t, err)
		conn := acceptWithin(t, srv)
		assert.Equal(t, remote.ID(), conn.ID())

		require.NoError(t, srv.Shutdown())
		assert.Equal(t, connection.StateDisconnected, conn.State())
		assert.Equal(t, 0, srv.ConnectionCount())
	}

	t.Log("✅ 重启测试通过")
}

// stuckHost 的 Service 在 release 关闭前一直阻塞
type stuckHost struct {
	entered  chan struct{}
	release  chan struct{}
	once     sync.Once
	disposed atomic.Bool
}

func newStuckHost(release chan struct{}) *stuckHost {
	return &stuckHost{entered: make(chan struct{}), release: release}
}

func (h *stuckHost) IsSet() bool { return !h.disposed.Load() }
func (h *stuckHost) LocalAddr() net.Addr {
	return &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 7777}
}
func (h *stuckHost) CheckEvents() (interfaces.Event, bool) { return interfaces.Event{}, false }
func (h *stuckHost) Service(time.Duration) (interfaces.Event, bool, error) {
	h.once.Do(func() { close(h.entered) })
	<-h.release
	return interfaces.Event{}, false, nil
}
func (h *stuckHost) Dispose() error {
	h.disposed.Store(true)
	return nil
}

// TestServer_RestartWhileLoopLingers 停止超时后旧循环退出前不得再启动
func TestServer_RestartWhileLoopLingers(t *testing.T) {
	release := make(chan struct{})
	first := newStuckHost(release)

	unblocked := make(chan struct{})
	close(unblocked)

	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	gomock.InOrder(
		provider.EXPECT().CreateHost(gomock.Any()).Return(first, nil),
		provider.EXPECT().CreateHost(gomock.Any()).DoAndReturn(func(interfaces.HostConfig) (interfaces.Host, error) {
			return newStuckHost(unblocked), nil
		}),
	)

	srv := New(testConfig(), host.NewController(provider, nil), nil, nil)
	srv.stopTimeout = 20 * time.Millisecond
	t.Cleanup(func() { _ = srv.Shutdown() })

	require.NoError(t, srv.Start(context.Background()))
	select {
	case <-first.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("分发循环未进入轮询")
	}

	err := srv.Shutdown()
	assert.ErrorIs(t, err, ErrShutdownTimeout)
	assert.False(t, srv.Started())

	// 旧循环仍在运行
	err = srv.Start(context.Background())
	assert.ErrorIs(t, err, ErrLoopStillRunning)
	assert.False(t, srv.Started())

	close(release)
	require.Eventually(t, func() bool {
		return srv.Start(context.Background()) == nil
	}, 2*time.Second, 5*time.Millisecond)
	assert.True(t, srv.Started())

	require.NoError(t, srv.Shutdown())

	t.Log("✅ 旧循环未退出时拒绝启动测试通过")
}

// TestServer_StartFailure 启动失败时保持未启动
func TestServer_StartFailure(t *testing.T) {
	t.Run("InvalidAddress", func(t *testing.T) {
		cfg := testConfig()
		cfg.Server.BindAddress = ""
		srv, _ := newTestServer(t, cfg)

		err := srv.Start(context.Background())
		assert.ErrorIs(t, err, host.ErrInvalidBindAddress)
		assert.False(t, srv.Started())
	})

	t.Run("CreateHost", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		provider := mocks.NewMockProvider(ctrl)
		provider.EXPECT().CreateHost(gomock.Any()).Return(nil, errors.New("port busy"))

		srv := New(testConfig(), host.NewController(provider, nil), nil, nil)
		err := srv.Start(context.Background())
		assert.ErrorIs(t, err, host.ErrCreateHost)
		assert.False(t, srv.Started())
	})

	t.Log("✅ 启动失败测试通过")
}

// TestServer_TwoConnectsInOrder 两个连接按到达顺序被接受
func TestServer_TwoConnectsInOrder(t *testing.T) {
	srv, network := newTestServer(t, testConfig())
	require.NoError(t, srv.Start(context.Background()))

	r1, err := network.Connect(bindAddr)
	require.NoError(t, err)
	r2, err := network.Connect(bindAddr)
	require.NoError(t, err)

	first := acceptWithin(t, srv)
	second := acceptWithin(t, srv)
	assert.Equal(t, r1.ID(), first.ID())
	assert.Equal(t, r2.ID(), second.ID())
	assert.Equal(t, 2, srv.ConnectionCount())

	conns := srv.Connections()
	require.Len(t, conns, 2)
	assert.Same(t, first, conns[0])

	_, ok := srv.TryAccept()
	assert.False(t, ok)

	t.Log("✅ 连接顺序测试通过")
}

// TestServer_EchoRoundTrip 测试收发
func TestServer_EchoRoundTrip(t *testing.T) {
	srv, network := newTestServer(t, testConfig())
	require.NoError(t, srv.Start(context.Background()))

	remote, err := network.Connect(bindAddr)
	require.NoError(t, err)
	conn := acceptWithin(t, srv)

	_, err = remote.Send(1, []byte("marco"))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	msg, err := conn.Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), msg.ChannelID)
	assert.Equal(t, "marco", string(msg.Data))

	require.NoError(t, conn.Send(msg.ChannelID, []byte("polo")))
	inbox := remote.Inbox()
	require.Len(t, inbox, 1)
	assert.Equal(t, "polo", string(inbox[0].Data))

	t.Log("✅ 收发测试通过")
}

// TestServer_DisconnectRemovesEntry 断开后注册项被移除
func TestServer_DisconnectRemovesEntry(t *testing.T) {
	srv, network := newTestServer(t, testConfig())
	require.NoError(t, srv.Start(context.Background()))

	remote, err := network.Connect(bindAddr)
	require.NoError(t, err)
	conn := acceptWithin(t, srv)

	require.NoError(t, remote.Disconnect(0))
	require.Eventually(t, func() bool { return srv.ConnectionCount() == 0 }, 2*time.Second, time.Millisecond)
	assert.Equal(t, types.EventDisconnect, conn.DisconnectReason())

	// 应用主动断开
	remote2, err := network.Connect(bindAddr)
	require.NoError(t, err)
	conn2 := acceptWithin(t, srv)
	require.NoError(t, conn2.Disconnect())
	require.Eventually(t, func() bool { return srv.ConnectionCount() == 0 }, 2*time.Second, time.Millisecond)
	assert.True(t, remote2.Closed())

	t.Log("✅ 断开移除测试通过")
}

// TestServer_AcceptCancelled 取消等待
func TestServer_AcceptCancelled(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := srv.Accept(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	t.Log("✅ Accept 取消测试通过")
}

// TestServer_IndependentInstances 多个实例互不干扰
func TestServer_IndependentInstances(t *testing.T) {
	network := mem.NewNetwork()
	provider := mem.NewProvider(network)

	cfgA := testConfig()
	cfgB := testConfig()
	cfgB.Server = cfgB.Server.WithPort(7778)

	a := New(cfgA, host.NewController(provider, nil), nil, nil)
	b := New(cfgB, host.NewController(provider, nil), nil, nil)
	defer a.Shutdown()
	defer b.Shutdown()

	require.NoError(t, a.Start(context.Background()))
	require.NoError(t, b.Start(context.Background()))
	assert.NotEqual(t, a.ID(), b.ID())

	require.NoError(t, a.Shutdown())
	assert.False(t, a.Started())
	assert.True(t, b.Started(), "停止一个实例不影响另一个")

	t.Log("✅ 多实例测试通过")
}

// TestModule 测试 Fx 模块
func TestModule(t *testing.T) {
	provider := mem.NewProvider(nil)
	cfg := testConfig()

	var srv *Server
	app := fxtest.New(t,
		fx.Supply(cfg),
		fx.Provide(func() interfaces.Provider { return provider }),
		metrics.Module,
		host.Module(),
		Module(),
		fx.Populate(&srv),
	)
	app.RequireStart()

	require.NoError(t, srv.Start(context.Background()))
	assert.True(t, srv.Started())

	app.RequireStop()
	assert.False(t, srv.Started(), "应用停止时关闭服务器")

	t.Log("✅ Fx 模块测试通过")
}
