package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/dragonslaya84/IgnoranceNG/pkg/types"
)

// TestDropReason_String 测试丢弃原因名称
func TestDropReason_String(t *testing.T) {
	assert.Equal(t, "oversized", DropOversized.String())
	assert.Equal(t, "ownership_mismatch", DropOwnershipMismatch.String())
	assert.Equal(t, "unknown", DropReason(99).String())

	seen := make(map[string]bool)
	for _, r := range AllDropReasons() {
		assert.False(t, seen[r.String()], "名称唯一")
		seen[r.String()] = true
	}

	t.Log("✅ DropReason 测试通过")
}

// TestPrometheus_Counters 测试计数
func TestPrometheus_Counters(t *testing.T) {
	p := NewPrometheus("test", prometheus.NewRegistry())

	p.EventProcessed(types.EventConnect)
	p.EventProcessed(types.EventReceive)
	p.EventProcessed(types.EventReceive)
	assert.Equal(t, 1.0, testutil.ToFloat64(p.events.WithLabelValues("connect")))
	assert.Equal(t, 2.0, testutil.ToFloat64(p.events.WithLabelValues("receive")))

	p.ConnectionOpened()
	p.ConnectionOpened()
	p.ConnectionClosed(types.EventTimeout)
	assert.Equal(t, 2.0, testutil.ToFloat64(p.connectionsOpened))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.connectionsActive))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.connectionsClosed.WithLabelValues("timeout")))
	assert.Equal(t, 0.0, testutil.ToFloat64(p.connectionsClosed.WithLabelValues("disconnect")))

	p.MessageQueued(0, 100)
	p.MessageQueued(1, 50)
	assert.Equal(t, 2.0, testutil.ToFloat64(p.messagesQueued))
	assert.Equal(t, 150.0, testutil.ToFloat64(p.bytesQueued))

	p.PacketDropped(DropOversized)
	assert.Equal(t, 1.0, testutil.ToFloat64(p.packetsDropped.WithLabelValues("oversized")))
	assert.Equal(t, 0.0, testutil.ToFloat64(p.packetsDropped.WithLabelValues("rate_limited")))

	p.PanicRecovered()
	assert.Equal(t, 1.0, testutil.ToFloat64(p.panics))

	p.TickCompleted(3, time.Millisecond)
	p.TickCompleted(0, time.Microsecond)
	assert.Equal(t, 1, testutil.CollectAndCount(p.tickDuration))
	assert.Equal(t, 1, testutil.CollectAndCount(p.tickEvents))

	t.Log("✅ Prometheus 计数测试通过")
}

// TestPrometheus_SeparateRegistries 测试多个实例互不干扰
func TestPrometheus_SeparateRegistries(t *testing.T) {
	a := NewPrometheus("ignorance", prometheus.NewRegistry())
	b := NewPrometheus("ignorance", prometheus.NewRegistry())

	a.PacketDropped(DropUnknownPeer)
	assert.Equal(t, 1.0, testutil.ToFloat64(a.packetsDropped.WithLabelValues("unknown_peer")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.packetsDropped.WithLabelValues("unknown_peer")))

	t.Log("✅ Prometheus 独立 Registry 测试通过")
}

// TestPrometheus_Concurrent 测试并发记录
func TestPrometheus_Concurrent(t *testing.T) {
	p := NewPrometheus("test", prometheus.NewRegistry())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				p.MessageQueued(0, 1)
				p.PacketDropped(DropQueueFull)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 8000.0, testutil.ToFloat64(p.messagesQueued))
	assert.Equal(t, 8000.0, testutil.ToFloat64(p.packetsDropped.WithLabelValues("queue_full")))

	t.Log("✅ Prometheus 并发测试通过")
}

// TestNop 测试空实现
func TestNop(t *testing.T) {
	var r Reporter = Nop{}
	assert.NotPanics(t, func() {
		r.EventProcessed(types.EventReceive)
		r.ConnectionOpened()
		r.ConnectionClosed(types.EventDisconnect)
		r.MessageQueued(0, 1)
		r.PacketDropped(DropCopyFailed)
		r.TickCompleted(1, time.Second)
		r.PanicRecovered()
	})

	t.Log("✅ Nop 测试通过")
}
