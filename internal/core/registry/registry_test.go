package registry

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dragonslaya84/IgnoranceNG/internal/core/connection"
	"github.com/dragonslaya84/IgnoranceNG/pkg/types"
)

type stubPeer struct{ id types.PeerID }

func (p stubPeer) ID() types.PeerID                          { return p.id }
func (p stubPeer) Addr() netip.AddrPort                      { return netip.AddrPort{} }
func (p stubPeer) Timeout(scale, baseTicks, maxTicks uint32) {}
func (p stubPeer) Send(uint8, []byte) error                  { return nil }
func (p stubPeer) Disconnect(uint32)                         {}
func (p stubPeer) Reset()                                    {}
func (p stubPeer) Statistics() types.PeerStatistics          { return types.PeerStatistics{} }

func newConn(id types.PeerID) *connection.Connection {
	return connection.New(stubPeer{id: id}, connection.Options{})
}

// TestRegistry_InsertLookupRemove 测试基本操作
func TestRegistry_InsertLookupRemove(t *testing.T) {
	r := New()
	assert.Equal(t, 0, r.Len())

	c1 := newConn(1)
	assert.Nil(t, r.Insert(1, c1))
	assert.Equal(t, 1, r.Len())

	got, ok := r.Lookup(1)
	require.True(t, ok)
	assert.Same(t, c1, got)

	_, ok = r.Lookup(2)
	assert.False(t, ok)

	removed, ok := r.Remove(1)
	require.True(t, ok)
	assert.Same(t, c1, removed)
	assert.Equal(t, 0, r.Len())

	_, ok = r.Remove(1)
	assert.False(t, ok, "重复移除不报错")
	assert.Equal(t, 0, r.Len())

	t.Log("✅ Registry 基本操作测试通过")
}

// TestRegistry_Replace 测试替换旧条目
func TestRegistry_Replace(t *testing.T) {
	r := New()

	old := newConn(5)
	fresh := newConn(5)
	r.Insert(5, old)

	replaced := r.Insert(5, fresh)
	assert.Same(t, old, replaced)
	assert.Equal(t, 1, r.Len(), "键唯一")

	got, _ := r.Lookup(5)
	assert.Same(t, fresh, got)

	t.Log("✅ Registry 替换测试通过")
}

// TestRegistry_SnapshotAndClear 测试快照与清空
func TestRegistry_SnapshotAndClear(t *testing.T) {
	r := New()
	for _, id := range []types.PeerID{3, 1, 2} {
		r.Insert(id, newConn(id))
	}

	snap := r.Snapshot()
	require.Len(t, snap, 3)
	for i, c := range snap {
		assert.Equal(t, types.PeerID(i+1), c.ID())
	}

	count := 0
	r.Range(func(id types.PeerID, conn *connection.Connection) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count, "返回 false 时停止遍历")

	cleared := r.Clear()
	assert.Len(t, cleared, 3)
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Snapshot())

	t.Log("✅ Registry 快照与清空测试通过")
}
