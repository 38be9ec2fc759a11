package registry

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/dragonslaya84/IgnoranceNG/internal/core/connection"
	"github.com/dragonslaya84/IgnoranceNG/pkg/types"
)

// Registry 连接注册表
type Registry struct {
	mu    sync.RWMutex
	conns map[types.PeerID]*connection.Connection
	size  atomic.Int64
}

// New 创建空注册表
func New() *Registry {
	return &Registry{
		conns: make(map[types.PeerID]*connection.Connection),
	}
}

// Insert 插入连接，返回被替换的旧连接（若有）
func (r *Registry) Insert(id types.PeerID, conn *connection.Connection) *connection.Connection {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, exists := r.conns[id]
	r.conns[id] = conn
	if !exists {
		r.size.Add(1)
	}
	return old
}

// Lookup 查找连接
func (r *Registry) Lookup(id types.PeerID) (*connection.Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.conns[id]
	return conn, ok
}

// Remove 移除并返回连接
func (r *Registry) Remove(id types.PeerID) (*connection.Connection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.conns[id]
	if !ok {
		return nil, false
	}
	delete(r.conns, id)
	r.size.Add(-1)
	return conn, true
}

// Len 返回条目数
func (r *Registry) Len() int {
	return int(r.size.Load())
}

// Range 遍历所有条目，fn 返回 false 时停止
//
// 遍历期间持有读锁，fn 内不得修改注册表。
func (r *Registry) Range(fn func(id types.PeerID, conn *connection.Connection) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, conn := range r.conns {
		if !fn(id, conn) {
			return
		}
	}
}

// Snapshot 返回按对端 ID 排序的连接列表
func (r *Registry) Snapshot() []*connection.Connection {
	r.mu.RLock()
	out := make([]*connection.Connection, 0, len(r.conns))
	for _, conn := range r.conns {
		out = append(out, conn)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Clear 清空注册表并返回被移除的连接
func (r *Registry) Clear() []*connection.Connection {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*connection.Connection, 0, len(r.conns))
	for _, conn := range r.conns {
		out = append(out, conn)
	}
	r.conns = make(map[types.PeerID]*connection.Connection)
	r.size.Store(0)
	return out
}
