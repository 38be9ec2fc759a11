package connection

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestQueue_FIFO 测试先进先出
func TestQueue_FIFO(t *testing.T) {
	q := NewQueue[int](0)

	for i := 0; i < 5; i++ {
		require.True(t, q.Publish(i))
	}
	assert.Equal(t, 5, q.Len())

	for i := 0; i < 5; i++ {
		v, ok := q.TryTake()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}

	_, ok := q.TryTake()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len())

	t.Log("✅ Queue FIFO 测试通过")
}

// TestQueue_Limit 测试容量上限
func TestQueue_Limit(t *testing.T) {
	q := NewQueue[string](2)

	assert.True(t, q.Publish("a"))
	assert.True(t, q.Publish("b"))
	assert.False(t, q.Publish("c"), "满队列应拒绝")

	v, ok := q.TryTake()
	require.True(t, ok)
	assert.Equal(t, "a", v)
	assert.True(t, q.Publish("c"))

	assert.Equal(t, []string{"b", "c"}, q.TakeAll())
	assert.Nil(t, q.TakeAll())

	t.Log("✅ Queue 容量上限测试通过")
}

// TestQueue_Ready 测试就绪信号
func TestQueue_Ready(t *testing.T) {
	q := NewQueue[int](0)

	select {
	case <-q.Ready():
		t.Fatal("空队列不应有信号")
	default:
	}

	q.Publish(1)
	q.Publish(2)

	select {
	case <-q.Ready():
	default:
		t.Fatal("发布后应有信号")
	}

	// 取出一个后仍有剩余，信号被补发
	_, ok := q.TryTake()
	require.True(t, ok)
	select {
	case <-q.Ready():
	default:
		t.Fatal("仍有剩余元素时应补发信号")
	}

	t.Log("✅ Queue 就绪信号测试通过")
}

// TestQueue_Compact 测试大量出入队后顺序不变
func TestQueue_Compact(t *testing.T) {
	q := NewQueue[int](0)

	next := 0
	for i := 0; i < 1000; i++ {
		q.Publish(i)
		if i%3 == 0 {
			v, ok := q.TryTake()
			require.True(t, ok)
			require.Equal(t, next, v)
			next++
		}
	}
	for {
		v, ok := q.TryTake()
		if !ok {
			break
		}
		require.Equal(t, next, v)
		next++
	}
	assert.Equal(t, 1000, next)

	t.Log("✅ Queue 压缩测试通过")
}

// TestQueue_TakeAllReleasesItems 测试 TakeAll 后底层数组不再引用元素
func TestQueue_TakeAllReleasesItems(t *testing.T) {
	q := NewQueue[*Message](0)
	for i := 0; i < 8; i++ {
		q.Publish(&Message{ChannelID: uint8(i)})
	}
	_, ok := q.TryTake()
	require.True(t, ok)

	out := q.TakeAll()
	require.Len(t, out, 7)
	assert.Equal(t, uint8(1), out[0].ChannelID)
	assert.Equal(t, 0, q.Len())

	for i, v := range q.items[:cap(q.items)] {
		assert.Nil(t, v, "slot %d", i)
	}

	t.Log("✅ Queue TakeAll 释放测试通过")
}

// TestQueue_Concurrent 测试单生产者单消费者并发
func TestQueue_Concurrent(t *testing.T) {
	q := NewQueue[int](0)
	const n = 10000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			q.Publish(i)
		}
	}()

	got := make([]int, 0, n)
	for len(got) < n {
		if v, ok := q.TryTake(); ok {
			got = append(got, v)
			continue
		}
		<-q.Ready()
	}
	wg.Wait()

	for i, v := range got {
		require.Equal(t, i, v)
	}

	t.Log("✅ Queue 并发测试通过")
}
