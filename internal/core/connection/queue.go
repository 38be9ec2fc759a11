package connection

import "sync"

// Queue 是带就绪信号的并发安全 FIFO
//
// 生产者调用 Publish，消费者调用 TryTake 或等待 Ready()。
// limit 为 0 表示不限制长度。
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
	head  int
	limit int
	ready chan struct{}
}

// NewQueue 创建队列
func NewQueue[T any](limit int) *Queue[T] {
	if limit < 0 {
		limit = 0
	}
	return &Queue[T]{
		limit: limit,
		ready: make(chan struct{}, 1),
	}
}

// Publish 追加元素，队列已满时返回 false
func (q *Queue[T]) Publish(v T) bool {
	q.mu.Lock()
	if q.limit > 0 && len(q.items)-q.head >= q.limit {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, v)
	q.mu.Unlock()

	q.signal()
	return true
}

// TryTake 取出队首元素，队列为空时返回 false
func (q *Queue[T]) TryTake() (T, bool) {
	var zero T

	q.mu.Lock()
	if q.head >= len(q.items) {
		q.mu.Unlock()
		return zero, false
	}
	v := q.items[q.head]
	q.items[q.head] = zero
	q.head++
	remaining := len(q.items) - q.head
	q.compact()
	q.mu.Unlock()

	// 还有剩余元素时补发信号，避免其他等待者错过
	if remaining > 0 {
		q.signal()
	}
	return v, true
}

// TakeAll 按顺序取出全部元素
func (q *Queue[T]) TakeAll() []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.items) - q.head
	if n == 0 {
		return nil
	}
	out := make([]T, n)
	copy(out, q.items[q.head:])
	clear(q.items)
	q.items = q.items[:0]
	q.head = 0
	return out
}

// Len 返回当前长度
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// Ready 返回就绪信号通道
//
// 收到信号不保证 TryTake 一定成功（可能已被其他消费者取走），
// 调用方应在循环中重试。
func (q *Queue[T]) Ready() <-chan struct{} {
	return q.ready
}

func (q *Queue[T]) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// compact 在头部空洞过大时回收底层数组，调用方持有锁
func (q *Queue[T]) compact() {
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
		return
	}
	if q.head > 64 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		var zero T
		for i := n; i < len(q.items); i++ {
			q.items[i] = zero
		}
		q.items = q.items[:n]
		q.head = 0
	}
}
