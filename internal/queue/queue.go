// Package queue implements the bounded multi-producer, single-consumer
// ring buffers that carry validated requests into the tick engine.
package queue

import "sync"

// Capacity is the fixed slot count of every ring. The uint8 cursors wrap
// at exactly this size, so index arithmetic needs no modulo.
const Capacity = 256

// Ring is a fixed-capacity FIFO. Push may be called from any goroutine;
// Drain must only be called by the single consumer. A full ring rejects
// the push; that is a normal outcome reported to the caller, never an
// error that touches state.
type Ring[T any] struct {
	mu    sync.Mutex
	items [Capacity]T
	left  uint8 // next read position, advanced only by Drain
	right uint8 // next write position
	count int   // occupied slots, guarded by mu
}

// Push appends an item. Returns false when the ring is full.
func (q *Ring[T]) Push(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.count == Capacity {
		return false
	}
	q.items[q.right] = item
	q.right++
	q.count++
	return true
}

// Len returns the number of queued items.
func (q *Ring[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Drain processes one generation: it captures the current fill under the
// lock, releases it, applies fn to every item that was already enqueued,
// and finally advances the read cursor. Items pushed while fn runs stay
// for the next drain, which bounds consumer work per tick and keeps fast
// producers from livelocking the consumer. Returns the number processed.
func (q *Ring[T]) Drain(fn func(T)) int {
	q.mu.Lock()
	n := q.count
	q.mu.Unlock()

	i := q.left
	for k := 0; k < n; k++ {
		fn(q.items[i])
		i++
	}

	q.mu.Lock()
	q.left = i
	q.count -= n
	q.mu.Unlock()
	return n
}
