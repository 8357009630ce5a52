package core

import (
	"context"
	"sync"
)

const (
	defaultQueueCap     = 16
	compactMinCap       = 64 // Don't compact if capacity is less than this
	compactShrinkFactor = 4  // Trigger compaction when len < cap/4
)

// Queue is an unbounded FIFO hand-off queue. It is the only channel
// through which independently running activities (button pollers, the
// countdown, the challenge protocols) hand work to each other: game-phase
// continuations on the transfer queue, press/release stamps on the
// per-challenge timing queues.
//
// Put never blocks. Get suspends the caller while the queue is empty and
// wakes on the empty -> non-empty transition; the wake signal is cleared
// once the queue drains so a stale signal cannot satisfy a later wait.
// Items are delivered in submission order and each item is delivered to
// exactly one Get caller.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
	// signal carries the "non-empty" event. Capacity 1: Put sets it,
	// the Get that drains the queue clears it.
	signal chan struct{}
}

// NewQueue creates an empty Queue.
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{
		items:  make([]T, 0, defaultQueueCap),
		signal: make(chan struct{}, 1),
	}
}

// Put appends item and wakes a waiting Get, if any. Never blocks.
func (q *Queue[T]) Put(item T) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// Get removes and returns the oldest item, blocking while the queue is
// empty. Returns ctx.Err() if ctx is cancelled before an item arrives.
// Waiters must re-check emptiness after waking because multiple
// producers and consumers may race on the same signal.
func (q *Queue[T]) Get(ctx context.Context) (T, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			item := q.popLocked()
			if len(q.items) == 0 {
				// Queue drained: clear a pending wake signal so a
				// later Get is not spuriously satisfied.
				select {
				case <-q.signal:
				default:
				}
			} else {
				// Items remain: re-arm the signal in case several
				// Puts coalesced into a single wake.
				select {
				case q.signal <- struct{}{}:
				default:
				}
			}
			q.mu.Unlock()
			return item, nil
		}
		q.mu.Unlock()

		select {
		case <-q.signal:
			// Re-check: another consumer may have taken the item.
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// Peek returns the oldest item without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.items[0], true
}

// Size returns the number of queued items.
func (q *Queue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// IsEmpty reports whether the queue holds no items.
func (q *Queue[T]) IsEmpty() bool {
	return q.Size() == 0
}

func (q *Queue[T]) popLocked() T {
	item := q.items[0]
	// Zero out the element in the underlying array to prevent memory leak
	var zero T
	q.items[0] = zero
	q.items = q.items[1:]
	q.maybeCompactLocked()
	return item
}

func (q *Queue[T]) maybeCompactLocked() {
	n := len(q.items)
	c := cap(q.items)

	if c < compactMinCap {
		return
	}
	if n == 0 {
		q.items = make([]T, 0, defaultQueueCap)
		return
	}
	if n*compactShrinkFactor >= c {
		return
	}

	newCap := max(max(c/2, defaultQueueCap), n)

	newSlice := make([]T, n, newCap)
	copy(newSlice, q.items)
	q.items = newSlice
}
