package core

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// TestQueue_FIFO verifies delivery order
// Given: A queue with items a, b, c put in that order
// When: Get is called three times
// Then: Items come back as a, b, c
func TestQueue_FIFO(t *testing.T) {
	q := NewQueue[string]()
	ctx := context.Background()

	q.Put("a")
	q.Put("b")
	q.Put("c")

	for _, want := range []string{"a", "b", "c"} {
		got, err := q.Get(ctx)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != want {
			t.Errorf("Get() = %q, want %q", got, want)
		}
	}

	if !q.IsEmpty() {
		t.Errorf("IsEmpty() = false after draining, want true")
	}
}

// TestQueue_GetBlocksUntilPut verifies wake correctness
// Given: An empty queue with a blocked Get
// When: A Put occurs after a delay
// Then: Get returns the item only after the Put
func TestQueue_GetBlocksUntilPut(t *testing.T) {
	q := NewQueue[int]()
	ctx := context.Background()

	var gotBefore atomic.Bool
	done := make(chan int, 1)

	go func() {
		v, err := q.Get(ctx)
		if err != nil {
			return
		}
		gotBefore.Store(true)
		done <- v
	}()

	time.Sleep(50 * time.Millisecond)
	if gotBefore.Load() {
		t.Fatal("Get returned before any Put")
	}

	q.Put(42)

	select {
	case v := <-done:
		if v != 42 {
			t.Errorf("Get() = %d, want 42", v)
		}
	case <-time.After(time.Second):
		t.Fatal("Get did not wake after Put")
	}
}

// TestQueue_SingleDelivery verifies exactly-once delivery under racing consumers
// Given: Many concurrent Get waiters and an equal number of Puts
// When: All operations complete
// Then: Every item is delivered to exactly one waiter
func TestQueue_SingleDelivery(t *testing.T) {
	q := NewQueue[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	const n = 64
	var delivered atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := q.Get(ctx); err == nil {
				delivered.Add(1)
			}
		}()
	}

	for i := 0; i < n; i++ {
		q.Put(i)
	}

	wg.Wait()

	if delivered.Load() != n {
		t.Errorf("delivered = %d, want %d", delivered.Load(), n)
	}
	if !q.IsEmpty() {
		t.Errorf("queue not empty after all deliveries, size = %d", q.Size())
	}
}

// TestQueue_StaleSignalCleared verifies the wake flag is cleared on drain
// Given: A queue that has been filled and fully drained
// When: A new Get is issued on the now-empty queue
// Then: The Get blocks instead of being satisfied by a stale signal
func TestQueue_StaleSignalCleared(t *testing.T) {
	q := NewQueue[int]()

	q.Put(1)
	if _, err := q.Get(context.Background()); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := q.Get(ctx); err != context.DeadlineExceeded {
		t.Errorf("Get() on drained queue error = %v, want DeadlineExceeded", err)
	}
}

// TestQueue_GetCancellation verifies context cancellation unblocks Get
func TestQueue_GetCancellation(t *testing.T) {
	q := NewQueue[int]()
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		_, err := q.Get(ctx)
		errCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != context.Canceled {
			t.Errorf("Get() error = %v, want Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Get did not return after cancellation")
	}
}

// TestQueue_Peek verifies Peek does not consume
func TestQueue_Peek(t *testing.T) {
	q := NewQueue[string]()

	if _, ok := q.Peek(); ok {
		t.Error("Peek() on empty queue reported an item")
	}

	q.Put("x")
	q.Put("y")

	v, ok := q.Peek()
	if !ok || v != "x" {
		t.Errorf("Peek() = %q, %v, want \"x\", true", v, ok)
	}
	if q.Size() != 2 {
		t.Errorf("Size() = %d after Peek, want 2", q.Size())
	}
}

// TestQueue_CoalescedPuts verifies that waiters do not starve when
// multiple Puts land before any waiter wakes up.
func TestQueue_CoalescedPuts(t *testing.T) {
	q := NewQueue[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q.Put(1)
	q.Put(2)

	var wg sync.WaitGroup
	var got atomic.Int64
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := q.Get(ctx); err == nil {
				got.Add(1)
			}
		}()
	}
	wg.Wait()

	if got.Load() != 2 {
		t.Errorf("deliveries = %d, want 2", got.Load())
	}
}
