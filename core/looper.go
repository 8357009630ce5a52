package core

import (
	"sync"
	"sync/atomic"
)

// Looper owns a single long-running loop goroutine and its lifecycle.
// Every polling activity in the system (button debouncers, the countdown
// display) composes a Looper instead of managing its goroutine directly.
//
// The loop body must observe Running() and return promptly once it reads
// false. Stop always waits for the loop goroutine to actually exit before
// returning, so a stopped activity can never deliver a late event.
type Looper struct {
	loop func()

	running atomic.Bool
	started atomic.Bool

	mu      sync.Mutex
	stopped chan struct{}
}

// NewLooper creates a Looper around the given loop body. The body is
// invoked once per Start and is expected to cycle until Running()
// turns false.
func NewLooper(loop func()) *Looper {
	return &Looper{loop: loop}
}

// Start marks the looper running and spawns the loop goroutine.
// Starting an already-running looper panics: a second goroutine would
// leak the first and break the one-outstanding-loop invariant.
func (l *Looper) Start() {
	if !l.started.CompareAndSwap(false, true) {
		panic("core: Looper started twice without an intervening Stop")
	}

	l.mu.Lock()
	l.stopped = make(chan struct{})
	l.mu.Unlock()

	l.running.Store(true)

	go func() {
		defer close(l.stopped)
		l.loop()
	}()
}

// Stop clears the running flag and blocks until the loop goroutine has
// exited. Idempotent; calling Stop on a never-started looper or after the
// loop self-terminated via Quit returns immediately.
func (l *Looper) Stop() {
	l.running.Store(false)

	l.mu.Lock()
	stopped := l.stopped
	l.mu.Unlock()

	if stopped != nil {
		<-stopped
	}
	l.started.Store(false)
}

// Quit clears the running flag from inside the loop body. The countdown
// uses it to terminate itself once the timer reaches zero; a later Stop
// still returns promptly.
func (l *Looper) Quit() {
	l.running.Store(false)
}

// Running reports whether the loop has been asked to keep cycling.
func (l *Looper) Running() bool {
	return l.running.Load()
}
