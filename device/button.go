// Package device implements the active components of the puzzle box:
// debounced buttons, the buzzer, the countdown display and the status
// LED. Each long-running device composes a core.Looper with a hal
// peripheral rather than owning its goroutine directly.
package device

import (
	"sync"
	"time"

	"github.com/jyhuang/puzzlebox/core"
	"github.com/jyhuang/puzzlebox/hal"
)

// DefaultPollInterval is how often a button samples its pin.
const DefaultPollInterval = 10 * time.Millisecond

// Button polls an active-low input pin and fires callbacks on debounced
// edges. The stored logical state only updates when a sample differs
// from it, so a held button fires each callback at most once per edge.
//
// Callbacks run inline on the poll goroutine and must be short: a
// blocking callback stalls edge detection for this button. The game
// only installs bounded recorders and queue Puts.
type Button struct {
	name   string
	pin    hal.InputPin
	looper *core.Looper

	interval time.Duration
	log      core.Logger
	metrics  core.Metrics

	mu         sync.Mutex
	state      bool // logical pressed state from the last sample
	onPressed  func()
	onReleased func()
}

// ButtonOption configures a Button.
type ButtonOption func(*Button)

// WithPollInterval overrides the 10ms sample interval (test seam).
func WithPollInterval(d time.Duration) ButtonOption {
	return func(b *Button) { b.interval = d }
}

// WithButtonLogger sets the logger used for edge events.
func WithButtonLogger(log core.Logger) ButtonOption {
	return func(b *Button) { b.log = log }
}

// WithButtonMetrics sets the metrics sink for edge events.
func WithButtonMetrics(m core.Metrics) ButtonOption {
	return func(b *Button) { b.metrics = m }
}

// NewButton creates a debounced button over pin. The polling loop is not
// started; call Start once the wiring is in place.
func NewButton(name string, pin hal.InputPin, opts ...ButtonOption) *Button {
	b := &Button{
		name:     name,
		pin:      pin,
		interval: DefaultPollInterval,
		log:      core.NewNoOpLogger(),
		metrics:  &core.NilMetrics{},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.looper = core.NewLooper(b.loop)
	return b
}

// Name returns the button's wiring name (e.g. "up-left").
func (b *Button) Name() string {
	return b.name
}

// IsPressed samples the pin once. Active-low: pressed means the raw
// level reads false.
func (b *Button) IsPressed() bool {
	return !b.pin.Read()
}

// SetOnPressed installs the pressed-edge callback. A nil callback is a
// no-op, not an error. Returns the button for chained wiring.
func (b *Button) SetOnPressed(fn func()) *Button {
	b.mu.Lock()
	b.onPressed = fn
	b.mu.Unlock()
	return b
}

// SetOnReleased installs the released-edge callback. Returns the button
// for chained wiring.
func (b *Button) SetOnReleased(fn func()) *Button {
	b.mu.Lock()
	b.onReleased = fn
	b.mu.Unlock()
	return b
}

// Start begins polling.
func (b *Button) Start() {
	b.looper.Start()
}

// Stop halts polling and waits for the poll goroutine to exit, so a
// stopped button never delivers a late edge.
func (b *Button) Stop() {
	b.looper.Stop()
}

func (b *Button) loop() {
	for b.looper.Running() {
		time.Sleep(b.interval)

		pressed := b.IsPressed()

		b.mu.Lock()
		if pressed == b.state {
			b.mu.Unlock()
			continue
		}
		b.state = pressed
		var fn func()
		if pressed {
			fn = b.onPressed
		} else {
			fn = b.onReleased
		}
		b.mu.Unlock()

		b.log.Debug("button edge", core.F("button", b.name), core.F("pressed", pressed))
		b.metrics.RecordButtonEdge(b.name, pressed)

		if fn != nil {
			fn()
		}
	}
}
