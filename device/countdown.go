package device

import (
	"sync"
	"time"

	"github.com/jyhuang/puzzlebox/core"
	"github.com/jyhuang/puzzlebox/hal"
)

// Countdown tick and blink defaults.
const (
	DefaultTickInterval  = time.Second
	DefaultBlinkInterval = 500 * time.Millisecond
)

// Countdown decrements a minute:second counter once per tick and renders
// it on the display. When the counter reaches 0:00 the loop terminates
// for good and the time-up callback fires exactly once. Pause switches
// the loop into a blink mode that freezes the value and toggles the
// display every half second until the countdown is stopped externally.
type Countdown struct {
	display hal.Display
	looper  *core.Looper

	tick  time.Duration
	blink time.Duration
	log   core.Logger

	mu       sync.Mutex
	minute   int
	second   int
	paused   bool
	visible  bool
	onTimeUp func()
}

// CountdownOption configures a Countdown.
type CountdownOption func(*Countdown)

// WithTickIntervals overrides the 1s tick and 500ms blink intervals
// (test seam).
func WithTickIntervals(tick, blink time.Duration) CountdownOption {
	return func(c *Countdown) {
		c.tick = tick
		c.blink = blink
	}
}

// WithCountdownLogger sets the logger.
func WithCountdownLogger(log core.Logger) CountdownOption {
	return func(c *Countdown) { c.log = log }
}

// NewCountdown creates a stopped countdown over display.
func NewCountdown(display hal.Display, opts ...CountdownOption) *Countdown {
	c := &Countdown{
		display: display,
		tick:    DefaultTickInterval,
		blink:   DefaultBlinkInterval,
		log:     core.NewNoOpLogger(),
		visible: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.looper = core.NewLooper(c.loop)
	return c
}

// SetTime arms the counter with a total number of seconds, carrying the
// overflow into minutes.
func (c *Countdown) SetTime(seconds int, minutes ...int) {
	minute := 0
	if len(minutes) > 0 {
		minute = minutes[0]
	}
	quotient := seconds / 60
	second := seconds % 60

	c.mu.Lock()
	c.minute = minute + quotient
	c.second = second
	c.mu.Unlock()
}

// Remaining returns the current minute:second pair.
func (c *Countdown) Remaining() (minute, second int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.minute, c.second
}

// SetTimeUpCallback installs the expiry callback.
func (c *Countdown) SetTimeUpCallback(fn func()) {
	c.mu.Lock()
	c.onTimeUp = fn
	c.mu.Unlock()
}

// Pause freezes the counter and switches the loop into blink mode. The
// rendered value never changes again for this countdown's lifetime.
func (c *Countdown) Pause() {
	c.mu.Lock()
	c.paused = true
	c.mu.Unlock()
}

// Write passes a raw segment frame through to the display. The game
// uses it for the hint glyph and the win/lose flashes.
func (c *Countdown) Write(segs [4]byte) {
	c.display.Write(segs)
}

// Start begins ticking.
func (c *Countdown) Start() {
	c.looper.Start()
}

// Stop halts the loop and waits for it to exit. Safe after expiry.
func (c *Countdown) Stop() {
	c.looper.Stop()
}

func (c *Countdown) loop() {
	for c.looper.Running() {
		c.mu.Lock()
		if c.paused {
			c.mu.Unlock()
			time.Sleep(c.blink)

			c.mu.Lock()
			c.visible = !c.visible
			minute, second, visible := c.minute, c.second, c.visible
			c.mu.Unlock()

			if visible {
				c.display.Numbers(minute, second)
			} else {
				c.display.Write(hal.BlankFrame)
			}
			continue
		}

		c.second--
		// Borrow from the minute on second underflow.
		if c.second < 0 {
			c.second = 59
			c.minute--
		}
		// The minute is clamped at zero, never wrapped.
		if c.minute < 0 {
			c.minute = 0
		}
		minute, second := c.minute, c.second
		fn := c.onTimeUp
		c.mu.Unlock()

		c.display.Numbers(minute, second)
		time.Sleep(c.tick)

		if minute == 0 && second == 0 {
			// Terminate for good; the time-up callback fires once.
			c.looper.Quit()
			c.log.Info("countdown expired")
			if fn != nil {
				fn()
			}
			return
		}
	}
}
