package device

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/jyhuang/puzzlebox/hal"
	"github.com/jyhuang/puzzlebox/hal/sim"
)

const (
	testTick  = 5 * time.Millisecond
	testBlink = 2 * time.Millisecond
)

// TestCountdown_SetTime tests the seconds -> minute:second split.
func TestCountdown_SetTime(t *testing.T) {
	c := NewCountdown(sim.NewDisplay())

	c.SetTime(180)
	if m, s := c.Remaining(); m != 3 || s != 0 {
		t.Errorf("Remaining() = %d:%02d, want 3:00", m, s)
	}

	c.SetTime(75)
	if m, s := c.Remaining(); m != 1 || s != 15 {
		t.Errorf("Remaining() = %d:%02d, want 1:15", m, s)
	}

	c.SetTime(30, 2)
	if m, s := c.Remaining(); m != 2 || s != 30 {
		t.Errorf("Remaining() = %d:%02d, want 2:30", m, s)
	}
}

// TestCountdown_Monotonic tests the decrement-and-terminate contract
// Main test items:
// 1. Successive renders decrease by exactly one second per tick
// 2. Neither minute nor second ever goes negative
// 3. The loop terminates at 0:00 and fires time-up exactly once
func TestCountdown_Monotonic(t *testing.T) {
	display := sim.NewDisplay()
	c := NewCountdown(display, WithTickIntervals(testTick, testBlink))

	var timeUp atomic.Int64
	c.SetTimeUpCallback(func() { timeUp.Add(1) })
	c.SetTime(65) // crosses a minute border

	c.Start()
	defer c.Stop()

	deadline := time.After(5 * time.Second)
	for timeUp.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("time-up callback never fired")
		default:
			time.Sleep(testTick)
		}
	}

	// Give the loop a moment to prove it stays terminated.
	time.Sleep(10 * testTick)
	if got := timeUp.Load(); got != 1 {
		t.Errorf("time-up fired %d times, want 1", got)
	}

	frames := display.NumberHistory()
	if len(frames) != 65 {
		t.Fatalf("rendered %d frames, want 65", len(frames))
	}
	prev := 65
	for i, f := range frames {
		if f.Minute < 0 || f.Second < 0 {
			t.Fatalf("frame %d rendered negative time %d:%02d", i, f.Minute, f.Second)
		}
		total := f.Minute*60 + f.Second
		if total != prev-1 {
			t.Fatalf("frame %d rendered %d:%02d, want %ds remaining", i, f.Minute, f.Second, prev-1)
		}
		prev = total
	}
	last := frames[len(frames)-1]
	if last.Minute != 0 || last.Second != 0 {
		t.Errorf("final frame = %d:%02d, want 0:00", last.Minute, last.Second)
	}
}

// TestCountdown_PauseFreezesValue tests blink mode
// Given: A paused countdown
// When: Many blink intervals pass
// Then: Rendered numbers never change; blank frames alternate in between
func TestCountdown_PauseFreezesValue(t *testing.T) {
	display := sim.NewDisplay()
	c := NewCountdown(display, WithTickIntervals(testTick, testBlink))

	c.SetTime(120)
	c.Pause() // pause before the first tick: value must stay 2:00
	c.Start()

	time.Sleep(50 * testBlink)
	c.Stop()

	numbers := display.NumberHistory()
	if len(numbers) == 0 {
		t.Fatal("paused countdown never rendered its value")
	}
	for i, f := range numbers {
		if f.Minute != 2 || f.Second != 0 {
			t.Errorf("render %d = %d:%02d, want frozen 2:00", i, f.Minute, f.Second)
		}
	}

	blanks := 0
	for _, frame := range display.FrameHistory() {
		if frame == hal.BlankFrame {
			blanks++
		}
	}
	if blanks == 0 {
		t.Error("paused countdown never blanked the display")
	}
}

// TestCountdown_ExternalStop tests that Stop halts an in-flight countdown.
func TestCountdown_ExternalStop(t *testing.T) {
	display := sim.NewDisplay()
	c := NewCountdown(display, WithTickIntervals(testTick, testBlink))

	var timeUp atomic.Int64
	c.SetTimeUpCallback(func() { timeUp.Add(1) })
	c.SetTime(3600)

	c.Start()
	time.Sleep(5 * testTick)
	c.Stop()

	rendered := len(display.NumberHistory())
	time.Sleep(10 * testTick)

	if got := len(display.NumberHistory()); got != rendered {
		t.Error("countdown kept rendering after Stop")
	}
	if timeUp.Load() != 0 {
		t.Error("time-up fired on an externally stopped countdown")
	}
}
