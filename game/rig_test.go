package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jyhuang/puzzlebox/device"
	"github.com/jyhuang/puzzlebox/hal/sim"
)

// Test timing: every interval is shrunk so a full round fits in
// milliseconds. The hold threshold sits between the short and long tap
// durations with wide margins against poll jitter.
const (
	rigPoll      = time.Millisecond
	rigThreshold = 25 * time.Millisecond
	rigShortTap  = 5 * time.Millisecond
	rigLongTap   = 80 * time.Millisecond
	rigSettle    = 30 * time.Millisecond
)

// recordingMetrics captures metric calls for assertions.
type recordingMetrics struct {
	mu       sync.Mutex
	outcomes []string
	edges    int
	depths   []int
	tones    int
}

func (m *recordingMetrics) RecordButtonEdge(button string, pressed bool) {
	m.mu.Lock()
	m.edges++
	m.mu.Unlock()
}

func (m *recordingMetrics) RecordRoundOutcome(outcome string) {
	m.mu.Lock()
	m.outcomes = append(m.outcomes, outcome)
	m.mu.Unlock()
}

func (m *recordingMetrics) RecordTonePlay(frequency int, duration time.Duration) {
	m.mu.Lock()
	m.tones++
	m.mu.Unlock()
}

func (m *recordingMetrics) RecordTransferDepth(depth int) {
	m.mu.Lock()
	m.depths = append(m.depths, depth)
	m.mu.Unlock()
}

func (m *recordingMetrics) Outcomes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.outcomes))
	copy(out, m.outcomes)
	return out
}

// rig is a fully simulated puzzle box with test-sized intervals.
type rig struct {
	upLeft    *sim.Pin
	upRight   *sim.Pin
	downLeft  *sim.Pin
	downRight *sim.Pin

	tone    *sim.Tone
	display *sim.Display
	metrics *recordingMetrics

	console *Console
}

func newRig(t *testing.T) *rig {
	t.Helper()

	r := &rig{
		upLeft:    sim.NewPin(),
		upRight:   sim.NewPin(),
		downLeft:  sim.NewPin(),
		downRight: sim.NewPin(),
		tone:      sim.NewTone(),
		display:   sim.NewDisplay(),
		metrics:   &recordingMetrics{},
	}

	mkButton := func(name string, pin *sim.Pin) *device.Button {
		return device.NewButton(name, pin,
			device.WithPollInterval(rigPoll),
			device.WithButtonMetrics(r.metrics))
	}

	r.console = NewConsole(Config{
		UpLeft:        mkButton("up-left", r.upLeft),
		UpRight:       mkButton("up-right", r.upRight),
		DownLeft:      mkButton("down-left", r.downLeft),
		DownRight:     mkButton("down-right", r.downRight),
		Countdown:     device.NewCountdown(r.display, device.WithTickIntervals(5*time.Millisecond, 2*time.Millisecond)),
		Buzzer:        device.NewBuzzer(r.tone, r.metrics),
		Metrics:       r.metrics,
		RoundSeconds:  1,
		WinHold:       5 * time.Millisecond,
		ChallengePoll: rigPoll,
		HoldThreshold: rigThreshold,
	})

	// No audible feedback wanted from tests: resolution melodies are
	// several seconds long in real time.
	r.console.deathSound = func(ctx context.Context, b *device.Buzzer) error { return nil }
	r.console.winSound = func(ctx context.Context, b *device.Buzzer) error { return nil }

	return r
}

// startButtons starts the pollers for tests that drive a challenge
// directly instead of going through Console.Run.
func (r *rig) startButtons(t *testing.T) {
	t.Helper()
	for _, b := range r.console.allButtons() {
		b.Start()
	}
	t.Cleanup(func() {
		for _, b := range r.console.allButtons() {
			b.Stop()
		}
		r.console.stopPlayback()
	})
}

// pinFor maps a button back to its simulated pin.
func (r *rig) pinFor(b *device.Button) *sim.Pin {
	switch b.Name() {
	case "up-left":
		return r.upLeft
	case "up-right":
		return r.upRight
	case "down-left":
		return r.downLeft
	case "down-right":
		return r.downRight
	}
	return nil
}

// peekPhase asserts the transfer queue holds exactly one phase with the
// given name, without consuming it.
func (r *rig) peekPhase(t *testing.T, want string) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for r.console.transfer.IsEmpty() {
		if time.Now().After(deadline) {
			t.Fatalf("no phase enqueued, want %q", want)
		}
		time.Sleep(rigPoll)
	}

	phase, _ := r.console.transfer.Peek()
	if phase.Name != want {
		t.Fatalf("queued phase = %q, want %q", phase.Name, want)
	}
}

// assertPhaseCount asserts the current queue size.
func (r *rig) assertPhaseCount(t *testing.T, want int) {
	t.Helper()
	if got := r.console.transfer.Size(); got != want {
		t.Fatalf("transfer queue size = %d, want %d", got, want)
	}
}
