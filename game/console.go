package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/jyhuang/puzzlebox/core"
	"github.com/jyhuang/puzzlebox/device"
	"github.com/jyhuang/puzzlebox/hal"
)

// Game timing defaults.
const (
	DefaultRoundSeconds  = 3 * 60
	DefaultWinHold       = 10 * time.Minute
	DefaultChallengePoll = 50 * time.Millisecond
	DefaultHoldThreshold = 500 * time.Millisecond
)

// Phase is one unit of game flow handed off through the transfer queue:
// starting a round, running a challenge, or resolving a win or a lose.
// The orchestrator executes exactly one phase at a time, which gives the
// whole system single-writer semantics over game state even though
// several pollers race to submit transfers.
type Phase struct {
	Name string
	Run  func(ctx context.Context)
}

// Config wires a Console. Buttons, Countdown and Buzzer are required;
// everything else has defaults.
type Config struct {
	UpLeft    *device.Button
	UpRight   *device.Button
	DownLeft  *device.Button
	DownRight *device.Button

	Countdown *device.Countdown
	Buzzer    *device.Buzzer

	Rand    *rand.Rand
	Logger  core.Logger
	Metrics core.Metrics

	// RoundSeconds is the countdown armed per round. Default 3 minutes.
	RoundSeconds int
	// WinHold is how long the terminal win state is held. Default 10
	// minutes.
	WinHold time.Duration
	// ChallengePoll is the busy-wait interval the challenges use while
	// collecting timing records. Default 50ms.
	ChallengePoll time.Duration
	// HoldThreshold separates a long hold from a short one. Default
	// 500ms.
	HoldThreshold time.Duration
}

// Console owns the whole game: the four buttons, the countdown display,
// the buzzer, and the single hand-off queue every callback funnels into.
// One instance exists for the process lifetime.
type Console struct {
	upLeft    *device.Button
	upRight   *device.Button
	downLeft  *device.Button
	downRight *device.Button

	countdown *device.Countdown
	buzzer    *device.Buzzer

	transfer *core.Queue[Phase]
	rng      *rand.Rand
	log      core.Logger
	metrics  core.Metrics

	roundSeconds  int
	winHold       time.Duration
	challengePoll time.Duration
	holdThreshold time.Duration

	// Hint playback in flight. Only the orchestrator goroutine touches
	// these: challenges start a playback, the resolution phases stop it.
	playCancel context.CancelFunc
	playDone   chan struct{}

	// Resolution sound hooks, replaceable in tests.
	deathSound func(ctx context.Context, b *device.Buzzer) error
	winSound   func(ctx context.Context, b *device.Buzzer) error
}

// NewConsole builds the process-wide game context from cfg.
func NewConsole(cfg Config) *Console {
	c := &Console{
		upLeft:        cfg.UpLeft,
		upRight:       cfg.UpRight,
		downLeft:      cfg.DownLeft,
		downRight:     cfg.DownRight,
		countdown:     cfg.Countdown,
		buzzer:        cfg.Buzzer,
		transfer:      core.NewQueue[Phase](),
		rng:           cfg.Rand,
		log:           cfg.Logger,
		metrics:       cfg.Metrics,
		roundSeconds:  cfg.RoundSeconds,
		winHold:       cfg.WinHold,
		challengePoll: cfg.ChallengePoll,
		holdThreshold: cfg.HoldThreshold,
		deathSound:    DeathSound,
		winSound:      WinSound,
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.log == nil {
		c.log = core.NewNoOpLogger()
	}
	if c.metrics == nil {
		c.metrics = &core.NilMetrics{}
	}
	if c.roundSeconds == 0 {
		c.roundSeconds = DefaultRoundSeconds
	}
	if c.winHold == 0 {
		c.winHold = DefaultWinHold
	}
	if c.challengePoll == 0 {
		c.challengePoll = DefaultChallengePoll
	}
	if c.holdThreshold == 0 {
		c.holdThreshold = DefaultHoldThreshold
	}
	return c
}

// Run starts the button pollers, wires the idle state, then executes
// phases off the hand-off queue until ctx ends. The buzzer is silenced
// on every exit path.
func (c *Console) Run(ctx context.Context) error {
	defer c.buzzer.Silence()

	for _, b := range c.allButtons() {
		b.Start()
	}
	c.wireIdle()

	for {
		phase, err := c.transfer.Get(ctx)
		if err != nil {
			c.stopPlayback()
			return err
		}
		c.log.Info("phase", core.F("name", phase.Name))
		phase.Run(ctx)
	}
}

// wireIdle shows the directional hint glyph on one random corner of the
// display and wires that corner's button to begin a round. Every other
// button loses immediately: the box punishes guessing from the start.
func (c *Console) wireIdle() {
	c.setAllPressed(c.transferToLose)

	hints := []struct {
		frame  [4]byte
		button *device.Button
	}{
		{[4]byte{hal.SegUp, 0, 0, 0}, c.upLeft},
		{[4]byte{0, 0, 0, hal.SegUp}, c.upRight},
		{[4]byte{hal.SegDown, 0, 0, 0}, c.downLeft},
		{[4]byte{0, 0, 0, hal.SegDown}, c.downRight},
	}
	pick := hints[c.rng.Intn(len(hints))]
	c.countdown.Write(pick.frame)
	pick.button.SetOnPressed(func() {
		c.putPhase(Phase{Name: "round", Run: c.startRound})
	})
	c.log.Info("idle", core.F("start", pick.button.Name()))
}

// startRound arms the countdown and enqueues a randomly chosen
// challenge.
func (c *Console) startRound(ctx context.Context) {
	c.countdown.SetTimeUpCallback(c.transferToLose)
	c.countdown.SetTime(c.roundSeconds)
	c.countdown.Start()

	if c.rng.Intn(2) == 1 {
		c.putPhase(Phase{Name: "morse", Run: func(ctx context.Context) {
			c.runMorse(ctx, NewMorseTape(c.rng))
		}})
	} else {
		c.putPhase(Phase{Name: "pitch", Run: func(ctx context.Context) {
			c.runPitch(ctx, NewPitchTape(c.rng))
		}})
	}
}

// gameWin resolves a won round: cut the hint melody, stop the pollers,
// freeze the timer into its blink state, play the victory tone and hold
// the terminal state.
func (c *Console) gameWin(ctx context.Context) {
	c.log.Info("round won")
	c.metrics.RecordRoundOutcome("win")

	c.stopPlayback()
	for _, b := range c.allButtons() {
		b.Stop()
	}
	c.countdown.Pause()

	if err := c.winSound(ctx, c.buzzer); err != nil {
		return
	}

	timer := time.NewTimer(c.winHold)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// gameOver resolves a lost round: cut the hint melody, flash the full
// display, stop every poller and the countdown, play the failure tone,
// clear the display.
func (c *Console) gameOver(ctx context.Context) {
	c.log.Info("round lost")
	c.metrics.RecordRoundOutcome("lose")

	c.stopPlayback()
	c.countdown.Write(hal.FillFrame)
	for _, b := range c.allButtons() {
		b.Stop()
	}
	c.countdown.Stop()

	_ = c.deathSound(ctx, c.buzzer)
	c.countdown.Write(hal.BlankFrame)
}

func (c *Console) transferToWin() {
	c.putPhase(Phase{Name: "win", Run: c.gameWin})
}

func (c *Console) transferToLose() {
	c.putPhase(Phase{Name: "lose", Run: c.gameOver})
}

func (c *Console) putPhase(p Phase) {
	c.transfer.Put(p)
	c.metrics.RecordTransferDepth(c.transfer.Size())
}

// Transfer exposes the hand-off queue for observability snapshots.
func (c *Console) Transfer() *core.Queue[Phase] {
	return c.transfer
}

// allButtons returns the four buttons in wiring order.
func (c *Console) allButtons() [4]*device.Button {
	return [4]*device.Button{c.upLeft, c.upRight, c.downLeft, c.downRight}
}

// morseOrder is the fixed symbol-to-button order of the code-pattern
// challenge.
func (c *Console) morseOrder() [4]*device.Button {
	return [4]*device.Button{c.upLeft, c.downRight, c.upRight, c.downLeft}
}

// pitchGrid is the fixed 2x2 layout of the pitch challenge, indexed
// [up][right].
func (c *Console) pitchGrid() [2][2]*device.Button {
	return [2][2]*device.Button{
		{c.downLeft, c.downRight},
		{c.upLeft, c.upRight},
	}
}

func (c *Console) setAllPressed(fn func()) {
	for _, b := range c.allButtons() {
		b.SetOnPressed(fn)
	}
}

// startPlayback spawns the looping hint melody. At most one playback is
// in flight per round.
func (c *Console) startPlayback(ctx context.Context, loop func(ctx context.Context)) {
	playCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.playCancel = cancel
	c.playDone = done
	go func() {
		defer close(done)
		loop(playCtx)
	}()
}

// stopPlayback cancels the hint melody and waits for its goroutine to
// exit, so the resolution sounds never interleave with a dying loop.
func (c *Console) stopPlayback() {
	if c.playCancel == nil {
		return
	}
	c.playCancel()
	<-c.playDone
	c.playCancel = nil
	c.playDone = nil
}

// waitForStamps polls until the timing queue holds a press/release pair
// or a competing transfer has been enqueued. Returns false when the
// challenge must abort: a transfer pre-empted it or ctx ended.
func (c *Console) waitForStamps(ctx context.Context, timing *core.Queue[Stamp]) bool {
	for timing.Size() < 2 && c.transfer.IsEmpty() {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(c.challengePoll):
		}
	}
	// A wrong button's lose may land together with the final stamp;
	// the earlier transfer wins either way.
	return c.transfer.IsEmpty()
}

// takeHoldPair pops the press/release pair for the current iteration,
// discarding a stray leading release left over from a button still held
// when the iteration began.
func (c *Console) takeHoldPair(ctx context.Context, timing *core.Queue[Stamp]) (press, release Stamp, ok bool) {
	if s, has := timing.Peek(); has && s.Kind == Release {
		if _, err := timing.Get(ctx); err != nil {
			return Stamp{}, Stamp{}, false
		}
	}
	press, err := timing.Get(ctx)
	if err != nil {
		return Stamp{}, Stamp{}, false
	}
	release, err = timing.Get(ctx)
	if err != nil {
		return Stamp{}, Stamp{}, false
	}
	return press, release, true
}
