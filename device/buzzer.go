package device

import (
	"context"
	"time"

	"github.com/jyhuang/puzzlebox/core"
	"github.com/jyhuang/puzzlebox/hal"
)

// Buzzer plays tones on a hal.ToneOutput. Each Play is atomic with
// respect to its frequency/duration pair; the output is always silenced
// before Play returns, including when the context is cancelled mid-tone.
type Buzzer struct {
	out     hal.ToneOutput
	metrics core.Metrics
}

// NewBuzzer returns a silent buzzer over out.
func NewBuzzer(out hal.ToneOutput, metrics core.Metrics) *Buzzer {
	if metrics == nil {
		metrics = &core.NilMetrics{}
	}
	out.SetFrequency(0)
	return &Buzzer{out: out, metrics: metrics}
}

// Play sets the output frequency (0 = rest), waits for the duration,
// then silences the output. Returns ctx.Err() when cut off early;
// cancellation is a clean exit and leaves the buzzer silent.
func (b *Buzzer) Play(ctx context.Context, duration time.Duration, hz int) error {
	b.out.SetFrequency(hz)
	b.metrics.RecordTonePlay(hz, duration)

	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-timer.C:
		b.out.SetFrequency(0)
		return nil
	case <-ctx.Done():
		b.out.SetFrequency(0)
		return ctx.Err()
	}
}

// Rest waits for the duration with the buzzer silent.
func (b *Buzzer) Rest(ctx context.Context, duration time.Duration) error {
	return b.Play(ctx, duration, 0)
}

// Silence forces the output off. The process must call it on every exit
// path; an abandoned PWM channel keeps whining after the program dies.
func (b *Buzzer) Silence() {
	b.out.SetFrequency(0)
}
