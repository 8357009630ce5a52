package game

import (
	"context"
	"time"

	"github.com/jyhuang/puzzlebox/device"
)

// Fixed frequencies of the game's audio vocabulary.
const (
	morseToneHz = 548 // code-pattern hint beeps
	pitchLowHz  = 368 // pitch hint, low
	pitchHighHz = 762 // pitch hint, high
)

// DeathSound plays the fixed multi-stage failure tone: a long wail, a
// low thud, a pause, then a descending sweep.
func DeathSound(ctx context.Context, b *device.Buzzer) error {
	if err := b.Play(ctx, 2*time.Second, 980); err != nil {
		return err
	}
	if err := b.Play(ctx, time.Second, 64); err != nil {
		return err
	}
	if err := b.Rest(ctx, 500*time.Millisecond); err != nil {
		return err
	}
	for hz := 512; hz > 64; hz -= 32 {
		if err := b.Play(ctx, 100*time.Millisecond, hz); err != nil {
			return err
		}
	}
	return nil
}

// WinSound plays the fixed victory tone: an ascending sweep, three
// blips, and a held note.
func WinSound(ctx context.Context, b *device.Buzzer) error {
	for hz := 150; hz < 720; hz += 32 {
		if err := b.Play(ctx, 30*time.Millisecond, hz); err != nil {
			return err
		}
	}
	for i := 0; i < 3; i++ {
		if err := b.Rest(ctx, 50*time.Millisecond); err != nil {
			return err
		}
		if err := b.Play(ctx, 200*time.Millisecond, 760); err != nil {
			return err
		}
	}
	return b.Play(ctx, time.Second, 860)
}

// PlayMorse loops the code-pattern hint: a 0 symbol is a short beep
// between rests, a 1 symbol a one-second beep. Purely atmospheric; the
// challenge never evaluates it. Cancellation is a clean exit.
func PlayMorse(ctx context.Context, b *device.Buzzer, tape []int) {
	for {
		for _, sym := range tape {
			if sym == 0 {
				if b.Rest(ctx, 250*time.Millisecond) != nil {
					return
				}
				if b.Play(ctx, 250*time.Millisecond, morseToneHz) != nil {
					return
				}
				if b.Rest(ctx, 250*time.Millisecond) != nil {
					return
				}
			} else {
				if b.Play(ctx, time.Second, morseToneHz) != nil {
					return
				}
			}
			if b.Rest(ctx, 100*time.Millisecond) != nil {
				return
			}
		}
		if b.Rest(ctx, 1500*time.Millisecond) != nil {
			return
		}
	}
}

// PlayPitch loops the pitch hint: each symbol is half a second of the
// low or high pitch. Cancellation is a clean exit.
func PlayPitch(ctx context.Context, b *device.Buzzer, tape []int) {
	for {
		for _, sym := range tape {
			hz := pitchLowHz
			if sym == 1 {
				hz = pitchHighHz
			}
			if b.Play(ctx, 500*time.Millisecond, hz) != nil {
				return
			}
			if b.Rest(ctx, 100*time.Millisecond) != nil {
				return
			}
		}
		if b.Rest(ctx, 1500*time.Millisecond) != nil {
			return
		}
	}
}
