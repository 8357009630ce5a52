package game

import (
	"context"

	"github.com/jyhuang/puzzlebox/core"
	"github.com/jyhuang/puzzlebox/device"
)

// runPitch plays one pitch round against the drawn tape.
//
// Mode 0 (low-high): one grid button, picked by row and column, must be
// held for the drawn long/short class. The hold uses the raw signed
// press-to-release difference, so a release stamped before its press is
// never classified long.
//
// Mode 1 (high-low): a bare press of one of two buttons wins; no timing
// is involved.
func (c *Console) runPitch(ctx context.Context, tape PitchTape) {
	c.startPlayback(ctx, func(ctx context.Context) {
		PlayPitch(ctx, c.buzzer, tape.Hint())
	})

	c.setAllPressed(c.transferToLose)

	if tape.Mode == 0 {
		target := c.pitchGrid()[tape.Up][tape.Right]

		timing := core.NewQueue[Stamp]()
		target.SetOnPressed(RecordPress(timing)).
			SetOnReleased(RecordRelease(timing))
		c.log.Debug("pitch hold armed", core.F("target", target.Name()))

		if !c.waitForStamps(ctx, timing) {
			c.log.Debug("pitch pre-empted")
			return
		}

		press, release, ok := c.takeHoldPair(ctx, timing)
		if !ok {
			return
		}

		isLong := HoldSigned(press, release) > c.holdThreshold
		if (tape.Long == 1) != isLong {
			c.transferToLose()
		} else {
			c.transferToWin()
		}
		return
	}

	winner := [2]*device.Button{c.downLeft, c.upRight}[tape.Right]
	winner.SetOnPressed(c.transferToWin)
	c.log.Debug("pitch press armed", core.F("winner", winner.Name()))
}
