package game

import (
	"context"

	"github.com/jyhuang/puzzlebox/core"
)

// runMorse plays one code-pattern round against the drawn tape.
//
// Short-code (mode 0): exactly one button wins, picked by the symbol
// count; every other button loses on first press.
//
// Long-code (mode 1): the four symbols are checked against the four
// buttons in morseOrder. Each iteration rewires every button to lose,
// then rewires the current button to record press/release stamps into a
// fresh timing queue. A hold longer than the threshold is a long input;
// the hold class must match the symbol. Any competing transfer observed
// mid-iteration aborts the whole protocol: the earlier outcome already
// took effect.
func (c *Console) runMorse(ctx context.Context, tape MorseTape) {
	c.startPlayback(ctx, func(ctx context.Context) {
		PlayMorse(ctx, c.buzzer, tape.Hint())
	})

	order := c.morseOrder()

	if tape.Mode == 0 {
		c.setAllPressed(c.transferToLose)
		winner := order[(tape.Sum()-1)%len(order)]
		winner.SetOnPressed(c.transferToWin)
		c.log.Debug("morse short-code armed", core.F("winner", winner.Name()))
		return
	}

	for i, symbol := range tape.Code {
		c.setAllPressed(c.transferToLose)

		timing := core.NewQueue[Stamp]()
		order[i].SetOnPressed(RecordPress(timing)).
			SetOnReleased(RecordRelease(timing))

		if !c.waitForStamps(ctx, timing) {
			c.log.Debug("morse pre-empted", core.F("symbol", i))
			return
		}

		press, release, ok := c.takeHoldPair(ctx, timing)
		if !ok {
			return
		}

		isLong := HoldAbs(press, release) > c.holdThreshold
		if (symbol == 1) != isLong {
			c.transferToLose()
			return
		}
	}

	c.transferToWin()
}
