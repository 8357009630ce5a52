// Package puzzlebox implements the controller for a four-button puzzle
// box: a buzzer that loops a coded hint melody, a four-digit display
// counting down the round, and two families of challenges solved by
// pressing and holding the right buttons.
//
// # Quick Start
//
// Wire the four buttons, the display and the buzzer against your
// hardware (or the in-memory hal/sim peripherals), then hand everything
// to the game:
//
//	console := game.NewConsole(game.Config{
//		UpLeft:    device.NewButton("up-left", pins[0]),
//		UpRight:   device.NewButton("up-right", pins[1]),
//		DownLeft:  device.NewButton("down-left", pins[2]),
//		DownRight: device.NewButton("down-right", pins[3]),
//		Countdown: device.NewCountdown(display),
//		Buzzer:    device.NewBuzzer(tone, nil),
//	})
//	console.Run(ctx)
//
// # Key Concepts
//
// hal: the four hardware contracts (InputPin, OutputPin, ToneOutput,
// Display). hal/sim implements them in memory for tests and the host
// example; hal's tinygo build implements them over machine pins.
//
// device: the polled peripherals. Button debounces an active-low pin
// into edge callbacks, Countdown ticks a minute:second display, Buzzer
// plays timed tones.
//
// game: the rounds themselves. A Console executes Phases off a single
// hand-off queue, so button callbacks racing from the pollers resolve
// into exactly one outcome per round.
//
// # Concurrency
//
// Each Button and the Countdown run one polling goroutine, built on
// core.Looper. All of them funnel into the Console's core.Queue; the
// Console goroutine is the only writer of game state.
//
// See examples/sim for a complete host-side game and examples/firmware
// for the tinygo build.
package puzzlebox
