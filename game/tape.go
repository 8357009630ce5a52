// Package game implements the puzzle-box rounds: the randomly drawn
// challenge tapes, the looping hint melodies, the code-pattern and pitch
// challenge protocols, and the Console orchestrator that runs phases off
// the hand-off queue one at a time.
package game

import "math/rand"

// MorseTape is one round's code-pattern drawing. Mode 0 is the
// short-code game, mode 1 the long-code game. Code always contains at
// least one 1.
type MorseTape struct {
	Mode int
	Code [4]int
}

// NewMorseTape draws a fresh code-pattern tape from rng.
func NewMorseTape(rng *rand.Rand) MorseTape {
	t := MorseTape{Mode: rng.Intn(2)}
	for i := range t.Code {
		t.Code[i] = rng.Intn(2)
	}
	// Force at least one 1 so a winning input always exists.
	t.Code[rng.Intn(4)] = 1
	return t
}

// Sum returns the number of 1 symbols. Always >= 1.
func (t MorseTape) Sum() int {
	n := 0
	for _, s := range t.Code {
		n += s
	}
	return n
}

// Hint returns the symbol sequence the looping playback beeps out:
// the mode bit, a constant 1 marker, then the four code symbols.
func (t MorseTape) Hint() []int {
	return append([]int{t.Mode, 1}, t.Code[:]...)
}

// PitchTape is one round's pitch drawing. Mode 0 asks for a timed hold
// of one grid button; mode 1 asks for a bare press of one of two
// buttons.
type PitchTape struct {
	Mode  int // 0 = low-high, 1 = high-low
	Long  int // 0 = short hold, 1 = long hold (mode 0 only)
	Up    int // 0 = bottom row, 1 = top row
	Right int // 0 = left column, 1 = right column
}

// NewPitchTape draws a fresh pitch tape from rng.
func NewPitchTape(rng *rand.Rand) PitchTape {
	return PitchTape{
		Mode:  rng.Intn(2),
		Long:  rng.Intn(2),
		Up:    rng.Intn(2),
		Right: rng.Intn(2),
	}
}

// Hint returns the symbol sequence the alternating-pitch playback plays.
func (t PitchTape) Hint() []int {
	return []int{t.Mode, t.Mode ^ 1, t.Long, t.Up, t.Right}
}
