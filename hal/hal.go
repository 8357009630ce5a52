// Package hal declares the peripheral contracts the puzzle box runs
// against. The game core never touches pin registers: it sees a raw
// digital level, a tone frequency setter, and a 4-digit segment display.
// Real hardware bindings live behind the tinygo build tag; hal/sim
// provides in-memory peripherals for host runs and tests.
package hal

// InputPin is a raw digital input. The debouncer assumes active-low
// wiring: a pressed button reads false.
type InputPin interface {
	Read() bool
}

// OutputPin is a raw digital output.
type OutputPin interface {
	Write(high bool)
}

// ToneOutput drives the buzzer. SetFrequency(0) silences it.
type ToneOutput interface {
	SetFrequency(hz int)
}

// Display is a 4-digit 7-segment display.
type Display interface {
	// Write renders four raw segment patterns, one byte per digit.
	Write(segs [4]byte)
	// Numbers renders a minute:second pair.
	Numbers(minute, second int)
}

// Segment patterns used by the game for hint glyphs and the win/lose
// flashes. Bit layout follows the tm1637 convention (bit 0 = segment A).
const (
	SegBlank byte = 0b00000000
	SegFill  byte = 0b11111111
	SegUp    byte = 0b01100011 // upper-corner hint glyph
	SegDown  byte = 0b01011100 // lower-corner hint glyph
)

// BlankFrame and FillFrame are the all-off and all-on display frames.
var (
	BlankFrame = [4]byte{SegBlank, SegBlank, SegBlank, SegBlank}
	FillFrame  = [4]byte{SegFill, SegFill, SegFill, SegFill}
)
