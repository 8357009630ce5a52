// Package sim provides in-memory peripherals implementing the hal
// contracts. The sim example drives the game with them on a host
// machine, and the device and game tests use them to script inputs and
// observe outputs. All types are safe for concurrent use: pollers read
// while tests and the stdin driver write.
package sim

import (
	"sync"
	"time"

	"github.com/jyhuang/puzzlebox/hal"
)

// Pin is a simulated active-low input pin.
type Pin struct {
	mu    sync.Mutex
	level bool // raw electrical level; true = high = released
}

// NewPin returns a released (high) pin.
func NewPin() *Pin {
	return &Pin{level: true}
}

// Read returns the raw level.
func (p *Pin) Read() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

// Press pulls the pin low.
func (p *Pin) Press() {
	p.mu.Lock()
	p.level = false
	p.mu.Unlock()
}

// Release lets the pin float high.
func (p *Pin) Release() {
	p.mu.Lock()
	p.level = true
	p.mu.Unlock()
}

// Tap presses the pin for the given hold time, then releases it.
// It blocks for the hold duration.
func (p *Pin) Tap(hold time.Duration) {
	p.Press()
	time.Sleep(hold)
	p.Release()
}

// Lamp is a simulated output pin.
type Lamp struct {
	mu sync.Mutex
	on bool
}

// NewLamp returns an off lamp.
func NewLamp() *Lamp {
	return &Lamp{}
}

// Write sets the lamp level.
func (l *Lamp) Write(high bool) {
	l.mu.Lock()
	l.on = high
	l.mu.Unlock()
}

// IsOn reports the lamp level.
func (l *Lamp) IsOn() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}

// Tone records every frequency written to the buzzer.
type Tone struct {
	mu      sync.Mutex
	current int
	history []int
}

// NewTone returns a silent tone output.
func NewTone() *Tone {
	return &Tone{}
}

// SetFrequency records hz as the current frequency.
func (t *Tone) SetFrequency(hz int) {
	t.mu.Lock()
	t.current = hz
	t.history = append(t.history, hz)
	t.mu.Unlock()
}

// Current returns the most recently set frequency.
func (t *Tone) Current() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// History returns a copy of every frequency ever set, in order.
func (t *Tone) History() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]int, len(t.history))
	copy(out, t.history)
	return out
}

// NumberFrame is one rendered minute:second pair.
type NumberFrame struct {
	Minute, Second int
}

// Display records every frame rendered to the 4-digit display.
type Display struct {
	mu      sync.Mutex
	lastSeg [4]byte
	numbers []NumberFrame
	frames  [][4]byte
}

var _ hal.Display = (*Display)(nil)

// NewDisplay returns a blank display.
func NewDisplay() *Display {
	return &Display{lastSeg: hal.BlankFrame}
}

// Write records a raw segment frame.
func (d *Display) Write(segs [4]byte) {
	d.mu.Lock()
	d.lastSeg = segs
	d.frames = append(d.frames, segs)
	d.mu.Unlock()
}

// Numbers records a minute:second render.
func (d *Display) Numbers(minute, second int) {
	d.mu.Lock()
	d.numbers = append(d.numbers, NumberFrame{Minute: minute, Second: second})
	d.mu.Unlock()
}

// LastSegments returns the most recent raw frame.
func (d *Display) LastSegments() [4]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastSeg
}

// NumberHistory returns a copy of every minute:second render, in order.
func (d *Display) NumberHistory() []NumberFrame {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]NumberFrame, len(d.numbers))
	copy(out, d.numbers)
	return out
}

// FrameHistory returns a copy of every raw segment frame, in order.
func (d *Display) FrameHistory() [][4]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][4]byte, len(d.frames))
	copy(out, d.frames)
	return out
}
