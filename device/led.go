package device

import (
	"sync"

	"github.com/jyhuang/puzzlebox/hal"
)

// Led is a simple on/off indicator over an output pin.
type Led struct {
	mu  sync.Mutex
	pin hal.OutputPin
	on  bool
}

// NewLed returns an off LED over pin.
func NewLed(pin hal.OutputPin) *Led {
	pin.Write(false)
	return &Led{pin: pin}
}

// On lights the LED.
func (l *Led) On() {
	l.mu.Lock()
	l.on = true
	l.pin.Write(true)
	l.mu.Unlock()
}

// Off darkens the LED.
func (l *Led) Off() {
	l.mu.Lock()
	l.on = false
	l.pin.Write(false)
	l.mu.Unlock()
}

// Toggle flips the LED.
func (l *Led) Toggle() {
	l.mu.Lock()
	l.on = !l.on
	l.pin.Write(l.on)
	l.mu.Unlock()
}

// IsOn reports the LED state.
func (l *Led) IsOn() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}
