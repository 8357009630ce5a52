//go:build tinygo

package hal

import (
	"machine"

	"tinygo.org/x/drivers/tm1637"
)

// MachineInputPin adapts a machine.Pin as an InputPin. The pin is
// configured with the internal pullup, matching the active-low wiring
// the debouncer assumes.
type MachineInputPin struct {
	pin machine.Pin
}

// NewMachineInputPin configures p as a pullup input.
func NewMachineInputPin(p machine.Pin) *MachineInputPin {
	p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return &MachineInputPin{pin: p}
}

// Read returns the raw pin level.
func (p *MachineInputPin) Read() bool {
	return p.pin.Get()
}

// MachineOutputPin adapts a machine.Pin as an OutputPin.
type MachineOutputPin struct {
	pin machine.Pin
}

// NewMachineOutputPin configures p as an output.
func NewMachineOutputPin(p machine.Pin) *MachineOutputPin {
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &MachineOutputPin{pin: p}
}

// Write sets the raw pin level.
func (p *MachineOutputPin) Write(high bool) {
	p.pin.Set(high)
}

// PWM is the slice of the machine PWM peripheral the tone output needs.
// Concrete machine.PWMn groups satisfy it on supported targets.
type PWM interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(ch uint8, value uint32)
	SetPeriod(period uint64) error
}

// PWMTone drives a piezo buzzer through a PWM channel at 50% duty.
type PWMTone struct {
	pwm PWM
	ch  uint8
}

// NewPWMTone configures the PWM group for the buzzer pin and returns a
// silent tone output.
func NewPWMTone(pwm PWM, pin machine.Pin) (*PWMTone, error) {
	if err := pwm.Configure(machine.PWMConfig{}); err != nil {
		return nil, err
	}
	ch, err := pwm.Channel(pin)
	if err != nil {
		return nil, err
	}
	t := &PWMTone{pwm: pwm, ch: ch}
	t.SetFrequency(0)
	return t, nil
}

// SetFrequency sets the output frequency; 0 silences the channel.
func (t *PWMTone) SetFrequency(hz int) {
	if hz <= 0 {
		t.pwm.Set(t.ch, 0)
		return
	}
	t.pwm.SetPeriod(uint64(1e9) / uint64(hz))
	t.pwm.Set(t.ch, t.pwm.Top()/2)
}

// TM1637Display adapts the tinygo.org/x/drivers tm1637 driver as a
// Display.
type TM1637Display struct {
	dev tm1637.Device
}

// NewTM1637Display configures a tm1637 on the given clock and data pins.
func NewTM1637Display(clk, dio machine.Pin, brightness uint8) *TM1637Display {
	dev := tm1637.New(clk, dio, brightness)
	dev.Configure()
	return &TM1637Display{dev: dev}
}

// Numbers renders a minute:second pair with the colon lit.
func (d *TM1637Display) Numbers(minute, second int) {
	d.dev.DisplayClock(uint8(minute), uint8(second), true)
}

// Write renders a raw segment frame. The driver exposes no raw segment
// writes, so glyph frames are approximated: a blank frame clears the
// display and any lit digit is shown as an 8.
func (d *TM1637Display) Write(segs [4]byte) {
	d.dev.ClearDisplay()
	for i, s := range segs {
		if s != SegBlank {
			d.dev.DisplayDigit(uint8(i), 8)
		}
	}
}
