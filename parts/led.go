// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package parts

import (
	"github.com/db47h/boardsim"
	"github.com/golang/glog"
)

// LED is a light emitting diode whose brightness follows the analog level of
// its input pin.
//
//	Inputs: in
//	Outputs: LD_1
//	State: in pin, active high (e.g. "3,1")
//
type LED struct {
	In boardsim.PinID `pin:""`

	bus    *boardsim.Bus
	active bool
	out    boardsim.Output
}

// LEDSpec is the PartSpec for LEDs.
//
var LEDSpec = &boardsim.PartSpec{
	Name: "LED",
	Pins: []string{pIn},
	New: func(s *boardsim.Socket) (boardsim.Part, error) {
		return NewLED(s), nil
	},
}

// NewLED returns a new active high LED.
//
func NewLED(s *boardsim.Socket) *LED {
	l := &LED{bus: s.Bus(), active: true}
	s.Bind(l)
	return l
}

// Brightness returns the LED brightness. Active low LEDs invert the input
// level.
//
func (l *LED) Brightness() uint8 {
	if l.In == boardsim.NC {
		return 0
	}
	v := l.bus.Analog(l.In)
	if !l.active {
		v = 255 - v
	}
	return v
}

// SetActiveHigh sets the input polarity.
//
func (l *LED) SetActiveHigh(v bool) { l.active = v }

// Output returns the brightness output slot.
//
func (l *LED) Output() *boardsim.Output { return &l.out }

// PreProcess implements boardsim.Part.
//
func (l *LED) PreProcess() {}

// Process implements boardsim.Part.
//
func (l *LED) Process() {}

// PostProcess implements boardsim.Part.
//
func (l *LED) PostProcess() {
	l.out.Set(int(l.Brightness()))
}

// WriteState implements boardsim.StateWriter.
//
func (l *LED) WriteState() string {
	return formatState(int(l.In), btoi(l.active))
}

// ReadState implements boardsim.StateWriter.
//
func (l *LED) ReadState(state string) {
	vs, err := parseState(state, 2)
	if err != nil {
		glog.Warningf("LED: bad state %q: %v", state, err)
		vs = []int{0, 1}
	}
	l.In = statePin("LED", l.bus, vs[0])
	l.active = vs[1] != 0
}
