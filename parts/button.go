// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package parts

import (
	"sync/atomic"

	"github.com/db47h/boardsim"
	"github.com/golang/glog"
)

// PushButton drives its output pin while pressed. Press and Release may be
// called from any goroutine; the pin is updated on the next instruction step.
//
//	Outputs: out
//	State: out pin, active high (e.g. "5,0")
//
type PushButton struct {
	Out boardsim.PinID `pin:""`

	bus     *boardsim.Bus
	active  bool
	pressed atomic.Bool
}

// PushButtonSpec is the PartSpec for push buttons.
//
var PushButtonSpec = &boardsim.PartSpec{
	Name: "PushButton",
	Pins: []string{pOut},
	New: func(s *boardsim.Socket) (boardsim.Part, error) {
		return NewPushButton(s), nil
	},
}

// NewPushButton returns a new released, active high push button.
//
func NewPushButton(s *boardsim.Socket) *PushButton {
	b := &PushButton{bus: s.Bus(), active: true}
	s.Bind(b)
	return b
}

// Press presses the button.
//
func (b *PushButton) Press() { b.pressed.Store(true) }

// Release releases the button.
//
func (b *PushButton) Release() { b.pressed.Store(false) }

// Pressed returns true if the button is pressed.
//
func (b *PushButton) Pressed() bool { return b.pressed.Load() }

// SetActiveHigh sets the output polarity.
//
func (b *PushButton) SetActiveHigh(v bool) { b.active = v }

// PreProcess implements boardsim.Part.
//
func (b *PushButton) PreProcess() {}

// Process implements boardsim.Part.
//
func (b *PushButton) Process() {
	b.bus.SetDigital(b.Out, b.pressed.Load() == b.active)
}

// PostProcess implements boardsim.Part.
//
func (b *PushButton) PostProcess() {}

// Reset implements boardsim.Resetter.
//
func (b *PushButton) Reset() { b.Release() }

// WriteState implements boardsim.StateWriter.
//
func (b *PushButton) WriteState() string {
	return formatState(int(b.Out), btoi(b.active))
}

// ReadState implements boardsim.StateWriter.
//
func (b *PushButton) ReadState(state string) {
	vs, err := parseState(state, 2)
	if err != nil {
		glog.Warningf("PushButton: bad state %q: %v", state, err)
		vs = []int{0, 1}
	}
	b.Out = statePin("PushButton", b.bus, vs[0])
	b.active = vs[1] != 0
}
