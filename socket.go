// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

import "github.com/golang/glog"

// A PartSpec wraps a part specification (its blueprint).
//
// Custom parts are implemented by creating a PartSpec:
//
//	ledSpec := &boardsim.PartSpec{
//		Name: "LED",
//		Pins: []string{"in"},
//		New: func(s *boardsim.Socket) (boardsim.Part, error) {
//			in := s.Pin("in")
//			return &boardsim.Funcs{
//				Post: func() { render(s.Bus().Analog(in)) },
//			}, nil
//		}}
//
// And mounted on a board with a connection string:
//
//	part, err := board.Mount(ledSpec, "in=PB3")
//
type PartSpec struct {
	// Part name.
	Name string
	// Part pin names.
	Pins []string
	// New creates a part instance. It should query the socket for pin
	// bindings once and keep the returned PinIDs.
	New func(s *Socket) (Part, error)
}

// A Socket maps a part's pin names to board pins and gives the part access to
// the board's bus and clock.
//
type Socket struct {
	b *Board
	m map[string]PinID
}

func newSocket(b *Board, spec *PartSpec, w W) *Socket {
	s := &Socket{b: b, m: make(map[string]PinID, len(spec.Pins))}
	for _, n := range spec.Pins {
		s.m[n] = NC
	}
	for k, v := range w {
		p := b.bus.Lookup(v)
		if p == NC {
			glog.Warningf("%s: pin %s connected to unknown board pin %q", spec.Name, k, v)
		}
		s.m[k] = p
	}
	return s
}

// Pin returns the board pin bound to the given part pin name, or NC if the
// pin is not connected.
// This function panics if the part has no such pin.
//
func (s *Socket) Pin(name string) PinID {
	p, ok := s.m[name]
	if !ok {
		panic("pin " + name + " does not exist")
	}
	return p
}

// Bus returns the board's pin bus.
//
func (s *Socket) Bus() *Bus { return s.b.bus }

// Context returns the board's simulation context.
//
func (s *Socket) Context() *SimContext { return &s.b.ctx }

// InstructionClockFrequency returns the emulator's current instruction clock
// frequency in Hz.
//
func (s *Socket) InstructionClockFrequency() float64 {
	return s.b.emu.InstructionClockFrequency()
}

// PinName returns the board name of pin p.
//
func (s *Socket) PinName(p PinID) string {
	return s.b.bus.Name(p)
}
