// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package parts

import (
	"github.com/db47h/boardsim"
)

// Input creates a function based input.
//
//	Outputs: out
//	Function: out = f(), on every instruction step
//
func Input(f func() bool) *boardsim.PartSpec {
	return &boardsim.PartSpec{
		Name: "Input",
		Pins: []string{pOut},
		New: func(s *boardsim.Socket) (boardsim.Part, error) {
			pin, bus := s.Pin(pOut), s.Bus()
			return &boardsim.Funcs{
				Proc: func() { bus.SetDigital(pin, f()) },
			}, nil
		},
	}
}

// Probe creates an analog probe. The fn function is called with the
// duty-cycle estimate of the named pin at the end of every window.
//
//	Inputs: in
//	Function: f(analog(in))
//
func Probe(f func(level uint8)) *boardsim.PartSpec {
	return &boardsim.PartSpec{
		Name: "Probe",
		Pins: []string{pIn},
		New: func(s *boardsim.Socket) (boardsim.Part, error) {
			pin, bus := s.Pin(pIn), s.Bus()
			return &boardsim.Funcs{
				Post: func() { f(bus.Analog(pin)) },
			}, nil
		},
	}
}

// Output creates a digital output. The fn function is called with the
// named pin state on every instruction step.
//
//	Inputs: in
//	Function: f(in)
//
func Output(f func(bool)) *boardsim.PartSpec {
	return &boardsim.PartSpec{
		Name: "Output",
		Pins: []string{pIn},
		New: func(s *boardsim.Socket) (boardsim.Part, error) {
			pin, bus := s.Pin(pIn), s.Bus()
			return &boardsim.Funcs{
				Proc: func() { f(bus.Digital(pin)) },
			}, nil
		},
	}
}
