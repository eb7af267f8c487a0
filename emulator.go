// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

// An Emulator executes the instructions of the board's microcontroller.
//
// Step executes exactly one instruction. It may change the logic level of bus
// pins. The board calls Step once per instruction step while powered.
//
type Emulator interface {
	Step()
	// InstructionClockFrequency returns the instruction clock in Hz. It may
	// change between estimation windows.
	InstructionClockFrequency() float64
	// PinCount returns the number of pins of the emulated device.
	PinCount() int
}

// A BusConnector is an Emulator that reads or drives bus pins. ConnectBus is
// called once when the board is created.
//
type BusConnector interface {
	ConnectBus(b *Bus)
}

// An Observer is a side collaborator (an oscilloscope, a logic analyzer)
// notified every JumpSteps powered instruction steps. It must not modify the
// bus.
//
type Observer interface {
	Sample(b *Bus)
}
