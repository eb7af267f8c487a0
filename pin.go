// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

import (
	"strconv"
	"strings"
)

// PinID is a board pin number. Pins are numbered from 1, like the connector
// pins of a physical board. The zero value is NC.
//
type PinID int

// NC is the pin number of an unconnected binding.
//
const NC PinID = 0

// String returns the pin number in decimal or "NC".
//
func (p PinID) String() string {
	if p == NC {
		return "NC"
	}
	return strconv.Itoa(int(p))
}

// A Pin is the state of a single connector pin.
//
// Each field has a single writer:
//
//	value: the emulator or a driving part (SetDigital)
//	acc, samples: the scheduler (sample, resetAccumulators)
//	level: the analog estimator (commit)
//
type Pin struct {
	name    string
	value   bool
	acc     uint32 // number of samples that saw the pin high
	samples uint32 // number of samples taken in the current window
	level   uint8  // last duty-cycle estimate
}

// Bus is the fixed-size array of pins shared by the emulator, the scheduler
// and the parts of a board.
//
type Bus struct {
	pins []Pin
}

// NewBus returns a bus with the given pin names. The pin count is len(names).
// Empty names are replaced by the pin number.
//
func NewBus(names ...string) *Bus {
	b := &Bus{pins: make([]Pin, len(names))}
	for i, n := range names {
		if n == "" {
			n = strconv.Itoa(i + 1)
		}
		b.pins[i].name = n
	}
	return b
}

// NewBusN returns a bus of n anonymous pins.
//
func NewBusN(n int) *Bus {
	return NewBus(make([]string, n)...)
}

// Len returns the pin count.
//
func (b *Bus) Len() int { return len(b.pins) }

// Valid returns true if p is a pin on the bus.
//
func (b *Bus) Valid(p PinID) bool {
	return p > NC && int(p) <= len(b.pins)
}

// pin returns the pin record for p, or nil if p is out of range. Out of
// range accesses are programming errors: they panic in debug builds.
//
func (b *Bus) pin(p PinID) *Pin {
	if !b.Valid(p) {
		if p != NC {
			assertf(false, "pin %d out of range [1, %d]", p, len(b.pins))
		}
		return nil
	}
	return &b.pins[p-1]
}

// Name returns the name of pin p.
//
func (b *Bus) Name(p PinID) string {
	if pin := b.pin(p); pin != nil {
		return pin.name
	}
	return "NC"
}

// Lookup returns the pin number for the given pin name. Names are compared
// case insensitively. If there is no such pin, Lookup returns NC.
//
func (b *Bus) Lookup(name string) PinID {
	if n, err := strconv.Atoi(name); err == nil {
		if b.Valid(PinID(n)) {
			return PinID(n)
		}
		return NC
	}
	for i := range b.pins {
		if strings.EqualFold(b.pins[i].name, name) {
			return PinID(i + 1)
		}
	}
	return NC
}

// Digital returns the logic level of pin p. Unconnected pins read low.
//
func (b *Bus) Digital(p PinID) bool {
	if pin := b.pin(p); pin != nil {
		return pin.value
	}
	return false
}

// SetDigital sets the logic level of pin p. Writes to NC are ignored.
//
func (b *Bus) SetDigital(p PinID, v bool) {
	if pin := b.pin(p); pin != nil {
		pin.value = v
	}
}

// Analog returns the duty-cycle estimate of pin p computed at the last window
// boundary. Unconnected pins read 0.
//
func (b *Bus) Analog(p PinID) uint8 {
	if pin := b.pin(p); pin != nil {
		return pin.level
	}
	return 0
}

// sample adds the current logic level of the pin at index i to its
// accumulator.
//
func (b *Bus) sample(i int) {
	pin := &b.pins[i]
	if pin.value {
		pin.acc++
	}
	pin.samples++
}

func (b *Bus) resetAccumulators() {
	for i := range b.pins {
		b.pins[i].acc = 0
		b.pins[i].samples = 0
	}
}

// commit runs the estimator over all pins. Pins that were not sampled during
// the window keep their previous level.
//
func (b *Bus) commit(e *Estimator) {
	for i := range b.pins {
		pin := &b.pins[i]
		if pin.samples == 0 {
			continue
		}
		pin.level = e.Estimate(pin.acc)
	}
}

// reset clears all pin states, including analog levels which are set to
// level.
//
func (b *Bus) reset(level uint8) {
	for i := range b.pins {
		pin := &b.pins[i]
		pin.value = false
		pin.acc = 0
		pin.samples = 0
		pin.level = level
	}
}
