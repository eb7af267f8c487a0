// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package boards provides board definitions: connector pin maps, board
// inputs (jumpers, buttons) and board outputs (LEDs).
//
package boards

import (
	"github.com/db47h/boardsim"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// L432KC pin names, in connector order (pin 1 first).
//
var L432KCPins = []string{
	"VDD", "PC14", "PC15", "NRST", "VDD", "PA0", "PA1", "PA2",
	"PA3", "PA4", "PA5", "PA6", "PA7", "PB0", "PB1", "VSS",
	"VDD", "PA8", "PA9", "PA10", "PA11", "PA12", "PA13", "PA14",
	"PA15", "PB3", "PB4", "PB5", "PB6", "PB7", "PH3-BOOT0", "VSS",
}

// L432KC inputs.
//
const (
	InUSB   boardsim.ID = iota // USB connector: firmware load request
	InPower                    // power jumper
	InReset                    // reset button
)

// L432KC outputs.
//
const (
	OutRGB  boardsim.ID = iota // RGB LED, not driven
	OutLED2                    // power LED
	OutLED3                    // user LED on PB3
)

var (
	l432kcInputs = boardsim.IDMap{
		"PG_USB": InUSB,
		"JP_PWR": InPower,
		"PB_RST": InReset,
	}
	l432kcOutputs = boardsim.IDMap{
		"LR_RGB":  OutRGB,
		"LD_LED2": OutLED2,
		"LD_LED3": OutLED3,
	}
)

// L432KC is a 32 pin STM32L432KC Nucleo board.
//
type L432KC struct {
	*boardsim.Board

	led3   boardsim.PinID
	leds   [3]boardsim.Output
	reset  bool // reset button held
	onLoad func()
}

// NewL432KC returns a new board driven by emu, which must have 32 pins. The
// board is named "STM32L432KC" unless a name is given in opts.
//
func NewL432KC(emu boardsim.Emulator, opts ...boardsim.Option) (*L432KC, error) {
	if emu != nil && emu.PinCount() != len(L432KCPins) {
		return nil, errors.Wrapf(boardsim.ErrBadConfig, "L432KC: emulator has %d pins, need %d", emu.PinCount(), len(L432KCPins))
	}
	opts = append([]boardsim.Option{
		boardsim.WithName("STM32L432KC"),
		boardsim.WithPinNames(L432KCPins...),
	}, opts...)
	b, err := boardsim.New(emu, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "L432KC")
	}
	l := &L432KC{Board: b, led3: b.Bus().Lookup("PB3")}
	b.Attach("board", &boardsim.Funcs{Post: l.refresh})
	l.refresh()
	return l, nil
}

// OnLoad sets the function called when the USB input is pressed.
//
func (l *L432KC) OnLoad(f func()) { l.onLoad = f }

// InputID returns the ID of the named board input: PG_USB, JP_PWR or PB_RST.
//
func (l *L432KC) InputID(name string) boardsim.ID {
	return l432kcInputs.Lookup("input", name)
}

// OutputID returns the ID of the named board output: LR_RGB, LD_LED2 or
// LD_LED3.
//
func (l *L432KC) OutputID(name string) boardsim.ID {
	return l432kcOutputs.Lookup("output", name)
}

// Output returns the output slot for id, or nil if id is not a valid output.
// Slot values are LED brightnesses in [0, 255].
//
func (l *L432KC) Output(id boardsim.ID) *boardsim.Output {
	if id < 0 || int(id) >= len(l.leds) {
		return nil
	}
	return &l.leds[id]
}

// PressInput handles a press on a board input. The power jumper toggles the
// board power, the reset button resets the board. Invalid IDs are ignored.
//
func (l *L432KC) PressInput(id boardsim.ID) {
	switch id {
	case InUSB:
		if l.onLoad != nil {
			l.onLoad()
		}
	case InPower:
		l.SetPower(!l.Powered())
		l.refresh()
	case InReset:
		l.reset = true
		l.Reset()
	default:
		glog.V(1).Infof("L432KC: press on input %d ignored", id)
	}
}

// ReleaseInput handles the release of a board input.
//
func (l *L432KC) ReleaseInput(id boardsim.ID) {
	if id == InReset {
		l.reset = false
	}
}

// ResetHeld returns true while the reset button is pressed.
//
func (l *L432KC) ResetHeld() bool { return l.reset }

func (l *L432KC) refresh() {
	l.leds[OutLED2].Set(200*btoi(l.Powered()) + 55)
	l.leds[OutLED3].Set(int(l.Bus().Analog(l.led3)))
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
