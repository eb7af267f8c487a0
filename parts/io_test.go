// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package parts_test

import (
	"testing"
	"time"

	"github.com/db47h/boardsim"
	"github.com/db47h/boardsim/boardtest"
	"github.com/db47h/boardsim/parts"
)

func newBoard(t *testing.T) (*boardsim.Board, *boardtest.Emulator) {
	t.Helper()
	emu := &boardtest.Emulator{Pins: 4, Clock: 1e6}
	b, err := boardsim.New(emu, boardsim.WithWindow(time.Millisecond),
		boardsim.WithPinNames("A", "B", "C", "D"))
	if err != nil {
		t.Fatal(err)
	}
	return b, emu
}

func mount(t *testing.T, b *boardsim.Board, spec *boardsim.PartSpec, conns string) boardsim.Part {
	t.Helper()
	p, err := b.Mount(spec, conns)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestInputProbe(t *testing.T) {
	b, _ := newBoard(t)
	var in bool
	var levels []uint8
	var highs int
	mount(t, b, parts.Input(func() bool { return in }), "out=A")
	mount(t, b, parts.Probe(func(l uint8) { levels = append(levels, l) }), "in=A")
	mount(t, b, parts.Output(func(v bool) {
		if v {
			highs++
		}
	}), "in=A")

	b.AdvanceBy(uint64(time.Millisecond))
	in = true
	b.AdvanceBy(uint64(time.Millisecond))

	if len(levels) != 2 || levels[0] != 55 || levels[1] != 255 {
		t.Fatalf("expected levels [55 255], got %v", levels)
	}
	if highs != 1000 {
		t.Fatalf("expected 1000 high steps, got %d", highs)
	}
}

func TestLED(t *testing.T) {
	b, emu := newBoard(t)
	led := mount(t, b, parts.LEDSpec, "in=B").(*parts.LED)
	emu.Script = boardtest.SquareWave(2, 8, 4)

	b.AdvanceBy(uint64(time.Millisecond))
	if v := led.Brightness(); v != 155 {
		t.Fatalf("expected brightness 155, got %d", v)
	}
	if !led.Output().Dirty() || led.Output().Value() != 155 {
		t.Fatalf("output not updated: %d", led.Output().Value())
	}

	led.SetActiveHigh(false)
	if v := led.Brightness(); v != 100 {
		t.Fatalf("expected active low brightness 100, got %d", v)
	}
	if s := led.WriteState(); s != "2,0" {
		t.Fatalf("bad state %q", s)
	}
	led.ReadState("bad")
	if s := led.WriteState(); s != "0,1" {
		t.Fatalf("bad default state %q", s)
	}
	if v := led.Brightness(); v != 0 {
		t.Fatalf("unconnected LED is lit: %d", v)
	}
}

func TestPushButton(t *testing.T) {
	b, _ := newBoard(t)
	btn := mount(t, b, parts.PushButtonSpec, "out=C").(*parts.PushButton)
	bus := b.Bus()

	btn.Press()
	b.AdvanceBy(1000)
	if !bus.Digital(3) {
		t.Fatal("pressed button should drive its pin high")
	}
	btn.Release()
	b.AdvanceBy(1000)
	if bus.Digital(3) {
		t.Fatal("released button should drive its pin low")
	}

	btn.SetActiveHigh(false)
	b.AdvanceBy(1000)
	if !bus.Digital(3) {
		t.Fatal("released active low button should drive its pin high")
	}

	btn.Press()
	b.Reset()
	if btn.Pressed() {
		t.Fatal("reset should release the button")
	}
	if s := btn.WriteState(); s != "3,0" {
		t.Fatalf("bad state %q", s)
	}
}
