// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package emulator provides stand-in microcontrollers for boardsim boards.
//
// A Generator replaces a real instruction set emulator with per pin square
// wave generators clocked by the instruction counter. It is enough to drive
// parts with tones, PWM levels or constant logic levels, without firmware.
//
package emulator

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/db47h/boardsim"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// DefaultClock is the default instruction clock, in Hz.
//
const DefaultClock = 16e6

// wave is a square wave expressed in instruction steps.
type wave struct {
	pin    boardsim.PinID
	hz     float64
	duty   float64
	period uint64 // steps
	high   uint64 // steps spent high in each period
}

// Generator is a boardsim.Emulator that drives pins with square waves.
//
// Drive, Stop and SetInstructionClockFrequency may be called from any
// goroutine. Changes take effect at the next instruction step; a new clock
// frequency is picked up by the board at the next window boundary.
//
type Generator struct {
	pins int
	bus  *boardsim.Bus

	mu     sync.Mutex
	clock  float64
	waves  []wave
	dirty  atomic.Bool
	active []wave // copy used by Step

	steps uint64
}

// New returns a generator for a device with the given pin count.
//
func New(pins int, clock float64) *Generator {
	if clock <= 0 {
		clock = DefaultClock
	}
	return &Generator{pins: pins, clock: clock}
}

// PinCount implements boardsim.Emulator.
//
func (g *Generator) PinCount() int { return g.pins }

// InstructionClockFrequency implements boardsim.Emulator.
//
func (g *Generator) InstructionClockFrequency() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.clock
}

// SetInstructionClockFrequency implements boardsim.ClockSetter. Wave periods
// are recomputed for the new clock.
//
func (g *Generator) SetInstructionClockFrequency(hz float64) {
	if hz <= 0 || math.IsNaN(hz) {
		glog.Warningf("generator: ignoring clock frequency %v", hz)
		return
	}
	g.mu.Lock()
	g.clock = hz
	for i := range g.waves {
		g.waves[i].update(hz)
	}
	g.dirty.Store(true)
	g.mu.Unlock()
}

// ConnectBus implements boardsim.BusConnector.
//
func (g *Generator) ConnectBus(b *boardsim.Bus) { g.bus = b }

// Drive drives pin p with a square wave of frequency hz and the given duty
// cycle in [0, 1]. A frequency of 0 holds the pin high if duty >= 0.5 and low
// otherwise. Drive replaces any wave previously set on p.
//
func (g *Generator) Drive(p boardsim.PinID, hz, duty float64) error {
	if p == boardsim.NC || int(p) > g.pins || p < 0 {
		return errors.Wrapf(boardsim.ErrInvalidPin, "generator: pin %d", p)
	}
	if hz < 0 || duty < 0 || duty > 1 {
		return errors.Errorf("generator: invalid wave %v Hz, duty %v", hz, duty)
	}
	w := wave{pin: p, hz: hz, duty: duty}
	g.mu.Lock()
	defer g.mu.Unlock()
	w.update(g.clock)
	for i := range g.waves {
		if g.waves[i].pin == p {
			g.waves[i] = w
			g.dirty.Store(true)
			return nil
		}
	}
	g.waves = append(g.waves, w)
	g.dirty.Store(true)
	return nil
}

// Stop stops driving pin p and pulls it low.
//
func (g *Generator) Stop(p boardsim.PinID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.waves {
		if g.waves[i].pin == p {
			g.waves = append(g.waves[:i], g.waves[i+1:]...)
			g.dirty.Store(true)
			break
		}
	}
	if g.bus != nil {
		g.bus.SetDigital(p, false)
	}
}

func (w *wave) update(clock float64) {
	if w.hz == 0 {
		w.period = 0
		return
	}
	w.period = uint64(math.Round(clock / w.hz))
	if w.period < 1 {
		w.period = 1
	}
	w.high = uint64(math.Round(float64(w.period) * w.duty))
}

func (w *wave) level(step uint64) bool {
	if w.period == 0 {
		return w.duty >= 0.5
	}
	return step%w.period < w.high
}

// Steps returns the number of instructions executed since the last reset.
//
func (g *Generator) Steps() uint64 { return g.steps }

// Step implements boardsim.Emulator.
//
func (g *Generator) Step() {
	if g.dirty.Load() {
		g.mu.Lock()
		g.active = append(g.active[:0], g.waves...)
		g.dirty.Store(false)
		g.mu.Unlock()
	}
	if g.bus != nil {
		for i := range g.active {
			w := &g.active[i]
			g.bus.SetDigital(w.pin, w.level(g.steps))
		}
	}
	g.steps++
}

// Reset implements boardsim.Resetter. Waves are kept: they restart in phase.
//
func (g *Generator) Reset() {
	g.steps = 0
	if g.bus == nil {
		return
	}
	for i := 0; i < g.pins; i++ {
		g.bus.SetDigital(boardsim.PinID(i+1), false)
	}
}
