// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package boardtest provides test doubles for boards and parts: a scripted
// emulator, a recording audio device and a recording part.
//
package boardtest

import (
	"fmt"
	"math"
	"strings"

	"github.com/db47h/boardsim"
)

// Emulator is a scripted boardsim.Emulator. On every step, it calls Script
// with the number of instructions executed so far, and the bus.
//
type Emulator struct {
	Pins   int
	Clock  float64
	Script func(step uint64, bus *boardsim.Bus)

	Steps  uint64
	Resets int
	bus    *boardsim.Bus
}

// Step implements boardsim.Emulator.
//
func (e *Emulator) Step() {
	if e.Script != nil && e.bus != nil {
		e.Script(e.Steps, e.bus)
	}
	e.Steps++
}

// InstructionClockFrequency implements boardsim.Emulator.
//
func (e *Emulator) InstructionClockFrequency() float64 { return e.Clock }

// SetInstructionClockFrequency implements boardsim.ClockSetter.
//
func (e *Emulator) SetInstructionClockFrequency(hz float64) { e.Clock = hz }

// PinCount implements boardsim.Emulator.
//
func (e *Emulator) PinCount() int { return e.Pins }

// ConnectBus implements boardsim.BusConnector.
//
func (e *Emulator) ConnectBus(b *boardsim.Bus) { e.bus = b }

// Reset implements boardsim.Resetter.
//
func (e *Emulator) Reset() {
	e.Steps = 0
	e.Resets++
}

// SquareWave returns an emulator script driving pin p with a square wave of
// the given period in instruction steps, high for the first high steps of
// each period.
//
func SquareWave(p boardsim.PinID, period, high uint64) func(uint64, *boardsim.Bus) {
	return func(step uint64, bus *boardsim.Bus) {
		bus.SetDigital(p, step%period < high)
	}
}

// Tone returns an emulator script driving pin p with a 50% square wave of
// frequency hz for the given instruction clock.
//
func Tone(p boardsim.PinID, clock, hz float64) func(uint64, *boardsim.Bus) {
	period := uint64(math.Round(clock / hz))
	return SquareWave(p, period, period/2)
}

// Audio is a boardsim audio.Device that records calls.
//
type Audio struct {
	Rate int

	Starts  []float64 // StartTone frequencies
	Gains   []float64
	Stops   int
	Buffers [][]int16
	Playing float64 // current tone frequency, 0 if none
}

// SampleRate implements audio.Device.
//
func (a *Audio) SampleRate() int { return a.Rate }

// Max implements audio.Device.
//
func (a *Audio) Max() int16 { return math.MaxInt16 }

// StartTone implements audio.Device.
//
func (a *Audio) StartTone(freq, gain float64) {
	a.Starts = append(a.Starts, freq)
	a.Gains = append(a.Gains, gain)
	a.Playing = freq
}

// StopTone implements audio.Device.
//
func (a *Audio) StopTone() {
	a.Stops++
	a.Playing = 0
}

// PlayBuffer implements audio.Device. Samples are copied.
//
func (a *Audio) PlayBuffer(samples []int16) int {
	a.Buffers = append(a.Buffers, append([]int16(nil), samples...))
	return len(samples)
}

// Part is a boardsim.Part that records lifecycle calls.
//
type Part struct {
	Pre, Proc, Post, Stops, Resets int

	// Log records phase changes: "pre", "post", "stop", "reset". Process
	// calls are counted but not logged.
	Log []string

	// OnPost, if set, is called at the end of PostProcess.
	OnPost func()
}

// PreProcess implements boardsim.Part.
//
func (p *Part) PreProcess() {
	p.Pre++
	p.Log = append(p.Log, "pre")
}

// Process implements boardsim.Part.
//
func (p *Part) Process() { p.Proc++ }

// PostProcess implements boardsim.Part.
//
func (p *Part) PostProcess() {
	p.Post++
	p.Log = append(p.Log, fmt.Sprintf("post(%d)", p.Proc))
	if p.OnPost != nil {
		p.OnPost()
	}
}

// Stop implements boardsim.Stopper.
//
func (p *Part) Stop() {
	p.Stops++
	p.Log = append(p.Log, "stop")
}

// Reset implements boardsim.Resetter.
//
func (p *Part) Reset() {
	p.Resets++
	p.Log = append(p.Log, "reset")
}

// String returns the log as a space separated list.
//
func (p *Part) String() string { return strings.Join(p.Log, " ") }
