// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

import "math"

// SimContext holds the simulation clock and counters of a board.
//
// Elapsed is always less than WindowNs between calls to AdvanceBy. When a
// step crosses the window boundary, WindowNs is subtracted and the remainder
// carries into the next window.
//
type SimContext struct {
	windowNs uint64
	stepNs   uint64
	freq     float64

	elapsed uint64 // ns elapsed in the current window
	pending uint64 // ns requested but not yet worth a whole step

	instructions uint64
	windows      uint64
	open         bool // a window has been opened (PreProcess ran)

	pi   int // round robin index of the next pin to sample
	skip int // steps until the next observer notification
}

// StepNs returns the nanoseconds advanced per instruction step for the given
// instruction clock frequency in Hz. It is never 0.
//
func StepNs(freq float64) uint64 {
	if freq <= 0 || math.IsNaN(freq) {
		return 1
	}
	ns := math.Round(1e9 / freq)
	if ns < 1 {
		return 1
	}
	return uint64(ns)
}

// WindowNs returns the length of an estimation window.
//
func (c *SimContext) WindowNs() uint64 { return c.windowNs }

// StepNs returns the nanoseconds per instruction step.
//
func (c *SimContext) StepNs() uint64 { return c.stepNs }

// Frequency returns the instruction clock frequency the step length was
// derived from.
//
func (c *SimContext) Frequency() float64 { return c.freq }

// Elapsed returns the nanoseconds elapsed in the current window.
//
func (c *SimContext) Elapsed() uint64 { return c.elapsed }

// Pending returns the nanoseconds requested from AdvanceBy that did not yet
// amount to a whole instruction step.
//
func (c *SimContext) Pending() uint64 { return c.pending }

// Instructions returns the number of emulator steps executed since the last
// reset.
//
func (c *SimContext) Instructions() uint64 { return c.instructions }

// Windows returns the number of window boundaries crossed since the board
// was created. It is not cleared by a reset.
//
func (c *SimContext) Windows() uint64 { return c.windows }

// setFrequency derives the step length from freq. Steps longer than a window
// are clamped to the window length.
//
func (c *SimContext) setFrequency(freq float64) {
	c.freq = freq
	c.stepNs = StepNs(freq)
	if c.stepNs > c.windowNs {
		c.stepNs = c.windowNs
	}
}

// consume takes the time of one instruction step from the pending time and
// *ns. If there is not enough time left for a whole step, the remainder of *ns
// is moved to the pending time and consume returns false.
//
func (c *SimContext) consume(ns *uint64) bool {
	if c.pending >= c.stepNs {
		c.pending -= c.stepNs
		return true
	}
	need := c.stepNs - c.pending
	if *ns >= need {
		*ns -= need
		c.pending = 0
		return true
	}
	c.pending += *ns
	*ns = 0
	return false
}

// tick advances the clock by one step and returns true if the step crossed
// the window boundary. Since stepNs <= windowNs, a step crosses at most one
// boundary.
//
func (c *SimContext) tick() bool {
	c.elapsed += c.stepNs
	if c.elapsed < c.windowNs {
		return false
	}
	c.elapsed -= c.windowNs
	c.windows++
	return true
}

// reset clears the instruction counter and the sampling indices. The clock
// (elapsed and pending time) and the open window are kept, so that window
// alignment survives power cycles.
//
func (c *SimContext) reset() {
	c.instructions = 0
	c.pi = 0
	c.skip = 0
}
