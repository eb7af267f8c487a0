// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

// AdvanceBy advances the simulation by ns nanoseconds of simulated time.
//
// The time is cut into instruction steps. Time that does not amount to a whole
// step is kept and added to the next call, so that any sequence of calls
// summing to the same duration runs the same number of steps and crosses the
// same number of window boundaries.
//
// For each step:
//
//	- if the step is the first of a window, pin accumulators are cleared and
//	  parts are PreProcess'ed.
//	- if the board is powered, the emulator executes one instruction, parts
//	  are Process'ed and one pin, chosen round robin, is sampled.
//	- the clock advances by one step. On crossing the window boundary, the
//	  analog levels of all pins are estimated and parts are PostProcess'ed.
//
// An unpowered board does not step the emulator nor Process parts, but
// window bookkeeping still runs.
//
func (b *Board) AdvanceBy(ns uint64) {
	c := &b.ctx
	for {
		if !c.open {
			b.refreshFrequency()
		}
		if !c.consume(&ns) {
			return
		}
		if !c.open {
			b.openWindow()
		}
		b.step()
	}
}

func (b *Board) step() {
	c := &b.ctx
	if b.powered {
		b.emu.Step()
		c.instructions++

		if b.obs != nil {
			if c.skip == 0 {
				b.obs.Sample(b.bus)
			}
			if c.skip++; c.skip >= b.cfg.JumpSteps {
				c.skip = 0
			}
		}

		b.parts.Process()

		// one pin per step keeps the per-step cost constant. Over a window,
		// each pin is still sampled many times.
		if n := b.bus.Len(); n > 0 {
			b.bus.sample(c.pi)
			if c.pi++; c.pi >= n {
				c.pi = 0
			}
		}
	}

	if c.tick() {
		b.closeWindow()
	}
}

func (b *Board) openWindow() {
	c := &b.ctx
	b.bus.resetAccumulators()
	c.skip = 0
	c.pi = 0
	c.open = true
	b.parts.PreProcess()
}

func (b *Board) closeWindow() {
	b.bus.commit(b.est)
	b.ctx.open = false
	b.parts.PostProcess()
}

// refreshFrequency updates the step length and estimator if the emulator's
// instruction clock changed. It only runs between windows.
//
func (b *Board) refreshFrequency() {
	c := &b.ctx
	f := b.emu.InstructionClockFrequency()
	if b.est != nil && f == c.freq {
		return
	}
	c.setFrequency(f)
	b.est = NewEstimator(b.bus.Len(), c.stepNs, c.windowNs, b.cfg.AnalogSpan, b.cfg.Baseline)
}
