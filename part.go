// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

// A Part is a peripheral model attached to a board.
//
// The scheduler drives parts through three phases:
//
//	PreProcess is called once per estimation window, before the first
//	instruction step of that window.
//
//	Process is called after every powered instruction step. It runs at
//	instruction clock rate and must be cheap. It must not block or perform I/O.
//
//	PostProcess is called once per estimation window, after the analog levels
//	of all pins have been committed. External effects (sound, output updates)
//	happen here.
//
// Parts that have nothing to do in a phase implement it as a no-op.
//
type Part interface {
	PreProcess()
	Process()
	PostProcess()
}

// A Stopper is a part with an external effect (a sound, a motor) that must be
// stopped when the board is reset or the part removed.
//
type Stopper interface {
	Stop()
}

// A Resetter is a part with internal state that must be reinitialized when
// the board is reset.
//
type Resetter interface {
	Reset()
}

// A StateWriter is a part with persistent settings. The state string format is
// owned by the part. ReadState must not fail: on malformed input, the part
// falls back to its defaults.
//
type StateWriter interface {
	WriteState() string
	ReadState(state string)
}

// Funcs adapts plain functions to the Part interface. Nil functions are
// no-ops.
//
type Funcs struct {
	Pre  func()
	Proc func()
	Post func()
}

// PreProcess implements Part.
//
func (f *Funcs) PreProcess() {
	if f.Pre != nil {
		f.Pre()
	}
}

// Process implements Part.
//
func (f *Funcs) Process() {
	if f.Proc != nil {
		f.Proc()
	}
}

// PostProcess implements Part.
//
func (f *Funcs) PostProcess() {
	if f.Post != nil {
		f.Post()
	}
}

// Dispatcher calls the lifecycle phases of a list of parts in attachment
// order. Parts interact through shared pins, so the order is part of the
// simulation's semantics.
//
type Dispatcher struct {
	parts []Part
}

// Attach appends p to the list of parts.
//
func (d *Dispatcher) Attach(p Part) {
	d.parts = append(d.parts, p)
}

// Len returns the number of attached parts.
//
func (d *Dispatcher) Len() int { return len(d.parts) }

// Parts returns the attached parts in attachment order. The returned slice
// must not be modified.
//
func (d *Dispatcher) Parts() []Part { return d.parts }

// PreProcess calls PreProcess on all parts.
//
func (d *Dispatcher) PreProcess() {
	for _, p := range d.parts {
		p.PreProcess()
	}
}

// Process calls Process on all parts.
//
func (d *Dispatcher) Process() {
	for _, p := range d.parts {
		p.Process()
	}
}

// PostProcess calls PostProcess on all parts.
//
func (d *Dispatcher) PostProcess() {
	for _, p := range d.parts {
		p.PostProcess()
	}
}

// Stop stops the external effects of all parts implementing Stopper.
//
func (d *Dispatcher) Stop() {
	for _, p := range d.parts {
		if s, ok := p.(Stopper); ok {
			s.Stop()
		}
	}
}

// Reset resets all parts implementing Resetter.
//
func (d *Dispatcher) Reset() {
	for _, p := range d.parts {
		if r, ok := p.(Resetter); ok {
			r.Reset()
		}
	}
}
