// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

import (
	"context"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// A Board is a simulated electronic board: an emulated microcontroller, its
// pin bus and the parts attached to it.
//
// A Board is not safe for concurrent use. All lifecycle calls and pin
// mutations happen synchronously within AdvanceBy, in a fixed order.
//
type Board struct {
	cfg      Config
	emu      Emulator
	bus      *Bus
	ctx      SimContext
	est      *Estimator
	parts    Dispatcher
	names    []string // part spec names, in attachment order
	obs      Observer
	powered  bool
	pinNames []string
}

// New creates a new board driven by the given emulator.
//
func New(emu Emulator, opts ...Option) (*Board, error) {
	if emu == nil {
		return nil, ErrNoEmulator
	}
	b := &Board{cfg: DefaultConfig(), emu: emu}
	for _, o := range opts {
		o(b)
	}
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	n := emu.PinCount()
	if n < 0 {
		return nil, errors.Wrapf(ErrBadConfig, "negative pin count %d", n)
	}
	switch {
	case b.pinNames == nil:
		b.bus = NewBusN(n)
	case len(b.pinNames) != n:
		return nil, errors.Wrapf(ErrBadConfig, "%d pin names for %d pins", len(b.pinNames), n)
	default:
		b.bus = NewBus(b.pinNames...)
	}
	b.bus.reset(b.cfg.Baseline)

	b.ctx.windowNs = b.cfg.WindowNs
	b.refreshFrequency()
	b.powered = b.cfg.Powered

	if c, ok := emu.(BusConnector); ok {
		c.ConnectBus(b.bus)
	}
	return b, nil
}

// Mount creates a new part from spec, connects its pins according to the
// given connection string (see ParseConnections) and attaches it to the board.
//
// Connections to unknown board pins are configuration errors: they are logged
// and the part pin is left unconnected.
//
func (b *Board) Mount(spec *PartSpec, connections string) (Part, error) {
	w, err := ParseConnections(connections)
	if err != nil {
		return nil, errors.Wrap(err, spec.Name)
	}
	if err = w.Check(spec.Pins...); err != nil {
		return nil, errors.Wrap(err, spec.Name)
	}
	p, err := spec.New(newSocket(b, spec, w))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create part "+spec.Name)
	}
	b.Attach(spec.Name, p)
	return p, nil
}

// Attach attaches a part created outside of Mount. Parts are processed in
// attachment order.
//
func (b *Board) Attach(name string, p Part) {
	b.parts.Attach(p)
	b.names = append(b.names, name)
}

// Parts returns the attached parts in attachment order.
//
func (b *Board) Parts() []Part { return b.parts.Parts() }

// Bus returns the board's pin bus.
//
func (b *Board) Bus() *Bus { return b.bus }

// Context returns the board's simulation context.
//
func (b *Board) Context() *SimContext { return &b.ctx }

// Config returns the board configuration.
//
func (b *Board) Config() Config { return b.cfg }

// Emulator returns the board's emulator.
//
func (b *Board) Emulator() Emulator { return b.emu }

// Estimator returns the analog estimator in use for the current window.
//
func (b *Board) Estimator() *Estimator { return b.est }

// Powered returns true if the board is powered.
//
func (b *Board) Powered() bool { return b.powered }

// SetPower switches the board power on or off. A power change resets the
// board.
//
func (b *Board) SetPower(on bool) {
	if b.powered == on {
		return
	}
	b.powered = on
	b.Reset()
}

// Reset stops all part outputs, resets parts and the emulator, clears all pin
// accumulators and the instruction counter. The simulation clock is not
// touched: the current window stays open and its boundary still commits
// analog levels and calls PostProcess. Analog levels are kept until then.
//
func (b *Board) Reset() {
	b.parts.Stop()
	b.parts.Reset()
	if r, ok := b.emu.(Resetter); ok {
		r.Reset()
	}
	b.bus.resetAccumulators()
	b.ctx.reset()
}

// Run advances the simulation by one window every period of wall clock time
// until ctx is done. If period is 0, the window length is used, which runs the
// simulation in real time.
//
// Run returns ctx.Err(). AdvanceBy is never interrupted: cancellation is
// checked between windows.
//
func (b *Board) Run(ctx context.Context, period time.Duration) error {
	if period <= 0 {
		period = time.Duration(b.cfg.WindowNs)
	}
	t := time.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			start := time.Now()
			b.AdvanceBy(b.cfg.WindowNs)
			if d := time.Since(start); d > period {
				glog.V(1).Infof("%s: window took %v, longer than the %v period", b.cfg.Name, d, period)
			}
		}
	}
}
