// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

import (
	"time"

	"github.com/pkg/errors"
)

// Default configuration values.
//
const (
	// DefaultWindow is the estimation window length. It matches the refresh
	// tick of the board display.
	DefaultWindow = 100 * time.Millisecond
	// DefaultBaseline is the analog level of a pin that stayed low during a
	// whole window. It is distinct from 0 (not connected).
	DefaultBaseline = 55
	// DefaultAnalogSpan is the level added to the baseline for a pin that
	// stayed high during a whole window.
	DefaultAnalogSpan = 200
	// DefaultJumpSteps is the observer throttling multiplier.
	DefaultJumpSteps = 4
)

// Config holds the board configuration.
//
type Config struct {
	// Name prefixes the board preference keys.
	Name string
	// WindowNs is the estimation window length in nanoseconds.
	WindowNs uint64
	// Baseline is the analog resting level. See DefaultBaseline.
	Baseline uint8
	// AnalogSpan is the analog level range above Baseline.
	AnalogSpan float64
	// JumpSteps is the number of instruction steps between two observer
	// notifications. It does not affect pin sampling.
	JumpSteps int
	// Powered is the initial power state.
	Powered bool
}

// DefaultConfig returns the default configuration.
//
func DefaultConfig() Config {
	return Config{
		Name:       "board",
		WindowNs:   uint64(DefaultWindow),
		Baseline:   DefaultBaseline,
		AnalogSpan: DefaultAnalogSpan,
		JumpSteps:  DefaultJumpSteps,
		Powered:    true,
	}
}

// Validate checks the configuration.
//
func (c *Config) Validate() error {
	if c.WindowNs == 0 {
		return errors.Wrap(ErrBadConfig, "zero estimation window")
	}
	if c.AnalogSpan < 0 {
		return errors.Wrapf(ErrBadConfig, "negative analog span %g", c.AnalogSpan)
	}
	if c.JumpSteps < 1 {
		return errors.Wrapf(ErrBadConfig, "jump steps %d < 1", c.JumpSteps)
	}
	return nil
}

// An Option configures a board at construction.
//
type Option func(b *Board)

// WithConfig replaces the board configuration.
//
func WithConfig(c Config) Option {
	return func(b *Board) { b.cfg = c }
}

// WithWindow sets the estimation window length.
//
func WithWindow(d time.Duration) Option {
	return func(b *Board) { b.cfg.WindowNs = uint64(d) }
}

// WithName sets the board name.
//
func WithName(name string) Option {
	return func(b *Board) { b.cfg.Name = name }
}

// WithObserver sets the observer notified every JumpSteps instruction steps.
//
func WithObserver(o Observer) Option {
	return func(b *Board) { b.obs = o }
}

// WithPinNames names the bus pins. The pin count must match the emulator's.
//
func WithPinNames(names ...string) Option {
	return func(b *Board) { b.pinNames = names }
}
