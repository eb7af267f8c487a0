// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package emulator_test

import (
	"testing"
	"time"

	"github.com/db47h/boardsim"
	"github.com/db47h/boardsim/emulator"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator(t *testing.T) {
	g := emulator.New(4, 1e6)
	b, err := boardsim.New(g, boardsim.WithWindow(time.Millisecond))
	require.NoError(t, err)

	require.NoError(t, g.Drive(1, 0, 1))
	require.NoError(t, g.Drive(2, 1000, 0.5))
	require.NoError(t, g.Drive(3, 1000, 0.5))
	require.NoError(t, g.Drive(3, 0, 0), "replaces the previous wave")

	b.AdvanceBy(uint64(time.Millisecond))
	bus := b.Bus()
	assert.EqualValues(t, 255, bus.Analog(1))
	assert.EqualValues(t, 155, bus.Analog(2))
	assert.EqualValues(t, 55, bus.Analog(3))
	assert.EqualValues(t, 1000, g.Steps())

	g.Stop(1)
	assert.False(t, bus.Digital(1))
	b.AdvanceBy(uint64(time.Millisecond))
	assert.EqualValues(t, 55, bus.Analog(1))

	// the new clock is picked up at the next window
	g.SetInstructionClockFrequency(2e6)
	b.AdvanceBy(uint64(time.Millisecond))
	assert.EqualValues(t, 4000, g.Steps())
	assert.EqualValues(t, 155, bus.Analog(2))

	b.Reset()
	assert.EqualValues(t, 0, g.Steps())
}

func TestGenerator_errors(t *testing.T) {
	g := emulator.New(4, 0)
	assert.Equal(t, emulator.DefaultClock, g.InstructionClockFrequency())
	assert.Equal(t, boardsim.ErrInvalidPin, errors.Cause(g.Drive(0, 1, 1)))
	assert.Equal(t, boardsim.ErrInvalidPin, errors.Cause(g.Drive(5, 1, 1)))
	assert.Error(t, g.Drive(1, -1, .5))
	assert.Error(t, g.Drive(1, 1, 2))

	g.SetInstructionClockFrequency(-1)
	assert.Equal(t, emulator.DefaultClock, g.InstructionClockFrequency())
}
