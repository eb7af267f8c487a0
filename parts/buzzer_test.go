// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package parts

import (
	"testing"
	"time"

	"github.com/db47h/boardsim"
	"github.com/db47h/boardsim/boardtest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testClock  = 800e3 // 100 steps per audio sample
	testRate   = 8000
	testWindow = 100 * time.Millisecond // 800 audio samples
)

type buzzerBoard struct {
	*boardsim.Board
	emu   *boardtest.Emulator
	audio *boardtest.Audio
	bz    *Buzzer
}

func newBuzzerBoard(t *testing.T, rate int) *buzzerBoard {
	t.Helper()
	emu := &boardtest.Emulator{Pins: 4, Clock: testClock}
	b, err := boardsim.New(emu, boardsim.WithWindow(testWindow))
	require.NoError(t, err)
	a := &boardtest.Audio{Rate: rate}
	p, err := b.Mount(BuzzerSpec(a), "in=2")
	require.NoError(t, err)
	return &buzzerBoard{Board: b, emu: emu, audio: a, bz: p.(*Buzzer)}
}

func (b *buzzerBoard) hold(v bool) {
	b.emu.Script = func(_ uint64, bus *boardsim.Bus) { bus.SetDigital(2, v) }
}

func (b *buzzerBoard) tone(hz float64) {
	b.emu.Script = boardtest.Tone(2, testClock, hz)
}

func (b *buzzerBoard) windows(n int) {
	b.AdvanceBy(uint64(n) * uint64(testWindow))
}

func TestBuzzer_tone(t *testing.T) {
	b := newBuzzerBoard(t, testRate)
	require.NoError(t, b.bz.ChangeType(Tone))
	b.tone(1000)
	b.windows(3)
	require.Len(t, b.audio.Starts, 1, "a steady tone is started once")
	assert.InEpsilon(t, 1000, b.audio.Starts[0], 0.05)
	assert.Equal(t, ToneGain, b.audio.Gains[0])

	b.tone(500)
	b.windows(1)
	require.Len(t, b.audio.Starts, 2)
	assert.InEpsilon(t, 500, b.audio.Starts[1], 0.05)

	b.hold(false)
	b.windows(1)
	assert.Equal(t, 0.0, b.audio.Playing)
	stops := b.audio.Stops
	b.windows(2)
	assert.Equal(t, stops, b.audio.Stops, "silence does not stop twice")
}

// A 1 kHz square wave on a 100 MHz board is detected within 5% after three
// default windows, and started only once.
func TestBuzzer_toneEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("30M instruction steps")
	}
	const clock = 1e8
	emu := &boardtest.Emulator{Pins: 4, Clock: clock, Script: boardtest.Tone(2, clock, 1000)}
	b, err := boardsim.New(emu)
	require.NoError(t, err)
	a := &boardtest.Audio{Rate: 8000}
	p, err := b.Mount(BuzzerSpec(a), "in=2")
	require.NoError(t, err)
	require.NoError(t, p.(*Buzzer).ChangeType(Tone))

	b.AdvanceBy(3 * uint64(boardsim.DefaultWindow))
	assert.EqualValues(t, 3, b.Context().Windows())
	require.Len(t, a.Starts, 1)
	assert.InEpsilon(t, 1000, a.Starts[0], 0.05)
	assert.Equal(t, ToneGain, a.Gains[0])
}

func TestBuzzer_toneHysteresis(t *testing.T) {
	b := newBuzzerBoard(t, testRate)
	require.NoError(t, b.bz.ChangeType(Tone))
	bz, a := b.bz, b.audio

	data := []struct {
		period  float64
		starts  int
		playing float64
	}{
		{8, 1, 1000},
		{7.95, 1, 1000},         // 1006.3 Hz
		{7.9, 2, 1012.6582278},  // 1012.7 Hz
		{0, 2, 0},               // no edge
		{80, 2, 0},              // 100 Hz
		{79, 3, 101.2658227848}, // 101.3 Hz
	}
	for _, d := range data {
		bz.tone.period = d.period
		bz.PostProcess()
		assert.Len(t, a.Starts, d.starts, "period %v", d.period)
		assert.InDelta(t, d.playing, a.Playing, 1e-6, "period %v", d.period)
	}
}

func TestBuzzer_active(t *testing.T) {
	b := newBuzzerBoard(t, testRate)
	b.hold(true)
	b.windows(3)
	assert.Equal(t, []float64{BeepFrequency}, b.audio.Starts)
	assert.Equal(t, 0, b.audio.Stops)

	b.hold(false)
	b.windows(2)
	assert.Equal(t, 1, b.audio.Stops)

	// active low: a low pin sounds
	b.bz.SetActiveHigh(false)
	b.windows(1)
	assert.Len(t, b.audio.Starts, 2)
	assert.EqualValues(t, 255, b.bz.Brightness())

	b.hold(true)
	b.windows(1)
	assert.Equal(t, 2, b.audio.Stops)
	assert.EqualValues(t, 55, b.bz.Brightness())
}

func TestBuzzer_passive(t *testing.T) {
	b := newBuzzerBoard(t, testRate)
	require.NoError(t, b.bz.ChangeType(Passive))
	assert.Equal(t, 1600, b.bz.buf.Size())
	b.hold(true)

	b.windows(1)
	assert.Empty(t, b.audio.Buffers, "buffers are only played once full")
	assert.Equal(t, 800, b.bz.buf.Len())

	b.windows(1)
	require.Len(t, b.audio.Buffers, 1)
	buf := b.audio.Buffers[0]
	require.Len(t, buf, 1600)
	assert.EqualValues(t, 0, buf[0])
	assert.InDelta(t, 12840, buf[1], 1)
	assert.InDelta(t, 0, buf[1500], 1, "the speaker does not hold a DC level")
	assert.EqualValues(t, 0, buf[1599], "last sample is zeroed")
	assert.Equal(t, 0, b.bz.buf.Len())

	b.windows(1)
	assert.Len(t, b.audio.Buffers, 1)
}

func TestBuzzer_passiveCarry(t *testing.T) {
	// 6000 Hz: 133 steps per sample, 602 samples per window, 1200 per buffer.
	b := newBuzzerBoard(t, 6000)
	require.NoError(t, b.bz.ChangeType(Passive))
	assert.Equal(t, 133, b.bz.jumpSteps)
	b.tone(500)

	b.windows(1)
	assert.Equal(t, 602, b.bz.buf.Len())
	b.windows(1)
	require.Len(t, b.audio.Buffers, 1)
	assert.Len(t, b.audio.Buffers[0], 1200)
	assert.Equal(t, 4, b.bz.buf.Len(), "samples past a full buffer start the next one")

	b.windows(2)
	require.Len(t, b.audio.Buffers, 2)
	assert.Len(t, b.audio.Buffers[1], 1200)
	assert.Equal(t, 8, b.bz.buf.Len())
	assert.Equal(t, 4*602, 2*1200+b.bz.buf.Len(), "no sample is dropped")
}

func TestBuzzer_ChangeType(t *testing.T) {
	b := newBuzzerBoard(t, testRate)
	bz, a := b.bz, b.audio

	steps := []struct {
		typ   BuzzerType
		stops int
		alloc bool
	}{
		{Active, 0, false},
		{Tone, 1, false},
		{Tone, 1, false},
		{Passive, 2, false},
		{Passive, 2, false},
		{Active, 2, false},
	}
	for _, s := range steps {
		require.NoError(t, bz.ChangeType(s.typ))
		assert.Equal(t, s.typ, bz.Type())
		assert.Equal(t, s.stops, a.Stops, "to %v", s.typ)
		if s.typ == Passive {
			b.hold(true)
			b.windows(1)
			assert.True(t, bz.buf.Allocated())
		} else {
			assert.Equal(t, s.alloc, bz.buf.Allocated(), "to %v", s.typ)
		}
	}

	assert.Error(t, bz.ChangeType(BuzzerType(7)))
	assert.Equal(t, Active, bz.Type())

	lo := newBuzzerBoard(t, 4)
	err := lo.bz.ChangeType(Passive)
	assert.Equal(t, ErrNoBuffer, errors.Cause(err))
	assert.Equal(t, Active, lo.bz.Type())
}

func TestBuzzer_state(t *testing.T) {
	b := newBuzzerBoard(t, testRate)
	bz := b.bz
	assert.Equal(t, "2,0,1", bz.WriteState())

	data := []struct {
		in, out string
	}{
		{"3,2,0", "3,2,0"},
		{"3, 1, 1", "3,1,1"},
		{"garbage", "0,0,1"},
		{"1,2", "0,0,1"},
		{"9,1,1", "0,1,1"},
		{"4,9,1", "4,0,1"},
		{"", "0,0,1"},
	}
	for _, d := range data {
		bz.ReadState(d.in)
		assert.Equal(t, d.out, bz.WriteState(), "ReadState(%q)", d.in)
	}
}

func TestBuzzer_outputs(t *testing.T) {
	b := newBuzzerBoard(t, testRate)
	bz := b.bz

	assert.Equal(t, BuzzerLED, bz.OutputID("LD_1"))
	assert.Equal(t, BuzzerPin1, bz.OutputID("PN_1"))
	assert.Equal(t, boardsim.InvalidID, bz.OutputID("LD_2"))
	assert.Equal(t, boardsim.InvalidID, bz.InputID("PB_1"))
	assert.Nil(t, bz.Output(BuzzerPin1))
	assert.Equal(t, "2", bz.Label(BuzzerPin1))
	assert.Equal(t, "GND", bz.Label(BuzzerPin2))

	led := bz.Output(BuzzerLED)
	b.hold(true)
	b.windows(1)
	assert.True(t, led.Dirty())
	assert.Equal(t, 255, led.Value())
	led.Clear()

	b.windows(1)
	assert.False(t, led.Dirty(), "unchanged level")

	b.hold(false)
	b.windows(1)
	assert.True(t, led.Dirty())
	assert.Equal(t, 55, led.Value())
}

func TestBuzzer_reset(t *testing.T) {
	b := newBuzzerBoard(t, testRate)
	b.hold(true)
	b.windows(1)
	require.Equal(t, float64(BeepFrequency), b.audio.Playing)

	b.SetPower(false)
	assert.Equal(t, 0.0, b.audio.Playing)
	assert.Equal(t, 1, b.audio.Stops)
}
