// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package parts

import (
	"math"

	"github.com/db47h/boardsim"
	"github.com/db47h/boardsim/audio"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// BuzzerType selects how a buzzer turns its input pin into sound.
//
type BuzzerType uint8

// Buzzer types.
//
const (
	// Active buzzers have their own oscillator: they sound while the input
	// is on.
	Active BuzzerType = iota
	// Passive buzzers are driven directly by the input signal, filtered
	// through the speaker response.
	Passive
	// Tone buzzers play a clean tone at the frequency detected on the input.
	Tone
)

func (t BuzzerType) String() string {
	switch t {
	case Active:
		return "Active"
	case Passive:
		return "Passive"
	case Tone:
		return "Tone"
	}
	return "BuzzerType(" + formatState(int(t)) + ")"
}

// Buzzer outputs.
//
const (
	BuzzerPin1 boardsim.ID = iota // connector label, input pin name
	BuzzerPin2                    // connector label, always GND
	BuzzerLED                     // LED showing the input level
)

var buzzerOutputs = boardsim.IDMap{
	"PN_1": BuzzerPin1,
	"PN_2": BuzzerPin2,
	"LD_1": BuzzerLED,
}

// Buzzer tuning.
//
const (
	// BeepFrequency is the frequency of an active buzzer.
	BeepFrequency = 2000
	// ToneGain is the gain of active and tone buzzers.
	ToneGain = 0.5
	// ToneHysteresis is the frequency change, in Hz, needed to restart a
	// playing tone.
	ToneHysteresis = 10
	// MinToneFrequency is the lowest frequency played by a tone buzzer.
	MinToneFrequency = 100

	// active buzzer thresholds on the analog level of the input.
	activeHighThreshold = 65
	activeLowThreshold  = 215
	// levels are mirrored around lowLevelMirror for active low inputs.
	lowLevelMirror = 310
)

// Buzzer is an audio transducer.
//
// Passive buzzers play their samples by buffers of 0.2 seconds, at the first
// window boundary where a buffer is full. Samples produced past a full buffer
// start the next one; they are only dropped if a whole second buffer fills up
// within the same window.
//
//	Inputs: in
//	State: in pin, type, active high (e.g. "26,2,1")
//
type Buzzer struct {
	In boardsim.PinID `pin:""`

	s   *boardsim.Socket
	bus *boardsim.Bus
	dev audio.Device

	typ    BuzzerType
	active bool // input is active high
	rate   int
	maxv   float64

	jumpSteps int // instruction steps per audio sample
	mcount    int

	filter Biquad
	buf    SampleBuffer
	tone   ToneDetector
	freq   float64 // frequency of the playing tone, 0 if none
	on     bool    // active buzzer sounding

	led boardsim.Output
}

// BuzzerSpec returns a PartSpec for buzzers playing on dev.
//
func BuzzerSpec(dev audio.Device) *boardsim.PartSpec {
	return &boardsim.PartSpec{
		Name: "Buzzer",
		Pins: []string{pIn},
		New: func(s *boardsim.Socket) (boardsim.Part, error) {
			return NewBuzzer(s, dev)
		},
	}
}

// NewBuzzer returns a new Active, active high buzzer.
//
func NewBuzzer(s *boardsim.Socket, dev audio.Device) (*Buzzer, error) {
	if dev == nil {
		return nil, errors.New("buzzer: no audio device")
	}
	b := &Buzzer{
		s:      s,
		bus:    s.Bus(),
		dev:    dev,
		typ:    Active,
		active: true,
		rate:   dev.SampleRate(),
		maxv:   float64(dev.Max()),
		filter: NewSpeakerFilter(),
	}
	s.Bind(b)
	// 0.2 seconds
	b.buf = NewSampleBuffer(b.rate / 5)
	b.updateJumpSteps()
	b.mcount = b.jumpSteps
	return b, nil
}

// Type returns the buzzer type.
//
func (b *Buzzer) Type() BuzzerType { return b.typ }

// ActiveHigh returns true if the buzzer input is active high.
//
func (b *Buzzer) ActiveHigh() bool { return b.active }

// SetActiveHigh sets the input polarity.
//
func (b *Buzzer) SetActiveHigh(v bool) { b.active = v }

// SetPin connects the buzzer input to pin p.
//
func (b *Buzzer) SetPin(p boardsim.PinID) {
	b.In = statePin("Buzzer", b.bus, int(p))
}

// ChangeType switches the buzzer type. Leaving Active or Tone stops the
// playing tone. Leaving Passive releases the sample buffer; it is allocated
// again on first use.
//
// Changing to the current type is a no-op. Changing to Passive fails with
// ErrNoBuffer if the audio device sample rate is too low to hold a buffer.
//
func (b *Buzzer) ChangeType(t BuzzerType) error {
	if t == b.typ {
		return nil
	}
	if t > Tone {
		return errors.Errorf("buzzer: unknown type %d", t)
	}
	if t == Passive && b.buf.Size() == 0 {
		return errors.Wrapf(ErrNoBuffer, "buzzer: sample rate %d", b.rate)
	}

	switch b.typ {
	case Active, Tone:
		b.stopTone()
	case Passive:
		b.buf.Release()
	}
	b.typ = t
	b.filter.Reset()
	b.tone.Reset()
	b.mcount = b.jumpSteps
	return nil
}

func (b *Buzzer) updateJumpSteps() {
	n := 1
	if b.rate > 0 {
		n = int(math.Round(b.s.InstructionClockFrequency() / float64(b.rate)))
	}
	if n < 1 {
		n = 1
	}
	b.jumpSteps = n
}

// PreProcess implements boardsim.Part. The instruction clock may have changed
// since the previous window: the sampling divisor is recomputed.
//
func (b *Buzzer) PreProcess() {
	b.updateJumpSteps()
	switch b.typ {
	case Passive:
		b.mcount = b.jumpSteps
	case Tone:
		b.mcount = b.jumpSteps
		b.tone.Reset()
	}
}

// Process implements boardsim.Part. Passive buzzers filter the input into the
// sample buffer, tone buzzers feed the tone detector, once per audio sample
// period.
//
func (b *Buzzer) Process() {
	switch b.typ {
	case Passive:
		if b.mcount++; b.mcount < b.jumpSteps {
			return
		}
		b.mcount = 0
		if b.In == boardsim.NC {
			return
		}
		x := -0.5 * b.maxv
		if b.bus.Digital(b.In) == b.active {
			x = 0.5 * b.maxv
		}
		b.buf.Append(b.clip(b.filter.Filter(x)))
	case Tone:
		if b.mcount++; b.mcount < b.jumpSteps {
			return
		}
		b.mcount = 0
		if b.In != boardsim.NC {
			b.tone.Sample(b.bus.Digital(b.In))
		}
	}
}

func (b *Buzzer) clip(v float64) int16 {
	v = math.Round(v)
	if v > b.maxv {
		v = b.maxv
	} else if v < -b.maxv {
		v = -b.maxv
	}
	return int16(v)
}

// PostProcess implements boardsim.Part.
//
func (b *Buzzer) PostProcess() {
	switch b.typ {
	case Active:
		b.postActive()
	case Passive:
		b.flush()
	case Tone:
		b.postTone()
	}
	if b.In != boardsim.NC {
		b.led.Set(int(b.bus.Analog(b.In)))
	}
}

func (b *Buzzer) postActive() {
	var on bool
	if b.In != boardsim.NC {
		l := int(b.bus.Analog(b.In))
		if b.active {
			on = l > activeHighThreshold
		} else {
			on = lowLevelMirror-l > activeLowThreshold
		}
	}
	if on == b.on {
		return
	}
	b.on = on
	if on {
		b.dev.StartTone(BeepFrequency, ToneGain)
	} else {
		b.dev.StopTone()
	}
}

// flush plays the sample buffer once full. The last sample is zeroed to avoid
// clicks at buffer boundaries. Samples past the buffer size are kept for the
// next buffer.
//
func (b *Buzzer) flush() {
	if !b.buf.Full() {
		return
	}
	size := b.buf.Size()
	s := b.buf.Samples()[:size]
	s[size-1] = 0
	n := b.dev.PlayBuffer(s)
	glog.V(2).Infof("buzzer: played %d/%d samples (%.3fs), %d carried over", n, size, float64(size)/float64(b.rate), b.buf.Len()-size)
	b.buf.Shift(size)
}

func (b *Buzzer) postTone() {
	freq := b.tone.Frequency(float64(b.rate))
	if freq <= MinToneFrequency {
		if b.freq != 0 {
			b.dev.StopTone()
			b.freq = 0
		}
		return
	}
	if math.Abs(b.freq-freq) > ToneHysteresis {
		glog.V(2).Infof("buzzer: tone %.1f Hz", freq)
		b.dev.StopTone()
		b.dev.StartTone(freq, ToneGain)
		b.freq = freq
	}
}

func (b *Buzzer) stopTone() {
	b.dev.StopTone()
	b.on = false
	b.freq = 0
}

// Stop implements boardsim.Stopper.
//
func (b *Buzzer) Stop() {
	if b.typ == Active || b.typ == Tone {
		b.stopTone()
	}
}

// Reset implements boardsim.Resetter. It clears the signal processing state
// but does not stop a playing tone; boards call Stop first.
//
func (b *Buzzer) Reset() {
	b.filter.Reset()
	b.tone.Reset()
	b.buf.Clear()
	b.mcount = b.jumpSteps
}

// WriteState implements boardsim.StateWriter.
//
func (b *Buzzer) WriteState() string {
	return formatState(int(b.In), int(b.typ), btoi(b.active))
}

// ReadState implements boardsim.StateWriter. On malformed input the buzzer is
// reset to an unconnected, active high, Active buzzer.
//
func (b *Buzzer) ReadState(state string) {
	pin, typ, active := 0, Active, true
	if vs, err := parseState(state, 3); err != nil {
		glog.Warningf("Buzzer: bad state %q: %v", state, err)
	} else {
		pin, typ, active = vs[0], BuzzerType(vs[1]), vs[2] != 0
	}
	b.In = statePin("Buzzer", b.bus, pin)
	b.active = active
	if err := b.ChangeType(typ); err != nil {
		glog.Errorf("Buzzer: %v", err)
		b.ChangeType(Active)
	}
}

// OutputID returns the ID of the named output: PN_1, PN_2 or LD_1.
//
func (b *Buzzer) OutputID(name string) boardsim.ID {
	return buzzerOutputs.Lookup("output", name)
}

// InputID always returns InvalidID: buzzers have no inputs.
//
func (b *Buzzer) InputID(name string) boardsim.ID {
	return boardsim.IDMap(nil).Lookup("input", name)
}

// Output returns the output slot for id, or nil if id has no slot. Only
// BuzzerLED has a slot.
//
func (b *Buzzer) Output(id boardsim.ID) *boardsim.Output {
	if id == BuzzerLED {
		return &b.led
	}
	return nil
}

// Label returns the text of a connector label output.
//
func (b *Buzzer) Label(id boardsim.ID) string {
	switch id {
	case BuzzerPin1:
		return b.s.PinName(b.In)
	case BuzzerPin2:
		return "GND"
	}
	return ""
}

// Brightness returns the brightness of the buzzer LED, taking the input
// polarity into account. An unconnected buzzer shows the resting level.
//
func (b *Buzzer) Brightness() uint8 {
	if b.In == boardsim.NC {
		return boardsim.DefaultBaseline
	}
	l := int(b.bus.Analog(b.In))
	if !b.active {
		l = lowLevelMirror - l
	}
	if l > 255 {
		l = 255
	}
	return uint8(l)
}
