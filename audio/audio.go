// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package audio provides the audio output collaborator used by sound
// producing parts.
//
// Parts only talk to a Device from their PostProcess phase. Device methods
// must not block: a Mixer queues PCM data and tone commands for a backend
// (see packages otoout, paout and wavout) that pulls samples on its own
// schedule.
//
package audio

import (
	"math"
	"sync"
)

// DefaultSampleRate is the sample rate used when none is configured.
//
const DefaultSampleRate = 44100

// Device is an audio output.
//
type Device interface {
	// SampleRate returns the device sample rate in Hz.
	SampleRate() int
	// Max returns the maximum amplitude of a PCM sample.
	Max() int16
	// StartTone starts a square wave tone. gain is in [0, 1].
	StartTone(freq, gain float64)
	// StopTone stops the current tone, if any.
	StopTone()
	// PlayBuffer queues PCM samples and returns the number of samples
	// queued. Samples that do not fit in the device queue are dropped.
	PlayBuffer(samples []int16) int
}

// Mixer is a Device that mixes a tone generator with a queue of PCM samples.
// Backends pull the mixed signal with Read. It is safe for concurrent use.
//
type Mixer struct {
	mu   sync.Mutex
	rate int

	freq  float64
	gain  float64
	phase float64

	queue   []int16 // ring buffer
	head    int
	n       int
	dropped uint64
}

// NewMixer returns a new mixer for the given sample rate, with a sample queue
// of one second.
//
func NewMixer(sampleRate int) *Mixer {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Mixer{
		rate:  sampleRate,
		queue: make([]int16, sampleRate),
	}
}

// SampleRate implements Device.
//
func (m *Mixer) SampleRate() int { return m.rate }

// Max implements Device.
//
func (m *Mixer) Max() int16 { return math.MaxInt16 }

// StartTone implements Device.
//
func (m *Mixer) StartTone(freq, gain float64) {
	m.mu.Lock()
	if freq != m.freq {
		m.phase = 0
	}
	m.freq = freq
	m.gain = clamp(gain, 0, 1)
	m.mu.Unlock()
}

// StopTone implements Device.
//
func (m *Mixer) StopTone() {
	m.mu.Lock()
	m.freq = 0
	m.gain = 0
	m.mu.Unlock()
}

// Tone returns the frequency and gain of the current tone. freq is 0 if no
// tone is playing.
//
func (m *Mixer) Tone() (freq, gain float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.freq, m.gain
}

// PlayBuffer implements Device.
//
func (m *Mixer) PlayBuffer(samples []int16) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	size := len(m.queue)
	free := size - m.n
	cnt := len(samples)
	if cnt > free {
		m.dropped += uint64(cnt - free)
		cnt = free
	}
	tail := (m.head + m.n) % size
	k := copy(m.queue[tail:], samples[:cnt])
	copy(m.queue, samples[k:cnt])
	m.n += cnt
	return cnt
}

// Queued returns the number of PCM samples waiting to be read.
//
func (m *Mixer) Queued() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.n
}

// Dropped returns the number of PCM samples dropped because the queue was
// full.
//
func (m *Mixer) Dropped() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dropped
}

// Read fills out with mixed samples in [-1, 1]. When the queue is empty and
// no tone is playing, it outputs silence.
//
func (m *Mixer) Read(out []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	step := m.freq / float64(m.rate)
	for i := range out {
		var v float64
		if m.n > 0 {
			v = float64(m.queue[m.head]) / math.MaxInt16
			m.head++
			if m.head == len(m.queue) {
				m.head = 0
			}
			m.n--
		}
		if m.freq > 0 {
			if m.phase < 0.5 {
				v += m.gain
			} else {
				v -= m.gain
			}
			m.phase += step
			if m.phase >= 1 {
				m.phase -= math.Floor(m.phase)
			}
		}
		out[i] = float32(clamp(v, -1, 1))
	}
}

// Reset stops the tone and empties the sample queue.
//
func (m *Mixer) Reset() {
	m.mu.Lock()
	m.freq, m.gain, m.phase = 0, 0, 0
	m.head, m.n = 0, 0
	m.mu.Unlock()
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Null is a Device that discards everything.
//
type Null struct {
	Rate int
}

// SampleRate implements Device.
//
func (n Null) SampleRate() int {
	if n.Rate <= 0 {
		return DefaultSampleRate
	}
	return n.Rate
}

// Max implements Device.
//
func (Null) Max() int16 { return math.MaxInt16 }

// StartTone implements Device.
//
func (Null) StartTone(float64, float64) {}

// StopTone implements Device.
//
func (Null) StopTone() {}

// PlayBuffer implements Device.
//
func (Null) PlayBuffer(s []int16) int { return len(s) }
