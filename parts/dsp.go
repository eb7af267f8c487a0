// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package parts

// Biquad is a second order recursive (IIR) filter:
//
//	y[n] = B[0]x[n] + B[1]x[n-1] + B[2]x[n-2] + A[0]y[n-1] + A[1]y[n-2]
//
// The filter state persists across calls until Reset.
//
type Biquad struct {
	B [3]float64
	A [2]float64

	in  [3]float64
	out [3]float64
}

// NewSpeakerFilter returns the resonant band-pass response of a small
// piezo speaker:
//
//	       0.7837 z-1 - 0.7837 z-2
//	H(z) = --------------------------
//	       1 - 1.196 z-1 + 0.2068 z-2
//
func NewSpeakerFilter() Biquad {
	return Biquad{
		B: [3]float64{0, 0.7837, -0.7837},
		A: [2]float64{1.196, -0.2068},
	}
}

// Filter feeds x to the filter and returns the new output.
//
func (f *Biquad) Filter(x float64) float64 {
	f.in[2], f.in[1], f.in[0] = f.in[1], f.in[0], x
	f.out[2], f.out[1] = f.out[1], f.out[0]
	f.out[0] = f.B[0]*f.in[0] + f.B[1]*f.in[1] + f.B[2]*f.in[2] + f.A[0]*f.out[1] + f.A[1]*f.out[2]
	return f.out[0]
}

// Reset clears the filter state.
//
func (f *Biquad) Reset() {
	f.in = [3]float64{}
	f.out = [3]float64{}
}

// minTonePeriod is the shortest period, in samples, considered a tone.
const minTonePeriod = 5

// ToneDetector estimates the period of a square signal from its rising edges.
// On every rising edge, the period estimate becomes the mean of the previous
// estimate and the number of samples since the previous edge.
//
type ToneDetector struct {
	last   bool
	count  float64 // samples since the last rising edge
	period float64
}

// Sample feeds one sample of the signal.
//
func (t *ToneDetector) Sample(v bool) {
	if !t.last && v {
		t.period = (t.period + t.count) / 2
		t.count = 0
	}
	t.last = v
	t.count++
}

// Period returns the current period estimate, in samples.
//
func (t *ToneDetector) Period() float64 { return t.period }

// Frequency returns the tone frequency for the given sample rate, or 0 if the
// period estimate is too short to be a tone.
//
func (t *ToneDetector) Frequency(sampleRate float64) float64 {
	if t.period <= minTonePeriod {
		return 0
	}
	return sampleRate / t.period
}

// Reset clears the detector state.
//
func (t *ToneDetector) Reset() {
	*t = ToneDetector{}
}

// SampleBuffer is a PCM sample buffer of a nominal size. Its storage is
// allocated on first use and kept until Release.
//
// The buffer holds up to twice its size: samples arriving once it is full
// spill over and are kept for the next buffer (see Shift).
//
type SampleBuffer struct {
	size int
	data []int16
}

// NewSampleBuffer returns an empty buffer of the given size.
//
func NewSampleBuffer(size int) SampleBuffer {
	if size < 0 {
		size = 0
	}
	return SampleBuffer{size: size}
}

// Append appends v to the buffer. It returns false if the buffer and its
// spill area are full.
//
func (s *SampleBuffer) Append(v int16) bool {
	if s.data == nil {
		if s.size == 0 {
			return false
		}
		s.data = make([]int16, 0, 2*s.size)
	}
	if len(s.data) == 2*s.size {
		return false
	}
	s.data = append(s.data, v)
	return true
}

// Len returns the number of samples in the buffer, spill included.
//
func (s *SampleBuffer) Len() int { return len(s.data) }

// Size returns the nominal buffer size.
//
func (s *SampleBuffer) Size() int { return s.size }

// Full returns true if the buffer holds at least Size samples.
//
func (s *SampleBuffer) Full() bool { return s.size > 0 && len(s.data) >= s.size }

// Allocated returns true if the buffer storage is allocated.
//
func (s *SampleBuffer) Allocated() bool { return s.data != nil }

// Samples returns the buffered samples. The slice is only valid until the
// next call to Shift, Clear or Release.
//
func (s *SampleBuffer) Samples() []int16 { return s.data }

// Shift removes the first n samples and moves the remaining ones to the
// front.
//
func (s *SampleBuffer) Shift(n int) {
	if n >= len(s.data) {
		s.Clear()
		return
	}
	k := copy(s.data, s.data[n:])
	s.data = s.data[:k]
}

// Clear empties the buffer, keeping its storage.
//
func (s *SampleBuffer) Clear() {
	if s.data != nil {
		s.data = s.data[:0]
	}
}

// Release empties the buffer and releases its storage.
//
func (s *SampleBuffer) Release() { s.data = nil }
