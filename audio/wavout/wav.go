// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package wavout records the output of an audio.Mixer to a WAV file.
//
// Samples are encoded to the underlying writer once per estimation window,
// and the WAV header sizes are patched when the recorder is closed. It is
// mostly useful for headless runs and tests.
package wavout

import (
	"io"
	"math"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/db47h/boardsim/audio"
)

const bitDepth = 16

// Recorder pulls samples from a mixer once per estimation window. It
// implements the boardsim.Part interface and should be attached after the
// parts that feed the mixer.
type Recorder struct {
	m      *audio.Mixer
	enc    *wav.Encoder
	window int // samples per window
	n      int // samples written
	err    error
	tmp    []float32
	buf    goaudio.IntBuffer
}

// New returns a recorder writing to w the output of m, capturing window worth
// of samples on every PostProcess.
func New(w io.WriteSeeker, m *audio.Mixer, window time.Duration) *Recorder {
	rate := m.SampleRate()
	return &Recorder{
		m:      m,
		enc:    wav.NewEncoder(w, rate, bitDepth, 1, 1),
		window: int(int64(rate) * int64(window) / int64(time.Second)),
		buf: goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: 1, SampleRate: rate},
			SourceBitDepth: bitDepth,
		},
	}
}

// PreProcess implements boardsim.Part.
func (r *Recorder) PreProcess() {}

// Process implements boardsim.Part.
func (r *Recorder) Process() {}

// PostProcess captures one window of samples.
func (r *Recorder) PostProcess() {
	r.Capture(r.window)
}

// Capture pulls n samples from the mixer and encodes them. After a write
// error, samples are still pulled from the mixer but discarded; the error is
// returned by Close.
func (r *Recorder) Capture(n int) {
	if n <= 0 {
		return
	}
	if cap(r.tmp) < n {
		r.tmp = make([]float32, n)
		r.buf.Data = make([]int, n)
	}
	src, dst := r.tmp[:n], r.buf.Data[:n]
	r.m.Read(src)
	if r.err != nil {
		return
	}
	for i, v := range src {
		dst[i] = int(math.Round(float64(v) * math.MaxInt16))
	}
	r.buf.Data = dst
	if err := r.enc.Write(&r.buf); err != nil {
		r.err = errors.Wrap(err, "wavout: encode")
		glog.Errorf("%v", r.err)
		return
	}
	r.n += n
}

// Len returns the number of samples written so far.
func (r *Recorder) Len() int { return r.n }

// Close finalizes the WAV headers. It does not close the underlying writer.
// It returns the first error encountered while encoding, if any.
func (r *Recorder) Close() error {
	if err := r.enc.Close(); err != nil && r.err == nil {
		r.err = errors.Wrap(err, "wavout: close")
	}
	if r.err != nil {
		return r.err
	}
	glog.V(1).Infof("wavout: wrote %d samples at %d Hz", r.n, r.m.SampleRate())
	return nil
}
