// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

//go:build !headless

// Package paout plays the output of an audio.Mixer through PortAudio.
package paout

import (
	"github.com/gordonklaus/portaudio"
	"github.com/pkg/errors"

	"github.com/db47h/boardsim/audio"
)

// Stream is an open PortAudio output stream.
type Stream struct {
	stream *portaudio.Stream
}

// New initializes PortAudio and starts streaming m to the default output
// device.
func New(m *audio.Mixer) (*Stream, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, errors.Wrap(err, "paout: failed to initialize portaudio")
	}
	cb := func(out []float32) {
		m.Read(out)
	}
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(m.SampleRate()), 0, cb)
	if err != nil {
		portaudio.Terminate()
		return nil, errors.Wrap(err, "paout: failed to open the audio stream")
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, errors.Wrap(err, "paout: failed to start the audio stream")
	}
	return &Stream{stream: stream}, nil
}

// Close stops the stream and terminates PortAudio.
func (s *Stream) Close() error {
	err := s.stream.Stop()
	if cerr := s.stream.Close(); err == nil {
		err = cerr
	}
	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}
	return errors.Wrap(err, "paout: close")
}
