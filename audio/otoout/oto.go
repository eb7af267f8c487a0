// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

//go:build !headless

// Package otoout plays the output of an audio.Mixer through oto.
package otoout

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/pkg/errors"

	"github.com/db47h/boardsim/audio"
)

// Player streams a mixer to the default audio device.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	m      *audio.Mixer
	buf    []float32
}

// New opens the default audio device and starts playing m.
func New(m *audio.Mixer) (*Player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   m.SampleRate(),
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   40 * time.Millisecond,
	})
	if err != nil {
		return nil, errors.Wrap(err, "otoout: failed to open audio context")
	}
	<-ready

	p := &Player{ctx: ctx, m: m}
	p.player = ctx.NewPlayer(p)
	p.player.Play()
	return p, nil
}

// Read implements io.Reader for the oto player. It never blocks.
func (p *Player) Read(b []byte) (int, error) {
	n := len(b) / 4
	if cap(p.buf) < n {
		p.buf = make([]float32, n)
	}
	samples := p.buf[:n]
	p.m.Read(samples)
	for i, v := range samples {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return n * 4, nil
}

// Close stops playback.
func (p *Player) Close() error {
	return errors.Wrap(p.player.Close(), "otoout: close")
}
