// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

//go:build headless

package otoout

import (
	"github.com/pkg/errors"

	"github.com/db47h/boardsim/audio"
)

// Player is not available in headless builds.
type Player struct{}

// New always fails in headless builds.
func New(*audio.Mixer) (*Player, error) {
	return nil, errors.New("otoout: not available in headless builds")
}

// Close is a no-op.
func (*Player) Close() error { return nil }
