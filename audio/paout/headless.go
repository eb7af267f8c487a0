// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

//go:build headless

package paout

import (
	"github.com/pkg/errors"

	"github.com/db47h/boardsim/audio"
)

// Stream is not available in headless builds.
type Stream struct{}

// New always fails in headless builds.
func New(*audio.Mixer) (*Stream, error) {
	return nil, errors.New("paout: not available in headless builds")
}

// Close is a no-op.
func (*Stream) Close() error { return nil }
