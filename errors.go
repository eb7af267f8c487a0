// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

import "github.com/pkg/errors"

// Errors returned by board construction. Use errors.Cause to test for them.
//
var (
	ErrNoEmulator    = errors.New("no emulator")
	ErrBadConfig     = errors.New("invalid configuration")
	ErrBadConnection = errors.New("invalid connection")
	ErrInvalidPin    = errors.New("invalid pin")
)
