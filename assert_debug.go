// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

//go:build debug

package boardsim

import "github.com/pkg/errors"

// assertf panics if cond is false. Only built with -tags debug.
//
func assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(errors.Errorf("boardsim: "+format, args...))
	}
}
