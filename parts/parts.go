// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package parts provides a library of peripheral models for boardsim.
//
// Copyright 2018 Denis Bernard <db047h@gmail.com>
//
// This package is licensed under the MIT license. See license text in the LICENSE file.
//
package parts

import (
	"strconv"
	"strings"

	"github.com/db47h/boardsim"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// common pin names
const (
	pIn  = "in"
	pOut = "out"
)

// ErrNoBuffer is returned when a part variant that needs a sample buffer
// cannot get one.
//
var ErrNoBuffer = errors.New("no sample buffer")

// parseState parses a comma separated tuple of n small unsigned integers.
//
func parseState(state string, n int) ([]int, error) {
	fs := strings.Split(state, ",")
	if len(fs) != n {
		return nil, errors.Errorf("expected %d fields, got %d", n, len(fs))
	}
	vs := make([]int, n)
	for i, f := range fs {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 8)
		if err != nil {
			return nil, errors.Wrapf(err, "field %d", i)
		}
		vs[i] = int(v)
	}
	return vs, nil
}

// statePin returns p if it is a valid pin on bus, NC otherwise.
//
func statePin(name string, bus *boardsim.Bus, p int) boardsim.PinID {
	id := boardsim.PinID(p)
	if id != boardsim.NC && !bus.Valid(id) {
		glog.Warningf("%s: no pin %d on the board", name, p)
		return boardsim.NC
	}
	return id
}

func formatState(vs ...int) string {
	var b strings.Builder
	for i, v := range vs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
