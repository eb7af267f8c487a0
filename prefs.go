// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// A ClockSetter is an Emulator whose instruction clock can be configured.
//
type ClockSetter interface {
	SetInstructionClockFrequency(hz float64)
}

const partPrefix = "part."

// WritePreferences writes the board preferences to w as key=value lines:
//
//	<name>_clock=<instruction clock in MHz>
//	<name>_power=<0|1>
//	<name>_jumpsteps=<n>
//	part.<index>.<part name>=<part state>
//
// Part states are written for parts implementing StateWriter.
//
func (b *Board) WritePreferences(w io.Writer) error {
	bw := bufio.NewWriter(w)
	n := b.cfg.Name
	fmt.Fprintf(bw, "%s_clock=%.1f\n", n, b.emu.InstructionClockFrequency()/1e6)
	fmt.Fprintf(bw, "%s_power=%d\n", n, btoi(b.powered))
	fmt.Fprintf(bw, "%s_jumpsteps=%d\n", n, b.cfg.JumpSteps)
	for i, p := range b.parts.Parts() {
		if s, ok := p.(StateWriter); ok {
			fmt.Fprintf(bw, "%s%d.%s=%s\n", partPrefix, i, b.names[i], s.WriteState())
		}
	}
	return errors.Wrap(bw.Flush(), "write preferences")
}

// ReadPreferences reads preferences written by WritePreferences. Unknown keys
// and malformed values are logged and skipped. Only read errors are returned.
//
func (b *Board) ReadPreferences(r io.Reader) error {
	s := bufio.NewScanner(r)
	for line := 1; s.Scan(); line++ {
		l := strings.TrimSpace(s.Text())
		if l == "" || l[0] == '#' {
			continue
		}
		i := strings.IndexByte(l, '=')
		if i < 0 {
			glog.Warningf("preferences line %d: missing '='", line)
			continue
		}
		b.setPreference(strings.TrimSpace(l[:i]), strings.TrimSpace(l[i+1:]))
	}
	return errors.Wrap(s.Err(), "read preferences")
}

func (b *Board) setPreference(key, value string) {
	n := b.cfg.Name
	switch key {
	case n + "_clock":
		mhz, err := strconv.ParseFloat(value, 64)
		if err != nil || mhz <= 0 {
			glog.Warningf("preference %s: bad clock %q", key, value)
			return
		}
		if cs, ok := b.emu.(ClockSetter); ok {
			cs.SetInstructionClockFrequency(mhz * 1e6)
		}
	case n + "_power":
		v, err := strconv.Atoi(value)
		if err != nil {
			glog.Warningf("preference %s: bad value %q", key, value)
			return
		}
		b.SetPower(v != 0)
	case n + "_jumpsteps":
		v, err := strconv.Atoi(value)
		if err != nil || v < 1 {
			glog.Warningf("preference %s: bad value %q", key, value)
			return
		}
		b.cfg.JumpSteps = v
	default:
		if strings.HasPrefix(key, partPrefix) {
			b.setPartState(key, value)
			return
		}
		glog.Warningf("unknown preference %q", key)
	}
}

func (b *Board) setPartState(key, value string) {
	k := key[len(partPrefix):]
	i := strings.IndexByte(k, '.')
	if i < 0 {
		glog.Warningf("preference %s: missing part name", key)
		return
	}
	idx, err := strconv.Atoi(k[:i])
	parts := b.parts.Parts()
	if err != nil || idx < 0 || idx >= len(parts) {
		glog.Warningf("preference %s: no such part", key)
		return
	}
	if name := k[i+1:]; name != b.names[idx] {
		glog.Warningf("preference %s: part %d is a %s", key, idx, b.names[idx])
		return
	}
	if s, ok := parts[idx].(StateWriter); ok {
		s.ReadState(value)
	}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
