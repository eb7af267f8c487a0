// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package scope provides a logic analyzer that records pin levels as a
// boardsim.Observer.
//
package scope

import (
	"strings"
	"sync"

	"github.com/db47h/boardsim"
	"github.com/pkg/errors"
)

// A Scope records the logic level of a set of channels (pins) each time the
// board notifies it. The last Depth samples of each channel are kept.
//
// Sample is called by the board while the simulation runs. Trace and String
// may be called from other goroutines.
//
type Scope struct {
	mu       sync.Mutex
	pins     []boardsim.PinID
	depth    int
	traces   [][]bool
	cursor   int
	wrapped  bool
	captured uint64
}

// New returns a new scope recording depth samples of the given pins.
//
func New(depth int, pins ...boardsim.PinID) (*Scope, error) {
	if depth <= 0 {
		return nil, errors.Errorf("invalid scope depth (%d)", depth)
	}
	s := &Scope{
		pins:   append([]boardsim.PinID(nil), pins...),
		depth:  depth,
		traces: make([][]bool, len(pins)),
	}
	for i := range s.traces {
		s.traces[i] = make([]bool, depth)
	}
	return s, nil
}

// Sample implements boardsim.Observer.
//
func (s *Scope) Sample(b *boardsim.Bus) {
	s.mu.Lock()
	for i, p := range s.pins {
		s.traces[i][s.cursor] = b.Digital(p)
	}
	if s.cursor++; s.cursor == s.depth {
		s.cursor = 0
		s.wrapped = true
	}
	s.captured++
	s.mu.Unlock()
}

// Captured returns the total number of samples taken since the last Reset.
//
func (s *Scope) Captured() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captured
}

// Trace returns the recorded samples of channel ch, oldest first.
//
func (s *Scope) Trace(ch int) []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch < 0 || ch >= len(s.traces) {
		return nil
	}
	t := s.traces[ch]
	if !s.wrapped {
		return append([]bool(nil), t[:s.cursor]...)
	}
	out := make([]bool, 0, s.depth)
	out = append(out, t[s.cursor:]...)
	return append(out, t[:s.cursor]...)
}

// Edges returns the number of rising edges in the recorded samples of
// channel ch.
//
func (s *Scope) Edges(ch int) int {
	t := s.Trace(ch)
	n := 0
	for i := 1; i < len(t); i++ {
		if t[i] && !t[i-1] {
			n++
		}
	}
	return n
}

// String renders all channels, one per line, as "_" for low samples and "-"
// for high samples.
//
func (s *Scope) String() string {
	var b strings.Builder
	for ch, p := range s.pins {
		b.WriteString(p.String())
		b.WriteString(": ")
		for _, v := range s.Trace(ch) {
			if v {
				b.WriteByte('-')
			} else {
				b.WriteByte('_')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Reset clears the recorded samples.
//
func (s *Scope) Reset() {
	s.mu.Lock()
	s.cursor = 0
	s.wrapped = false
	s.captured = 0
	s.mu.Unlock()
}
