// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

import (
	"sort"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// W is a set of wires, connecting a part's pins (the map key) to board pins
// (the map value).
//
type W map[string]string

// String returns the connections in the format accepted by ParseConnections,
// sorted by part pin name.
//
func (w W) String() string {
	keys := make([]string, 0, len(w))
	for k := range w {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(w[k])
	}
	return b.String()
}

// ParseConnections parses a connection string of the form:
//
//	"part_pin=board_pin, part_pin2=board_pin2"
//
// Board pins are either pin names or pin numbers. White space around names is
// ignored. An empty string yields an empty W.
//
func ParseConnections(conns string) (W, error) {
	w := make(W)
	pos := 0
	for _, c := range strings.Split(conns, ",") {
		start := pos
		pos += len(c) + 1
		if strings.TrimSpace(c) == "" {
			if strings.TrimSpace(conns) == "" {
				break
			}
			return nil, parseError(conns, start, "empty connection")
		}
		i := strings.IndexByte(c, '=')
		if i < 0 {
			return nil, parseError(conns, start, "expected '='")
		}
		k, v := strings.TrimSpace(c[:i]), strings.TrimSpace(c[i+1:])
		if !isIdent(k) {
			return nil, parseError(conns, start, "expected part pin name")
		}
		if !isPinName(v) {
			return nil, parseError(conns, start+i+1, "expected board pin name or number")
		}
		if _, ok := w[k]; ok {
			return nil, parseError(conns, start, "pin "+k+" connected more than once")
		}
		w[k] = v
	}
	return w, nil
}

// Check checks that all keys in w are in pinNames.
//
func (w W) Check(pinNames ...string) error {
	for k := range w {
		found := false
		for _, n := range pinNames {
			if n == k {
				found = true
				break
			}
		}
		if !found {
			return errors.Wrapf(ErrBadConnection, "unknown pin %q", k)
		}
	}
	return nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// board pin names may start with a digit (pin numbers) and contain dashes
// ("PH3-BOOT0").
func isPinName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

func parseError(in string, pos int, msg string) error {
	return errors.Wrapf(ErrBadConnection, "in %q at pos %d: %s", in, pos+1, msg)
}
