// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim_test

import (
	"testing"

	"github.com/db47h/boardsim"
	"github.com/pkg/errors"
)

func TestParseConnections(t *testing.T) {
	data := []struct {
		in  string
		out string
		err bool
	}{
		{"", "", false},
		{"in=PB3", "in=PB3", false},
		{" in = PB3 , out=5", "in=PB3, out=5", false},
		{"a=PH3-BOOT0", "a=PH3-BOOT0", false},
		{"in", "", true},
		{"in=", "", true},
		{"=PB3", "", true},
		{"1in=PB3", "", true},
		{"in=PB3,", "", true},
		{"in=PB3,in=PA0", "", true},
		{"in=P B3", "", true},
	}
	for _, d := range data {
		w, err := boardsim.ParseConnections(d.in)
		if d.err {
			if err == nil {
				t.Errorf("%q: expected error, got %v", d.in, w)
			} else if errors.Cause(err) != boardsim.ErrBadConnection {
				t.Errorf("%q: unexpected error type: %v", d.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", d.in, err)
			continue
		}
		if s := w.String(); s != d.out {
			t.Errorf("%q: expected %q, got %q", d.in, d.out, s)
		}
	}
}

func TestW_Check(t *testing.T) {
	w := boardsim.W{"in": "PB3", "out": "PA0"}
	if err := w.Check("in", "out", "clk"); err != nil {
		t.Fatal(err)
	}
	if err := w.Check("in"); errors.Cause(err) != boardsim.ErrBadConnection {
		t.Fatalf("expected ErrBadConnection, got %v", err)
	}
}
