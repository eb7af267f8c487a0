// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim_test

import (
	"testing"

	"github.com/db47h/boardsim"
	"github.com/db47h/boardsim/boardtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPart struct {
	boardsim.Funcs
	In  boardsim.PinID `pin:""`
	Out boardsim.PinID `pin:"q"`
	Clk boardsim.PinID `pin:""`
}

var testSpec = &boardsim.PartSpec{
	Name: "Test",
	Pins: []string{"in", "q", "clk"},
	New: func(s *boardsim.Socket) (boardsim.Part, error) {
		p := new(testPart)
		s.Bind(p)
		return p, nil
	},
}

func newNamedBoard(t *testing.T) *boardsim.Board {
	t.Helper()
	b, err := boardsim.New(&boardtest.Emulator{Pins: 4, Clock: 1e6},
		boardsim.WithPinNames("VDD", "PA0", "PB3", "VSS"))
	require.NoError(t, err)
	return b
}

func TestSocket_Bind(t *testing.T) {
	b := newNamedBoard(t)
	p, err := b.Mount(testSpec, "in=pb3, q=2, clk=PC7")
	require.NoError(t, err)
	tp := p.(*testPart)
	assert.Equal(t, boardsim.PinID(3), tp.In)
	assert.Equal(t, boardsim.PinID(2), tp.Out)
	// unknown board pins are logged and left unconnected
	assert.Equal(t, boardsim.NC, tp.Clk)
	assert.Equal(t, "NC", tp.Clk.String())

	_, err = b.Mount(testSpec, "x=PA0")
	assert.Error(t, err)
	assert.Len(t, b.Parts(), 1)
}

func TestSocket_Bind_panics(t *testing.T) {
	b := newNamedBoard(t)
	bad := func(v interface{}) *boardsim.PartSpec {
		return &boardsim.PartSpec{
			Name: "Bad",
			Pins: []string{"in"},
			New: func(s *boardsim.Socket) (boardsim.Part, error) {
				s.Bind(v)
				return &boardsim.Funcs{}, nil
			},
		}
	}
	assert.Panics(t, func() { b.Mount(bad(testPart{}), "") })
	assert.Panics(t, func() {
		b.Mount(bad(&struct {
			In int `pin:""`
		}{}), "")
	})
	assert.Panics(t, func() {
		b.Mount(bad(&struct {
			X boardsim.PinID `pin:"nope"`
		}{}), "")
	})
}

func TestBus_Lookup(t *testing.T) {
	bus := newNamedBoard(t).Bus()
	data := []struct {
		name string
		pin  boardsim.PinID
	}{
		{"VDD", 1},
		{"pa0", 2},
		{"PB3", 3},
		{"4", 4},
		{"5", boardsim.NC},
		{"0", boardsim.NC},
		{"PC7", boardsim.NC},
	}
	for _, d := range data {
		if p := bus.Lookup(d.name); p != d.pin {
			t.Errorf("Lookup(%q) = %v, expected %v", d.name, p, d.pin)
		}
	}
	assert.Equal(t, "PB3", bus.Name(3))
	assert.Equal(t, 4, bus.Len())
}
