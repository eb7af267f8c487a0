// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim_test

import (
	"strings"
	"testing"

	"github.com/db47h/boardsim"
	"github.com/db47h/boardsim/boardtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statePart struct {
	boardsim.Funcs
	state string
}

func (p *statePart) WriteState() string { return p.state }
func (p *statePart) ReadState(s string)  { p.state = s }

func TestBoard_Preferences(t *testing.T) {
	emu := &boardtest.Emulator{Pins: 4, Clock: 16e6}
	b, err := boardsim.New(emu, boardsim.WithName("test"))
	require.NoError(t, err)
	sp := &statePart{state: "26,2,1"}
	b.Attach("Buzzer", &boardsim.Funcs{})
	b.Attach("Buzzer", sp)

	var sb strings.Builder
	require.NoError(t, b.WritePreferences(&sb))
	assert.Equal(t, "test_clock=16.0\ntest_power=1\ntest_jumpsteps=4\npart.1.Buzzer=26,2,1\n", sb.String())

	in := strings.Join([]string{
		"# comment",
		"test_clock=2.5",
		"test_power=0",
		"test_jumpsteps=0",
		"garbage",
		"other_clock=1",
		"part.1.LED=1,1",
		"part.7.Buzzer=1,1,1",
		"part.x.Buzzer=1,1,1",
		"part.1.Buzzer=5,1,0",
		"",
	}, "\n")
	require.NoError(t, b.ReadPreferences(strings.NewReader(in)))
	assert.Equal(t, 2.5e6, emu.Clock)
	assert.False(t, b.Powered())
	assert.Equal(t, boardsim.DefaultJumpSteps, b.Config().JumpSteps)
	assert.Equal(t, "5,1,0", sp.state)
}
