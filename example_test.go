// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim_test

import (
	"fmt"
	"time"

	"github.com/db47h/boardsim"
	"github.com/db47h/boardsim/emulator"
	"github.com/db47h/boardsim/parts"
)

// A 50% duty cycle square wave on pin 2, as seen by an analog probe.
//
func Example() {
	gen := emulator.New(4, 1e6)
	b, err := boardsim.New(gen, boardsim.WithWindow(time.Millisecond))
	if err != nil {
		panic(err)
	}
	_, err = b.Mount(parts.Probe(func(level uint8) {
		fmt.Println("level:", level)
	}), "in=2")
	if err != nil {
		panic(err)
	}
	if err = gen.Drive(2, 1000, 0.5); err != nil {
		panic(err)
	}
	b.AdvanceBy(uint64(2 * time.Millisecond))

	// Output:
	// level: 155
	// level: 155
}

// Parts can be built from plain functions.
//
func ExampleFuncs() {
	emu := emulator.New(1, 1e6)
	b, _ := boardsim.New(emu, boardsim.WithWindow(time.Millisecond))
	steps := 0
	b.Attach("Counter", &boardsim.Funcs{
		Proc: func() { steps++ },
		Post: func() { fmt.Println("steps:", steps) },
	})
	b.AdvanceBy(uint64(time.Millisecond))

	// Output:
	// steps: 1000
}
