/*
Package boardsim simulates microcontroller driven electronic boards.

An external instruction set emulator advances a virtual CPU one instruction at
a time while a set of peripheral models ("parts": buzzers, LEDs, buttons...)
read and drive a shared bus of pin states in lock-step with emulated time.

Simulated time is cut into fixed estimation windows. Within a window, every
instruction step samples one pin of the bus, round robin. At the window
boundary, the number of high samples of each pin is converted into an analog
level approximating what a low-pass filtered output would perceive from a fast
toggling digital pin (duty-cycle estimation).

Parts follow a three phase lifecycle: PreProcess once per window, Process once
per instruction step and PostProcess once per window, after analog levels have
been committed. See Part.

Parts are declared with a PartSpec and mounted on a board with a connection
string that binds part pins to board pins:

	b, err := boardsim.New(emu, boardsim.WithPinNames(names...))
	if err != nil {
		// ...
	}
	_, err = b.Mount(parts.BuzzerSpec(dev), "in=PB3")
	// ...
	b.AdvanceBy(uint64(100 * time.Millisecond))

The simulation is single-threaded and deterministic given the order in which
parts are attached and the instruction stream.
*/
package boardsim
