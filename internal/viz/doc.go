// Package viz renders a running simulation in the terminal.
//
// [Model] is a Bubble Tea program that steps a [sim.Simulation] once per
// frame and draws each body as a circle on a braille [Canvas], next to a
// kinetic energy chart and contact counts.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	S     - Single step while paused
//	A     - Spawn a random body
//	R     - Reset to the initial bodies
//	Q     - Quit
//
// Every key is handled between frames, so bodies never change mid-tick.
package viz
