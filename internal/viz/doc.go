// Package viz renders a live terminal view of a running integration.
//
// [Model] is a Bubble Tea model that advances one fixed step per frame
// through an ode.Stepper and charts a chosen state component with
// asciigraph. The engine is untouched: viz is an ordinary caller that
// owns its Stepper and state buffer.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	Tab   - Cycle the charted state component
//	R     - Reset to the initial state
//	Q     - Quit
package viz
