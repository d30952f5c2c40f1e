// Package input provides touch input sampling with hardware abstraction.
// The real implementation reads the touch controller's pen-interrupt line
// through the Linux GPIO character device. The fake implementation allows
// testing without hardware.
package input

// Sampler reports whether the panel is currently touched.
type Sampler interface {
	// Touched returns the current touch state. The raw line is active-low:
	// raw 0 = touched.
	Touched() (bool, error)

	// Close releases input resources.
	Close() error
}

// DefaultPenPin is the BCM pin wired to the touch controller's pen-interrupt
// output (XPT2046 T_IRQ).
const DefaultPenPin = 17

// Edge turns the per-tick touch samples into down edges. Only the
// not-touched to touched transition is actionable; a continuously held touch
// does not repeat.
type Edge struct {
	down bool
}

// Update consumes one sample and reports whether it is a down edge.
func (e *Edge) Update(touched bool) bool {
	wasDown := e.down
	e.down = touched
	return touched && !wasDown
}
