// Package history provides a fixed-capacity circular time-series store for
// one scalar metric. This package has NO external dependencies; the buffer is
// written and read exclusively from the main loop, so it is not safe for
// concurrent use.
package history

// DefaultCapacity holds about four minutes of samples at one sample per 2s.
const DefaultCapacity = 120

// Buffer is a fixed-capacity circular store of percentage samples.
// Once full, the oldest sample is overwritten on each append.
type Buffer struct {
	vals     []float64
	capacity int
	cursor   int // next write position
	full     bool
}

// New creates a Buffer with the given capacity.
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{
		vals:     make([]float64, capacity),
		capacity: capacity,
	}
}

// Append stores a sample, clamped to [0,100]. When the buffer is full the
// oldest sample is overwritten.
func (b *Buffer) Append(v float64) {
	b.vals[b.cursor] = Clamp(v, 0, 100)
	b.cursor = (b.cursor + 1) % b.capacity
	// The full flag latches at the first wraparound and never reverts.
	if b.cursor == 0 {
		b.full = true
	}
}

// Len returns the number of stored samples.
func (b *Buffer) Len() int {
	if b.full {
		return b.capacity
	}
	return b.cursor
}

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int {
	return b.capacity
}

// Full reports whether the buffer has wrapped at least once.
func (b *Buffer) Full() bool {
	return b.full
}

// Values returns the stored samples oldest-first. Before the first
// wraparound that is positions [0, cursor); afterwards it is the window
// [cursor, cursor+capacity) modulo capacity. The returned slice is a copy.
func (b *Buffer) Values() []float64 {
	n := b.Len()
	if n == 0 {
		return nil
	}
	out := make([]float64, n)
	if !b.full {
		copy(out, b.vals[:n])
		return out
	}
	for i := 0; i < n; i++ {
		out[i] = b.vals[(b.cursor+i)%b.capacity]
	}
	return out
}

// Last returns the most recent sample, or false if the buffer is empty.
func (b *Buffer) Last() (float64, bool) {
	if b.Len() == 0 {
		return 0, false
	}
	last := (b.cursor - 1 + b.capacity) % b.capacity
	return b.vals[last], true
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
