package input

import "errors"

// FakeSampler is a test double that returns scripted touch samples.
type FakeSampler struct {
	// Samples contains scripted touch states. Each call to Touched
	// consumes the next sample; once exhausted, the last sample repeats.
	Samples []bool

	// ReadError, if set, will be returned by Touched.
	ReadError error

	// Closed tracks if Close was called.
	Closed bool

	index int
}

// NewFakeSampler creates a FakeSampler with the given samples.
func NewFakeSampler(samples []bool) *FakeSampler {
	return &FakeSampler{Samples: samples}
}

// Touched returns the next scripted sample.
func (f *FakeSampler) Touched() (bool, error) {
	if f.ReadError != nil {
		return false, f.ReadError
	}
	if len(f.Samples) == 0 {
		return false, errors.New("no samples configured")
	}
	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return s, nil
}

// Close marks the sampler as closed.
func (f *FakeSampler) Close() error {
	f.Closed = true
	return nil
}
