//go:build !linux

package input

import "errors"

// RealSampler is not available on non-Linux platforms.
type RealSampler struct{}

// NewRealSampler returns an error on non-Linux platforms.
func NewRealSampler(pin int) (*RealSampler, error) {
	return nil, errors.New("input: not supported on this platform (requires Linux)")
}

// Touched is not implemented on non-Linux platforms.
func (r *RealSampler) Touched() (bool, error) {
	return false, errors.New("input: not supported")
}

// Close is a no-op on non-Linux platforms.
func (r *RealSampler) Close() error { return nil }
