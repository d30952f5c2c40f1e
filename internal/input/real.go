//go:build linux

package input

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealSampler reads the pen-interrupt line from actual hardware using the
// Linux GPIO character device.
type RealSampler struct {
	chip *gpiocdev.Chip
	pen  *gpiocdev.Line
}

// NewRealSampler creates a touch sampler on the given BCM pin.
func NewRealSampler(pin int) (*RealSampler, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	// The pen-interrupt output is open-drain and idles high; pull up so a
	// floating line reads as not-touched.
	line, err := chip.RequestLine(pin, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request pen pin %d: %w", pin, err)
	}

	return &RealSampler{chip: chip, pen: line}, nil
}

// Touched reads the pen line. Raw active (0) = touched.
func (r *RealSampler) Touched() (bool, error) {
	raw, err := r.pen.Value()
	if err != nil {
		return false, fmt.Errorf("read pen pin: %w", err)
	}
	return raw == 0, nil
}

// Close releases GPIO resources.
func (r *RealSampler) Close() error {
	var errs []error
	if r.pen != nil {
		if err := r.pen.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pen pin: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
