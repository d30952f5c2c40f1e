//go:build !linux

package display

import (
	"errors"
	"image/color"
)

// Framebuffer is not available on non-Linux platforms.
type Framebuffer struct{}

// NewFramebuffer returns an error on non-Linux platforms.
func NewFramebuffer(dev string, w, h int) (*Framebuffer, error) {
	return nil, errors.New("display: framebuffer not supported on this platform (requires Linux)")
}

func (fb *Framebuffer) Size() (int16, int16)                { return 0, 0 }
func (fb *Framebuffer) SetPixel(x, y int16, c color.RGBA)   {}
func (fb *Framebuffer) Display() error                      { return nil }
func (fb *Framebuffer) Close() error                        { return nil }
