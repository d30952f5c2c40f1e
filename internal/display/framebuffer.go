//go:build linux

package display

import (
	"fmt"
	"image/color"
	"os"

	"golang.org/x/sys/unix"
)

// Framebuffer is a display device backed by a Linux framebuffer mapped in
// RGB565. The SPI TFT on the appliance is exposed by the fbtft kernel driver.
type Framebuffer struct {
	f      *os.File
	buf    []byte
	w, h   int
	stride int
}

// NewFramebuffer maps the given framebuffer device with the panel's
// dimensions. stride is w*2 bytes for the fbtft panels this targets.
func NewFramebuffer(dev string, w, h int) (*Framebuffer, error) {
	f, err := os.OpenFile(dev, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open framebuffer: %w", err)
	}

	stride := w * 2
	buf, err := unix.Mmap(int(f.Fd()), 0, h*stride, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("map framebuffer: %w", err)
	}

	return &Framebuffer{f: f, buf: buf, w: w, h: h, stride: stride}, nil
}

// Size returns the panel dimensions.
func (fb *Framebuffer) Size() (int16, int16) {
	return int16(fb.w), int16(fb.h)
}

// SetPixel writes one RGB565 pixel. Out-of-bounds writes are dropped.
func (fb *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= fb.w || iy < 0 || iy >= fb.h {
		return
	}
	pixel := rgb565From888(c.R, c.G, c.B)
	off := iy*fb.stride + ix*2
	fb.buf[off] = byte(pixel)
	fb.buf[off+1] = byte(pixel >> 8)
}

// Display is a no-op: the mapping is shared, so writes land on the panel as
// they happen.
func (fb *Framebuffer) Display() error {
	return nil
}

// Close unmaps and closes the device.
func (fb *Framebuffer) Close() error {
	var errs []error
	if fb.buf != nil {
		if err := unix.Munmap(fb.buf); err != nil {
			errs = append(errs, fmt.Errorf("unmap framebuffer: %w", err))
		}
		fb.buf = nil
	}
	if fb.f != nil {
		if err := fb.f.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close framebuffer: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

func rgb565From888(r, g, b uint8) uint16 {
	return uint16(r&0xf8)<<8 | uint16(g&0xfc)<<3 | uint16(b)>>3
}
