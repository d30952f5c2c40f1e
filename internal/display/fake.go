package display

import "image/color"

// Fake is an in-memory display device for tests. It records every pixel and
// counts flushes.
type Fake struct {
	W, H    int
	Flushes int

	pix []color.RGBA

	// DisplayError, if set, is returned by Display.
	DisplayError error
}

// NewFake creates a Fake device of the given dimensions.
func NewFake(w, h int) *Fake {
	return &Fake{W: w, H: h, pix: make([]color.RGBA, w*h)}
}

// Size returns the device dimensions.
func (f *Fake) Size() (int16, int16) {
	return int16(f.W), int16(f.H)
}

// SetPixel records a pixel write. Out-of-bounds writes are dropped, matching
// real driver behavior.
func (f *Fake) SetPixel(x, y int16, c color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= f.W || iy < 0 || iy >= f.H {
		return
	}
	f.pix[iy*f.W+ix] = c
}

// Display counts a flush.
func (f *Fake) Display() error {
	if f.DisplayError != nil {
		return f.DisplayError
	}
	f.Flushes++
	return nil
}

// Pixel returns the recorded color at (x, y).
func (f *Fake) Pixel(x, y int) color.RGBA {
	return f.pix[y*f.W+x]
}

// Count returns how many pixels currently hold the given color.
func (f *Fake) Count(c color.RGBA) int {
	n := 0
	for _, p := range f.pix {
		if p == c {
			n++
		}
	}
	return n
}
