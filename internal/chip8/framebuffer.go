package chip8

import "strings"

// Framebuffer is the 64x32 monochrome display, stored row-major with one
// byte per pixel. Every pixel is either 0 or 1.
type Framebuffer [DisplayWidth * DisplayHeight]uint8

// Pixel returns whether the pixel at x, y is lit. Coordinates outside of
// the display return false.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return f[y*DisplayWidth+x] == 1
}

// Clear turns off all pixels.
func (f *Framebuffer) Clear() {
	*f = Framebuffer{}
}

// Lit returns the number of lit pixels.
func (f *Framebuffer) Lit() int {
	n := 0
	for _, p := range f {
		n += int(p)
	}
	return n
}

// flip toggles the pixel at x, y and returns true if the pixel was turned
// off, which is a sprite collision.
func (f *Framebuffer) flip(x, y int) bool {
	i := y*DisplayWidth + x
	f[i] ^= 1
	return f[i] == 0
}

// String renders the framebuffer as text, using '#' for lit pixels and '.'
// for unlit ones.
func (f Framebuffer) String() string {
	var b strings.Builder
	b.Grow((DisplayWidth + 1) * DisplayHeight)
	for y := range DisplayHeight {
		for x := range DisplayWidth {
			if f[y*DisplayWidth+x] == 1 {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
