package render

import (
	"math"

	"holo-fx/internal/core"
)

// spriteSize returns the side of the square sprite used for a radial
// gradient of the given radius. Sprites are rendered at 4x to keep edges
// smooth when scaled up.
func spriteSize(radius float64) int {
	side := int(math.Ceil(radius*2)) * 4
	if side < 4 {
		side = 4
	}
	return side
}

// fillRadialRGBA renders g as a radial gradient into a side*side buffer of
// premultiplied RGBA pixels. Offset 0 is the center, offset 1 the edge.
func fillRadialRGBA(buf []byte, side int, g core.Gradient) {
	center := float64(side) / 2
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			t := math.Hypot(dx, dy) / center
			base := (y*side + x) * 4
			if t > 1 {
				buf[base+0] = 0
				buf[base+1] = 0
				buf[base+2] = 0
				buf[base+3] = 0
				continue
			}
			writePremultiplied(buf[base:base+4], g, t)
		}
	}
}

// fillRampRGBA renders g along a width*1 strip of premultiplied RGBA pixels.
func fillRampRGBA(buf []byte, width int, g core.Gradient) {
	for x := 0; x < width; x++ {
		t := 0.0
		if width > 1 {
			t = float64(x) / float64(width-1)
		}
		writePremultiplied(buf[x*4:x*4+4], g, t)
	}
}

func writePremultiplied(px []byte, g core.Gradient, t float64) {
	c := g.At(t)
	a := uint32(c.A)
	px[0] = uint8(uint32(c.R) * a / 255)
	px[1] = uint8(uint32(c.G) * a / 255)
	px[2] = uint8(uint32(c.B) * a / 255)
	px[3] = c.A
}
