// Package palette resolves the per-tick color set from the theme mode.
package palette

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"holo-fx/internal/core"
)

var (
	dark  = build(true)
	light = build(false)
)

// Resolve returns the palette for the mode. Both palettes are precomputed, so
// this is safe to call on every accepted tick.
func Resolve(darkMode bool) core.Palette {
	if darkMode {
		return dark
	}
	return light
}

func build(darkMode bool) core.Palette {
	var (
		accent     = mustHex("#00f0ff")
		secondary  = mustHex("#00ff41")
		background = mustHex("#05070d")
	)
	if !darkMode {
		accent = mustHex("#0057b8")
		secondary = mustHex("#2a7f62")
		background = mustHex("#f4f7fb")
	}
	scanMid := accent.BlendLab(secondary, 0.5).Clamped()

	return core.Palette{
		Dark:     darkMode,
		Fade:     nrgba(background, 0.85),
		Particle: nrgba(accent, 0.9),
		Link:     nrgba(accent, 1),
		Grid:     nrgba(secondary.BlendLab(background, 0.35).Clamped(), 0.18),
		Scan: core.Gradient{Stops: []core.GradientStop{
			{Offset: 0, Color: nrgba(accent, 0)},
			{Offset: 0.5, Color: nrgba(scanMid, 0.8)},
			{Offset: 1, Color: nrgba(accent, 0)},
		}},
	}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("palette: bad color %q: %v", s, err))
	}
	return c
}

func nrgba(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}
}

// WithAlpha returns c with its alpha scaled by a in [0, 1].
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	if a <= 0 {
		c.A = 0
		return c
	}
	if a < 1 {
		c.A = uint8(float64(c.A)*a + 0.5)
	}
	return c
}

// Blend mixes two colors in Lab space. Used by surfaces that composite in
// software.
func Blend(dst, src color.NRGBA) color.NRGBA {
	if src.A == 0 {
		return dst
	}
	if src.A == 255 || dst.A == 0 {
		return src
	}
	d, _ := colorful.MakeColor(opaque(dst))
	s, _ := colorful.MakeColor(opaque(src))
	t := float64(src.A) / 255
	mixed := d.BlendLab(s, t).Clamped()
	outA := float64(src.A) + float64(dst.A)*(1-t)
	return nrgba(mixed, outA/255)
}

func opaque(c color.NRGBA) color.NRGBA {
	c.A = 255
	return c
}
