//go:build ebiten

package render

import (
	"image"
	"image/color"
	"math"

	"holo-fx/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const rampWidth = 256

// ImageSurface implements core.Surface on an offscreen ebiten image that
// persists between frames, so partial redraws keep the previous content.
type ImageSurface struct {
	img  *ebiten.Image
	size core.Size
	ramp *ebiten.Image
	// rampKey remembers which gradient the ramp image holds.
	rampKey *core.GradientStop
	rampBuf []byte
}

// spriteResource is a prerendered radial gradient.
type spriteResource struct {
	img    *ebiten.Image
	radius float64
}

func (s *spriteResource) Radius() float64 { return s.radius }

// Release implements core.Releaser.
func (s *spriteResource) Release() {
	if s.img != nil {
		s.img.Dispose()
		s.img = nil
	}
}

// NewImageSurface allocates a surface of w*h pixels.
func NewImageSurface(w, h int) *ImageSurface {
	s := &ImageSurface{rampBuf: make([]byte, rampWidth*4)}
	s.Resize(w, h)
	return s
}

// Image returns the backing image for compositing onto the screen.
func (s *ImageSurface) Image() *ebiten.Image { return s.img }

// Resize recreates the backing image. Resources built for the previous
// image must be rebuilt by the caller.
func (s *ImageSurface) Resize(w, h int) {
	if s.img != nil {
		s.img.Dispose()
		s.img = nil
	}
	s.size = core.Size{W: w, H: h}
	if s.size.Empty() {
		return
	}
	s.img = ebiten.NewImage(w, h)
}

// Dispose releases the backing image. Err reports ErrSurfaceUnavailable
// afterwards.
func (s *ImageSurface) Dispose() {
	if s.img != nil {
		s.img.Dispose()
		s.img = nil
	}
	if s.ramp != nil {
		s.ramp.Dispose()
		s.ramp = nil
	}
}

// Size implements core.Surface.
func (s *ImageSurface) Size() core.Size { return s.size }

// Err implements core.Surface.
func (s *ImageSurface) Err() error {
	if s.img == nil {
		return core.ErrSurfaceUnavailable
	}
	return nil
}

// ClearRect implements core.Surface.
func (s *ImageSurface) ClearRect(x, y, w, h float64) {
	if s.img == nil {
		return
	}
	r := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w)), int(math.Ceil(y+h)))
	r = r.Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	s.img.SubImage(r).(*ebiten.Image).Clear()
}

// FillRect implements core.Surface.
func (s *ImageSurface) FillRect(x, y, w, h float64, c color.Color) {
	if s.img == nil {
		return
	}
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), c, false)
}

// StrokeLine implements core.Surface.
func (s *ImageSurface) StrokeLine(x1, y1, x2, y2 float64, c color.Color, width float64) {
	if s.img == nil {
		return
	}
	vector.StrokeLine(s.img, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), c, true)
}

// FillCircle implements core.Surface.
func (s *ImageSurface) FillCircle(x, y, r float64, res core.Resource, tint color.Color) {
	if s.img == nil {
		return
	}
	sprite, ok := res.(*spriteResource)
	if !ok || sprite.img == nil {
		vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(r), tint, true)
		return
	}
	side := float64(sprite.img.Bounds().Dx())
	scale := 2 * r / side
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x-r, y-r)
	op.ColorScale.ScaleWithColor(tint)
	op.Filter = ebiten.FilterLinear
	s.img.DrawImage(sprite.img, op)
}

// StrokeGradientLine implements core.Surface.
func (s *ImageSurface) StrokeGradientLine(x1, y1, x2, y2 float64, g core.Gradient, width float64) {
	if s.img == nil || len(g.Stops) == 0 {
		return
	}
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 || width <= 0 {
		return
	}
	s.ensureRamp(g)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length/rampWidth, width)
	op.GeoM.Translate(0, -width/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.Filter = ebiten.FilterLinear
	s.img.DrawImage(s.ramp, op)
}

func (s *ImageSurface) ensureRamp(g core.Gradient) {
	if s.ramp != nil && s.rampKey == &g.Stops[0] {
		return
	}
	if s.ramp == nil {
		s.ramp = ebiten.NewImage(rampWidth, 1)
	}
	fillRampRGBA(s.rampBuf, rampWidth, g)
	s.ramp.WritePixels(s.rampBuf)
	s.rampKey = &g.Stops[0]
}

// RadialGradient implements core.Surface.
func (s *ImageSurface) RadialGradient(radius float64, g core.Gradient) (core.Resource, error) {
	if s.img == nil {
		return nil, core.ErrSurfaceUnavailable
	}
	side := spriteSize(radius)
	buf := make([]byte, side*side*4)
	fillRadialRGBA(buf, side, g)
	img := ebiten.NewImage(side, side)
	img.WritePixels(buf)
	return &spriteResource{img: img, radius: radius}, nil
}
