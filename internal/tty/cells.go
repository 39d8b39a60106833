// Package tty renders the animated layers into a terminal, one background
// color per character cell.
package tty

import (
	"image/color"
	"math"

	"holo-fx/internal/core"
	"holo-fx/internal/palette"
)

// Pixel size of one terminal cell. Layers work in pixel space; the surface
// maps pixels onto cells.
const (
	CellWidth  = 8
	CellHeight = 16
)

// CellSurface implements core.Surface over a grid of terminal cells.
type CellSurface struct {
	cols, rows int
	cells      []color.NRGBA
	closed     bool
}

// cellSprite is the radial gradient resource of a CellSurface.
type cellSprite struct {
	radius float64
	grad   core.Gradient
}

func (c *cellSprite) Radius() float64 { return c.radius }

// NewCellSurface allocates a surface of cols*rows cells.
func NewCellSurface(cols, rows int) *CellSurface {
	s := &CellSurface{}
	s.resizeCells(cols, rows)
	return s
}

// PixelSize converts a terminal size in cells to surface pixels.
func PixelSize(cols, rows int) core.Size {
	return core.Size{W: cols * CellWidth, H: rows * CellHeight}
}

// Resize implements core.Surface. Sizes are rounded down to whole cells.
func (s *CellSurface) Resize(w, h int) {
	s.resizeCells(w/CellWidth, h/CellHeight)
}

func (s *CellSurface) resizeCells(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	s.cols, s.rows = cols, rows
	s.cells = make([]color.NRGBA, cols*rows)
}

// Close marks the surface unavailable.
func (s *CellSurface) Close() { s.closed = true }

// Grid returns the cell dimensions.
func (s *CellSurface) Grid() (int, int) { return s.cols, s.rows }

// At returns the color of the cell at (col, row).
func (s *CellSurface) At(col, row int) color.NRGBA {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return color.NRGBA{}
	}
	return s.cells[row*s.cols+col]
}

// Size implements core.Surface.
func (s *CellSurface) Size() core.Size { return PixelSize(s.cols, s.rows) }

// Err implements core.Surface.
func (s *CellSurface) Err() error {
	if s.closed {
		return core.ErrSurfaceUnavailable
	}
	return nil
}

func (s *CellSurface) cellRange(x, y, w, h float64) (c0, r0, c1, r1 int) {
	c0 = clampInt(int(math.Floor(x/CellWidth)), 0, s.cols)
	r0 = clampInt(int(math.Floor(y/CellHeight)), 0, s.rows)
	c1 = clampInt(int(math.Ceil((x+w)/CellWidth)), 0, s.cols)
	r1 = clampInt(int(math.Ceil((y+h)/CellHeight)), 0, s.rows)
	return c0, r0, c1, r1
}

func (s *CellSurface) blendAt(col, row int, c color.NRGBA) {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return
	}
	i := row*s.cols + col
	s.cells[i] = palette.Blend(s.cells[i], c)
}

// ClearRect implements core.Surface.
func (s *CellSurface) ClearRect(x, y, w, h float64) {
	c0, r0, c1, r1 := s.cellRange(x, y, w, h)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			s.cells[row*s.cols+col] = color.NRGBA{}
		}
	}
}

// FillRect implements core.Surface.
func (s *CellSurface) FillRect(x, y, w, h float64, c color.Color) {
	src := toNRGBA(c)
	c0, r0, c1, r1 := s.cellRange(x, y, w, h)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			s.blendAt(col, row, src)
		}
	}
}

// StrokeLine implements core.Surface.
func (s *CellSurface) StrokeLine(x1, y1, x2, y2 float64, c color.Color, width float64) {
	src := toNRGBA(c)
	s.walk(x1, y1, x2, y2, func(int, int, float64) color.NRGBA { return src })
}

// StrokeGradientLine implements core.Surface.
func (s *CellSurface) StrokeGradientLine(x1, y1, x2, y2 float64, g core.Gradient, width float64) {
	s.walk(x1, y1, x2, y2, func(_, _ int, t float64) color.NRGBA { return g.At(t) })
}

// walk visits each cell crossed by the segment once.
func (s *CellSurface) walk(x1, y1, x2, y2 float64, shade func(col, row int, t float64) color.NRGBA) {
	dc := (x2 - x1) / CellWidth
	dr := (y2 - y1) / CellHeight
	steps := int(math.Ceil(math.Max(math.Abs(dc), math.Abs(dr))))
	if steps < 1 {
		steps = 1
	}
	lastCol, lastRow := -1, -1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		col := int(math.Floor((x1 + (x2-x1)*t) / CellWidth))
		row := int(math.Floor((y1 + (y2-y1)*t) / CellHeight))
		if col == lastCol && row == lastRow {
			continue
		}
		lastCol, lastRow = col, row
		s.blendAt(col, row, shade(col, row, t))
	}
}

// FillCircle implements core.Surface.
func (s *CellSurface) FillCircle(x, y, r float64, res core.Resource, tint color.Color) {
	base := toNRGBA(tint)
	sprite, _ := res.(*cellSprite)
	c0, r0, c1, r1 := s.cellRange(x-r, y-r, 2*r, 2*r)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			cx := (float64(col) + 0.5) * CellWidth
			cy := (float64(row) + 0.5) * CellHeight
			d := math.Hypot(cx-x, cy-y)
			if d > r && !(col == int(x/CellWidth) && row == int(y/CellHeight)) {
				continue
			}
			falloff := 1.0
			if sprite != nil && r > 0 {
				falloff = float64(sprite.grad.At(math.Min(d/r, 1)).A) / 255
			}
			s.blendAt(col, row, palette.WithAlpha(base, falloff))
		}
	}
}

// RadialGradient implements core.Surface.
func (s *CellSurface) RadialGradient(radius float64, g core.Gradient) (core.Resource, error) {
	if s.closed {
		return nil, core.ErrSurfaceUnavailable
	}
	return &cellSprite{radius: radius, grad: g}, nil
}

func toNRGBA(c color.Color) color.NRGBA {
	if n, ok := c.(color.NRGBA); ok {
		return n
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
