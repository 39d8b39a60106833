// Package wavegrid generates the holographic wave grid layer: two families
// of sine-displaced grid lines and an occasional scanning highlight.
package wavegrid

import (
	"errors"
	"fmt"
	"math"

	"holo-fx/internal/core"
	"holo-fx/internal/profile"
)

// ErrInvalidGrid reports a non-positive grid size or sample step.
var ErrInvalidGrid = errors.New("wavegrid: grid size and step must be positive")

// Config holds the generator's shape parameters.
type Config struct {
	GridSize  float64
	Step      float64
	Amplitude float64

	FreqX, FreqY   float64
	SpeedX, SpeedY float64

	ScanProbability float64
	ScanSpeed       float64
	ScanWidth       float64

	TimeIncrement float64
	LineWidth     float64
}

// DefaultConfig returns the standard configuration for the Medium tier.
func DefaultConfig() Config {
	return FromParams(profile.ParamsFor(profile.Medium))
}

// FromParams derives a configuration from a tier budget.
func FromParams(p profile.Params) Config {
	return Config{
		GridSize:        p.GridSize,
		Step:            p.WaveStep,
		Amplitude:       5,
		FreqX:           0.01,
		FreqY:           0.01,
		SpeedX:          2,
		SpeedY:          1.5,
		ScanProbability: 0.3,
		ScanSpeed:       100,
		ScanWidth:       2,
		TimeIncrement:   p.WaveIncrement,
		LineWidth:       1,
	}
}

// MinSpacing is the smallest accepted grid size and sample step in pixels.
const MinSpacing = 1.0

// Validate reports configuration errors. Spacings below MinSpacing or not
// finite are rejected.
func (c Config) Validate() error {
	if !validSpacing(c.GridSize) || !validSpacing(c.Step) {
		return fmt.Errorf("%w (grid=%v step=%v)", ErrInvalidGrid, c.GridSize, c.Step)
	}
	return nil
}

func validSpacing(v float64) bool {
	return v >= MinSpacing && !math.IsInf(v, 1)
}

// Point is a sample in canvas pixel space.
type Point struct {
	X, Y float64
}

// Generator computes the displaced grid for a given time.
type Generator struct {
	cfg  Config
	rng  *core.RNG
	time float64

	buf      []Point
	lastScan bool
}

// New validates cfg and returns a Generator.
func New(cfg Config, seed int64) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, rng: core.NewRNG(seed)}, nil
}

// Config returns the active configuration.
func (g *Generator) Config() Config { return g.cfg }

// Reconfigure swaps the configuration, keeping the current time.
func (g *Generator) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.cfg = cfg
	return nil
}

// Time returns the animation time.
func (g *Generator) Time() float64 { return g.time }

// Advance moves time forward by one accepted tick.
func (g *Generator) Advance() { g.time += g.cfg.TimeIncrement }

// ScanDrawn reports whether the last Render drew the scanning highlight.
func (g *Generator) ScanDrawn() bool { return g.lastScan }

// HorizontalLine returns the samples of the horizontal line based at y.
func (g *Generator) HorizontalLine(dst []Point, y, width, t float64) []Point {
	dst = dst[:0]
	for i := 0; ; i++ {
		x := float64(i) * g.cfg.Step
		if x > width {
			x = width
		}
		dst = append(dst, Point{X: x, Y: y + g.cfg.Amplitude*math.Sin(x*g.cfg.FreqX+t*g.cfg.SpeedX)})
		if x >= width {
			break
		}
	}
	return dst
}

// VerticalLine returns the samples of the vertical line based at x.
func (g *Generator) VerticalLine(dst []Point, x, height, t float64) []Point {
	dst = dst[:0]
	for i := 0; ; i++ {
		y := float64(i) * g.cfg.Step
		if y > height {
			y = height
		}
		dst = append(dst, Point{X: x + g.cfg.Amplitude*math.Sin(y*g.cfg.FreqY+t*g.cfg.SpeedY), Y: y})
		if y >= height {
			break
		}
	}
	return dst
}

// ScanY returns the y coordinate of the scanning highlight at time t.
func (g *Generator) ScanY(t, height float64) float64 {
	if height <= 0 {
		return 0
	}
	y := math.Mod(t*g.cfg.ScanSpeed, height)
	if y < 0 {
		y += height
	}
	return y
}

// Render clears the whole surface and draws the grid for time t. The layer
// has no partial mode, so fullRedraw does not change the output.
func (g *Generator) Render(s core.Surface, pal core.Palette, t float64, fullRedraw bool) {
	size := s.Size()
	w, h := float64(size.W), float64(size.H)
	s.ClearRect(0, 0, w, h)
	if size.Empty() {
		g.lastScan = false
		return
	}

	for i := 0; float64(i)*g.cfg.GridSize <= h; i++ {
		y := float64(i) * g.cfg.GridSize
		g.buf = g.HorizontalLine(g.buf, y, w, t)
		g.stroke(s, pal)
	}
	for i := 0; float64(i)*g.cfg.GridSize <= w; i++ {
		x := float64(i) * g.cfg.GridSize
		g.buf = g.VerticalLine(g.buf, x, h, t)
		g.stroke(s, pal)
	}

	g.lastScan = g.rng.Chance(g.cfg.ScanProbability)
	if g.lastScan {
		y := g.ScanY(t, h)
		s.StrokeGradientLine(0, y, w, y, pal.Scan, g.cfg.ScanWidth)
	}
}

func (g *Generator) stroke(s core.Surface, pal core.Palette) {
	for i := 1; i < len(g.buf); i++ {
		a, b := g.buf[i-1], g.buf[i]
		s.StrokeLine(a.X, a.Y, b.X, b.Y, pal.Grid, g.cfg.LineWidth)
	}
}
