package core

import (
	"errors"
	"image/color"
	"sort"

	"holo-fx/internal/profile"
)

// ErrSurfaceUnavailable reports that a surface lost its native drawing context.
var ErrSurfaceUnavailable = errors.New("drawing surface unavailable")

// Size describes the dimensions of a drawing surface in pixels.
type Size struct {
	W int
	H int
}

// Empty reports whether the size has no drawable area.
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

// GradientStop is one color stop of a gradient. Offset is in [0, 1].
type GradientStop struct {
	Offset float64
	Color  color.NRGBA
}

// Gradient is a color ramp. Surfaces materialize it into native resources.
type Gradient struct {
	Stops []GradientStop
}

// At samples the gradient at t in [0, 1].
func (g Gradient) At(t float64) color.NRGBA {
	if len(g.Stops) == 0 {
		return color.NRGBA{}
	}
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	for i := 1; i < len(g.Stops); i++ {
		cur := g.Stops[i]
		if t <= cur.Offset {
			prev := g.Stops[i-1]
			span := cur.Offset - prev.Offset
			local := 0.0
			if span > 0 {
				local = (t - prev.Offset) / span
			}
			return lerpNRGBA(prev.Color, cur.Color, local)
		}
	}
	return g.Stops[len(g.Stops)-1].Color
}

func lerpNRGBA(a, b color.NRGBA, t float64) color.NRGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}

// Resource is a surface-native paint object, such as a prerendered radial
// gradient sprite.
type Resource interface {
	Radius() float64
}

// Releaser is implemented by resources holding native memory that must be
// freed explicitly.
type Releaser interface {
	Release()
}

// Surface is the drawing target an animated layer renders into. The core
// never reads pixels back from it.
type Surface interface {
	Resize(w, h int)
	Size() Size
	// Err is non-nil once the native drawing context is gone.
	Err() error

	ClearRect(x, y, w, h float64)
	FillRect(x, y, w, h float64, c color.Color)
	StrokeLine(x1, y1, x2, y2 float64, c color.Color, width float64)
	// FillCircle stamps res centered on (x, y) scaled to radius r and
	// multiplied by tint.
	FillCircle(x, y, r float64, res Resource, tint color.Color)
	StrokeGradientLine(x1, y1, x2, y2 float64, g Gradient, width float64)

	// RadialGradient builds a native resource for g at the given radius.
	RadialGradient(radius float64, g Gradient) (Resource, error)
}

// Palette holds every color used during one accepted tick.
type Palette struct {
	Dark bool

	// Fade is the translucent fill used on full redraw frames.
	Fade color.NRGBA

	Particle color.NRGBA
	Link     color.NRGBA
	Grid     color.NRGBA
	Scan     Gradient
}

// Layer is one independently scheduled animated canvas.
type Layer interface {
	Name() string
	// Apply installs a new tier budget. It takes effect on the next Attach.
	Apply(p profile.Params)
	// Attach binds the layer to a freshly (re)created surface, rebuilding any
	// surface-native caches and reinitializing simulation state.
	Attach(s Surface) error
	// Frame renders one accepted tick.
	Frame(s Surface, pal Palette, fullRedraw bool) error
	Parameters() ParameterSnapshot
}

// Factory constructs a Layer from a seed.
type Factory func(seed int64) (Layer, error)

var layers = map[string]Factory{}

// Register adds a layer factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	layers[name] = f
}

// Layers exposes the registry of available layer factories.
func Layers() map[string]Factory {
	return layers
}

// LayerNames returns the registered layer names in sorted order.
func LayerNames() []string {
	names := make([]string, 0, len(layers))
	for name := range layers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
