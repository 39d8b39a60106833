// Package particles simulates the drifting particle network layer: a fixed
// set of particles on a torus plus a cost-bounded neighbor-link graph.
package particles

import (
	"math"

	"holo-fx/internal/core"
	"holo-fx/internal/profile"
)

const (
	minSize     = 1.0
	maxSize     = 3.0
	minOpacity  = 0.3
	maxOpacity  = 0.8
	maxVelocity = 0.25

	// partialStride selects which particles search for links on partial
	// frames.
	partialStride = 3
)

// Particle is one point of the field in canvas pixel space.
type Particle struct {
	X, Y         float64
	PrevX, PrevY float64
	Size         float64
	VX, VY       float64
	Opacity      float64
}

// Field owns the particles of one canvas.
type Field struct {
	rng    *core.RNG
	params profile.Params
	w, h   float64

	particles []Particle
}

// NewField returns an empty field. Call Apply and Reset before stepping.
func NewField(seed int64) *Field {
	return &Field{rng: core.NewRNG(seed), params: profile.ParamsFor(profile.Medium)}
}

// Apply installs the tier budget used by the next Reset and Plan.
func (f *Field) Apply(p profile.Params) { f.params = p }

// Params returns the active budget.
func (f *Field) Params() profile.Params { return f.params }

// Reset discards every particle and creates a fresh set for a w*h canvas.
func (f *Field) Reset(w, h int) {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	f.w, f.h = float64(w), float64(h)

	n := f.params.ParticleCount
	if n < 0 {
		n = 0
	}
	if cap(f.particles) < n {
		f.particles = make([]Particle, n)
	}
	f.particles = f.particles[:n]
	for i := range f.particles {
		x := f.rng.Range(0, f.w)
		y := f.rng.Range(0, f.h)
		f.particles[i] = Particle{
			X: x, Y: y,
			PrevX: x, PrevY: y,
			Size:    f.rng.Range(minSize, maxSize),
			VX:      f.rng.Range(-maxVelocity, maxVelocity),
			VY:      f.rng.Range(-maxVelocity, maxVelocity),
			Opacity: f.rng.Range(minOpacity, maxOpacity),
		}
	}
}

// Particles exposes the particle slice.
func (f *Field) Particles() []Particle { return f.particles }

// Size returns the canvas dimensions the field wraps around.
func (f *Field) Size() (float64, float64) { return f.w, f.h }

// Step advances every particle by its velocity scaled by dtHint and wraps it
// back onto the canvas. A non-positive dtHint counts as one tick.
func (f *Field) Step(dtHint float64) {
	if dtHint <= 0 || math.IsNaN(dtHint) || math.IsInf(dtHint, 0) {
		dtHint = 1
	}
	for i := range f.particles {
		p := &f.particles[i]
		p.PrevX, p.PrevY = p.X, p.Y
		p.X = wrap(p.X+p.VX*dtHint, f.w)
		p.Y = wrap(p.Y+p.VY*dtHint, f.h)
	}
}

// wrap maps v onto [0, span).
func wrap(v, span float64) float64 {
	if span <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	v = math.Mod(v, span)
	if v < 0 {
		v += span
	}
	if v >= span {
		v = 0
	}
	return v
}
