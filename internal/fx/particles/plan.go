package particles

import (
	"math"

	"holo-fx/internal/core"
	"holo-fx/internal/palette"
)

// clearMargin pads the per-particle clear rectangle on partial frames so the
// glow around the previous position is fully erased.
const clearMargin = 2.0

// Rect is an axis-aligned area in canvas pixels.
type Rect struct {
	X, Y, W, H float64
}

// Link is a transient connection between two particles.
type Link struct {
	A, B  int
	Alpha float64
}

// Plan is the draw list for one accepted tick. Its slices are reused across
// frames.
type Plan struct {
	Full   bool
	Clears []Rect
	Links  []Link
	// PerParticle counts links emitted with each particle as the source.
	PerParticle []int
}

// MaxPerParticle returns the largest link count of any single particle.
func (p *Plan) MaxPerParticle() int {
	best := 0
	for _, n := range p.PerParticle {
		best = max(best, n)
	}
	return best
}

// LinkDistance returns the distance between two particles of the field.
func (f *Field) LinkDistance(a, b int) float64 {
	pa, pb := f.particles[a], f.particles[b]
	return math.Hypot(pa.X-pb.X, pa.Y-pb.Y)
}

// Plan fills dst with the draw list for the current particle positions.
//
// On full frames every particle searches for links; otherwise only every
// third index does. Each search scans later particles in index order and
// stops after NeighborLimit accepted links, which bounds the work to
// particleCount*NeighborLimit accepted links per frame.
func (f *Field) Plan(dst *Plan, full bool) {
	dst.Full = full
	dst.Clears = dst.Clears[:0]
	dst.Links = dst.Links[:0]
	n := len(f.particles)
	if cap(dst.PerParticle) < n {
		dst.PerParticle = make([]int, n)
	}
	dst.PerParticle = dst.PerParticle[:n]
	for i := range dst.PerParticle {
		dst.PerParticle[i] = 0
	}

	if !full {
		for _, p := range f.particles {
			pad := p.Size*2 + clearMargin
			dst.Clears = append(dst.Clears,
				Rect{X: p.PrevX - pad, Y: p.PrevY - pad, W: pad * 2, H: pad * 2},
				Rect{X: p.X - pad, Y: p.Y - pad, W: pad * 2, H: pad * 2},
			)
		}
	}

	limit := f.params.NeighborLimit
	maxDist := f.params.MaxDistance
	if limit <= 0 || maxDist <= 0 {
		return
	}
	maxDistSq := maxDist * maxDist
	for i := 0; i < n; i++ {
		if !full && i%partialStride != 0 {
			continue
		}
		a := f.particles[i]
		count := 0
		for j := i + 1; j < n && count < limit; j++ {
			b := f.particles[j]
			dx, dy := a.X-b.X, a.Y-b.Y
			d2 := dx*dx + dy*dy
			if d2 >= maxDistSq {
				continue
			}
			d := math.Sqrt(d2)
			dst.Links = append(dst.Links, Link{A: i, B: j, Alpha: f.params.ConnectionAlpha * (1 - d/maxDist)})
			count++
		}
		dst.PerParticle[i] = count
	}
}

// Draw issues the plan against s.
func (f *Field) Draw(s core.Surface, pal core.Palette, plan *Plan, sprite func(size float64) core.Resource) {
	if plan.Full {
		s.FillRect(0, 0, f.w, f.h, pal.Fade)
	} else {
		for _, r := range plan.Clears {
			s.ClearRect(r.X, r.Y, r.W, r.H)
		}
	}

	for _, l := range plan.Links {
		a, b := f.particles[l.A], f.particles[l.B]
		s.StrokeLine(a.X, a.Y, b.X, b.Y, palette.WithAlpha(pal.Link, l.Alpha), 1)
	}

	for _, p := range f.particles {
		res := sprite(p.Size)
		s.FillCircle(p.X, p.Y, res.Radius(), res, palette.WithAlpha(pal.Particle, p.Opacity))
	}
}
