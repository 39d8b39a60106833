package particles

import (
	"errors"
	"fmt"

	"holo-fx/internal/core"
	"holo-fx/internal/gradient"
	"holo-fx/internal/profile"
)

// LayerName is the registry key of the particle network layer.
const LayerName = "particles"

var errNotAttached = errors.New("particles: layer not attached to a surface")

// Layer adapts a Field to core.Layer.
type Layer struct {
	field *Field
	cache *gradient.Cache
	plan  Plan
}

// NewLayer constructs a particle layer.
func NewLayer(seed int64) *Layer {
	return &Layer{field: NewField(seed)}
}

// Name implements core.Layer.
func (l *Layer) Name() string { return LayerName }

// Field exposes the simulation.
func (l *Layer) Field() *Field { return l.field }

// LastPlan returns the plan issued by the most recent Frame.
func (l *Layer) LastPlan() *Plan { return &l.plan }

// Apply implements core.Layer.
func (l *Layer) Apply(p profile.Params) { l.field.Apply(p) }

// Attach rebuilds the gradient cache for s and recreates the particles for
// its current size. The previous cache is released first.
func (l *Layer) Attach(s core.Surface) error {
	l.cache.Release()
	l.cache = nil
	if err := s.Err(); err != nil {
		return fmt.Errorf("particles: attach: %w", err)
	}
	cache, err := gradient.Build(s)
	if err != nil {
		return fmt.Errorf("particles: %w", err)
	}
	l.cache = cache
	size := s.Size()
	l.field.Reset(size.W, size.H)
	return nil
}

// Frame advances the simulation one tick and draws it.
func (l *Layer) Frame(s core.Surface, pal core.Palette, fullRedraw bool) error {
	if l.cache == nil {
		return errNotAttached
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("particles: %w", err)
	}
	l.field.Step(1)
	l.field.Plan(&l.plan, fullRedraw)
	l.field.Draw(s, pal, &l.plan, l.cache.Get)
	return nil
}

// Parameters implements core.Layer.
func (l *Layer) Parameters() core.ParameterSnapshot {
	p := l.field.Params()
	w, h := l.field.Size()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Field",
			Params: []core.Parameter{
				core.IntParam("count", "Particles", len(l.field.Particles())),
				core.IntParam("w", "Width", int(w)),
				core.IntParam("h", "Height", int(h)),
			},
		},
		{
			Name: "Links",
			Params: []core.Parameter{
				core.FloatParam("max_distance", "Max distance", p.MaxDistance),
				core.IntParam("neighbor_limit", "Neighbor limit", p.NeighborLimit),
				core.IntParam("links", "Links last frame", len(l.plan.Links)),
				core.IntParam("max_links", "Max links per particle", l.plan.MaxPerParticle()),
			},
		},
		{
			Name: "Pacing",
			Params: []core.Parameter{
				core.IntParam("fps", "Target FPS", p.TargetFPS),
				core.DurationParam("full_redraw", "Full redraw", p.FullRedrawInterval),
			},
		},
	}}
}

func init() {
	core.Register(LayerName, func(seed int64) (core.Layer, error) {
		return NewLayer(seed), nil
	})
}
