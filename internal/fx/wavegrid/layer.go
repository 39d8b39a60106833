package wavegrid

import (
	"fmt"

	"holo-fx/internal/core"
	"holo-fx/internal/profile"
)

// LayerName is the registry key of the wave grid layer.
const LayerName = "wavegrid"

// Layer adapts a Generator to core.Layer.
type Layer struct {
	gen     *Generator
	pending Config
	params  profile.Params
}

// NewLayer constructs a wave grid layer with cfg.
func NewLayer(cfg Config, seed int64) (*Layer, error) {
	gen, err := New(cfg, seed)
	if err != nil {
		return nil, err
	}
	return &Layer{gen: gen, pending: cfg, params: profile.ParamsFor(profile.Medium)}, nil
}

// Name implements core.Layer.
func (l *Layer) Name() string { return LayerName }

// Generator exposes the wave generator.
func (l *Layer) Generator() *Generator { return l.gen }

// Apply implements core.Layer.
func (l *Layer) Apply(p profile.Params) {
	l.params = p
	cfg := l.pending
	cfg.GridSize = p.GridSize
	cfg.Step = p.WaveStep
	cfg.TimeIncrement = p.WaveIncrement
	l.pending = cfg
}

// Attach installs the pending configuration. The wave clock keeps running
// across surface recreation.
func (l *Layer) Attach(s core.Surface) error {
	if err := s.Err(); err != nil {
		return fmt.Errorf("wavegrid: attach: %w", err)
	}
	return l.gen.Reconfigure(l.pending)
}

// Frame advances time by one accepted tick and renders the grid.
func (l *Layer) Frame(s core.Surface, pal core.Palette, fullRedraw bool) error {
	if err := s.Err(); err != nil {
		return fmt.Errorf("wavegrid: %w", err)
	}
	l.gen.Advance()
	l.gen.Render(s, pal, l.gen.Time(), fullRedraw)
	return nil
}

// Parameters implements core.Layer.
func (l *Layer) Parameters() core.ParameterSnapshot {
	cfg := l.gen.Config()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				core.FloatParam("grid_size", "Grid size", cfg.GridSize),
				core.FloatParam("step", "Sample step", cfg.Step),
				core.FloatParam("amplitude", "Amplitude", cfg.Amplitude),
			},
		},
		{
			Name: "Motion",
			Params: []core.Parameter{
				core.FloatParam("time", "Time", l.gen.Time()),
				core.FloatParam("time_increment", "Time increment", cfg.TimeIncrement),
				core.FloatParam("scan_probability", "Scan probability", cfg.ScanProbability),
			},
		},
		{
			Name: "Pacing",
			Params: []core.Parameter{
				core.IntParam("fps", "Target FPS", l.params.TargetFPS),
				core.DurationParam("full_redraw", "Full redraw", l.params.FullRedrawInterval),
			},
		},
	}}
}

func init() {
	core.Register(LayerName, func(seed int64) (core.Layer, error) {
		return NewLayer(DefaultConfig(), seed)
	})
}
