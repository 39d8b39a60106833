// Package engine wires the tier detector, the per-canvas frame schedulers
// and the animated layers into one disposable unit.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"holo-fx/internal/core"
	"holo-fx/internal/palette"
	"holo-fx/internal/profile"
	"holo-fx/internal/scheduler"
	"holo-fx/internal/viewport"
)

// ErrUnknownLayer reports a layer name missing from the registry.
var ErrUnknownLayer = errors.New("unknown layer")

// Config selects the layers and global knobs of an Engine.
type Config struct {
	Layers       []string
	Seed         int64
	Capability   profile.Capability
	StartupDelay time.Duration
	Dark         bool
	Logger       *log.Logger
}

// SurfaceFunc returns the drawing surface dedicated to a layer.
type SurfaceFunc func(layer string) core.Surface

type run struct {
	layer   core.Layer
	surface core.Surface
	sched   *scheduler.Scheduler
	// attached is set while the layer is bound to a usable surface.
	attached bool
}

// Engine owns every animated layer of a page background. All methods must
// be called from the host rendering loop.
type Engine struct {
	logger   *log.Logger
	detector *profile.Detector
	params   profile.Params
	size     core.Size
	dark     bool

	runs        []*run
	unsubscribe func()
	started     bool
	disposed    bool
}

// LayerStatus summarizes one layer for HUDs and tooling.
type LayerStatus struct {
	Name       string
	State      scheduler.State
	Stats      scheduler.Stats
	Parameters core.ParameterSnapshot
}

// New builds the configured layers, attaches them to their surfaces at the
// surfaces' current size and subscribes to sig. Schedulers stay idle until
// Start.
func New(cfg Config, src scheduler.TickSource, sig viewport.Signal, surfaces SurfaceFunc) (*Engine, error) {
	if len(cfg.Layers) == 0 {
		return nil, errors.New("engine: no layers configured")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	e := &Engine{
		logger:   logger,
		detector: profile.NewDetector(cfg.Capability),
		dark:     cfg.Dark,
	}

	for i, name := range cfg.Layers {
		factory, ok := core.Layers()[name]
		if !ok {
			return nil, fmt.Errorf("engine: %w %q", ErrUnknownLayer, name)
		}
		layer, err := factory(cfg.Seed + int64(i))
		if err != nil {
			return nil, fmt.Errorf("engine: build layer %q: %w", name, err)
		}
		surface := surfaces(name)
		if surface == nil {
			return nil, fmt.Errorf("engine: no surface for layer %q", name)
		}
		r := &run{layer: layer, surface: surface}
		r.sched = scheduler.New(src, scheduler.Options{
			Name:         name,
			StartupDelay: cfg.StartupDelay,
			Logger:       logger,
		}, func(_ float64, full bool) error {
			return r.layer.Frame(r.surface, palette.Resolve(e.dark), full)
		})
		e.runs = append(e.runs, r)
	}

	e.Resize(e.runs[0].surface.Size())
	if sig != nil {
		e.unsubscribe = sig.Subscribe(e.Resize)
	}
	return e, nil
}

// Resize re-detects the tier for size and rebinds every layer: the surface
// is recreated, the tier budget applied, caches rebuilt and the scheduler
// pacing updated. Layers are rebound one after the other. While the engine
// is started, a layer that attaches successfully is (re)started, so layers
// stopped by an earlier failed attach or a zero-size surface come back.
func (e *Engine) Resize(size core.Size) {
	if e.disposed || size.Empty() {
		return
	}
	tier, changed := e.detector.Detect(size.W)
	if changed {
		e.logger.Printf("viewport %dx%d: tier %s", size.W, size.H, tier)
	}
	e.size = size
	e.params = profile.ParamsFor(tier)
	for _, r := range e.runs {
		r.surface.Resize(size.W, size.H)
		r.layer.Apply(e.params)
		if err := r.layer.Attach(r.surface); err != nil {
			e.logger.Printf("%s: attach failed, stopping: %v", r.layer.Name(), err)
			r.sched.Stop()
			r.attached = false
			continue
		}
		r.attached = true
		r.sched.SetRates(e.params.TargetFPS, e.params.FullRedrawInterval)
		if e.started {
			r.sched.Start()
		}
	}
}

// Start begins the animation loop of every attached layer. Layers without a
// usable surface yet start on their first successful Resize.
func (e *Engine) Start() {
	if e.disposed {
		return
	}
	e.started = true
	for _, r := range e.runs {
		if !r.attached {
			continue
		}
		r.sched.Start()
	}
}

// Stop halts every layer's animation loop.
func (e *Engine) Stop() {
	e.started = false
	for _, r := range e.runs {
		r.sched.Stop()
	}
}

// Dispose stops every loop and drops the viewport subscription. It is safe
// to call more than once.
func (e *Engine) Dispose() {
	e.Stop()
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	e.disposed = true
}

// SetDarkMode selects the palette used from the next accepted tick on.
func (e *Engine) SetDarkMode(dark bool) { e.dark = dark }

// Dark reports the current theme mode.
func (e *Engine) Dark() bool { return e.dark }

// Tier returns the active performance tier.
func (e *Engine) Tier() profile.Tier { return e.params.Tier }

// Params returns the active tier budget.
func (e *Engine) Params() profile.Params { return e.params }

// Size returns the last applied viewport size.
func (e *Engine) Size() core.Size { return e.size }

// Running reports whether any layer loop is still active.
func (e *Engine) Running() bool {
	for _, r := range e.runs {
		if r.attached && r.sched.State() != scheduler.Stopped {
			return true
		}
	}
	return false
}

// Snapshot reports the status of every layer in configuration order.
func (e *Engine) Snapshot() []LayerStatus {
	out := make([]LayerStatus, 0, len(e.runs))
	for _, r := range e.runs {
		out = append(out, LayerStatus{
			Name:       r.layer.Name(),
			State:      r.sched.State(),
			Stats:      r.sched.Stats(),
			Parameters: r.layer.Parameters(),
		})
	}
	return out
}
