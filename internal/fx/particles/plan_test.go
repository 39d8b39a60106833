package particles

import (
	"errors"
	"math"
	"testing"

	"holo-fx/internal/core"
	"holo-fx/internal/palette"
	"holo-fx/internal/profile"
	"holo-fx/internal/render"
)

func TestLinksPerParticleBoundedByNeighborLimit(t *testing.T) {
	for _, tier := range []profile.Tier{profile.Low, profile.Medium, profile.High} {
		f := newField(t, tier, 60, 200, 200)
		limit := f.Params().NeighborLimit

		// Cluster everything so every pair is within range.
		ps := f.Particles()
		for i := range ps {
			ps[i].X = 100 + float64(i%3)
			ps[i].Y = 100 + float64(i%4)
		}

		var plan Plan
		for _, full := range []bool{true, false} {
			f.Plan(&plan, full)
			emitted := make([]int, len(ps))
			for _, l := range plan.Links {
				emitted[l.A]++
				if l.B <= l.A {
					t.Fatalf("link %d->%d must point to a later index", l.A, l.B)
				}
			}
			for i, n := range emitted {
				if n > limit {
					t.Fatalf("tier %v full=%v particle %d emitted %d links (limit %d)", tier, full, i, n, limit)
				}
				if n != plan.PerParticle[i] {
					t.Fatalf("per-particle count mismatch for %d: %d vs %d", i, n, plan.PerParticle[i])
				}
			}
			if full && plan.MaxPerParticle() != limit {
				t.Fatalf("tier %v: clustered field should saturate the limit, max %d", tier, plan.MaxPerParticle())
			}
			if bound := len(ps) * limit; len(plan.Links) > bound {
				t.Fatalf("total links %d exceed %d", len(plan.Links), bound)
			}
		}
	}
}

func TestPartialFramesSubsampleSources(t *testing.T) {
	f := newField(t, profile.Medium, 12, 100, 100)
	ps := f.Particles()
	for i := range ps {
		ps[i].X, ps[i].Y = 50, 50
	}
	var plan Plan
	f.Plan(&plan, false)
	for _, l := range plan.Links {
		if l.A%partialStride != 0 {
			t.Fatalf("partial frame emitted link from index %d", l.A)
		}
	}
	if len(plan.Clears) != 2*len(ps) {
		t.Fatalf("expected two clear rects per particle, got %d", len(plan.Clears))
	}

	f.Plan(&plan, true)
	if len(plan.Clears) != 0 {
		t.Fatalf("full frame should not issue local clears, got %d", len(plan.Clears))
	}
	sources := map[int]bool{}
	for _, l := range plan.Links {
		sources[l.A] = true
	}
	if !sources[1] || !sources[2] {
		t.Fatal("full frame should search from every particle")
	}
}

func TestLinkAlphaDecaysWithDistance(t *testing.T) {
	f := newField(t, profile.Medium, 3, 1000, 1000)
	p := f.Params()
	ps := f.Particles()
	ps[0].X, ps[0].Y = 100, 100
	ps[1].X, ps[1].Y = 100+p.MaxDistance/2, 100
	ps[2].X, ps[2].Y = 100+p.MaxDistance, 100

	var plan Plan
	f.Plan(&plan, true)
	var found bool
	for _, l := range plan.Links {
		if l.A == 0 && l.B == 2 {
			t.Fatal("link at exactly max distance must not be emitted")
		}
		if l.A == 0 && l.B == 1 {
			found = true
			want := p.ConnectionAlpha * 0.5
			if math.Abs(l.Alpha-want) > 1e-9 {
				t.Fatalf("alpha %f, want %f", l.Alpha, want)
			}
		}
	}
	if !found {
		t.Fatal("expected a link between particles 0 and 1")
	}
}

func TestLayerFrameDrawsThroughSurface(t *testing.T) {
	rec := render.NewRecorder(400, 300, true)
	layer := NewLayer(7)
	layer.Apply(profile.ParamsFor(profile.Low))
	if err := layer.Attach(rec); err != nil {
		t.Fatalf("attach: %v", err)
	}
	n := len(layer.Field().Particles())
	pal := palette.Resolve(true)

	if err := layer.Frame(rec, pal, true); err != nil {
		t.Fatalf("full frame: %v", err)
	}
	if rec.Count(render.OpFillRect) != 1 || rec.Count(render.OpClearRect) != 0 {
		t.Fatalf("full frame should fade the whole canvas once: fill=%d clear=%d",
			rec.Count(render.OpFillRect), rec.Count(render.OpClearRect))
	}
	if rec.Count(render.OpFillCircle) != n {
		t.Fatalf("expected %d circles, got %d", n, rec.Count(render.OpFillCircle))
	}
	fade := rec.Calls()[0]
	if fade.W != 400 || fade.H != 300 {
		t.Fatalf("fade rect %vx%v", fade.W, fade.H)
	}

	rec.Reset()
	if err := layer.Frame(rec, pal, false); err != nil {
		t.Fatalf("partial frame: %v", err)
	}
	if rec.Count(render.OpFillRect) != 0 || rec.Count(render.OpClearRect) != 2*n {
		t.Fatalf("partial frame clears: fill=%d clear=%d", rec.Count(render.OpFillRect), rec.Count(render.OpClearRect))
	}
	if got := rec.Count(render.OpStrokeLine); got != len(layer.LastPlan().Links) {
		t.Fatalf("stroked %d links, plan has %d", got, len(layer.LastPlan().Links))
	}
}

func TestLayerFrameFailsWithoutSurface(t *testing.T) {
	layer := NewLayer(1)
	rec := render.NewRecorder(100, 100, false)
	if err := layer.Frame(rec, palette.Resolve(true), true); err == nil {
		t.Fatal("frame before attach should fail")
	}
	if err := layer.Attach(rec); err != nil {
		t.Fatalf("attach: %v", err)
	}
	rec.Fail(core.ErrSurfaceUnavailable)
	if err := layer.Frame(rec, palette.Resolve(true), false); !errors.Is(err, core.ErrSurfaceUnavailable) {
		t.Fatalf("expected surface error, got %v", err)
	}
	if err := layer.Attach(rec); !errors.Is(err, core.ErrSurfaceUnavailable) {
		t.Fatalf("expected attach to fail on a lost surface, got %v", err)
	}
}

func TestAttachReleasesPreviousSprites(t *testing.T) {
	layer := NewLayer(3)
	rec := render.NewRecorder(400, 300, false)
	if err := layer.Attach(rec); err != nil {
		t.Fatalf("attach: %v", err)
	}
	rec.Resize(500, 300)
	if err := layer.Attach(rec); err != nil {
		t.Fatalf("reattach: %v", err)
	}
	if rec.ResourcesBuilt() != 10 || rec.ResourcesReleased() != 5 {
		t.Fatalf("built %d released %d, want 10 and 5", rec.ResourcesBuilt(), rec.ResourcesReleased())
	}

	rec.Fail(core.ErrSurfaceUnavailable)
	if err := layer.Attach(rec); err == nil {
		t.Fatal("expected attach to fail on a lost surface")
	}
	if rec.ResourcesReleased() != 10 {
		t.Fatalf("released %d after failed attach, want 10", rec.ResourcesReleased())
	}
}

func TestLayerRegistered(t *testing.T) {
	factory, ok := core.Layers()[LayerName]
	if !ok {
		t.Fatal("particles layer not registered")
	}
	layer, err := factory(1)
	if err != nil || layer.Name() != LayerName {
		t.Fatalf("factory returned %v, %v", layer, err)
	}
}
