package particles

import (
	"math"
	"testing"

	"holo-fx/internal/profile"
)

func newField(t *testing.T, tier profile.Tier, count, w, h int) *Field {
	t.Helper()
	f := NewField(42)
	p := profile.ParamsFor(tier)
	if count > 0 {
		p.ParticleCount = count
	}
	f.Apply(p)
	f.Reset(w, h)
	return f
}

func checkBounds(t *testing.T, f *Field, step int) {
	t.Helper()
	w, h := f.Size()
	for i, p := range f.Particles() {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Fatalf("step %d particle %d has NaN position", step, i)
		}
		if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
			t.Fatalf("step %d particle %d out of bounds: (%f, %f) in %fx%f", step, i, p.X, p.Y, w, h)
		}
	}
}

func TestResetRespectsRanges(t *testing.T) {
	f := newField(t, profile.Medium, 0, 800, 600)
	if got := len(f.Particles()); got != profile.ParamsFor(profile.Medium).ParticleCount {
		t.Fatalf("particle count %d", got)
	}
	for i, p := range f.Particles() {
		if p.Size < minSize || p.Size > maxSize {
			t.Fatalf("particle %d size %f", i, p.Size)
		}
		if p.Opacity < minOpacity || p.Opacity > maxOpacity {
			t.Fatalf("particle %d opacity %f", i, p.Opacity)
		}
	}
	checkBounds(t, f, 0)
}

func TestWrapInvariantMediumScenario(t *testing.T) {
	f := newField(t, profile.Medium, 50, 320, 200)
	for step := 1; step <= 100; step++ {
		f.Step(1)
		checkBounds(t, f, step)
	}
}

func TestWrapInvariantWithFastParticles(t *testing.T) {
	f := newField(t, profile.High, 30, 37, 23)
	ps := f.Particles()
	for i := range ps {
		ps[i].VX = float64(i%7-3) * 13.7
		ps[i].VY = -float64(i%5-2) * 29.3
	}
	for step := 1; step <= 500; step++ {
		f.Step(1)
		checkBounds(t, f, step)
	}
}

func TestWrapDoesNotFlipVelocity(t *testing.T) {
	f := newField(t, profile.Low, 1, 100, 100)
	p := &f.Particles()[0]
	p.X, p.Y, p.VX, p.VY = 99.9, 0.1, 0.5, -0.5
	f.Step(1)
	if p.VX != 0.5 || p.VY != -0.5 {
		t.Fatalf("velocity changed on boundary crossing: (%f, %f)", p.VX, p.VY)
	}
	if math.Abs(p.X-0.4) > 1e-9 || math.Abs(p.Y-99.6) > 1e-9 {
		t.Fatalf("expected wrap to (0.4, 99.6), got (%f, %f)", p.X, p.Y)
	}
	if p.PrevX != 99.9 || p.PrevY != 0.1 {
		t.Fatalf("previous position not kept: (%f, %f)", p.PrevX, p.PrevY)
	}
}

func TestWrapEdgeCases(t *testing.T) {
	if got := wrap(-1e-18, 100); got < 0 || got >= 100 {
		t.Fatalf("tiny negative wrapped to %v", got)
	}
	if got := wrap(100, 100); got != 0 {
		t.Fatalf("span wrapped to %v", got)
	}
	if got := wrap(math.Inf(1), 100); got != 0 {
		t.Fatalf("inf wrapped to %v", got)
	}
	if got := wrap(5, 0); got != 0 {
		t.Fatalf("zero span wrapped to %v", got)
	}
}

func TestStepTreatsBadHintAsOneTick(t *testing.T) {
	f := newField(t, profile.Low, 1, 100, 100)
	p := &f.Particles()[0]
	p.X, p.Y, p.VX, p.VY = 10, 10, 1, 1
	f.Step(0)
	f.Step(math.NaN())
	if p.X != 12 || p.Y != 12 {
		t.Fatalf("expected two unit steps, got (%f, %f)", p.X, p.Y)
	}
}
