package render

import (
	"image/color"

	"holo-fx/internal/core"
)

// Op identifies a recorded drawing primitive.
type Op int

const (
	OpClearRect Op = iota
	OpFillRect
	OpStrokeLine
	OpFillCircle
	OpStrokeGradientLine
	opCount
)

func (o Op) String() string {
	switch o {
	case OpClearRect:
		return "clearRect"
	case OpFillRect:
		return "fillRect"
	case OpStrokeLine:
		return "strokeLine"
	case OpFillCircle:
		return "fillCircle"
	case OpStrokeGradientLine:
		return "strokeGradientLine"
	default:
		return "unknown"
	}
}

// Call is one recorded primitive.
type Call struct {
	Op         Op
	X, Y, W, H float64
	X2, Y2     float64
	Width      float64
	Color      color.Color
	Resource   core.Resource
}

// Sprite is the resource handed out by a Recorder.
type Sprite struct {
	radius   float64
	Gradient core.Gradient
	owner    *Recorder
	released bool
}

// Radius implements core.Resource.
func (s *Sprite) Radius() float64 { return s.radius }

// Release implements core.Releaser.
func (s *Sprite) Release() {
	if s.released {
		return
	}
	s.released = true
	if s.owner != nil {
		s.owner.released++
	}
}

// Released reports whether Release was called.
func (s *Sprite) Released() bool { return s.released }

// Recorder is an in-memory core.Surface that counts and optionally keeps
// every call. It backs tests and the headless bench.
type Recorder struct {
	size core.Size
	err  error

	keep    bool
	calls   []Call
	counts  [opCount]int
	built    int
	released int
	resizes  int
}

// NewRecorder returns a Recorder of the given size. When keep is false only
// per-op counters are maintained.
func NewRecorder(w, h int, keep bool) *Recorder {
	return &Recorder{size: core.Size{W: w, H: h}, keep: keep}
}

// Fail makes Err report err until Fail(nil) is called.
func (r *Recorder) Fail(err error) { r.err = err }

// Calls returns the recorded calls.
func (r *Recorder) Calls() []Call { return r.calls }

// Count returns how many times op was issued.
func (r *Recorder) Count(op Op) int { return r.counts[op] }

// Total returns the number of primitives issued.
func (r *Recorder) Total() int {
	n := 0
	for _, c := range r.counts {
		n += c
	}
	return n
}

// ResourcesBuilt returns how many gradient resources were requested.
func (r *Recorder) ResourcesBuilt() int { return r.built }

// ResourcesReleased returns how many built resources were released.
func (r *Recorder) ResourcesReleased() int { return r.released }

// Resizes returns how many times the surface was resized.
func (r *Recorder) Resizes() int { return r.resizes }

// Reset forgets recorded calls and counters.
func (r *Recorder) Reset() {
	r.calls = r.calls[:0]
	r.counts = [opCount]int{}
}

func (r *Recorder) record(c Call) {
	r.counts[c.Op]++
	if r.keep {
		r.calls = append(r.calls, c)
	}
}

// Resize implements core.Surface.
func (r *Recorder) Resize(w, h int) {
	r.size = core.Size{W: w, H: h}
	r.resizes++
}

// Size implements core.Surface.
func (r *Recorder) Size() core.Size { return r.size }

// Err implements core.Surface.
func (r *Recorder) Err() error { return r.err }

// ClearRect implements core.Surface.
func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.record(Call{Op: OpClearRect, X: x, Y: y, W: w, H: h})
}

// FillRect implements core.Surface.
func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.record(Call{Op: OpFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

// StrokeLine implements core.Surface.
func (r *Recorder) StrokeLine(x1, y1, x2, y2 float64, c color.Color, width float64) {
	r.record(Call{Op: OpStrokeLine, X: x1, Y: y1, X2: x2, Y2: y2, Color: c, Width: width})
}

// FillCircle implements core.Surface.
func (r *Recorder) FillCircle(x, y, radius float64, res core.Resource, tint color.Color) {
	r.record(Call{Op: OpFillCircle, X: x, Y: y, W: radius, Resource: res, Color: tint})
}

// StrokeGradientLine implements core.Surface.
func (r *Recorder) StrokeGradientLine(x1, y1, x2, y2 float64, g core.Gradient, width float64) {
	r.record(Call{Op: OpStrokeGradientLine, X: x1, Y: y1, X2: x2, Y2: y2, Width: width})
}

// RadialGradient implements core.Surface.
func (r *Recorder) RadialGradient(radius float64, g core.Gradient) (core.Resource, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.built++
	return &Sprite{radius: radius, Gradient: g, owner: r}, nil
}
