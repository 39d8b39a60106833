// Package scheduler runs one per-canvas animation loop on top of a host
// frame-tick source, throttled to a target frame rate with a periodic
// full-redraw cadence.
package scheduler

import (
	"fmt"
	"io"
	"log"
	"time"

	"holo-fx/internal/core"
)

// State is the lifecycle state of a Scheduler.
type State int

const (
	// Idle is the state before Start and during the startup delay.
	Idle State = iota
	// Running means accepted ticks invoke the frame callback.
	Running
	// Stopped means no further callbacks will fire.
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// FrameFunc renders one accepted tick. A returned error stops the loop.
type FrameFunc func(ts float64, fullRedraw bool) error

// Options configures pacing.
type Options struct {
	Name               string
	TargetFPS          int
	FullRedrawInterval time.Duration
	// StartupDelay postpones the first rendered frame so the loop does not
	// compete with host startup work.
	StartupDelay time.Duration
	Logger       *log.Logger
}

// Stats counts what the loop did since the last Start.
type Stats struct {
	Ticks       uint64
	Accepted    uint64
	FullRedraws uint64
	LastError   error
}

// Scheduler is a per-canvas animation loop. It is driven entirely from the
// host's rendering callback chain and is not safe for concurrent use.
type Scheduler struct {
	name   string
	src    TickSource
	frame  FrameFunc
	clock  *core.FrameClock
	logger *log.Logger

	delayMs float64
	state   State
	handle  Handle
	pending bool
	gen     uint64

	warmupStart float64
	warmupSeen  bool
	lastTS      float64

	stats Stats
}

// New constructs an idle Scheduler.
func New(src TickSource, opts Options, frame FrameFunc) *Scheduler {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Scheduler{
		name:    opts.Name,
		src:     src,
		frame:   frame,
		clock:   core.NewFrameClock(opts.TargetFPS, opts.FullRedrawInterval),
		logger:  logger,
		delayMs: float64(opts.StartupDelay) / float64(time.Millisecond),
	}
}

// SetRates changes the target FPS and full-redraw cadence of a live loop.
func (s *Scheduler) SetRates(fps int, fullRedraw time.Duration) {
	s.clock.SetRates(fps, fullRedraw)
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State { return s.state }

// Stats returns the counters accumulated since the last Start.
func (s *Scheduler) Stats() Stats { return s.stats }

// Clock exposes the pacing clock.
func (s *Scheduler) Clock() *core.FrameClock { return s.clock }

// Start begins requesting ticks. Calling Start on an active loop is a no-op;
// calling it after Stop restarts the loop with a fresh clock.
func (s *Scheduler) Start() {
	if s.pending || s.state == Running {
		return
	}
	s.gen++
	s.state = Idle
	s.warmupSeen = false
	s.stats = Stats{}
	s.request()
}

// Stop cancels any pending tick. It is safe to call at any point, any
// number of times, including before the first tick.
func (s *Scheduler) Stop() {
	if s.pending {
		s.src.CancelFrame(s.handle)
		s.pending = false
	}
	s.gen++
	s.state = Stopped
}

func (s *Scheduler) request() {
	gen := s.gen
	s.handle = s.src.RequestFrame(func(ts float64) { s.tick(gen, ts) })
	s.pending = true
}

func (s *Scheduler) tick(gen uint64, ts float64) {
	if gen != s.gen {
		return
	}
	s.pending = false
	if s.state == Stopped {
		return
	}
	s.stats.Ticks++

	if s.state == Idle {
		if !s.warmupSeen {
			s.warmupStart = ts
			s.warmupSeen = true
		}
		if ts-s.warmupStart < s.delayMs {
			s.request()
			return
		}
		s.state = Running
		s.clock.Reset(ts)
		s.lastTS = ts
	}

	s.request()
	if ts < s.lastTS {
		return
	}
	accepted, full := s.clock.Accept(ts)
	if !accepted {
		return
	}
	s.lastTS = ts
	s.stats.Accepted++
	if full {
		s.stats.FullRedraws++
	}
	if err := s.invoke(ts, full); err != nil {
		s.stats.LastError = err
		s.logger.Printf("%s: stopping after frame error: %v", s.name, err)
		s.Stop()
	}
}

func (s *Scheduler) invoke(ts float64, full bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("frame panic: %v", r)
		}
	}()
	return s.frame(ts, full)
}
