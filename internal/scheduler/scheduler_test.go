package scheduler

import (
	"errors"
	"testing"
	"time"
)

func TestStartThenStopBeforeFirstTick(t *testing.T) {
	pump := NewPump()
	calls := 0
	s := New(pump, Options{TargetFPS: 30, FullRedrawInterval: time.Second}, func(float64, bool) error {
		calls++
		return nil
	})
	s.Start()
	s.Stop()
	for i := 0; i < 50; i++ {
		pump.Flush(float64(i) * 20)
	}
	if calls != 0 {
		t.Fatalf("expected no callbacks after stop, got %d", calls)
	}
	if pump.Pending() != 0 {
		t.Fatalf("expected no pending frame requests, got %d", pump.Pending())
	}
	if s.State() != Stopped {
		t.Fatalf("state %v, want stopped", s.State())
	}
}

func TestStopIsIdempotent(t *testing.T) {
	pump := NewPump()
	s := New(pump, Options{TargetFPS: 60}, func(float64, bool) error { return nil })
	s.Stop()
	s.Stop()
	s.Start()
	pump.Flush(0)
	s.Stop()
	s.Stop()
	if s.State() != Stopped || pump.Pending() != 0 {
		t.Fatalf("state=%v pending=%d after double stop", s.State(), pump.Pending())
	}
}

func TestStartIsIdempotent(t *testing.T) {
	pump := NewPump()
	calls := 0
	s := New(pump, Options{TargetFPS: 0}, func(float64, bool) error {
		calls++
		return nil
	})
	s.Start()
	s.Start()
	if pump.Pending() != 1 {
		t.Fatalf("double start registered %d requests", pump.Pending())
	}
	pump.Flush(0)
	s.Start()
	pump.Flush(16)
	if calls != 2 {
		t.Fatalf("expected one callback per flush, got %d", calls)
	}
}

func TestFullRedrawCountOverFourSeconds(t *testing.T) {
	pump := NewPump()
	full, accepted := 0, 0
	var last float64 = -1
	s := New(pump, Options{TargetFPS: 30, FullRedrawInterval: 1500 * time.Millisecond}, func(ts float64, isFull bool) error {
		if ts < last {
			t.Fatalf("timestamp went backwards: %f after %f", ts, last)
		}
		last = ts
		accepted++
		if isFull {
			full++
		}
		return nil
	})
	s.Start()
	for i := 0; i < 240; i++ {
		pump.Flush(float64(i) * 1000 / 60)
	}
	if full < 1 || full > 3 {
		t.Fatalf("expected 2 (+-1) full redraws, got %d", full)
	}
	if accepted > 121 {
		t.Fatalf("target fps exceeded: %d accepted frames in 4s", accepted)
	}
	if got := s.Stats(); got.FullRedraws != uint64(full) || got.Accepted != uint64(accepted) {
		t.Fatalf("stats mismatch: %+v", got)
	}
}

func TestStartupDelay(t *testing.T) {
	pump := NewPump()
	var first float64 = -1
	s := New(pump, Options{TargetFPS: 60, StartupDelay: 500 * time.Millisecond}, func(ts float64, _ bool) error {
		if first < 0 {
			first = ts
		}
		return nil
	})
	s.Start()
	for ts := 1000.0; ts <= 2000; ts += 100 {
		pump.Flush(ts)
		if ts < 1500 && s.State() != Idle {
			t.Fatalf("loop left idle at %f before the startup delay", ts)
		}
	}
	if first != 1500 {
		t.Fatalf("first frame at %f, want 1500", first)
	}
	if s.State() != Running {
		t.Fatalf("state %v, want running", s.State())
	}
}

func TestFrameErrorStopsLoop(t *testing.T) {
	pump := NewPump()
	calls := 0
	boom := errors.New("context lost")
	s := New(pump, Options{TargetFPS: 0}, func(float64, bool) error {
		calls++
		return boom
	})
	s.Start()
	for i := 0; i < 5; i++ {
		pump.Flush(float64(i * 16))
	}
	if calls != 1 {
		t.Fatalf("expected the loop to stop after the first error, got %d calls", calls)
	}
	if s.State() != Stopped || !errors.Is(s.Stats().LastError, boom) {
		t.Fatalf("state=%v err=%v", s.State(), s.Stats().LastError)
	}
}

func TestFramePanicStopsLoop(t *testing.T) {
	pump := NewPump()
	s := New(pump, Options{TargetFPS: 0}, func(float64, bool) error {
		panic("nil surface")
	})
	s.Start()
	pump.Flush(0)
	pump.Flush(16)
	if s.State() != Stopped || s.Stats().LastError == nil {
		t.Fatalf("panic should stop the loop: state=%v err=%v", s.State(), s.Stats().LastError)
	}
}

func TestStopFromInsideCallback(t *testing.T) {
	pump := NewPump()
	calls := 0
	var s *Scheduler
	s = New(pump, Options{TargetFPS: 0}, func(float64, bool) error {
		calls++
		s.Stop()
		return nil
	})
	s.Start()
	pump.Flush(0)
	pump.Flush(16)
	if calls != 1 || pump.Pending() != 0 {
		t.Fatalf("calls=%d pending=%d", calls, pump.Pending())
	}
}

func TestPumpDefersRequestsMadeDuringFlush(t *testing.T) {
	pump := NewPump()
	order := []string{}
	pump.RequestFrame(func(float64) {
		order = append(order, "a")
		pump.RequestFrame(func(float64) { order = append(order, "c") })
	})
	h := pump.RequestFrame(func(float64) { order = append(order, "b") })
	pump.CancelFrame(h)
	if n := pump.Flush(0); n != 1 {
		t.Fatalf("first flush ran %d callbacks", n)
	}
	pump.Flush(16)
	if len(order) != 2 || order[0] != "a" || order[1] != "c" {
		t.Fatalf("unexpected order %v", order)
	}
}
