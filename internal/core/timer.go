package core

import "time"

// frameJitterMs absorbs host timestamp jitter so a 60 Hz host pacing a 30 FPS
// layer accepts every second tick instead of drifting to every third.
const frameJitterMs = 1.0

// FrameClock paces one canvas: it accepts ticks no closer than the frame
// interval and flags a full redraw once the full-redraw interval has passed.
// Times are host timestamps in milliseconds.
type FrameClock struct {
	lastFrameTime        float64
	lastFullRedrawTime   float64
	frameIntervalMs      float64
	fullRedrawIntervalMs float64
}

// NewFrameClock constructs a FrameClock for the given target FPS and
// full-redraw cadence.
func NewFrameClock(fps int, fullRedraw time.Duration) *FrameClock {
	c := &FrameClock{}
	c.SetRates(fps, fullRedraw)
	return c
}

// SetRates changes the pacing. A non-positive fps removes the cap.
func (c *FrameClock) SetRates(fps int, fullRedraw time.Duration) {
	c.frameIntervalMs = 0
	if fps > 0 {
		c.frameIntervalMs = 1000 / float64(fps)
	}
	c.fullRedrawIntervalMs = float64(fullRedraw) / float64(time.Millisecond)
}

// Reset anchors the clock so the first tick at or after now is accepted and
// the first full redraw falls one interval later.
func (c *FrameClock) Reset(now float64) {
	c.lastFrameTime = now - c.frameIntervalMs
	c.lastFullRedrawTime = now
}

// Accept decides whether the tick at now should render and whether it is a
// full redraw.
func (c *FrameClock) Accept(now float64) (accepted, fullRedraw bool) {
	elapsed := now - c.lastFrameTime
	if elapsed < 0 || elapsed < c.frameIntervalMs-frameJitterMs {
		return false, false
	}
	c.lastFrameTime = now
	if now-c.lastFullRedrawTime > c.fullRedrawIntervalMs {
		c.lastFullRedrawTime = now
		return true, true
	}
	return true, false
}

// FrameInterval returns the minimum spacing between accepted ticks in ms.
func (c *FrameClock) FrameInterval() float64 { return c.frameIntervalMs }

// FullRedrawInterval returns the full-redraw cadence in ms.
func (c *FrameClock) FullRedrawInterval() float64 { return c.fullRedrawIntervalMs }
