package profile

import (
	"math"
	"runtime"
	"time"
)

// Probe holds the coarse device measurements used to derive a Capability.
type Probe struct {
	CPUs           int
	Responsiveness time.Duration
}

const (
	probeIterations = 200_000

	slowProbe     = 8 * time.Millisecond
	verySlowProbe = 25 * time.Millisecond
)

// MeasureProbe samples the host once. It is the only impure step of tier
// detection and should run at startup, not per frame.
func MeasureProbe() Probe {
	start := time.Now()
	acc := 0.0
	for i := 0; i < probeIterations; i++ {
		acc += math.Sin(float64(i) * 0.001)
	}
	elapsed := time.Since(start)
	if math.IsNaN(acc) {
		elapsed = verySlowProbe
	}
	return Probe{CPUs: runtime.NumCPU(), Responsiveness: elapsed}
}

// Capability reduces the probe to a coarse hint.
func (p Probe) Capability() Capability {
	switch {
	case p.CPUs == 1 || p.Responsiveness >= verySlowProbe:
		return CapabilityMinimal
	case p.CPUs > 0 && p.CPUs <= 2, p.Responsiveness >= slowProbe:
		return CapabilityReduced
	default:
		return CapabilityNormal
	}
}
