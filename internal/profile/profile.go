// Package profile classifies the host viewport into coarse capability tiers
// and maps each tier onto the rendering budget the animated layers run under.
package profile

import (
	"strings"
	"time"
)

// Tier is a coarse device capability classification.
type Tier int

const (
	// Low is used for narrow viewports and slow devices.
	Low Tier = iota
	// Medium is used for tablet-sized viewports.
	Medium
	// High is used for desktop viewports with no capability downgrade.
	High
)

// Width breakpoints separating the tiers.
const (
	MediumMinWidth = 768
	HighMinWidth   = 1024
)

func (t Tier) String() string {
	switch t {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return "unknown"
	}
}

// Capability is a coarse hint about how much work the device can absorb.
// A hint can only lower the tier the viewport width allows.
type Capability int

const (
	// CapabilityUnknown leaves the width-derived tier untouched.
	CapabilityUnknown Capability = iota
	// CapabilityNormal leaves the width-derived tier untouched.
	CapabilityNormal
	// CapabilityReduced drops the tier by one step.
	CapabilityReduced
	// CapabilityMinimal forces the Low tier.
	CapabilityMinimal
)

func (c Capability) String() string {
	switch c {
	case CapabilityNormal:
		return "normal"
	case CapabilityReduced:
		return "reduced"
	case CapabilityMinimal:
		return "minimal"
	default:
		return "auto"
	}
}

// ParseCapability maps a config string onto a Capability. Unrecognized values
// map to CapabilityUnknown, which means "probe the device".
func ParseCapability(s string) Capability {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal":
		return CapabilityNormal
	case "reduced":
		return CapabilityReduced
	case "minimal", "low":
		return CapabilityMinimal
	default:
		return CapabilityUnknown
	}
}

// Detect classifies a viewport. It is a pure function of its inputs.
func Detect(width int, hint Capability) Tier {
	tier := Low
	switch {
	case width <= 0:
		return Low
	case width < MediumMinWidth:
		tier = Low
	case width < HighMinWidth:
		tier = Medium
	default:
		tier = High
	}
	switch hint {
	case CapabilityReduced:
		if tier > Low {
			tier--
		}
	case CapabilityMinimal:
		tier = Low
	}
	return tier
}

// Params is the rendering budget for one tier.
type Params struct {
	Tier Tier

	ParticleCount      int
	TargetFPS          int
	FullRedrawInterval time.Duration

	MaxDistance     float64
	NeighborLimit   int
	ConnectionAlpha float64

	WaveIncrement float64
	WaveStep      float64
	GridSize      float64
}

var tierParams = [...]Params{
	Low: {
		Tier:               Low,
		ParticleCount:      25,
		TargetFPS:          24,
		FullRedrawInterval: 2000 * time.Millisecond,
		MaxDistance:        80,
		NeighborLimit:      2,
		ConnectionAlpha:    0.12,
		WaveIncrement:      0.005,
		WaveStep:           20,
		GridSize:           60,
	},
	Medium: {
		Tier:               Medium,
		ParticleCount:      50,
		TargetFPS:          30,
		FullRedrawInterval: 1500 * time.Millisecond,
		MaxDistance:        110,
		NeighborLimit:      3,
		ConnectionAlpha:    0.15,
		WaveIncrement:      0.01,
		WaveStep:           10,
		GridSize:           50,
	},
	High: {
		Tier:               High,
		ParticleCount:      80,
		TargetFPS:          60,
		FullRedrawInterval: 1000 * time.Millisecond,
		MaxDistance:        140,
		NeighborLimit:      5,
		ConnectionAlpha:    0.2,
		WaveIncrement:      0.015,
		WaveStep:           10,
		GridSize:           50,
	},
}

// ParamsFor returns the budget for the tier. Out-of-range tiers get Low.
func ParamsFor(t Tier) Params {
	if t < Low || t > High {
		t = Low
	}
	return tierParams[t]
}

// FrameInterval returns the minimum spacing between accepted ticks in ms.
func (p Params) FrameInterval() float64 {
	if p.TargetFPS <= 0 {
		return 0
	}
	return 1000 / float64(p.TargetFPS)
}
