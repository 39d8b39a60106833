package profile

// Detector owns the capability hint and the last detected tier for one
// engine instance.
type Detector struct {
	hint    Capability
	tier    Tier
	checked bool
}

// NewDetector returns a detector using hint. CapabilityUnknown triggers a
// one-off host probe.
func NewDetector(hint Capability) *Detector {
	if hint == CapabilityUnknown {
		hint = MeasureProbe().Capability()
	}
	return &Detector{hint: hint}
}

// Detect reclassifies the viewport and reports whether the tier changed
// since the previous call.
func (d *Detector) Detect(width int) (Tier, bool) {
	tier := Detect(width, d.hint)
	changed := !d.checked || tier != d.tier
	d.tier = tier
	d.checked = true
	return tier, changed
}

// Current returns the last detected tier.
func (d *Detector) Current() Tier { return d.tier }

// Hint returns the capability hint in use.
func (d *Detector) Hint() Capability { return d.hint }
