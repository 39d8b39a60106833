// Package ui renders the stats overlay of the GUI build.
package ui

import (
	"fmt"
	"strings"

	"holo-fx/internal/engine"
	"holo-fx/internal/profile"
)

// Source is what the HUD reads every tick.
type Source interface {
	Tier() profile.Tier
	Dark() bool
	Snapshot() []engine.LayerStatus
}

// Lines formats the overlay text. fps and tps are the host's measured rates.
func Lines(src Source, fps, tps float64) []string {
	if src == nil {
		return nil
	}
	theme := "light"
	if src.Dark() {
		theme = "dark"
	}
	lines := []string{
		fmt.Sprintf("tier %s  theme %s", src.Tier(), theme),
		fmt.Sprintf("fps %.1f  tps %.1f", fps, tps),
	}
	for _, st := range src.Snapshot() {
		lines = append(lines, fmt.Sprintf("%s [%s] frames %d/%d full %d",
			st.Name, st.State, st.Stats.Accepted, st.Stats.Ticks, st.Stats.FullRedraws))
		if st.Stats.LastError != nil {
			lines = append(lines, "  error: "+st.Stats.LastError.Error())
		}
		for _, group := range st.Parameters.Groups {
			parts := make([]string, 0, len(group.Params))
			for _, p := range group.Params {
				parts = append(parts, p.Key+"="+p.Value)
			}
			if len(parts) > 0 {
				lines = append(lines, "  "+strings.Join(parts, " "))
			}
		}
	}
	return lines
}
