// Package bench drives the engine headlessly on a virtual clock and reports
// what each layer would have drawn.
package bench

import (
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"holo-fx/internal/core"
	"holo-fx/internal/engine"
	"holo-fx/internal/profile"
	"holo-fx/internal/render"
	"holo-fx/internal/scheduler"
	"holo-fx/internal/viewport"
)

// TickRate is the virtual host refresh rate in Hz.
const TickRate = 60

// Scenario is one engine run.
type Scenario struct {
	Width, Height int
	Capability    profile.Capability
	Layers        []string
	Seed          int64
	// Ticks is the number of host ticks delivered.
	Ticks int
}

func (s Scenario) String() string {
	return fmt.Sprintf("%dx%d hint=%s", s.Width, s.Height, s.Capability)
}

// LayerResult summarizes one layer of a run.
type LayerResult struct {
	Name        string
	State       scheduler.State
	Accepted    int
	FullRedraws int
	Ops         int
	MaxLinks    int
	Err         error
}

// OpsPerFrame is the mean number of surface calls per accepted frame.
func (r LayerResult) OpsPerFrame() float64 {
	if r.Accepted == 0 {
		return 0
	}
	return float64(r.Ops) / float64(r.Accepted)
}

// Result is the outcome of a Scenario.
type Result struct {
	Scenario Scenario
	Tier     profile.Tier
	Layers   []LayerResult
	Err      error
}

// Ops sums surface calls across layers.
func (r Result) Ops() int {
	total := 0
	for _, l := range r.Layers {
		total += l.Ops
	}
	return total
}

// Run executes a single scenario with no startup delay.
func Run(scn Scenario) Result {
	res := Result{Scenario: scn}
	pump := scheduler.NewPump()
	sig := viewport.NewBroadcaster()
	surfaces := make(map[string]*render.Recorder, len(scn.Layers))

	eng, err := engine.New(engine.Config{
		Layers:     scn.Layers,
		Seed:       scn.Seed,
		Capability: scn.Capability,
	}, pump, sig, func(name string) core.Surface {
		rec := render.NewRecorder(scn.Width, scn.Height, false)
		surfaces[name] = rec
		return rec
	})
	if err != nil {
		res.Err = err
		return res
	}
	defer eng.Dispose()
	res.Tier = eng.Tier()

	// Attach-time work is not part of the frame cost.
	for _, rec := range surfaces {
		rec.Reset()
	}

	eng.Start()
	for i := 0; i < scn.Ticks; i++ {
		pump.Flush(float64(i) * 1000 / TickRate)
	}

	for _, st := range eng.Snapshot() {
		lr := LayerResult{
			Name:        st.Name,
			State:       st.State,
			Accepted:    int(st.Stats.Accepted),
			FullRedraws: int(st.Stats.FullRedraws),
			Err:         st.Stats.LastError,
		}
		if rec, ok := surfaces[st.Name]; ok {
			lr.Ops = rec.Total()
		}
		if p, ok := st.Parameters.Lookup("max_links"); ok {
			lr.MaxLinks, _ = strconv.Atoi(p.Value)
		}
		res.Layers = append(res.Layers, lr)
	}
	return res
}

// Sweep runs every scenario on at most workers goroutines. Results come
// back sorted by width, then capability.
func Sweep(scenarios []Scenario, workers int) []Result {
	if workers < 1 {
		workers = 1
	}
	all := make([]Result, len(scenarios))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, scn := range scenarios {
		g.Go(func() error {
			all[i] = Run(scn)
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(all, func(i, j int) bool {
		a, b := all[i].Scenario, all[j].Scenario
		if a.Width != b.Width {
			return a.Width < b.Width
		}
		return a.Capability < b.Capability
	})
	return all
}

// Grid builds the cross product of widths and capability hints.
func Grid(widths []int, height int, hints []profile.Capability, base Scenario) []Scenario {
	var out []Scenario
	for _, w := range widths {
		for _, hint := range hints {
			scn := base
			scn.Width, scn.Height = w, height
			scn.Capability = hint
			out = append(out, scn)
		}
	}
	return out
}
