package scheduler

// Handle identifies a pending frame request.
type Handle uint64

// TickSource is the host frame-tick source: it invokes a callback once on
// the next display refresh with a monotonic timestamp in milliseconds.
type TickSource interface {
	RequestFrame(cb func(ts float64)) Handle
	CancelFrame(h Handle)
}

// Pump is a TickSource driven by the host loop. Callbacks requested while a
// flush is running are deferred to the next Flush.
type Pump struct {
	next    Handle
	order   []Handle
	pending map[Handle]func(ts float64)
	batch   []Handle
}

// NewPump returns an empty Pump.
func NewPump() *Pump {
	return &Pump{pending: make(map[Handle]func(ts float64))}
}

// RequestFrame registers cb for the next Flush.
func (p *Pump) RequestFrame(cb func(ts float64)) Handle {
	if cb == nil {
		return 0
	}
	p.next++
	p.pending[p.next] = cb
	p.order = append(p.order, p.next)
	return p.next
}

// CancelFrame drops a pending request. Unknown handles are ignored.
func (p *Pump) CancelFrame(h Handle) {
	delete(p.pending, h)
}

// Pending reports how many requests are waiting for the next Flush.
func (p *Pump) Pending() int { return len(p.pending) }

// Flush runs every request registered before the call, in registration
// order, with timestamp ts.
func (p *Pump) Flush(ts float64) int {
	p.batch, p.order = p.order, p.batch[:0]
	ran := 0
	for _, h := range p.batch {
		cb, ok := p.pending[h]
		if !ok {
			continue
		}
		delete(p.pending, h)
		cb(ts)
		ran++
	}
	p.batch = p.batch[:0]
	return ran
}
