// Package viewport carries resize notifications from the host to the engine.
package viewport

import "holo-fx/internal/core"

// Signal delivers viewport sizes to subscribers.
type Signal interface {
	Subscribe(fn func(core.Size)) (unsubscribe func())
}

// Broadcaster is a synchronous Signal. Publish runs subscribers on the
// caller's goroutine, which must be the host rendering loop.
type Broadcaster struct {
	next int
	subs map[int]func(core.Size)
	last core.Size
}

// NewBroadcaster returns a Broadcaster with no subscribers.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]func(core.Size))}
}

// Subscribe registers fn. The returned function is safe to call repeatedly.
func (b *Broadcaster) Subscribe(fn func(core.Size)) func() {
	if fn == nil {
		return func() {}
	}
	id := b.next
	b.next++
	b.subs[id] = fn
	return func() { delete(b.subs, id) }
}

// Publish notifies subscribers when size differs from the last published
// size. It reports whether anything was delivered.
func (b *Broadcaster) Publish(size core.Size) bool {
	if size == b.last {
		return false
	}
	b.last = size
	for i := 0; i < b.next; i++ {
		if fn, ok := b.subs[i]; ok {
			fn(size)
		}
	}
	return true
}

// Last returns the most recently published size.
func (b *Broadcaster) Last() core.Size { return b.last }

// Subscribers returns the number of live subscriptions.
func (b *Broadcaster) Subscribers() int { return len(b.subs) }
