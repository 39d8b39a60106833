package viewport

import (
	"testing"

	"holo-fx/internal/core"
)

func TestPublishDeduplicatesAndUnsubscribes(t *testing.T) {
	b := NewBroadcaster()
	var got []core.Size
	unsub := b.Subscribe(func(s core.Size) { got = append(got, s) })

	if !b.Publish(core.Size{W: 800, H: 600}) {
		t.Fatal("first publish should deliver")
	}
	if b.Publish(core.Size{W: 800, H: 600}) {
		t.Fatal("identical size should not be delivered twice")
	}
	b.Publish(core.Size{W: 1024, H: 768})
	unsub()
	unsub()
	b.Publish(core.Size{W: 320, H: 480})

	if len(got) != 2 || got[1].W != 1024 {
		t.Fatalf("unexpected deliveries %v", got)
	}
	if b.Subscribers() != 0 {
		t.Fatalf("expected no subscribers, got %d", b.Subscribers())
	}
	if b.Last().W != 320 {
		t.Fatalf("last size %v", b.Last())
	}
}
