package realtime

import (
	"testing"

	"github.com/Fardeen26/flashfeed/pkg/logger"
)

func pending(ch <-chan struct{}) int {
	n := 0
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return n
			}
			n++
		default:
			return n
		}
	}
}

func TestNotifyReachesOnlyTargetedUsers(t *testing.T) {
	h := NewHub(logger.NewNop())
	alice, cancelA := h.Subscribe("alice")
	defer cancelA()
	bob, cancelB := h.Subscribe("bob")
	defer cancelB()

	h.Notify("alice")

	if got := pending(alice); got != 1 {
		t.Fatalf("alice pending = %d, want 1", got)
	}
	if got := pending(bob); got != 0 {
		t.Fatalf("bob pending = %d, want 0", got)
	}
}

func TestNotifyCoalesces(t *testing.T) {
	h := NewHub(logger.NewNop())
	ch, cancel := h.Subscribe("alice")
	defer cancel()

	for i := 0; i < 5; i++ {
		h.Notify("alice")
	}

	if got := pending(ch); got != 1 {
		t.Fatalf("pending = %d, want 1", got)
	}
}

func TestMultipleSubscriptionsPerUser(t *testing.T) {
	h := NewHub(logger.NewNop())
	a, cancelA := h.Subscribe("alice")
	b, cancelB := h.Subscribe("alice")
	defer cancelB()

	if h.Subscribers("alice") != 2 {
		t.Fatalf("subscribers = %d, want 2", h.Subscribers("alice"))
	}

	cancelA()
	cancelA()
	if _, ok := <-a; ok {
		t.Fatal("cancelled channel still open")
	}
	if h.Subscribers("alice") != 1 {
		t.Fatalf("subscribers after cancel = %d, want 1", h.Subscribers("alice"))
	}

	h.Notify("alice")
	if got := pending(b); got != 1 {
		t.Fatalf("remaining subscriber pending = %d, want 1", got)
	}
}

func TestCancelRemovesEmptyUser(t *testing.T) {
	h := NewHub(logger.NewNop())
	_, cancel := h.Subscribe("alice")
	cancel()

	if h.Subscribers("alice") != 0 {
		t.Fatal("subscriber left behind")
	}
	h.Notify("alice")
}
