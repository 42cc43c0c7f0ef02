package narrator_test

import (
	"testing"

	"github.com/bhartiamulya/EduToon/pkg/narrator"
)

func TestGestures(t *testing.T) {
	t.Run("each subscription fires at most once", func(t *testing.T) {
		g := narrator.NewGestures()
		ch, cancel := g.Subscribe()
		defer cancel()

		g.Notify()
		select {
		case <-ch:
		default:
			t.Fatal("subscription did not fire")
		}

		if n := g.Waiting(); n != 0 {
			t.Errorf("delivered subscription should be removed, got %d waiting", n)
		}
	})

	t.Run("notify with no waiters is a no-op", func(t *testing.T) {
		g := narrator.NewGestures()
		g.Notify()
		g.Notify()
	})

	t.Run("cancel removes the waiter", func(t *testing.T) {
		g := narrator.NewGestures()
		ch, cancel := g.Subscribe()
		cancel()
		cancel() // safe twice

		if n := g.Waiting(); n != 0 {
			t.Errorf("expected no waiters, got %d", n)
		}

		g.Notify()
		select {
		case <-ch:
			t.Error("cancelled subscription must not fire")
		default:
		}
	})

	t.Run("one gesture wakes every current waiter", func(t *testing.T) {
		g := narrator.NewGestures()
		a, _ := g.Subscribe()
		b, _ := g.Subscribe()

		g.Notify()

		for name, ch := range map[string]<-chan struct{}{"a": a, "b": b} {
			select {
			case <-ch:
			default:
				t.Errorf("waiter %s did not fire", name)
			}
		}
	})
}
