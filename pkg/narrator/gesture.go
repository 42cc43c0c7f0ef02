package narrator

import "sync"

// Gestures fans out user interaction events (pointer-down, key-down) to
// one-shot waiters. The playback channel subscribes while a request is held
// behind the autoplay gate; the UI boundary calls Notify on every gesture.
type Gestures struct {
	mu      sync.Mutex
	waiters map[int]chan struct{}
	next    int
}

// NewGestures creates an empty gesture stream.
func NewGestures() *Gestures {
	return &Gestures{waiters: make(map[int]chan struct{})}
}

// Notify delivers one gesture to every current waiter. Each subscription
// fires at most once.
func (g *Gestures) Notify() {
	g.mu.Lock()
	waiters := g.waiters
	g.waiters = make(map[int]chan struct{})
	g.mu.Unlock()

	for _, w := range waiters {
		close(w)
	}
}

// Subscribe registers a one-shot waiter. The returned channel is closed on
// the next gesture; the cancel func removes the waiter and is safe to call
// at any time, including after delivery.
func (g *Gestures) Subscribe() (<-chan struct{}, func()) {
	g.mu.Lock()
	id := g.next
	g.next++
	ch := make(chan struct{})
	g.waiters[id] = ch
	g.mu.Unlock()

	cancel := func() {
		g.mu.Lock()
		delete(g.waiters, id)
		g.mu.Unlock()
	}
	return ch, cancel
}

// Waiting returns the number of pending one-shot subscriptions.
func (g *Gestures) Waiting() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.waiters)
}
