package audio

import (
	"log/slog"
	"sync"
)

// Gate wraps an Output and refuses to start sound until a user gesture has
// unlocked it. This reproduces the autoplay policy of browser runtimes: the
// first playback attempt before any interaction fails with ErrNotAllowed and
// must be retried after a gesture.
type Gate struct {
	out Output
	log *slog.Logger

	mu     sync.Mutex
	locked bool
}

// NewGate wraps out in a locked gate. Pass locked=false to start open
// (e.g. in kiosk installs where the platform imposes no restriction).
func NewGate(out Output, locked bool, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{out: out, log: logger, locked: locked}
}

// Start delegates to the wrapped output, or fails with ErrNotAllowed while
// the gate is locked.
func (g *Gate) Start(pcm []byte, format Format) (Playback, error) {
	g.mu.Lock()
	locked := g.locked
	g.mu.Unlock()

	if locked {
		return nil, ErrNotAllowed
	}
	return g.out.Start(pcm, format)
}

// Unlock opens the gate. Idempotent; called on the first user gesture.
func (g *Gate) Unlock() {
	g.mu.Lock()
	was := g.locked
	g.locked = false
	g.mu.Unlock()

	if was {
		g.log.Info("playback gate unlocked by user gesture")
	}
}

// Locked reports whether playback is still gated.
func (g *Gate) Locked() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.locked
}

var _ Output = (*Gate)(nil)
