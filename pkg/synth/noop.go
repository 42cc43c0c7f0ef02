package synth

import "context"

// Noop is the engine used when the platform has no speech capability.
// It reports unavailable and produces no sound.
type Noop struct{}

// NewNoop creates the no-capability engine.
func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) Speak(ctx context.Context, text string, profile Profile) error {
	return nil
}

func (n *Noop) Available() bool {
	return false
}

func (n *Noop) Name() string {
	return "noop"
}

var _ Engine = (*Noop)(nil)
