package audio

import (
	"log/slog"
	"sync"
	"time"
)

// Silent is an Output for hosts without an audio device. Playbacks produce
// no sound but hold for the clip's natural duration, so queue pacing and
// status transitions behave exactly as with a real device.
type Silent struct {
	log *slog.Logger
}

// NewSilent creates a soundless output.
func NewSilent(logger *slog.Logger) *Silent {
	if logger == nil {
		logger = slog.Default()
	}
	return &Silent{log: logger}
}

func (s *Silent) Start(pcm []byte, format Format) (Playback, error) {
	if len(pcm) == 0 {
		return nil, ErrBadData
	}

	d := format.Duration(len(pcm))
	s.log.Debug("silent playback", "duration", d)

	pb := &silentPlayback{done: make(chan struct{})}
	pb.timer = time.AfterFunc(d, pb.finish)
	return pb, nil
}

type silentPlayback struct {
	once  sync.Once
	done  chan struct{}
	timer *time.Timer
}

func (p *silentPlayback) finish() {
	p.once.Do(func() {
		if p.timer != nil {
			p.timer.Stop()
		}
		close(p.done)
	})
}

func (p *silentPlayback) Done() <-chan struct{} { return p.done }
func (p *silentPlayback) Stop()                 { p.finish() }

var _ Output = (*Silent)(nil)
