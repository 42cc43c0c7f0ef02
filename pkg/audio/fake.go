package audio

import (
	"sync"
)

// Fake implements Output for testing.
// By default every Start succeeds and the playback must be finished by the
// test (or stopped). Set StartFunc or Errs to change behavior per call.
type Fake struct {
	// StartFunc, if set, fully replaces Start.
	StartFunc func(pcm []byte, format Format) (Playback, error)

	// Errs is consumed one per Start call; a nil entry means success.
	// When exhausted, Start succeeds.
	Errs []error

	// AutoFinish completes each playback immediately after Start.
	AutoFinish bool

	mu     sync.Mutex
	starts []*FakePlayback
	errIdx int
}

// NewFake creates a fake output whose playbacks finish immediately.
func NewFake() *Fake {
	return &Fake{AutoFinish: true}
}

// Start records the call and returns a controllable playback.
func (f *Fake) Start(pcm []byte, format Format) (Playback, error) {
	if f.StartFunc != nil {
		return f.StartFunc(pcm, format)
	}

	f.mu.Lock()
	var err error
	if f.errIdx < len(f.Errs) {
		err = f.Errs[f.errIdx]
		f.errIdx++
	}
	if err != nil {
		f.mu.Unlock()
		return nil, err
	}

	pb := &FakePlayback{PCM: pcm, Fmt: format, done: make(chan struct{})}
	f.starts = append(f.starts, pb)
	f.mu.Unlock()

	if f.AutoFinish {
		pb.Finish()
	}
	return pb, nil
}

// Starts returns all successfully started playbacks in order.
func (f *Fake) Starts() []*FakePlayback {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*FakePlayback, len(f.starts))
	copy(out, f.starts)
	return out
}

// StartCount returns the number of successful Start calls.
func (f *Fake) StartCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.starts)
}

// FakePlayback is a hand-driven playback for tests.
type FakePlayback struct {
	PCM []byte
	Fmt Format

	once    sync.Once
	done    chan struct{}
	mu      sync.Mutex
	stopped bool
}

// Finish simulates natural completion.
func (p *FakePlayback) Finish() {
	p.once.Do(func() { close(p.done) })
}

// Stop records the interruption and completes the playback.
func (p *FakePlayback) Stop() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()
	p.Finish()
}

// Stopped reports whether Stop was called before natural completion.
func (p *FakePlayback) Stopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

// Finished reports whether the playback has completed.
func (p *FakePlayback) Finished() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

func (p *FakePlayback) Done() <-chan struct{} { return p.done }

var _ Output = (*Fake)(nil)
var _ Playback = (*FakePlayback)(nil)
