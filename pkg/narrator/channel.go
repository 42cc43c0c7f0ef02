package narrator

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/bhartiamulya/EduToon/pkg/audio"
	"github.com/bhartiamulya/EduToon/pkg/clips"
)

// handle represents the currently sounding unit. Its finalize runs exactly
// once no matter how many exit paths fire (natural end, error, stop).
type handle struct {
	once sync.Once
	done chan struct{}
}

func newHandle() *handle {
	return &handle{done: make(chan struct{})}
}

// finalize releases the unit's resources and marks it complete. Idempotent.
func (h *handle) finalize(release func()) {
	h.once.Do(func() {
		if release != nil {
			release()
		}
		close(h.done)
	})
}

// Channel plays one speech request at a time: clip first, synthesis second.
// It owns the single-active-sound invariant; nothing else starts or stops
// sound. One cancellation hook is exposed at a time, covering whichever
// phase is active (clip playback, gesture wait, or synthesis).
type Channel struct {
	registry *clips.Registry
	out      audio.Output
	speaker  Synthesizer
	gestures *Gestures
	status   *statusVar
	log      *slog.Logger

	mu      sync.Mutex
	cancel  func()
	onStart func()
	onEnd   func()
}

// NewChannel creates a playback channel. gestures may be shared with the UI
// boundary that forwards user interactions; logger nil means slog.Default.
func NewChannel(registry *clips.Registry, out audio.Output, speaker Synthesizer, gestures *Gestures, logger *slog.Logger) *Channel {
	if logger == nil {
		logger = slog.Default()
	}
	if gestures == nil {
		gestures = NewGestures()
	}
	return &Channel{
		registry: registry,
		out:      out,
		speaker:  speaker,
		gestures: gestures,
		status:   newStatusVar(),
		log:      logger.With("component", "narrator.channel"),
	}
}

// SetCallbacks registers the mascot binder hooks: onStart fires just before
// sound begins, onEnd after every completion path.
func (c *Channel) SetCallbacks(onStart, onEnd func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStart = onStart
	c.onEnd = onEnd
}

// Gestures returns the gesture stream used for autoplay recovery.
func (c *Channel) Gestures() *Gestures {
	return c.gestures
}

// Status returns the current voice status.
func (c *Channel) Status() Status {
	return c.status.get()
}

// Play voices a single request and blocks until it has finalized.
// It never returns an error: failed clips degrade to synthesis, failed
// synthesis degrades to silence. ctx cancellation (queue stop) aborts any
// phase and still finalizes exactly once.
func (c *Channel) Play(ctx context.Context, req Request) {
	// Tear down whatever might still be sounding before starting.
	c.Interrupt()

	if ctx.Err() != nil {
		return
	}

	if req.Key == "" {
		c.playText(ctx, req.Text)
		return
	}

	clip, ok := c.registry.Lookup(req.Key)
	if !ok {
		c.log.Warn("unknown voice key", "key", req.Key)
		c.playText(ctx, req.FallbackText)
		return
	}

	c.begin()
	defer c.end()
	c.playClip(ctx, clip, req.FallbackText)
}

// playClip attempts clip playback with gated-retry and synthesis fallback.
// Caller has already entered the speaking state.
//
// The gesture subscription is taken before each start attempt so a gesture
// landing between a denied start and the wait is never missed; on success
// the unused subscription is dropped.
func (c *Channel) playClip(ctx context.Context, clip clips.Clip, fallback string) {
	for {
		gesture, unsub := c.gestures.Subscribe()

		pb, err := c.out.Start(clip.PCM, clip.Format)
		if err == nil {
			unsub()
			h := newHandle()
			c.setCancel(func() { h.finalize(pb.Stop) })
			go func() {
				<-pb.Done()
				h.finalize(nil)
			}()

			select {
			case <-h.done:
			case <-ctx.Done():
				h.finalize(pb.Stop)
			}
			return
		}

		if errors.Is(err, audio.ErrNotAllowed) {
			// Autoplay denied. Hold the request behind the next user
			// gesture and retry exactly once per gesture; do not fall
			// back, do not leave the speaking state.
			c.log.Info("playback gated, waiting for user gesture", "key", clip.Key)

			h := newHandle()
			c.setCancel(func() { h.finalize(unsub) })

			select {
			case <-gesture:
				h.finalize(nil)
				continue
			case <-h.done:
				// Stopped while waiting.
				return
			case <-ctx.Done():
				h.finalize(unsub)
				return
			}
		}

		unsub()
		c.log.Warn("clip playback failed, falling back to synthesis",
			"key", clip.Key,
			"error", err,
		)
		c.speakSynth(ctx, fallback)
		return
	}
}

// playText is the no-clip path. It only enters the speaking state when the
// synthesizer can actually produce sound, so a text request on a host with
// no speech capability resolves idle-to-idle with no speaking phase.
func (c *Channel) playText(ctx context.Context, text string) {
	if !c.speaker.CanSpeak(text) {
		c.log.Debug("narration skipped, no synthesis for text", "chars", len(text))
		return
	}

	c.begin()
	defer c.end()
	c.speakSynth(ctx, text)
}

// speakSynth delegates to the synthesis fallback. Empty text degrades
// silently without invoking the synthesizer at all.
func (c *Channel) speakSynth(ctx context.Context, text string) {
	if text == "" {
		return
	}

	c.setCancel(c.speaker.Cancel)
	c.speaker.SpeakText(ctx, text)
}

// Interrupt fires the current cancellation hook, forcing the in-flight
// phase to finalize. Idempotent and safe when nothing is playing.
func (c *Channel) Interrupt() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (c *Channel) setCancel(fn func()) {
	c.mu.Lock()
	c.cancel = fn
	c.mu.Unlock()
}

// begin enters the speaking state and signals the mascot, before any sound.
func (c *Channel) begin() {
	c.status.set(StatusSpeaking)

	c.mu.Lock()
	onStart := c.onStart
	c.mu.Unlock()
	if onStart != nil {
		onStart()
	}
}

// end returns to idle and signals the mascot, on every exit path.
func (c *Channel) end() {
	c.setCancel(nil)
	c.status.set(StatusIdle)

	c.mu.Lock()
	onEnd := c.onEnd
	c.mu.Unlock()
	if onEnd != nil {
		onEnd()
	}
}
