package synth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
)

// Speaker serializes synthesized speech: starting a new utterance cancels
// the previous one, and exactly one utterance sounds at a time. It never
// surfaces errors to callers; degraded synthesis is logged and swallowed.
type Speaker struct {
	engine  Engine
	profile Profile
	log     *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64
}

// Option is a functional option for configuring a Speaker.
type Option func(*Speaker)

// WithEngine sets the synthesis engine explicitly.
func WithEngine(e Engine) Option {
	return func(s *Speaker) { s.engine = e }
}

// WithProfile replaces the default child voice profile.
func WithProfile(p Profile) Option {
	return func(s *Speaker) { s.profile = p }
}

// WithVoice sets the preferred named voice.
func WithVoice(voice string) Option {
	return func(s *Speaker) { s.profile.Voice = voice }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Speaker) { s.log = logger }
}

// New creates a Speaker. Without WithEngine, the best engine for the
// platform is detected; hosts with no speech capability get a Noop engine
// and the Speaker silently no-ops.
func New(opts ...Option) *Speaker {
	s := &Speaker{
		profile: ChildProfile(),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == nil {
		s.engine = Detect(s.log)
	}
	s.log = s.log.With("component", "synth.speaker", "engine", s.engine.Name())
	return s
}

// CanSpeak reports whether SpeakText would produce sound for this text.
func (s *Speaker) CanSpeak(text string) bool {
	return strings.TrimSpace(text) != "" && s.engine.Available()
}

// SpeakText voices the text and blocks until speech production ends.
// Empty text and missing capability complete immediately with no sound;
// engine errors are treated as completion. Cancellation (via Cancel or ctx)
// also completes normally.
func (s *Speaker) SpeakText(ctx context.Context, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	if !s.engine.Available() {
		s.log.Debug("synthesis unavailable, skipping", "chars", len(text))
		return
	}

	// A new utterance replaces whatever is still sounding.
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.gen++
	gen := s.gen
	s.cancel = cancel
	s.mu.Unlock()

	err := s.engine.Speak(ctx, text, s.profile)
	if err != nil && !errors.Is(err, context.Canceled) {
		// Leaf of the fallback chain: an error here is completion, not failure.
		s.log.Warn("synthesis failed", "error", err, "chars", len(text))
	}

	// Release only this utterance's context. A newer utterance may already
	// have replaced s.cancel with its own; leave that one alone.
	cancel()
	s.mu.Lock()
	if s.gen == gen {
		s.cancel = nil
	}
	s.mu.Unlock()
}

// Cancel interrupts the in-flight utterance, if any. Idempotent; the
// pending SpeakText still returns normally.
func (s *Speaker) Cancel() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Engine returns the underlying engine, for diagnostics.
func (s *Speaker) Engine() Engine {
	return s.engine
}
