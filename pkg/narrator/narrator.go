// Package narrator implements the narration engine: a FIFO queue of speech
// requests drained one at a time through a playback channel that tries a
// pre-recorded clip first and falls back to synthesized speech.
//
// The engine is best-effort by design. No request ever fails from the
// caller's point of view: a broken clip degrades to synthesis, a broken
// synthesis degrades to silence, and the only observable signal is the
// status returning to idle. Playback blocked by the platform's autoplay
// policy is held, not failed, until the next user gesture.
package narrator

import (
	"context"
	"sync"

	"github.com/bhartiamulya/EduToon/pkg/clips"
)

// Status is the aggregate voice state of the engine.
type Status string

const (
	// StatusIdle means nothing is sounding and nothing is pending.
	StatusIdle Status = "idle"

	// StatusListening is owned by the speech-input collaborator; the
	// narration engine never sets it on its own.
	StatusListening Status = "listening"

	// StatusSpeaking means a request is in flight (including a request
	// held behind the playback gate waiting for a user gesture).
	StatusSpeaking Status = "speaking"
)

// Request is a single narration instruction: either a clip key with an
// optional fallback text, or plain text for synthesis only.
type Request struct {
	// Key selects a pre-recorded clip. Empty means synthesis only.
	Key clips.Key `json:"key,omitempty"`

	// FallbackText is spoken if the clip fails to play. Empty means a
	// failed clip degrades silently to idle.
	FallbackText string `json:"fallback_text,omitempty"`

	// Text is the synthesis-only payload; used when Key is empty.
	Text string `json:"text,omitempty"`
}

// ClipRequest builds a clip request with the key's canonical line as
// fallback text.
func ClipRequest(key clips.Key) Request {
	return Request{Key: key, FallbackText: clips.Line(key)}
}

// TextRequest builds a synthesis-only request.
func TextRequest(text string) Request {
	return Request{Text: text}
}

// Synthesizer is the synthesized-speech fallback used when a clip cannot
// play. *synth.Speaker satisfies it.
type Synthesizer interface {
	// CanSpeak reports whether SpeakText would produce sound for this text.
	CanSpeak(text string) bool

	// SpeakText blocks until speech production ends. Never fails; degraded
	// synthesis completes silently.
	SpeakText(ctx context.Context, text string)

	// Cancel interrupts the in-flight utterance.
	Cancel()
}

// statusVar holds the process-wide voice status and fans out transitions.
type statusVar struct {
	mu    sync.Mutex
	value Status
	subs  []func(Status)
}

func newStatusVar() *statusVar {
	return &statusVar{value: StatusIdle}
}

func (v *statusVar) get() Status {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value
}

// set updates the status and notifies subscribers on change.
// Subscribers run outside the lock.
func (v *statusVar) set(s Status) {
	v.mu.Lock()
	if v.value == s {
		v.mu.Unlock()
		return
	}
	v.value = s
	subs := v.subs
	v.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}

// swap transitions from -> to if the current value matches from.
func (v *statusVar) swap(from, to Status) bool {
	v.mu.Lock()
	if v.value != from {
		v.mu.Unlock()
		return false
	}
	v.value = to
	subs := v.subs
	v.mu.Unlock()

	for _, fn := range subs {
		fn(to)
	}
	return true
}

func (v *statusVar) subscribe(fn func(Status)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.subs = append(v.subs, fn)
}
