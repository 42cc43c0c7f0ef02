// Package synth provides the synthesized-speech fallback for the narration
// engine.
//
// Synthesis is best-effort by design: a missing engine or a failed utterance
// never propagates as an error, only as a log line. The package supports
// espeak (linux), say (macOS), a Noop engine for platforms with no speech
// capability, and a Mock for tests.
package synth

import (
	"context"
	"errors"
)

// Sentinel errors for engine construction.
var (
	// ErrNoEngine is returned when no synthesis engine is available.
	ErrNoEngine = errors.New("synth: no synthesis engine available")

	// ErrUnknownEngine is returned for an unrecognized engine name.
	ErrUnknownEngine = errors.New("synth: unknown engine")
)

// Engine produces audible speech from text. Implementations block in Speak
// until the utterance ends and must honor ctx cancellation.
type Engine interface {
	// Speak voices the text with the given profile. Returns when speech
	// production ends or ctx is cancelled.
	Speak(ctx context.Context, text string, profile Profile) error

	// Available reports whether the engine can produce sound on this host.
	Available() bool

	// Name identifies the engine for logging.
	Name() string
}

// Profile controls voice characteristics. The defaults are tuned for
// clarity to young children: slightly slower rate, raised pitch.
type Profile struct {
	// Voice is the preferred named voice; empty selects the platform default.
	Voice string

	// Rate is the speaking rate in words per minute.
	Rate int

	// Pitch is the voice pitch (0-99, engine-scaled).
	Pitch int

	// Volume is the output amplitude (0-200, engine-scaled).
	Volume int
}

// ChildProfile returns the fixed pitch/rate/volume profile used for all
// narration fallback.
func ChildProfile() Profile {
	return Profile{
		Rate:   150,
		Pitch:  60,
		Volume: 180,
	}
}
