// Package audio provides clip playback output for the narration engine.
//
// All sound flows through the Output interface, which starts exactly one
// Playback at a time from the caller's point of view. The package ships a
// real device backend (oto), a Gate wrapper that reproduces the
// autoplay-restriction behavior of browser runtimes, and a Fake output
// for tests.
package audio

import (
	"errors"
	"time"
)

// Sentinel errors for playback failures.
var (
	// ErrNotAllowed is returned when the playback gate is locked: sound may
	// not start until a user gesture has been observed. Callers must treat
	// this as deferrable, not terminal.
	ErrNotAllowed = errors.New("audio: playback not allowed before user gesture")

	// ErrNoDevice is returned when no audio device is available.
	ErrNoDevice = errors.New("audio: no output device")

	// ErrBadData is returned when the audio payload cannot be decoded.
	ErrBadData = errors.New("audio: malformed audio data")
)

// Format describes raw PCM audio parameters.
type Format struct {
	// SampleRate in Hz (e.g., 22050, 24000).
	SampleRate int

	// Channels is 1 for mono, 2 for stereo.
	Channels int

	// BitDepth is bits per sample (16 for PCM16).
	BitDepth int
}

// Duration returns the playback duration of a PCM buffer in this format.
func (f Format) Duration(pcmLen int) time.Duration {
	bytesPerSecond := f.SampleRate * f.Channels * f.BitDepth / 8
	if bytesPerSecond <= 0 {
		return 0
	}
	return time.Duration(pcmLen) * time.Second / time.Duration(bytesPerSecond)
}

// Output is the single sound-producing boundary of the engine.
// Implementations must support starting independent playbacks; serializing
// them is the caller's responsibility.
type Output interface {
	// Start begins playback of the PCM buffer and returns immediately.
	// The returned Playback reports natural completion via Done.
	Start(pcm []byte, format Format) (Playback, error)
}

// Playback is a single in-flight sound.
type Playback interface {
	// Done is closed when playback finishes, whether naturally or after Stop.
	Done() <-chan struct{}

	// Stop halts playback. Safe to call more than once and after completion.
	Stop()
}
