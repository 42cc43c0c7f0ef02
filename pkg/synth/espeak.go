package synth

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// ESpeak voices text through the espeak command line tool.
type ESpeak struct {
	path string
}

// NewESpeak locates the espeak binary. Available reports false if it is
// not installed.
func NewESpeak() *ESpeak {
	path, err := exec.LookPath("espeak")
	if err != nil {
		// espeak-ng installs under a different name on some distros.
		path, _ = exec.LookPath("espeak-ng")
	}
	return &ESpeak{path: path}
}

func (e *ESpeak) Speak(ctx context.Context, text string, profile Profile) error {
	if e.path == "" {
		return ErrNoEngine
	}

	args := []string{
		"-p", strconv.Itoa(profile.Pitch),
		"-s", strconv.Itoa(profile.Rate),
		"-a", strconv.Itoa(profile.Volume),
	}
	if profile.Voice != "" {
		args = append(args, "-v", profile.Voice)
	}
	args = append(args, text)

	cmd := exec.CommandContext(ctx, e.path, args...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("espeak: %w", err)
	}
	return nil
}

func (e *ESpeak) Available() bool {
	return e.path != ""
}

func (e *ESpeak) Name() string {
	return "espeak"
}

var _ Engine = (*ESpeak)(nil)
