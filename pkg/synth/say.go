package synth

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// Say voices text through the macOS say command.
type Say struct {
	path string
}

// NewSay locates the say binary.
func NewSay() *Say {
	path, _ := exec.LookPath("say")
	return &Say{path: path}
}

func (s *Say) Speak(ctx context.Context, text string, profile Profile) error {
	if s.path == "" {
		return ErrNoEngine
	}

	// say has no pitch or volume flags; only voice and rate apply.
	args := []string{"-r", strconv.Itoa(profile.Rate)}
	if profile.Voice != "" {
		args = append(args, "-v", profile.Voice)
	}
	args = append(args, text)

	cmd := exec.CommandContext(ctx, s.path, args...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("say: %w", err)
	}
	return nil
}

func (s *Say) Available() bool {
	return s.path != ""
}

func (s *Say) Name() string {
	return "say"
}

var _ Engine = (*Say)(nil)
