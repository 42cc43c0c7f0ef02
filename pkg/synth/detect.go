package synth

import (
	"log/slog"
	"runtime"
)

// Detect returns the best synthesis engine for the current platform, or
// Noop when none is installed.
func Detect(logger *slog.Logger) Engine {
	if logger == nil {
		logger = slog.Default()
	}

	var candidates []Engine
	switch runtime.GOOS {
	case "darwin":
		candidates = []Engine{NewSay(), NewESpeak()}
	default:
		candidates = []Engine{NewESpeak()}
	}

	for _, e := range candidates {
		if e.Available() {
			logger.Debug("synthesis engine detected", "engine", e.Name())
			return e
		}
	}

	logger.Info("no synthesis engine on this host, narration fallback will be silent")
	return NewNoop()
}

// ByName returns the engine for a config name: "auto", "espeak", "say" or
// "none".
func ByName(name string, logger *slog.Logger) (Engine, error) {
	switch name {
	case "", "auto":
		return Detect(logger), nil
	case "espeak":
		return NewESpeak(), nil
	case "say":
		return NewSay(), nil
	case "none":
		return NewNoop(), nil
	default:
		return nil, ErrUnknownEngine
	}
}
