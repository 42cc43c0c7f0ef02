// EduToon narration service - voices lesson moments for the learning app.
// Plays bundled recordings first and falls back to on-host speech synthesis.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bhartiamulya/EduToon/internal/config"
	"github.com/bhartiamulya/EduToon/internal/log"
	"github.com/bhartiamulya/EduToon/pkg/audio"
	"github.com/bhartiamulya/EduToon/pkg/clips"
	"github.com/bhartiamulya/EduToon/pkg/mascot"
	"github.com/bhartiamulya/EduToon/pkg/narrator"
	"github.com/bhartiamulya/EduToon/pkg/synth"
	"github.com/bhartiamulya/EduToon/pkg/web"
)

func main() {
	configFile := flag.String("config", "", "Path to config file (default: search ./edutoon.yaml)")
	logLevel := flag.String("log-level", "", "Log level override: debug, info, warn, error")
	port := flag.Int("port", 0, "Server port override")
	silent := flag.Bool("silent", false, "Run without an audio device (clips hold their natural duration)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *silent {
		cfg.Audio.Enabled = false
	}

	log.Init(cfg.Logging.Level)
	logger := log.L()

	// Voice clips: a declared key without a playable recording is a broken
	// build, not a runtime condition.
	registry, err := clips.NewRegistry()
	if err != nil {
		logger.Error("clip registry failed", "error", err)
		os.Exit(1)
	}
	logger.Info("voice clips loaded", "count", registry.Count())

	// Synthesis fallback.
	engine, err := synth.ByName(cfg.Synthesis.Engine, logger)
	if err != nil {
		logger.Error("unknown synthesis engine", "engine", cfg.Synthesis.Engine)
		os.Exit(1)
	}
	profile := synth.Profile{
		Voice:  cfg.Synthesis.Voice,
		Rate:   cfg.Synthesis.Rate,
		Pitch:  cfg.Synthesis.Pitch,
		Volume: cfg.Synthesis.Volume,
	}
	speaker := synth.New(
		synth.WithEngine(engine),
		synth.WithProfile(profile),
		synth.WithLogger(logger),
	)

	// Playback output: real device when available, otherwise silent pacing.
	out := openOutput(cfg, logger)
	gate := audio.NewGate(out, cfg.Audio.StartLocked, logger)

	gestures := narrator.NewGestures()
	channel := narrator.NewChannel(registry, gate, speaker, gestures, logger)
	queue := narrator.NewQueue(channel, logger)
	defer queue.Close()

	server := web.NewServer(fmt.Sprintf("%d", cfg.Server.Port), queue, registry, gestures, gate, logger)

	// Mascot follows narration: talking while sound plays, idle after.
	binder := mascot.NewBinder(server.Express, logger)
	channel.SetCallbacks(binder.PlaybackStarted, binder.PlaybackEnded)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	server.StartAsync()

	<-ctx.Done()
	logger.Info("shutting down")
	queue.Stop()
	if err := server.Shutdown(); err != nil {
		logger.Warn("server shutdown", "error", err)
	}
}

// openOutput opens the system audio device, degrading to silent playback on
// headless hosts so the engine keeps its timing and status behavior.
func openOutput(cfg *config.Config, logger *slog.Logger) audio.Output {
	if !cfg.Audio.Enabled {
		logger.Info("audio disabled, clips will play silently")
		return audio.NewSilent(logger)
	}
	device, err := audio.NewDevice(clips.PCMFormat, logger)
	if err != nil {
		logger.Warn("audio device unavailable, clips will play silently", "error", err)
		return audio.NewSilent(logger)
	}
	return device
}
