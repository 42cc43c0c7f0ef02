// Package config handles loading and validating the edutoon configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration for the edutoon narration service.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Synthesis SynthesisConfig `mapstructure:"synthesis"`
	Audio     AudioConfig     `mapstructure:"audio"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds the HTTP/WebSocket server settings.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// SynthesisConfig configures the text-to-speech fallback.
type SynthesisConfig struct {
	// Engine selects the synthesis backend: "auto", "espeak", "say" or "none".
	Engine string `mapstructure:"engine"`
	// Voice is the preferred named voice; empty means platform default.
	Voice string `mapstructure:"voice"`
	// Rate is the speaking rate in words per minute.
	Rate int `mapstructure:"rate"`
	// Pitch is the voice pitch (0-99).
	Pitch int `mapstructure:"pitch"`
	// Volume is the output amplitude (0-200).
	Volume int `mapstructure:"volume"`
}

// AudioConfig configures clip playback output.
type AudioConfig struct {
	// Enabled controls whether a real audio device is opened. When false
	// (or when no device is available) clips play silently with their
	// natural duration, which keeps the engine usable on headless hosts.
	Enabled bool `mapstructure:"enabled"`
	// StartLocked keeps the playback gate closed until the first user
	// gesture arrives, mirroring browser autoplay policy.
	StartLocked bool `mapstructure:"start_locked"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// Load reads the configuration from file, environment variables, and defaults.
// If configFile is non-empty it is used directly; otherwise the standard
// search order applies: ./edutoon.yaml, ./configs/edutoon.yaml, /etc/edutoon/edutoon.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8087)
	v.SetDefault("synthesis.engine", "auto")
	v.SetDefault("synthesis.voice", "")
	v.SetDefault("synthesis.rate", 150)
	v.SetDefault("synthesis.pitch", 60)
	v.SetDefault("synthesis.volume", 180)
	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.start_locked", true)
	v.SetDefault("logging.level", "info")

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("edutoon")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/edutoon")
	}

	// Environment variables: EDUTOON_SERVER_PORT, EDUTOON_SYNTHESIS_ENGINE, etc.
	v.SetEnvPrefix("EDUTOON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional — env vars and defaults are sufficient)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}
