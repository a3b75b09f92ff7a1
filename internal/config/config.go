// Package config provides environment-backed settings: defaults for the
// CLI flags, logging options, and the optional archive destination.
package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Settings holds all environment-configurable values. Flags win over these;
// these win over their defaults.
type Settings struct {
	// Flag defaults
	ChunkDuration    int     `env:"SILENCESPLIT_CHUNK_DURATION, default=2700"`  // seconds
	SilenceThreshold int     `env:"SILENCESPLIT_SILENCE_THRESHOLD, default=-40"` // dB
	SilenceDuration  float64 `env:"SILENCESPLIT_SILENCE_DURATION, default=2"`   // seconds

	// Logging
	LogFormat string `env:"SILENCESPLIT_LOG_FORMAT, default=text"` // "text" or "json"
	LogLevel  string `env:"SILENCESPLIT_LOG_LEVEL, default=info"`
	LogFile   string `env:"SILENCESPLIT_LOG_FILE, default=audio_processing.log"`

	// Optional archive of finished splits
	ArchiveDir         string `env:"SILENCESPLIT_ARCHIVE_DIR"`
	S3Bucket           string `env:"SILENCESPLIT_S3_BUCKET"`
	S3Region           string `env:"SILENCESPLIT_S3_REGION"`
	S3Endpoint         string `env:"SILENCESPLIT_S3_ENDPOINT"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
}

// S3Enabled returns true if S3 archive configuration is provided.
func (s *Settings) S3Enabled() bool {
	return s.S3Bucket != "" && s.S3Region != ""
}

// Defaults returns the settings with no environment overrides applied. The
// flag surface registers these as its defaults, so flag and environment
// defaults cannot drift apart.
func Defaults() *Settings {
	settings, err := LoadFrom(context.Background(), envconfig.MapLookuper(nil))
	if err != nil {
		// The struct tag defaults are static; processing them cannot fail.
		panic(err)
	}
	return settings
}

// Load reads settings from process environment variables.
func Load(ctx context.Context) (*Settings, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads settings from the given lookuper (tests pass a map).
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Settings, error) {
	settings := &Settings{}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   settings,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return settings, nil
}
