package cli

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/agolikov/silence-split/internal/config"
	"github.com/agolikov/silence-split/internal/logging"
	"github.com/agolikov/silence-split/internal/pipeline"
)

// Options is the validated per-run input assembled from flags and settings.
type Options struct {
	MkvFile          string  `validate:"required"`
	ChunkDuration    int     `validate:"gt=0"`
	SilenceThreshold int
	SilenceDuration  float64 `validate:"gt=0"`
	LogFormat        string  `validate:"oneof=text json"`
}

// RootCmd creates the single-purpose root command.
func RootCmd(env *Env, version string) *cobra.Command {
	var opts Options

	cmd := &cobra.Command{
		Use:     "silencesplit --mkv_file FILE",
		Short:   "Split a long recording into tracks at detected silences",
		Long: `Split a long audio/video container into per-track audio files at
detected silences, with one JPEG cover image per track.

The source is chunked into fixed-duration segments, each segment is scanned
with ffmpeg's silencedetect filter, and the original file is then split at
the detected silence boundaries in its own audio codec and container.
Intermediate segments and detection results are cached next to the outputs,
so an interrupted run resumes where it stopped.`,
		Version: version,
		Args:    cobra.NoArgs,
		// Errors and usage are reported by main with exit codes.
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, env, &opts)
		},
	}

	defaults := config.Defaults()
	flags := cmd.Flags()
	flags.StringVar(&opts.MkvFile, "mkv_file", "", "path to the source container file (required)")
	flags.IntVar(&opts.ChunkDuration, "chunk_duration", defaults.ChunkDuration,
		"segment duration in seconds used to bound silence detection")
	flags.IntVar(&opts.SilenceThreshold, "silence_threshold", defaults.SilenceThreshold,
		"noise floor in dB below which audio counts as silence")
	flags.Float64Var(&opts.SilenceDuration, "silence_duration", defaults.SilenceDuration,
		"minimum silence duration in seconds")
	flags.StringVar(&opts.LogFormat, "log_format", "", "log format: text or json")
	_ = cmd.MarkFlagRequired("mkv_file")

	return cmd
}

// run loads settings, validates options, assembles dependencies, and runs
// the pipeline.
func run(cmd *cobra.Command, env *Env, opts *Options) error {
	ctx := cmd.Context()

	settings, err := config.LoadFrom(ctx, env.Lookuper)
	if err != nil {
		return err
	}
	applySettings(cmd, opts, settings)

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(opts); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if _, err := env.Stat(opts.MkvFile); err != nil {
		return fmt.Errorf("%w: %s", ErrFileNotFound, opts.MkvFile)
	}

	logger, closeLog, err := env.NewLogger(logging.Options{
		Format:  opts.LogFormat,
		Level:   settings.LogLevel,
		File:    settings.LogFile,
		Console: env.Stderr,
	})
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	paths, err := env.Resolve()
	if err != nil {
		return err
	}
	engine, err := env.NewEngine(paths)
	if err != nil {
		return err
	}
	archive, err := env.NewArchive(ctx, settings)
	if err != nil {
		return err
	}

	var pipelineOpts []pipeline.Option
	if archive != nil {
		pipelineOpts = append(pipelineOpts, pipeline.WithArchive(archive))
	}
	p := pipeline.New(engine, logger, pipelineOpts...)

	return p.Run(ctx, pipeline.Params{
		Source:        opts.MkvFile,
		ChunkDuration: time.Duration(opts.ChunkDuration) * time.Second,
		NoiseDB:       opts.SilenceThreshold,
		MinSilence:    time.Duration(opts.SilenceDuration * float64(time.Second)),
	})
}

// applySettings fills in flag values the user did not set explicitly from
// the environment-backed settings. Precedence: flag > env > default.
func applySettings(cmd *cobra.Command, opts *Options, settings *config.Settings) {
	flags := cmd.Flags()
	if !flags.Changed("chunk_duration") {
		opts.ChunkDuration = settings.ChunkDuration
	}
	if !flags.Changed("silence_threshold") {
		opts.SilenceThreshold = settings.SilenceThreshold
	}
	if !flags.Changed("silence_duration") {
		opts.SilenceDuration = settings.SilenceDuration
	}
	if !flags.Changed("log_format") || opts.LogFormat == "" {
		opts.LogFormat = settings.LogFormat
	}
}
