package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Compile-time interface implementation check.
var _ Engine = (*Tool)(nil)

// Tool implements Engine by shelling out to ffmpeg and ffprobe.
type Tool struct {
	paths Paths
	cmd   commandRunner
}

// ToolOption configures a Tool.
type ToolOption func(*Tool)

// WithCommandRunner sets the command runner (used by tests).
func WithCommandRunner(r commandRunner) ToolOption {
	return func(t *Tool) {
		t.cmd = r
	}
}

// NewTool creates a Tool using the given binary paths.
func NewTool(paths Paths, opts ...ToolOption) (*Tool, error) {
	if paths.FFmpeg == "" || paths.FFprobe == "" {
		return nil, fmt.Errorf("%w: binary paths cannot be empty", ErrNotFound)
	}

	t := &Tool{
		paths: paths,
		cmd:   osCommandRunner{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// probeResult mirrors the ffprobe JSON fields we consume.
type probeResult struct {
	Streams []struct {
		CodecName string `json:"codec_name"`
		CodecType string `json:"codec_type"`
	} `json:"streams"`
	Format struct {
		Duration   string `json:"duration"`
		FormatName string `json:"format_name"`
	} `json:"format"`
}

// Probe inspects path with ffprobe and returns its media info.
func (t *Tool) Probe(ctx context.Context, path string) (MediaInfo, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	}
	out, err := t.cmd.Output(ctx, t.paths.FFprobe, args)
	if err != nil {
		return MediaInfo{}, fmt.Errorf("%w: probe %s: %v", ErrToolFailed, path, err)
	}

	var result probeResult
	if err := json.Unmarshal(out, &result); err != nil {
		return MediaInfo{}, fmt.Errorf("%w: probe %s: unreadable output: %v", ErrToolFailed, path, err)
	}

	var codec string
	for _, stream := range result.Streams {
		if stream.CodecType == "audio" {
			codec = stream.CodecName
			break
		}
	}
	if codec == "" {
		return MediaInfo{}, fmt.Errorf("%w in %s", ErrNoAudioStream, path)
	}

	seconds, err := strconv.ParseFloat(result.Format.Duration, 64)
	if err != nil {
		return MediaInfo{}, fmt.Errorf("%w: probe %s: bad duration %q", ErrToolFailed, path, result.Format.Duration)
	}

	// format_name may list aliases ("matroska,webm"); the first one is the
	// canonical container and becomes the split file extension.
	container, _, _ := strings.Cut(result.Format.FormatName, ",")

	return MediaInfo{
		Duration:   time.Duration(seconds * float64(time.Second)),
		AudioCodec: codec,
		Container:  container,
	}, nil
}

// ExtractChunk writes [start, start+duration) of src's audio as PCM WAV.
func (t *Tool) ExtractChunk(ctx context.Context, src, dst string, start, duration time.Duration) error {
	args := []string{
		"-y",
		"-ss", formatTime(start),
		"-t", formatTime(duration),
		"-i", src,
		"-vn",
		"-acodec", "pcm_s16le",
		"-f", "wav",
		dst,
	}
	return t.run(ctx, args, dst)
}

// ExtractRange writes [start, end) of src's audio in the given codec and
// container.
func (t *Tool) ExtractRange(ctx context.Context, src, dst string, start, end time.Duration, codec, container string) error {
	args := []string{
		"-y",
		"-ss", formatTime(start),
		"-to", formatTime(end),
		"-i", src,
		"-vn",
		"-acodec", codec,
		"-f", container,
		dst,
	}
	return t.run(ctx, args, dst)
}

// ExtractTail writes [start, end-of-file) of src's audio in the given codec
// and container.
func (t *Tool) ExtractTail(ctx context.Context, src, dst string, start time.Duration, codec, container string) error {
	args := []string{
		"-y",
		"-ss", formatTime(start),
		"-i", src,
		"-vn",
		"-acodec", codec,
		"-f", container,
		dst,
	}
	return t.run(ctx, args, dst)
}

// DetectSilence runs the silencedetect filter and parses its diagnostics.
func (t *Tool) DetectSilence(ctx context.Context, path string, noiseDB int, minSilence time.Duration) ([]Interval, error) {
	args := []string{
		"-hide_banner",
		"-i", path,
		"-af", fmt.Sprintf("silencedetect=noise=%ddB:d=%.2f", noiseDB, minSilence.Seconds()),
		"-f", "null",
		"-",
	}
	out, err := t.cmd.CombinedOutput(ctx, t.paths.FFmpeg, args)
	if err != nil {
		return nil, fmt.Errorf("%w: silencedetect %s: %v\nOutput: %s", ErrToolFailed, path, err, string(out))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: silencedetect %s: no diagnostic output", ErrToolFailed, path)
	}
	return ParseSilence(string(out)), nil
}

// Snapshot writes a single frame of src at the given timestamp to dst.
func (t *Tool) Snapshot(ctx context.Context, src, dst string, at time.Duration) error {
	args := []string{
		"-y",
		"-ss", formatTime(at),
		"-i", src,
		"-vframes", "1",
		dst,
	}
	return t.run(ctx, args, dst)
}

// run executes ffmpeg and maps failure to ErrToolFailed.
func (t *Tool) run(ctx context.Context, args []string, dst string) error {
	out, err := t.cmd.CombinedOutput(ctx, t.paths.FFmpeg, args)
	if err != nil {
		return fmt.Errorf("%w: writing %s: %v\nOutput: %s", ErrToolFailed, dst, err, string(out))
	}
	return nil
}

// Silence marker patterns - tolerant of surrounding filter-tag noise.
var (
	silenceStartRe = regexp.MustCompile(`silence_start:\s*(-?[\d.]+)`)
	silenceEndRe   = regexp.MustCompile(`silence_end:\s*(-?[\d.]+)`)
)

// ParseSilence extracts silence intervals from silencedetect diagnostics.
// The filter writes lines like:
//
//	[silencedetect @ 0x...] silence_start: 42.123
//	[silencedetect @ 0x...] silence_end: 43.456 | silence_duration: 1.333
//
// Intervals are emitted strictly as (start, end) pairs. A trailing start
// without a matching end (silence running past the end of the file) is
// dropped.
func ParseSilence(output string) []Interval {
	var intervals []Interval
	var start time.Duration
	hasStart := false

	for _, line := range strings.Split(output, "\n") {
		if m := silenceStartRe.FindStringSubmatch(line); m != nil {
			if seconds, err := strconv.ParseFloat(m[1], 64); err == nil {
				start = time.Duration(seconds * float64(time.Second))
				hasStart = true
			}
		}
		if m := silenceEndRe.FindStringSubmatch(line); m != nil && hasStart {
			if seconds, err := strconv.ParseFloat(m[1], 64); err == nil {
				intervals = append(intervals, Interval{
					Start: start,
					End:   time.Duration(seconds * float64(time.Second)),
				})
				hasStart = false
			}
		}
	}

	return intervals
}

// formatTime formats a duration for ffmpeg -ss/-t/-to arguments.
func formatTime(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := d.Seconds() - float64(h*3600+m*60)
	return fmt.Sprintf("%02d:%02d:%06.3f", h, m, s)
}
