package ffmpeg

import "errors"

// ErrNotFound indicates the ffmpeg or ffprobe binary could not be resolved.
var ErrNotFound = errors.New("ffmpeg not found")

// ErrNoAudioStream indicates the probed file has no audio track.
var ErrNoAudioStream = errors.New("no audio stream found")

// ErrToolFailed indicates the external tool exited non-zero or produced
// output we could not read.
var ErrToolFailed = errors.New("external tool failed")
