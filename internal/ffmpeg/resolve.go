package ffmpeg

import "fmt"

// Environment variable overrides for binary resolution.
const (
	EnvFFmpegPath  = "SILENCESPLIT_FFMPEG"
	EnvFFprobePath = "SILENCESPLIT_FFPROBE"
)

// Paths holds resolved locations of the engine binaries.
type Paths struct {
	FFmpeg  string
	FFprobe string
}

// ResolvePaths locates the ffmpeg and ffprobe binaries. Environment
// overrides win; otherwise $PATH is searched. Returns ErrNotFound if
// either binary cannot be located.
func ResolvePaths() (Paths, error) {
	return resolvePaths(osEnvProvider{})
}

func resolvePaths(env envProvider) (Paths, error) {
	ffmpegPath, err := resolveBinary(env, EnvFFmpegPath, "ffmpeg")
	if err != nil {
		return Paths{}, err
	}
	ffprobePath, err := resolveBinary(env, EnvFFprobePath, "ffprobe")
	if err != nil {
		return Paths{}, err
	}
	return Paths{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
}

// resolveBinary resolves one binary: env override first, then $PATH.
func resolveBinary(env envProvider, envKey, name string) (string, error) {
	if override := env.Getenv(envKey); override != "" {
		return override, nil
	}
	path, err := env.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s not in $PATH (set %s to override)", ErrNotFound, name, envKey)
	}
	return path, nil
}
