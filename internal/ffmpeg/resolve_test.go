package ffmpeg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEnv implements envProvider with canned values.
type fakeEnv struct {
	env   map[string]string
	paths map[string]string
}

func (f fakeEnv) Getenv(key string) string {
	return f.env[key]
}

func (f fakeEnv) LookPath(file string) (string, error) {
	if p, ok := f.paths[file]; ok {
		return p, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

func TestResolvePaths(t *testing.T) {
	t.Parallel()

	t.Run("from path", func(t *testing.T) {
		t.Parallel()
		paths, err := resolvePaths(fakeEnv{paths: map[string]string{
			"ffmpeg":  "/usr/bin/ffmpeg",
			"ffprobe": "/usr/bin/ffprobe",
		}})
		require.NoError(t, err)
		assert.Equal(t, "/usr/bin/ffmpeg", paths.FFmpeg)
		assert.Equal(t, "/usr/bin/ffprobe", paths.FFprobe)
	})

	t.Run("env override wins", func(t *testing.T) {
		t.Parallel()
		paths, err := resolvePaths(fakeEnv{
			env: map[string]string{
				EnvFFmpegPath:  "/opt/ffmpeg/bin/ffmpeg",
				EnvFFprobePath: "/opt/ffmpeg/bin/ffprobe",
			},
			paths: map[string]string{
				"ffmpeg":  "/usr/bin/ffmpeg",
				"ffprobe": "/usr/bin/ffprobe",
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", paths.FFmpeg)
		assert.Equal(t, "/opt/ffmpeg/bin/ffprobe", paths.FFprobe)
	})

	t.Run("missing ffmpeg", func(t *testing.T) {
		t.Parallel()
		_, err := resolvePaths(fakeEnv{paths: map[string]string{
			"ffprobe": "/usr/bin/ffprobe",
		}})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing ffprobe", func(t *testing.T) {
		t.Parallel()
		_, err := resolvePaths(fakeEnv{paths: map[string]string{
			"ffmpeg": "/usr/bin/ffmpeg",
		}})
		require.ErrorIs(t, err, ErrNotFound)
	})
}
