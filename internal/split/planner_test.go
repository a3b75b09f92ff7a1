package split

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agolikov/silence-split/internal/ffmpeg"
	"github.com/agolikov/silence-split/internal/silence"
)

func sec(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func TestOffset(t *testing.T) {
	t.Parallel()

	intervals := []ffmpeg.Interval{
		{Start: sec(100.5), End: sec(103)},
		{Start: sec(2000), End: sec(2010)},
	}

	t.Run("first segment has no offset", func(t *testing.T) {
		t.Parallel()
		shifted := Offset(intervals, 1, 2700*time.Second)
		assert.Equal(t, intervals, shifted)
	})

	t.Run("segment n shifts by (n-1)*chunkDuration", func(t *testing.T) {
		t.Parallel()
		shifted := Offset(intervals, 3, 2700*time.Second)
		assert.Equal(t, []ffmpeg.Interval{
			{Start: sec(5500.5), End: sec(5503)},
			{Start: sec(7400), End: sec(7410)},
		}, shifted)
	})
}

func TestCollect(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cache := silence.NewCache(dir, -40)
	require.NoError(t, cache.Store(2, []ffmpeg.Interval{{Start: sec(5), End: sec(8)}}))
	require.NoError(t, cache.Store(1, []ffmpeg.Interval{{Start: sec(100), End: sec(110)}}))

	global, err := Collect(cache, 2700*time.Second)
	require.NoError(t, err)

	// Concatenated in segment order: segment ordering alone provides the
	// global time-ordering.
	assert.Equal(t, []ffmpeg.Interval{
		{Start: sec(100), End: sec(110)},
		{Start: sec(2705), End: sec(2708)},
	}, global)
}

func TestCollect_SidecarWithoutSegmentNumber(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cache := silence.NewCache(dir, -40)
	require.NoError(t, cache.Store(1, []ffmpeg.Interval{{Start: sec(100), End: sec(110)}}))

	// A stray file matching the threshold suffix but without a segment
	// number cannot be placed on the global timeline. Collect must refuse
	// it rather than offset it by a garbage segment number.
	stray := filepath.Join(dir, "chunkX_silence_-40.json")
	require.NoError(t, os.WriteFile(stray, []byte("[[5, 8]]"), 0640))

	_, err := Collect(cache, 2700*time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), stray)
	assert.Contains(t, err.Error(), "no segment number")
}

func TestPlan(t *testing.T) {
	t.Parallel()

	t.Run("no silences yields one final span", func(t *testing.T) {
		t.Parallel()
		spans := Plan(nil, sec(5400))
		require.Len(t, spans, 1)
		assert.Equal(t, Span{Number: 1, Start: 0, End: sec(5400), Final: true}, spans[0])
	})

	t.Run("one silence yields two splits", func(t *testing.T) {
		t.Parallel()
		// 5400s source, one global silence [2000, 2010]: splits [0, 2000)
		// and [2010, 5400), thumbnails at 1000s and 3705s.
		spans := Plan([]ffmpeg.Interval{{Start: sec(2000), End: sec(2010)}}, sec(5400))
		require.Len(t, spans, 2)

		assert.Equal(t, Span{Number: 1, Start: 0, End: sec(2000)}, spans[0])
		assert.Equal(t, sec(1000), spans[0].Midpoint())

		assert.Equal(t, Span{Number: 2, Start: sec(2010), End: sec(5400), Final: true}, spans[1])
		assert.Equal(t, sec(3705), spans[1].Midpoint())
	})

	t.Run("short span is merged and its number is consumed", func(t *testing.T) {
		t.Parallel()
		// Silences [100,105] and [112,120]: the content between them is
		// 112-105 = 7s < 10s, so it is dropped, and the boundary spans
		// from before the first silence to after the second. The skipped
		// span still consumes an output number, so the trailing split is
		// number 3, not 2.
		spans := Plan([]ffmpeg.Interval{
			{Start: sec(100), End: sec(105)},
			{Start: sec(112), End: sec(120)},
		}, sec(500))
		require.Len(t, spans, 3)

		assert.Equal(t, Span{Number: 1, Start: 0, End: sec(100)}, spans[0])
		assert.Equal(t, Span{Number: 2, Start: sec(105), End: sec(112), Skipped: true}, spans[1])
		assert.Equal(t, Span{Number: 3, Start: sec(120), End: sec(500), Final: true}, spans[2])
	})

	t.Run("no emitted span is shorter than the minimum gap", func(t *testing.T) {
		t.Parallel()
		silences := []ffmpeg.Interval{
			{Start: sec(9), End: sec(20)},
			{Start: sec(25), End: sec(30)},
			{Start: sec(200), End: sec(205)},
			{Start: sec(214.5), End: sec(220)},
		}
		spans := Plan(silences, sec(1000))
		for _, span := range spans {
			if span.Skipped || span.Final {
				continue
			}
			assert.GreaterOrEqual(t, span.Duration(), MinSpanGap)
		}
	})

	t.Run("trailing span is planned even when prevEnd reaches the end", func(t *testing.T) {
		t.Parallel()
		// The last silence runs to the end of the source: the final span
		// is still planned with zero length, matching the unconditional
		// trailing split.
		spans := Plan([]ffmpeg.Interval{{Start: sec(400), End: sec(500)}}, sec(500))
		require.Len(t, spans, 2)
		last := spans[1]
		assert.True(t, last.Final)
		assert.Equal(t, time.Duration(0), last.Duration())
	})

	t.Run("span durations and silence durations cover the source", func(t *testing.T) {
		t.Parallel()
		silences := []ffmpeg.Interval{
			{Start: sec(100), End: sec(105)},
			{Start: sec(112), End: sec(120)},
			{Start: sec(2000), End: sec(2010)},
			{Start: sec(4000), End: sec(4002.5)},
		}
		total := sec(5400)
		spans := Plan(silences, total)

		var sum time.Duration
		for _, span := range spans {
			sum += span.Duration() // skipped spans included: their time belongs to no file
		}
		for _, sil := range silences {
			sum += sil.Duration()
		}
		assert.Equal(t, total, sum)
	})
}
