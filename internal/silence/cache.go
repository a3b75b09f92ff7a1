// Package silence detects silence intervals in audio segments and caches
// them as sidecar JSON files, one per segment per threshold. The sidecar
// files are the hand-off artifact between detection and splitting: a re-run
// with the same threshold reads them instead of re-invoking the engine.
package silence

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/agolikov/silence-split/internal/ffmpeg"
)

// chunkNumberRe extracts the segment number embedded in a sidecar name.
var chunkNumberRe = regexp.MustCompile(`chunk_(\d+)`)

// Cache is a parameter-keyed store of detected silence intervals. The key
// is (segment number, threshold): the threshold is part of the file name,
// so runs with different thresholds never share entries.
type Cache struct {
	dir       string
	threshold int // noise floor in dB
}

// Entry is one discovered sidecar file.
type Entry struct {
	Path      string
	Number    int  // one-based segment number parsed from the file name
	Malformed bool // name matched the threshold suffix but carries no segment number
}

// NewCache creates a Cache rooted at dir for the given threshold.
func NewCache(dir string, thresholdDB int) *Cache {
	return &Cache{dir: dir, threshold: thresholdDB}
}

// Path returns the sidecar file path for a one-based segment number.
func (c *Cache) Path(number int) string {
	return filepath.Join(c.dir, fmt.Sprintf("chunk_%d_silence_%d.json", number, c.threshold))
}

// Has reports whether a sidecar exists for the given segment number.
func (c *Cache) Has(number int) bool {
	_, err := os.Stat(c.Path(number))
	return err == nil
}

// Store persists intervals for a segment as a JSON array of [start, end]
// second pairs.
func (c *Cache) Store(number int, intervals []ffmpeg.Interval) error {
	pairs := make([][2]float64, 0, len(intervals))
	for _, iv := range intervals {
		pairs = append(pairs, [2]float64{iv.Start.Seconds(), iv.End.Seconds()})
	}

	data, err := json.MarshalIndent(pairs, "", "    ")
	if err != nil {
		return fmt.Errorf("encode silence cache: %w", err)
	}

	path := c.Path(number)
	if err := os.WriteFile(path, data, 0640); err != nil {
		return fmt.Errorf("write silence cache %s: %w", path, err)
	}
	return nil
}

// Load reads a sidecar file back into intervals.
func (c *Cache) Load(path string) ([]ffmpeg.Interval, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from Discover, not user input
	if err != nil {
		return nil, fmt.Errorf("read silence cache %s: %w", path, err)
	}

	var pairs [][2]float64
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("parse silence cache %s: %w", path, err)
	}

	intervals := make([]ffmpeg.Interval, 0, len(pairs))
	for _, p := range pairs {
		intervals = append(intervals, ffmpeg.Interval{
			Start: time.Duration(p[0] * float64(time.Second)),
			End:   time.Duration(p[1] * float64(time.Second)),
		})
	}
	return intervals, nil
}

// Discover lists all sidecar files in the cache directory matching the
// threshold, ordered by embedded segment number ascending. Names without a
// parsable number sort last. Dot-files are ignored.
func (c *Cache) Discover() ([]Entry, error) {
	dirEntries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("list silence caches in %s: %w", c.dir, err)
	}

	suffix := fmt.Sprintf("_silence_%d.json", c.threshold)
	var entries []Entry
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, suffix) {
			continue
		}
		number, ok := extractNumber(name)
		if !ok {
			number = math.MaxInt // sort malformed names last
		}
		entries = append(entries, Entry{
			Path:      filepath.Join(c.dir, name),
			Number:    number,
			Malformed: !ok,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Number < entries[j].Number
	})
	return entries, nil
}

// extractNumber parses the segment number out of a sidecar file name.
func extractNumber(name string) (int, bool) {
	m := chunkNumberRe.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
