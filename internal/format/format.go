// Package format renders durations and file sizes for log output.
package format

import (
	"fmt"
	"time"
)

// Duration formats a source timestamp or span length as HH:MM:SS, or MM:SS
// when it is under an hour.
func Duration(d time.Duration) string {
	total := int(d / time.Second)
	h := total / 3600
	m := total / 60 % 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// DurationHuman renders a duration compactly for log fields.
// Examples: "45s", "45m", "2h", "1h30m"
func DurationHuman(d time.Duration) string {
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", d/time.Second)
	}
}

// Size renders a file size for log fields. Outputs range from kilobyte
// thumbnails to gigabyte splits cut from hours-long sources, so all four
// tiers occur in practice.
func Size(bytes int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
		gb = 1 << 30
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%d MB", bytes/mb)
	case bytes >= kb:
		return fmt.Sprintf("%d KB", bytes/kb)
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}
