// Package units provides binary size multipliers and human-readable
// formatting for sizes, counts and throughput.
package units

import (
	"time"

	"github.com/dustin/go-humanize"
)

// Binary size multipliers.
const (
	KiB = 1024
	MiB = 1024 * KiB
	GiB = 1024 * MiB
)

// Bytes formats n with binary units, e.g. "1.5 MiB".
func Bytes(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}

	return humanize.IBytes(uint64(n))
}

// Count formats n with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// Throughput formats n bytes over elapsed as a per-second rate. A zero
// elapsed time yields "n/a".
func Throughput(n int64, elapsed time.Duration) string {
	if elapsed <= 0 || n < 0 {
		return "n/a"
	}

	perSecond := float64(n) / elapsed.Seconds()

	return humanize.IBytes(uint64(perSecond)) + "/s"
}

// ParseBytes parses a human size such as "64KiB" or "10 MB".
func ParseBytes(s string) (int64, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err //nolint:wrapcheck // caller adds context.
	}

	return int64(n), nil //nolint:gosec // sizes fit in int64.
}
