package interpolutil

import (
	"fmt"
	"strings"
	"time"
)

// TruncateDuration truncates the provided duration to a more human-friendly
// form, depending on its magnitude. For example, a duration over 1s is
// truncated at 10ms, and a duration over 1m is truncated at 1s.
func TruncateDuration(d time.Duration) time.Duration {
	switch {
	case d >= time.Hour:
		return d.Truncate(time.Minute)
	case d >= time.Minute:
		return d.Truncate(time.Second)
	case d >= time.Second:
		return d.Truncate(10 * time.Millisecond)
	case d >= time.Millisecond:
		return d.Truncate(10 * time.Microsecond)
	case d >= time.Microsecond:
		return d.Truncate(time.Microsecond)
	default:
		return d
	}
}

// HumanizeDuration truncates the duration and returns a human-friendly string
// representation.
func HumanizeDuration(d time.Duration) string {
	dd := TruncateDuration(d)
	ds := dd.String()

	if dd >= time.Hour && strings.HasSuffix(ds, "0s") {
		ds = strings.TrimSuffix(ds, "0s")
	}

	return ds
}

// HumanizeCount returns a short representation of a count of things, like
// events or cycles, using K, M, and G for powers of 1000.
func HumanizeCount(n uint64) string {
	f := float64(n)
	switch {
	case n < 1_000:
		return fmt.Sprintf("%d", n)
	case n < 10_000:
		return fmt.Sprintf("%.1fK", f/1e3) // 5142 -> 5.1K
	case n < 1_000_000:
		return fmt.Sprintf("%.0fK", f/1e3) // 32756 -> 33K
	case n < 10_000_000:
		return fmt.Sprintf("%.1fM", f/1e6)
	case n < 1_000_000_000:
		return fmt.Sprintf("%.0fM", f/1e6)
	default:
		return fmt.Sprintf("%.1fG", f/1e9)
	}
}

// HumanizeBytes returns a human-friendly string representation of n, which is
// assumed to be bytes. KB, MB, and GB are powers of 1024.
func HumanizeBytes[T ~uint32 | ~uint64 | ~int](n T) string {
	var (
		kib = float64(1024)
		mib = 1024 * kib
		gib = 1024 * mib
		fn  = float64(n)
	)
	switch {
	case fn < kib:
		return fmt.Sprintf("%.0fB", fn)
	case fn < 100*kib:
		return fmt.Sprintf("%.1fKB", fn/kib)
	case fn < mib:
		return fmt.Sprintf("%.0fKB", fn/kib)
	case fn < 100*mib:
		return fmt.Sprintf("%.1fMB", fn/mib)
	case fn < gib:
		return fmt.Sprintf("%.0fMB", fn/mib)
	default:
		return fmt.Sprintf("%.1fGB", fn/gib)
	}
}
