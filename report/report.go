// SPDX-License-Identifier: EPL-2.0

package report

import (
	"fmt"
	"math"
)

var units = [...]string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes renders b in the smallest unit whose value is below 1024,
// with TB as the last unit.
func FormatBytes(b int64) string {
	v := float64(b)

	unit := units[0]
	for _, u := range units {
		unit = u
		if math.Abs(v) < 1024 || u == units[len(units)-1] {
			break
		}
		v /= 1024
	}

	return fmt.Sprintf("%.1f %s", v, unit)
}

// Reduction returns how much smaller compressed is than original, in percent.
// ok is false when original is not positive.
func Reduction(original, compressed int64) (pct float64, ok bool) {
	if original <= 0 {
		return 0, false
	}

	return (1 - float64(compressed)/float64(original)) * 100, true
}

// FormatReduction renders Reduction with one decimal, or "N/A".
func FormatReduction(original, compressed int64) string {
	pct, ok := Reduction(original, compressed)
	if !ok {
		return "N/A"
	}

	return fmt.Sprintf("%.1f%%", pct)
}

// Saved returns the number of bytes saved, never negative.
func Saved(original, compressed int64) int64 {
	return max(original-compressed, 0)
}
