// File: /lifecycle/progress.go
package lifecycle

import (
	"fmt"
	"math"
	"strings"
)

// ClampProgress forces a progress percentage into [0, 100]. Out-of-range
// values from buggy imports must not break progress bars. Idempotent.
func ClampProgress(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}

// ProgressPercent computes a clamped completion percentage from a raw total
// against the challenge target. A non-positive target yields 0.
func ProgressPercent(totalValue, targetValue float64) int {
	if targetValue <= 0 {
		return 0
	}
	return int(ClampProgress(totalValue / targetValue * 100))
}

// FormatProgressValue renders a progress value for a unit. Distance units
// (anything containing "km" or "m") keep one decimal; count-like units
// ("ngày"/"day", "lần"/"time") round to whole numbers; anything else keeps
// one decimal.
func FormatProgressValue(value float64, unit string) string {
	switch {
	case strings.Contains(unit, "km") || strings.Contains(unit, "m"):
		return fmt.Sprintf("%.1f", value)
	case strings.Contains(unit, "ngày") || strings.Contains(unit, "day") ||
		strings.Contains(unit, "lần") || strings.Contains(unit, "time"):
		return fmt.Sprintf("%d", int(math.Round(value)))
	default:
		return fmt.Sprintf("%.1f", value)
	}
}

// RankLabel renders a leaderboard rank: medal glyphs for the podium,
// "#<rank>" below it.
func RankLabel(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("#%d", rank)
	}
}
