package lifecycle

import "testing"

func TestClampProgress(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-50, 0},
		{-0.001, 0},
		{0, 0},
		{42.5, 42.5},
		{100, 100},
		{100.001, 100},
		{250, 100},
	}
	for _, tt := range tests {
		got := ClampProgress(tt.in)
		if got != tt.want {
			t.Errorf("ClampProgress(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got < 0 || got > 100 {
			t.Errorf("ClampProgress(%v) = %v out of range", tt.in, got)
		}
		// Idempotent
		if again := ClampProgress(got); again != got {
			t.Errorf("ClampProgress not idempotent for %v: %v then %v", tt.in, got, again)
		}
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		total, target float64
		want          int
	}{
		{50, 100, 50},
		{100, 100, 100},
		{150, 100, 100}, // overshoot clamps
		{0, 100, 0},
		{10, 0, 0}, // no target, no percent
		{33, 100, 33},
	}
	for _, tt := range tests {
		if got := ProgressPercent(tt.total, tt.target); got != tt.want {
			t.Errorf("ProgressPercent(%v, %v) = %d, want %d", tt.total, tt.target, got, tt.want)
		}
	}
}

func TestFormatProgressValue(t *testing.T) {
	tests := []struct {
		value float64
		unit  string
		want  string
	}{
		{42.25, "km", "42.2"},
		{1500, "m", "1500.0"},
		{90.5, "minutes", "90.5"}, // contains "m", distance-style formatting
		{6.4, "ngày", "6"},
		{6.6, "day", "7"},
		{3.2, "lần", "3"},
		{2.5, "hours", "2.5"}, // fallback
	}
	for _, tt := range tests {
		if got := FormatProgressValue(tt.value, tt.unit); got != tt.want {
			t.Errorf("FormatProgressValue(%v, %q) = %q, want %q", tt.value, tt.unit, got, tt.want)
		}
	}
}

func TestRankLabel(t *testing.T) {
	tests := []struct {
		rank int
		want string
	}{
		{1, "🥇"},
		{2, "🥈"},
		{3, "🥉"},
		{4, "#4"},
		{17, "#17"},
	}
	for _, tt := range tests {
		if got := RankLabel(tt.rank); got != tt.want {
			t.Errorf("RankLabel(%d) = %q, want %q", tt.rank, got, tt.want)
		}
	}
}
