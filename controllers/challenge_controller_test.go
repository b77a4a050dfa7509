// File: /controllers/challenge_controller_test.go
package controllers

import (
	"strings"
	"testing"
	"time"
)

func TestValidateChallengeDates(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		regStart *time.Time
		regEnd   *time.Time
		wantOK   bool
	}{
		{
			name:   "plain window",
			start:  base,
			end:    base.Add(30 * day),
			wantOK: true,
		},
		{
			name:     "registration inside challenge",
			start:    base,
			end:      base.Add(30 * day),
			regStart: timePtr(base.Add(-7 * day)),
			regEnd:   timePtr(base.Add(5 * day)),
			wantOK:   true,
		},
		{
			name:   "end before start",
			start:  base.Add(30 * day),
			end:    base,
			wantOK: false,
		},
		{
			name:   "zero duration",
			start:  base,
			end:    base,
			wantOK: false,
		},
		{
			name:     "registration window reversed",
			start:    base,
			end:      base.Add(30 * day),
			regStart: timePtr(base.Add(5 * day)),
			regEnd:   timePtr(base.Add(2 * day)),
			wantOK:   false,
		},
		{
			name:   "registration ends after challenge end",
			start:  base,
			end:    base.Add(30 * day),
			regEnd: timePtr(base.Add(31 * day)),
			wantOK: false,
		},
		{
			name:   "registration ends exactly at challenge end",
			start:  base,
			end:    base.Add(30 * day),
			regEnd: timePtr(base.Add(30 * day)),
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason := validateChallengeDates(tt.start, tt.end, tt.regStart, tt.regEnd)
			if ok := reason == ""; ok != tt.wantOK {
				t.Errorf("validateChallengeDates() = %q, want ok=%v", reason, tt.wantOK)
			}
		})
	}
}

func TestGenerateChallengeCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := generateChallengeCode()

		if !strings.HasPrefix(code, "XC-") {
			t.Fatalf("code %q missing XC- prefix", code)
		}
		if len(code) != 9 {
			t.Fatalf("code %q has length %d, want 9", code, len(code))
		}
		for _, r := range code[3:] {
			if !strings.ContainsRune("0123456789ABCDEF", r) {
				t.Fatalf("code %q contains non-hex character %q", code, r)
			}
		}
		seen[code] = true
	}

	// 50 draws from a 16^6 space colliding down to a handful would mean a
	// broken generator
	if len(seen) < 45 {
		t.Errorf("generated only %d distinct codes out of 50", len(seen))
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
