// File: /jobs/challenge_status_job_test.go
package jobs

import (
	"testing"
	"time"

	"xclub-api/models"
)

func TestScheduledStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	regStart := now.Add(-3 * day)
	regEnd := now.Add(-1 * day)

	tests := []struct {
		name      string
		challenge models.Challenge
		want      models.ChallengeStatus
	}{
		{
			name: "before registration window",
			challenge: models.Challenge{
				Status:                models.ChallengeStatusPublished,
				StartDate:             now.Add(5 * day),
				EndDate:               now.Add(10 * day),
				RegistrationStartDate: timeRef(now.Add(1 * day)),
				RegistrationEndDate:   timeRef(now.Add(4 * day)),
			},
			want: models.ChallengeStatusPublished,
		},
		{
			name: "inside registration window",
			challenge: models.Challenge{
				Status:                models.ChallengeStatusPublished,
				StartDate:             now.Add(5 * day),
				EndDate:               now.Add(10 * day),
				RegistrationStartDate: timeRef(now.Add(-1 * day)),
				RegistrationEndDate:   timeRef(now.Add(4 * day)),
			},
			want: models.ChallengeStatusRegistrationOpen,
		},
		{
			name: "registration closed before start",
			challenge: models.Challenge{
				Status:                models.ChallengeStatusRegistrationOpen,
				StartDate:             now.Add(2 * day),
				EndDate:               now.Add(10 * day),
				RegistrationStartDate: &regStart,
				RegistrationEndDate:   &regEnd,
			},
			want: models.ChallengeStatusRegistrationClosed,
		},
		{
			name: "challenge running",
			challenge: models.Challenge{
				Status:    models.ChallengeStatusRegistrationClosed,
				StartDate: now.Add(-1 * day),
				EndDate:   now.Add(10 * day),
			},
			want: models.ChallengeStatusActive,
		},
		{
			name: "challenge over",
			challenge: models.Challenge{
				Status:    models.ChallengeStatusActive,
				StartDate: now.Add(-10 * day),
				EndDate:   now.Add(-1 * day),
			},
			want: models.ChallengeStatusCompleted,
		},
		{
			name: "no explicit registration dates falls back to challenge window",
			challenge: models.Challenge{
				Status:    models.ChallengeStatusPublished,
				StartDate: now.Add(2 * day),
				EndDate:   now.Add(10 * day),
			},
			want: models.ChallengeStatusPublished,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scheduledStatus(&tt.challenge, now); got != tt.want {
				t.Errorf("scheduledStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}

// A second sweep at the same instant must not produce another transition.
func TestScheduledStatusStable(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	ch := models.Challenge{
		Status:    models.ChallengeStatusPublished,
		StartDate: now.Add(-24 * time.Hour),
		EndDate:   now.Add(24 * time.Hour),
	}

	first := scheduledStatus(&ch, now)
	ch.Status = first
	if second := scheduledStatus(&ch, now); second != first {
		t.Errorf("repeated sweep changed status from %s to %s", first, second)
	}
}

func timeRef(t time.Time) *time.Time {
	return &t
}
