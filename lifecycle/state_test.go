package lifecycle

import (
	"testing"
	"time"

	"xclub-api/models"
)

var (
	testNow       = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	testYesterday = testNow.AddDate(0, 0, -1)
	testTomorrow  = testNow.AddDate(0, 0, 1)
	testNextWeek  = testNow.AddDate(0, 0, 7)
	testLastWeek  = testNow.AddDate(0, 0, -7)
)

func TestDeriveState(t *testing.T) {
	tests := []struct {
		name   string
		status models.ChallengeStatus
		start  *time.Time
		end    *time.Time
		want   State
	}{
		{"cancelled wins over dates", models.ChallengeStatusCancelled, &testYesterday, &testTomorrow, StateCancelled},
		{"completed status wins over ongoing dates", models.ChallengeStatusCompleted, &testYesterday, &testTomorrow, StateCompleted},
		{"published inside window is ongoing", models.ChallengeStatusPublished, &testYesterday, &testTomorrow, StateOngoing},
		{"end date passed despite published status", models.ChallengeStatusPublished, &testLastWeek, &testYesterday, StateCompleted},
		{"future start is upcoming", models.ChallengeStatusPublished, &testTomorrow, &testNextWeek, StateUpcoming},
		{"started with no end date is ongoing", models.ChallengeStatusActive, &testYesterday, nil, StateOngoing},
		{"no dates at all is unknown", models.ChallengeStatusPublished, nil, nil, StateUnknown},
		{"end without start, not yet passed", models.ChallengeStatusPublished, nil, &testTomorrow, StateUnknown},
		{"registration_open before start is upcoming", models.ChallengeStatusRegistrationOpen, &testTomorrow, &testNextWeek, StateUpcoming},
		{"cancelled without dates", models.ChallengeStatusCancelled, nil, nil, StateCancelled},
		{"draft after end date is completed", models.ChallengeStatusDraft, &testLastWeek, &testYesterday, StateCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveState(tt.status, tt.start, tt.end, testNow)
			if got != tt.want {
				t.Errorf("DeriveState() = %q, want %q", got, tt.want)
			}
			// Pure: identical inputs, identical output
			if again := DeriveState(tt.status, tt.start, tt.end, testNow); again != got {
				t.Errorf("DeriveState() not deterministic: %q then %q", got, again)
			}
		})
	}
}

func TestDeriveStateTotal(t *testing.T) {
	statuses := []models.ChallengeStatus{
		models.ChallengeStatusDraft,
		models.ChallengeStatusPublished,
		models.ChallengeStatusRegistrationOpen,
		models.ChallengeStatusRegistrationClosed,
		models.ChallengeStatusActive,
		models.ChallengeStatusCompleted,
		models.ChallengeStatusCancelled,
		models.ChallengeStatus("garbage"),
	}
	dates := []*time.Time{nil, &testLastWeek, &testYesterday, &testTomorrow, &testNextWeek}
	valid := map[State]bool{
		StateCancelled: true,
		StateCompleted: true,
		StateOngoing:   true,
		StateUpcoming:  true,
		StateUnknown:   true,
	}

	for _, status := range statuses {
		for _, start := range dates {
			for _, end := range dates {
				got := DeriveState(status, start, end, testNow)
				if !valid[got] {
					t.Fatalf("DeriveState(%q, %v, %v) returned invalid state %q", status, start, end, got)
				}
			}
		}
	}
}

func TestDeriveChallengeState(t *testing.T) {
	ch := &models.Challenge{
		Status:    models.ChallengeStatusPublished,
		StartDate: testYesterday,
		EndDate:   testTomorrow,
	}
	if got := DeriveChallengeState(ch, testNow); got != StateOngoing {
		t.Errorf("DeriveChallengeState() = %q, want %q", got, StateOngoing)
	}

	// Zero dates behave like absent dates
	empty := &models.Challenge{Status: models.ChallengeStatusPublished}
	if got := DeriveChallengeState(empty, testNow); got != StateUnknown {
		t.Errorf("DeriveChallengeState() with zero dates = %q, want %q", got, StateUnknown)
	}
}
