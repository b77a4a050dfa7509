package lifecycle

import (
	"testing"
	"time"

	"xclub-api/models"
)

func openChallenge() *models.Challenge {
	return &models.Challenge{
		Status:           models.ChallengeStatusRegistrationOpen,
		StartDate:        testYesterday,
		EndDate:          testNextWeek,
		MaxParticipants:  0,
		ParticipantCount: 5,
	}
}

func TestRegistrationWindowFallback(t *testing.T) {
	ch := openChallenge()
	start, end := RegistrationWindow(ch)
	if !start.Equal(ch.StartDate) || !end.Equal(ch.EndDate) {
		t.Errorf("window without explicit dates should fall back to start/end, got [%v, %v]", start, end)
	}

	regStart := testNow.AddDate(0, 0, -3)
	regEnd := testNow.AddDate(0, 0, 3)
	ch.RegistrationStartDate = &regStart
	ch.RegistrationEndDate = &regEnd
	start, end = RegistrationWindow(ch)
	if !start.Equal(regStart) || !end.Equal(regEnd) {
		t.Errorf("explicit registration dates should win, got [%v, %v]", start, end)
	}
}

func TestRegistrationOpenMonotonic(t *testing.T) {
	regStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	regEnd := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	ch := &models.Challenge{
		StartDate:             regStart.AddDate(0, 1, 0),
		EndDate:               regStart.AddDate(0, 2, 0),
		RegistrationStartDate: &regStart,
		RegistrationEndDate:   &regEnd,
	}

	if !RegistrationOpen(ch, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("expected window open on 2025-01-15")
	}
	if RegistrationOpen(ch, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("expected window closed on 2025-02-01")
	}

	// The open window is one contiguous interval: every instant between the
	// window start and a known-open instant must also be open.
	known := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	for probe := regStart; !probe.After(known); probe = probe.Add(12 * time.Hour) {
		if !RegistrationOpen(ch, probe) {
			t.Fatalf("window not contiguous: closed at %v before known-open %v", probe, known)
		}
	}
}

func TestEvaluateRegistrationOrder(t *testing.T) {
	pending := models.ParticipantStatusPending
	active := models.ParticipantStatusActive
	notYet := testTomorrow
	passed := testYesterday

	tests := []struct {
		name   string
		mutate func(*models.Challenge)
		viewer *models.ParticipantStatus
		want   Action
	}{
		{"open challenge allows registration", nil, nil, ActionRegister},
		{"pending viewer sees pending", nil, &pending, ActionPending},
		{"active viewer sees registered", nil, &active, ActionRegistered},
		{
			"pending overlay beats full challenge",
			func(ch *models.Challenge) {
				ch.MaxParticipants = 5
				ch.ParticipantCount = 5
			},
			&pending, ActionPending,
		},
		{
			"completed status beats window",
			func(ch *models.Challenge) { ch.Status = models.ChallengeStatusCompleted },
			nil, ActionEnded,
		},
		{
			"cancelled status beats window",
			func(ch *models.Challenge) { ch.Status = models.ChallengeStatusCancelled },
			nil, ActionCancelled,
		},
		{
			"window not yet open",
			func(ch *models.Challenge) { ch.RegistrationStartDate = &notYet },
			nil, ActionNotYetOpen,
		},
		{
			"window already closed",
			func(ch *models.Challenge) { ch.RegistrationEndDate = &passed },
			nil, ActionClosed,
		},
		{
			"full challenge",
			func(ch *models.Challenge) {
				ch.MaxParticipants = 10
				ch.ParticipantCount = 10
			},
			nil, ActionFull,
		},
		{
			"closed window beats full cap",
			func(ch *models.Challenge) {
				ch.RegistrationEndDate = &passed
				ch.MaxParticipants = 10
				ch.ParticipantCount = 10
			},
			nil, ActionClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := openChallenge()
			if tt.mutate != nil {
				tt.mutate(ch)
			}
			got := EvaluateRegistration(ch, tt.viewer, testNow)
			if got != tt.want {
				t.Errorf("EvaluateRegistration() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionable(t *testing.T) {
	all := []Action{
		ActionPending, ActionRegistered, ActionEnded, ActionCancelled,
		ActionNotYetOpen, ActionClosed, ActionFull, ActionRegister,
	}
	for _, a := range all {
		if a.Actionable() != (a == ActionRegister) {
			t.Errorf("Actionable(%q) wrong", a)
		}
		if a != ActionRegister && RejectionReason(a) == "" {
			t.Errorf("RejectionReason(%q) empty", a)
		}
	}
	if RejectionReason(ActionRegister) != "" {
		t.Error("RejectionReason(register) should be empty")
	}
}
