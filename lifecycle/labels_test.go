package lifecycle

import (
	"testing"

	"xclub-api/models"
)

func TestChallengeStatusBadgeCoversAllStatuses(t *testing.T) {
	statuses := []models.ChallengeStatus{
		models.ChallengeStatusDraft,
		models.ChallengeStatusPublished,
		models.ChallengeStatusRegistrationOpen,
		models.ChallengeStatusRegistrationClosed,
		models.ChallengeStatusActive,
		models.ChallengeStatusCompleted,
		models.ChallengeStatusCancelled,
	}
	for _, s := range statuses {
		b := ChallengeStatusBadge(s)
		if b.Label == "" || b.Color == "" {
			t.Errorf("no badge for challenge status %q", s)
		}
		if b == unknownBadge {
			t.Errorf("challenge status %q fell back to unknown badge", s)
		}
	}

	if b := ChallengeStatusBadge("bogus"); b != unknownBadge {
		t.Errorf("unmapped status should get the unknown badge, got %+v", b)
	}
}

func TestStateBadgeCoversAllStates(t *testing.T) {
	for _, s := range []State{StateCancelled, StateCompleted, StateOngoing, StateUpcoming, StateUnknown} {
		b := StateBadge(s)
		if b.Label == "" || b.Color == "" {
			t.Errorf("no badge for state %q", s)
		}
	}
}

func TestParticipantStatusBadgeCoversAllStatuses(t *testing.T) {
	for _, s := range []models.ParticipantStatus{
		models.ParticipantStatusPending,
		models.ParticipantStatusActive,
		models.ParticipantStatusCompleted,
	} {
		b := ParticipantStatusBadge(s)
		if b == unknownBadge {
			t.Errorf("participant status %q fell back to unknown badge", s)
		}
	}
}

func TestInvitationStatusBadgeCoversAllStatuses(t *testing.T) {
	for _, s := range []models.InvitationStatus{
		models.InvitationStatusPending,
		models.InvitationStatusAccepted,
		models.InvitationStatusDeclined,
		models.InvitationStatusExpired,
	} {
		b := InvitationStatusBadge(s)
		if b == unknownBadge {
			t.Errorf("invitation status %q fell back to unknown badge", s)
		}
	}
}
