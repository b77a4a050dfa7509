// File: /models/invitation_test.go
package models

import (
	"testing"
	"time"
)

func TestInvitationCanRespond(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		status     InvitationStatus
		expiresAt  time.Time
		canRespond bool
	}{
		{"pending and not expired", InvitationStatusPending, now.Add(time.Hour), true},
		{"pending at the expiry instant", InvitationStatusPending, now, true},
		{"pending but expired", InvitationStatusPending, now.Add(-time.Hour), false},
		{"already accepted", InvitationStatusAccepted, now.Add(time.Hour), false},
		{"already declined", InvitationStatusDeclined, now.Add(time.Hour), false},
		{"marked expired", InvitationStatusExpired, now.Add(time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := ChallengeInvitation{Status: tt.status, ExpiresAt: tt.expiresAt}
			if got := inv.CanRespond(now); got != tt.canRespond {
				t.Errorf("CanRespond() = %v, want %v", got, tt.canRespond)
			}
		})
	}
}
