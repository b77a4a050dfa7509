// File: /models/invitation.go
package models

import "time"

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusDeclined InvitationStatus = "declined"
	InvitationStatusExpired  InvitationStatus = "expired"
)

// ChallengeInvitation invites a user into a challenge. A response is only
// accepted while the invitation is pending and not past expires_at; once
// responded it is immutable.
type ChallengeInvitation struct {
	ID          string           `json:"id" gorm:"primaryKey;size:191"`
	ChallengeID string           `json:"challenge_id" gorm:"not null;size:191;index"`
	InvitedBy   string           `json:"invited_by" gorm:"not null;size:191"`
	InviteeID   string           `json:"invitee_id" gorm:"not null;size:191;index"`
	Status      InvitationStatus `json:"status" gorm:"not null;size:20;default:'pending';index"`
	ExpiresAt   time.Time        `json:"expires_at" gorm:"not null"`
	RespondedAt *time.Time       `json:"responded_at"`
	CreatedAt   time.Time        `json:"created_at"`

	Challenge *Challenge `json:"challenge,omitempty" gorm:"foreignKey:ChallengeID"`
	Inviter   *User      `json:"inviter,omitempty" gorm:"foreignKey:InvitedBy"`
	Invitee   *User      `json:"invitee,omitempty" gorm:"foreignKey:InviteeID"`
}

// CanRespond reports whether the invitation still accepts a response.
func (i *ChallengeInvitation) CanRespond(now time.Time) bool {
	return i.Status == InvitationStatusPending && !now.After(i.ExpiresAt)
}
