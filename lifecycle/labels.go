// File: /lifecycle/labels.go
package lifecycle

import "xclub-api/models"

// Badge is the label/style pair used to render an enum value. One shared
// table per entity type, instead of per-component switch statements.
type Badge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var challengeStatusBadges = map[models.ChallengeStatus]Badge{
	models.ChallengeStatusDraft:              {Label: "Draft", Color: "gray"},
	models.ChallengeStatusPublished:          {Label: "Published", Color: "blue"},
	models.ChallengeStatusRegistrationOpen:   {Label: "Registration open", Color: "green"},
	models.ChallengeStatusRegistrationClosed: {Label: "Registration closed", Color: "orange"},
	models.ChallengeStatusActive:             {Label: "Active", Color: "green"},
	models.ChallengeStatusCompleted:          {Label: "Completed", Color: "purple"},
	models.ChallengeStatusCancelled:          {Label: "Cancelled", Color: "red"},
}

var stateBadges = map[State]Badge{
	StateCancelled: {Label: "Cancelled", Color: "red"},
	StateCompleted: {Label: "Completed", Color: "purple"},
	StateOngoing:   {Label: "Ongoing", Color: "green"},
	StateUpcoming:  {Label: "Upcoming", Color: "blue"},
	StateUnknown:   {Label: "Unknown", Color: "gray"},
}

var participantStatusBadges = map[models.ParticipantStatus]Badge{
	models.ParticipantStatusPending:   {Label: "Pending", Color: "orange"},
	models.ParticipantStatusActive:    {Label: "Active", Color: "green"},
	models.ParticipantStatusCompleted: {Label: "Completed", Color: "purple"},
}

var invitationStatusBadges = map[models.InvitationStatus]Badge{
	models.InvitationStatusPending:  {Label: "Pending", Color: "orange"},
	models.InvitationStatusAccepted: {Label: "Accepted", Color: "green"},
	models.InvitationStatusDeclined: {Label: "Declined", Color: "red"},
	models.InvitationStatusExpired:  {Label: "Expired", Color: "gray"},
}

var unknownBadge = Badge{Label: "Unknown", Color: "gray"}

// ChallengeStatusBadge returns the badge for a challenge status.
func ChallengeStatusBadge(s models.ChallengeStatus) Badge {
	if b, ok := challengeStatusBadges[s]; ok {
		return b
	}
	return unknownBadge
}

// StateBadge returns the badge for a derived display state.
func StateBadge(s State) Badge {
	if b, ok := stateBadges[s]; ok {
		return b
	}
	return unknownBadge
}

// ParticipantStatusBadge returns the badge for a participant status.
func ParticipantStatusBadge(s models.ParticipantStatus) Badge {
	if b, ok := participantStatusBadges[s]; ok {
		return b
	}
	return unknownBadge
}

// InvitationStatusBadge returns the badge for an invitation status.
func InvitationStatusBadge(s models.InvitationStatus) Badge {
	if b, ok := invitationStatusBadges[s]; ok {
		return b
	}
	return unknownBadge
}
