// File: /lifecycle/registration.go
package lifecycle

import (
	"time"

	"xclub-api/models"
)

// Action is what the registration button should do for a given viewer right
// now. Only ActionRegister is actionable; everything else renders disabled.
type Action string

const (
	ActionPending    Action = "pending"      // viewer's registration awaits approval
	ActionRegistered Action = "registered"   // viewer already participates
	ActionEnded      Action = "ended"        // challenge completed
	ActionCancelled  Action = "cancelled"    // challenge cancelled
	ActionNotYetOpen Action = "not_yet_open" // registration window not started
	ActionClosed     Action = "closed"       // registration window passed
	ActionFull       Action = "full"         // participant cap reached
	ActionRegister   Action = "register"     // open, viewer may register
)

// Actionable reports whether the action allows submitting a registration.
func (a Action) Actionable() bool {
	return a == ActionRegister
}

// RegistrationWindow resolves the effective registration interval. The
// explicit registration dates win; absent ones fall back to the challenge's
// own start/end dates.
func RegistrationWindow(ch *models.Challenge) (start, end time.Time) {
	start = ch.StartDate
	if ch.RegistrationStartDate != nil {
		start = *ch.RegistrationStartDate
	}
	end = ch.EndDate
	if ch.RegistrationEndDate != nil {
		end = *ch.RegistrationEndDate
	}
	return start, end
}

// RegistrationOpen reports whether registration is open at now. The window
// is a single closed interval, independent of the challenge status — a
// challenge can be calendar-ongoing while its registration is already closed.
func RegistrationOpen(ch *models.Challenge, now time.Time) bool {
	start, end := RegistrationWindow(ch)
	return !now.Before(start) && !now.After(end)
}

// EvaluateRegistration runs the button-state decision table. Rules are
// evaluated in order; the first match wins:
//
//  1. viewer already registered (pending or active) — the overlay always
//     takes precedence, even over a full challenge
//  2. challenge completed or cancelled
//  3. registration window not yet open
//  4. registration window closed
//  5. participant cap reached
//  6. open — registration allowed
func EvaluateRegistration(ch *models.Challenge, viewerStatus *models.ParticipantStatus, now time.Time) Action {
	if viewerStatus != nil {
		if *viewerStatus == models.ParticipantStatusPending {
			return ActionPending
		}
		return ActionRegistered
	}
	switch ch.Status {
	case models.ChallengeStatusCompleted:
		return ActionEnded
	case models.ChallengeStatusCancelled:
		return ActionCancelled
	}
	if !RegistrationOpen(ch, now) {
		start, _ := RegistrationWindow(ch)
		if now.Before(start) {
			return ActionNotYetOpen
		}
		return ActionClosed
	}
	if ch.MaxParticipants > 0 && ch.ParticipantCount >= ch.MaxParticipants {
		return ActionFull
	}
	return ActionRegister
}

// RejectionReason maps a non-actionable Action to the message a failed
// register call returns. ActionRegister maps to an empty string.
func RejectionReason(a Action) string {
	switch a {
	case ActionPending:
		return "Registration is already pending approval"
	case ActionRegistered:
		return "Already registered for this challenge"
	case ActionEnded:
		return "Challenge has ended"
	case ActionCancelled:
		return "Challenge was cancelled"
	case ActionNotYetOpen:
		return "Registration has not opened yet"
	case ActionClosed:
		return "Registration is closed"
	case ActionFull:
		return "Challenge is full"
	default:
		return ""
	}
}
