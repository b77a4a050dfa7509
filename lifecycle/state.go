// File: /lifecycle/state.go
package lifecycle

import (
	"time"

	"xclub-api/models"
)

// State is the derived display state of a challenge. It is computed from the
// backend status plus the calendar, because the two can disagree (a challenge
// can still carry status "published" after its end date has passed). The
// derived state, not the raw status, decides countdowns and banners.
type State string

const (
	StateCancelled State = "cancelled"
	StateCompleted State = "completed"
	StateOngoing   State = "ongoing"
	StateUpcoming  State = "upcoming"
	StateUnknown   State = "unknown"
)

// DeriveState maps status and dates to exactly one State. Pure and total:
// missing or inconsistent dates fall through to StateUnknown instead of
// erroring, so a bad record never breaks rendering.
//
// Priority order:
//  1. cancelled   — backend status is cancelled
//  2. completed   — backend status is completed, or end date has passed
//  3. ongoing     — start date reached and end date (if any) not yet passed
//  4. upcoming    — start date in the future
//  5. unknown     — fallback, signals a data inconsistency
func DeriveState(status models.ChallengeStatus, startDate, endDate *time.Time, now time.Time) State {
	if status == models.ChallengeStatusCancelled {
		return StateCancelled
	}
	if status == models.ChallengeStatusCompleted {
		return StateCompleted
	}
	if endDate != nil && !endDate.IsZero() && now.After(*endDate) {
		return StateCompleted
	}
	if startDate != nil && !startDate.IsZero() {
		if !now.Before(*startDate) && (endDate == nil || endDate.IsZero() || now.Before(*endDate)) {
			return StateOngoing
		}
		if now.Before(*startDate) {
			return StateUpcoming
		}
	}
	return StateUnknown
}

// DeriveChallengeState is DeriveState applied to a stored challenge.
// Zero dates are treated as absent.
func DeriveChallengeState(ch *models.Challenge, now time.Time) State {
	var start, end *time.Time
	if !ch.StartDate.IsZero() {
		start = &ch.StartDate
	}
	if !ch.EndDate.IsZero() {
		end = &ch.EndDate
	}
	return DeriveState(ch.Status, start, end, now)
}
