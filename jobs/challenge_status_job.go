// File: /jobs/challenge_status_job.go
package jobs

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"xclub-api/lifecycle"
	"xclub-api/models"
	"xclub-api/realtime"
)

// ChallengeStatusJob walks scheduled challenges and advances their backend
// status along the calendar: published, registration open, registration
// closed, active, completed.
type ChallengeStatusJob struct {
	db     *gorm.DB
	hub    *realtime.Hub
	ticker *time.Ticker
	done   chan bool
}

// NewChallengeStatusJob creates a new status transition job
func NewChallengeStatusJob(db *gorm.DB, hub *realtime.Hub, interval time.Duration) *ChallengeStatusJob {
	return &ChallengeStatusJob{
		db:     db,
		hub:    hub,
		ticker: time.NewTicker(interval),
		done:   make(chan bool),
	}
}

// Start begins the status job
func (j *ChallengeStatusJob) Start() {
	fmt.Println("Challenge status job started")

	go func() {
		// Run immediately on start
		j.sweep()

		// Then run on schedule
		for {
			select {
			case <-j.ticker.C:
				j.sweep()
			case <-j.done:
				fmt.Println("Challenge status job stopped")
				return
			}
		}
	}()
}

// Stop stops the status job
func (j *ChallengeStatusJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

// sweep advances every scheduled challenge whose calendar moved on.
// Cancelled, draft and completed challenges are never touched.
func (j *ChallengeStatusJob) sweep() {
	scheduled := []models.ChallengeStatus{
		models.ChallengeStatusPublished,
		models.ChallengeStatusRegistrationOpen,
		models.ChallengeStatusRegistrationClosed,
		models.ChallengeStatusActive,
	}

	var challenges []models.Challenge
	if err := j.db.Where("status IN ?", scheduled).Find(&challenges).Error; err != nil {
		fmt.Printf("Error during challenge status sweep: %v\n", err)
		return
	}

	now := time.Now()
	for i := range challenges {
		ch := &challenges[i]
		next := scheduledStatus(ch, now)
		if next == ch.Status {
			continue
		}

		if err := j.db.Model(ch).Update("status", next).Error; err != nil {
			fmt.Printf("Failed to transition challenge %s to %s: %v\n", ch.ID, next, err)
			continue
		}
		ch.Status = next

		if next == models.ChallengeStatusCompleted {
			j.finalizeParticipants(ch, now)
		}

		j.hub.BroadcastToChallenge(ch.ID, realtime.Message{
			Type: realtime.MessageStatusChanged,
			Payload: map[string]interface{}{
				"status": next,
				"state":  lifecycle.DeriveChallengeState(ch, now),
			},
		})
	}
}

// scheduledStatus computes the status the calendar dictates right now.
func scheduledStatus(ch *models.Challenge, now time.Time) models.ChallengeStatus {
	if now.After(ch.EndDate) {
		return models.ChallengeStatusCompleted
	}
	if !now.Before(ch.StartDate) {
		return models.ChallengeStatusActive
	}

	regStart, regEnd := lifecycle.RegistrationWindow(ch)
	if now.After(regEnd) {
		return models.ChallengeStatusRegistrationClosed
	}
	if !now.Before(regStart) {
		return models.ChallengeStatusRegistrationOpen
	}
	return models.ChallengeStatusPublished
}

// finalizeParticipants marks participants who reached the target as
// completed when the challenge ends.
func (j *ChallengeStatusJob) finalizeParticipants(ch *models.Challenge, now time.Time) {
	if ch.TargetValue <= 0 {
		return
	}

	err := j.db.Model(&models.ChallengeParticipant{}).
		Where("challenge_id = ? AND status = ? AND total_value >= ?",
			ch.ID, models.ParticipantStatusActive, ch.TargetValue).
		Updates(map[string]interface{}{
			"status":       models.ParticipantStatusCompleted,
			"completed_at": now,
		}).Error
	if err != nil {
		fmt.Printf("Failed to finalize participants of challenge %s: %v\n", ch.ID, err)
	}
}
