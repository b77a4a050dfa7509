// File: /jobs/invitation_expiry_job.go
package jobs

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"xclub-api/models"
)

// InvitationExpiryJob marks pending invitations past their deadline as
// expired. The respond endpoint guards against stale invitations on its own;
// this job keeps the stored status honest for listings.
type InvitationExpiryJob struct {
	db     *gorm.DB
	ticker *time.Ticker
	done   chan bool
}

// NewInvitationExpiryJob creates a new invitation expiry job
func NewInvitationExpiryJob(db *gorm.DB, interval time.Duration) *InvitationExpiryJob {
	return &InvitationExpiryJob{
		db:     db,
		ticker: time.NewTicker(interval),
		done:   make(chan bool),
	}
}

// Start begins the expiry job
func (j *InvitationExpiryJob) Start() {
	fmt.Println("Invitation expiry job started")

	go func() {
		// Run immediately on start
		j.expire()

		// Then run on schedule
		for {
			select {
			case <-j.ticker.C:
				j.expire()
			case <-j.done:
				fmt.Println("Invitation expiry job stopped")
				return
			}
		}
	}()
}

// Stop stops the expiry job
func (j *InvitationExpiryJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *InvitationExpiryJob) expire() {
	result := j.db.Model(&models.ChallengeInvitation{}).
		Where("status = ? AND expires_at < ?", models.InvitationStatusPending, time.Now()).
		Update("status", models.InvitationStatusExpired)
	if result.Error != nil {
		fmt.Printf("Error during invitation expiry sweep: %v\n", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		fmt.Printf("Expired %d stale invitations\n", result.RowsAffected)
	}
}
