// File: /database/database.go
package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"xclub-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Info),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Auto migrate all models
	err := db.AutoMigrate(
		&models.User{},
		&models.Club{},
		&models.ClubMember{},
		&models.Challenge{},
		&models.ChallengeParticipant{},
		&models.ChallengeTeam{},
		&models.ChallengeTeamMember{},
		&models.ChallengeInvitation{},
		&models.RaceEvent{},
		&models.RaceRegistration{},
		&models.Activity{},
		&models.Notification{},
	)

	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Add custom indexes for better performance
	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Composite indexes for the hottest queries

	// Leaderboard reads: participants of a challenge ordered by total value
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_participants_challenge_total ON challenge_participants(challenge_id, total_value DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for challenge_participants: %v\n", err)
	}

	// One registration per user per challenge
	if err := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_participants_challenge_user ON challenge_participants(challenge_id, user_id)").Error; err != nil {
		fmt.Printf("Warning: Could not create unique index for challenge_participants: %v\n", err)
	}

	// Status job scans: challenges by status and dates
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_challenges_status_dates ON challenges(status, start_date, end_date)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for challenges: %v\n", err)
	}

	// Invitation expiry scans
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_invitations_status_expires ON challenge_invitations(status, expires_at)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for challenge_invitations: %v\n", err)
	}

	// Activity progress windows
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_activities_user_started ON activities(user_id, started_at)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for activities: %v\n", err)
	}

	return nil
}
