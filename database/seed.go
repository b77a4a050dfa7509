// File: /database/seed.go
package database

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"xclub-api/mockdata"
	"xclub-api/models"
)

// SeedData populates a development database with a demo club, challenge and
// activities. It is a no-op when users already exist.
func SeedData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		ID:            "seed-admin",
		Name:          "Minh Tran",
		Handle:        "minh_tran",
		Email:         "admin@xclub.vn",
		Password:      string(hashed),
		Role:          models.UserRoleAdmin,
		EmailVerified: true,
	}
	member := models.User{
		ID:            "seed-member",
		Name:          "Lan Pham",
		Handle:        "lan_pham",
		Email:         "lan@xclub.vn",
		Password:      string(hashed),
		Role:          models.UserRoleMember,
		EmailVerified: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	if err := db.Create(&member).Error; err != nil {
		return err
	}

	club := models.Club{
		ID:          "seed-club",
		Name:        "Hanoi Runners",
		Slug:        "hanoi-runners",
		Description: "Weekend long runs around West Lake",
		City:        "Hanoi",
		MemberCount: 2,
		CreatedBy:   admin.ID,
	}
	if err := db.Create(&club).Error; err != nil {
		return err
	}
	db.Create(&models.ClubMember{ClubID: club.ID, UserID: admin.ID, Role: models.ClubRoleAdmin, JoinedAt: time.Now()})
	db.Create(&models.ClubMember{ClubID: club.ID, UserID: member.ID, Role: models.ClubRoleMember, JoinedAt: time.Now()})

	now := time.Now()
	challenge := models.Challenge{
		ID:                    "seed-challenge",
		ChallengeCode:         "XC-DEMO01",
		Name:                  "100km in 30 Days",
		Description:           "Run 100km before the month ends",
		ClubID:                &club.ID,
		CreatedBy:             admin.ID,
		Type:                  models.ChallengeTypeDistance,
		Category:              models.ChallengeCategoryIndividual,
		Difficulty:            models.ChallengeDifficultyMedium,
		Visibility:            models.ChallengeVisibilityPublic,
		StartDate:             now.AddDate(0, 0, -5),
		EndDate:               now.AddDate(0, 0, 25),
		TargetValue:           100,
		TargetUnit:            models.TargetUnitKilometers,
		AllowFreeRegistration: true,
		Status:                models.ChallengeStatusActive,
		ParticipantCount:      1,
	}
	if err := db.Create(&challenge).Error; err != nil {
		return err
	}
	db.Create(&models.ChallengeParticipant{
		ChallengeID: challenge.ID,
		UserID:      &member.ID,
		Status:      models.ParticipantStatusActive,
		JoinedAt:    now.AddDate(0, 0, -4),
		TotalValue:  42.5,
		Progress:    42,
	})

	// Reuse the mock records as the member's activity history
	for _, activity := range mockdata.Activities {
		activity.UserID = member.ID
		if err := db.Create(&activity).Error; err != nil {
			fmt.Printf("Warning: failed to seed activity %s: %v\n", activity.ID, err)
		}
	}

	fmt.Println("Database seeded with demo data")
	return nil
}
