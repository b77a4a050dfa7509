// File: /models/user.go
package models

import (
	"strings"
	"time"
)

type UserRole string

const (
	UserRoleMember UserRole = "member"
	UserRoleAdmin  UserRole = "admin"
)

type User struct {
	ID              string    `json:"id" gorm:"primaryKey;size:191"`
	Name            string    `json:"name" gorm:"not null;size:255"`
	Handle          string    `json:"handle" gorm:"uniqueIndex;not null;size:50"` // Added for @username functionality
	Email           string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password        string    `json:"-" gorm:"not null;size:255"`
	Role            UserRole  `json:"role" gorm:"not null;size:20;default:'member'"`
	EmailVerified   bool      `json:"email_verified" gorm:"default:false"`
	Avatar          *string   `json:"avatar" gorm:"size:500"`
	ActivitiesCount int       `json:"activities_count" gorm:"default:0"`
	ChallengesCount int       `json:"challenges_count" gorm:"default:0"`
	TotalTime       string    `json:"total_time" gorm:"default:'0h 0m';size:50"`
	TotalDistance   string    `json:"total_distance" gorm:"default:'0 km';size:50"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relationships
	Activities        []Activity             `json:"activities,omitempty" gorm:"foreignKey:UserID"`
	ClubMemberships   []ClubMember           `json:"club_memberships,omitempty" gorm:"foreignKey:UserID"`
	CreatedChallenges []Challenge            `json:"created_challenges,omitempty" gorm:"foreignKey:CreatedBy"`
	Participations    []ChallengeParticipant `json:"participations,omitempty" gorm:"foreignKey:UserID"`
}

// GenerateHandleFromName creates a unique handle from the user's name
func GenerateHandleFromName(name string) string {
	// Convert to lowercase and replace spaces with underscores
	handle := strings.ToLower(strings.ReplaceAll(name, " ", "_"))
	// Remove special characters
	handle = strings.ReplaceAll(handle, ".", "")
	handle = strings.ReplaceAll(handle, "-", "_")
	return handle
}
