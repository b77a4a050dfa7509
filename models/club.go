// File: /models/club.go
package models

import "time"

type Club struct {
	ID          string  `json:"id" gorm:"primaryKey;size:191"`
	Name        string  `json:"name" gorm:"not null;size:255"`
	Slug        string  `json:"slug" gorm:"uniqueIndex;not null;size:100"`
	Description string  `json:"description" gorm:"type:text"`
	LogoURL     *string `json:"logo_url" gorm:"size:500"`
	LogoKey     *string `json:"-" gorm:"size:500"`
	City        string  `json:"city" gorm:"size:100"`
	MemberCount int     `json:"member_count" gorm:"default:0"`
	CreatedBy   string  `json:"created_by" gorm:"not null;size:191"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Creator *User        `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	Members []ClubMember `json:"members,omitempty" gorm:"foreignKey:ClubID"`
}

type ClubRole string

const (
	ClubRoleMember ClubRole = "member"
	ClubRoleAdmin  ClubRole = "admin"
)

type ClubMember struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	ClubID   string    `json:"club_id" gorm:"not null;size:191;index:idx_club_members_club_user,unique"`
	UserID   string    `json:"user_id" gorm:"not null;size:191;index:idx_club_members_club_user,unique"`
	Role     ClubRole  `json:"role" gorm:"not null;size:20;default:'member'"`
	JoinedAt time.Time `json:"joined_at"`

	Club *Club `json:"club,omitempty" gorm:"foreignKey:ClubID"`
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
