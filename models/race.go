// File: /models/race.go
package models

import (
	"time"
)

type RaceEvent struct {
	ID                string      `json:"id" gorm:"primaryKey;size:191"`
	Title             string      `json:"title" gorm:"not null;size:255"`
	Description       string      `json:"description" gorm:"not null;type:text"`
	ClubID            *string     `json:"club_id" gorm:"size:191;index"`
	OrganizerID       string      `json:"organizer_id" gorm:"not null;size:191"`
	OrganizerName     string      `json:"organizer_name" gorm:"not null;size:255"`
	RaceDate          time.Time   `json:"race_date" gorm:"not null"`
	LocationName      string      `json:"location_name" gorm:"not null;size:255"`
	LocationAddress   string      `json:"location_address" gorm:"size:500"`
	DistanceKm        float64     `json:"distance_km"`
	Difficulty        string      `json:"difficulty" gorm:"not null;size:50"`
	RegistrationFee   float64     `json:"registration_fee" gorm:"default:0"`
	MaxParticipants   int         `json:"max_participants" gorm:"not null"`
	ParticipantsCount int         `json:"participants_count" gorm:"default:0"`
	Tags              StringSlice `json:"tags" gorm:"type:json"`
	ImageUrls         StringSlice `json:"image_urls" gorm:"type:json"`
	IsFull            bool        `json:"is_full" gorm:"default:false"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`

	Organizer     User               `json:"organizer" gorm:"foreignKey:OrganizerID"`
	Club          *Club              `json:"club,omitempty" gorm:"foreignKey:ClubID"`
	Registrations []RaceRegistration `json:"registrations,omitempty" gorm:"foreignKey:RaceID"`
}

type RaceRegistrationStatus string

const (
	RaceRegistrationStatusRegistered RaceRegistrationStatus = "registered"
	RaceRegistrationStatusCancelled  RaceRegistrationStatus = "cancelled"
	RaceRegistrationStatusFinished   RaceRegistrationStatus = "finished"
)

// RaceRegistration holds the emergency contact and medical info collected
// by the race registration form.
type RaceRegistration struct {
	ID                    uint                   `json:"id" gorm:"primaryKey"`
	RaceID                string                 `json:"race_id" gorm:"not null;size:191;index"`
	UserID                string                 `json:"user_id" gorm:"not null;size:191;index"`
	BibNumber             *int                   `json:"bib_number"`
	EmergencyContactName  string                 `json:"emergency_contact_name" gorm:"not null;size:255"`
	EmergencyContactPhone string                 `json:"emergency_contact_phone" gorm:"not null;size:50"`
	MedicalNotes          string                 `json:"medical_notes" gorm:"type:text"`
	Status                RaceRegistrationStatus `json:"status" gorm:"not null;size:20;default:'registered'"`
	CreatedAt             time.Time              `json:"created_at"`

	Race RaceEvent `json:"race" gorm:"foreignKey:RaceID"`
	User User      `json:"user" gorm:"foreignKey:UserID"`
}
