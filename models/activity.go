// File: /models/activity.go
package models

import "time"

type ActivityType string

const (
	ActivityTypeRun  ActivityType = "run"
	ActivityTypeRide ActivityType = "ride"
	ActivityTypeWalk ActivityType = "walk"
	ActivityTypeSwim ActivityType = "swim"
)

type ActivityStatus string

const (
	ActivityStatusSynced  ActivityStatus = "synced"
	ActivityStatusPending ActivityStatus = "pending"
	ActivityStatusFailed  ActivityStatus = "failed"
)

type ActivitySource string

const (
	ActivitySourceManual ActivitySource = "manual"
	ActivitySourceStrava ActivitySource = "strava"
	ActivitySourceGarmin ActivitySource = "garmin"
)

// Activity is a tracklog entry. Challenge progress is derived from synced
// activities that meet the challenge's min_tracklog_distance.
type Activity struct {
	ID              string         `json:"id" gorm:"primaryKey;size:191"`
	UserID          string         `json:"user_id" gorm:"not null;size:191;index"`
	Name            string         `json:"name" gorm:"not null;size:255"`
	Type            ActivityType   `json:"type" gorm:"not null;size:20;index"`
	Status          ActivityStatus `json:"status" gorm:"not null;size:20;default:'synced';index"`
	Source          ActivitySource `json:"source" gorm:"not null;size:20;default:'manual';index"`
	DistanceKm      float64        `json:"distance_km" gorm:"default:0"`
	DurationSeconds int            `json:"duration_seconds" gorm:"default:0"`
	StartedAt       time.Time      `json:"started_at" gorm:"not null;index"`
	CreatedAt       time.Time      `json:"created_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// ActivityListResponse is the paginated activities envelope. The mock-data
// fallback must return the exact same shape.
type ActivityListResponse struct {
	Data       []Activity `json:"data"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
}
