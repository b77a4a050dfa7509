// File: /models/challenge.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type ChallengeType string

const (
	ChallengeTypeDistance  ChallengeType = "distance"
	ChallengeTypeTime      ChallengeType = "time"
	ChallengeTypeFrequency ChallengeType = "frequency"
	ChallengeTypeStreak    ChallengeType = "streak"
	ChallengeTypeSpeed     ChallengeType = "speed"
	ChallengeTypeCombined  ChallengeType = "combined"
)

type ChallengeCategory string

const (
	ChallengeCategoryIndividual ChallengeCategory = "individual"
	ChallengeCategoryTeam       ChallengeCategory = "team"
)

type ChallengeDifficulty string

const (
	ChallengeDifficultyEasy   ChallengeDifficulty = "easy"
	ChallengeDifficultyMedium ChallengeDifficulty = "medium"
	ChallengeDifficultyHard   ChallengeDifficulty = "hard"
	ChallengeDifficultyExpert ChallengeDifficulty = "expert"
)

type ChallengeVisibility string

const (
	ChallengeVisibilityPublic     ChallengeVisibility = "public"
	ChallengeVisibilityPrivate    ChallengeVisibility = "private"
	ChallengeVisibilityClubOnly   ChallengeVisibility = "club_only"
	ChallengeVisibilityInviteOnly ChallengeVisibility = "invite_only"
)

// ChallengeStatus is the authoritative backend status. It is transitioned by
// the status job and admin actions, never by registrants.
type ChallengeStatus string

const (
	ChallengeStatusDraft              ChallengeStatus = "draft"
	ChallengeStatusPublished          ChallengeStatus = "published"
	ChallengeStatusRegistrationOpen   ChallengeStatus = "registration_open"
	ChallengeStatusRegistrationClosed ChallengeStatus = "registration_closed"
	ChallengeStatusActive             ChallengeStatus = "active"
	ChallengeStatusCompleted          ChallengeStatus = "completed"
	ChallengeStatusCancelled          ChallengeStatus = "cancelled"
)

type TargetUnit string

const (
	TargetUnitKilometers TargetUnit = "km"
	TargetUnitMeters     TargetUnit = "m"
	TargetUnitHours      TargetUnit = "hours"
	TargetUnitMinutes    TargetUnit = "minutes"
	TargetUnitDays       TargetUnit = "days"
	TargetUnitTimes      TargetUnit = "times"
)

type Challenge struct {
	ID            string              `json:"id" gorm:"primaryKey;size:191"`
	ChallengeCode string              `json:"challenge_code" gorm:"uniqueIndex;not null;size:20"`
	Name          string              `json:"name" gorm:"not null;size:255"`
	Description   string              `json:"description" gorm:"type:text"`
	ClubID        *string             `json:"club_id" gorm:"size:191;index"`
	CreatedBy     string              `json:"created_by" gorm:"not null;size:191"`
	Type          ChallengeType       `json:"type" gorm:"not null;size:20"`
	Category      ChallengeCategory   `json:"category" gorm:"not null;size:20;default:'individual'"`
	Difficulty    ChallengeDifficulty `json:"difficulty" gorm:"not null;size:20;default:'medium'"`
	Visibility    ChallengeVisibility `json:"visibility" gorm:"not null;size:20;default:'public'"`

	StartDate             time.Time  `json:"start_date" gorm:"not null"`
	EndDate               time.Time  `json:"end_date" gorm:"not null"`
	RegistrationStartDate *time.Time `json:"registration_start_date"`
	RegistrationEndDate   *time.Time `json:"registration_end_date"`
	TimeLimit             *int       `json:"time_limit"` // in days

	TargetValue float64    `json:"target_value" gorm:"not null"`
	TargetUnit  TargetUnit `json:"target_unit" gorm:"not null;size:20"`

	MaxParticipants           int     `json:"max_participants" gorm:"default:0"` // 0 = unlimited
	MaxTeams                  int     `json:"max_teams" gorm:"default:0"`
	MaxTeamMembers            int     `json:"max_team_members" gorm:"default:0"`
	MinTracklogDistance       float64 `json:"min_tracklog_distance" gorm:"default:0"`
	MaxIndividualContribution float64 `json:"max_individual_contribution" gorm:"default:0"` // % cap per member in a team total

	AllowFreeRegistration bool            `json:"allow_free_registration" gorm:"default:true"`
	ApprovalPassword      *string         `json:"-" gorm:"size:255"`
	Status                ChallengeStatus `json:"status" gorm:"not null;size:30;default:'draft';index"`
	ParticipantCount      int             `json:"participant_count" gorm:"default:0"`
	CoverImageURL         *string         `json:"cover_image_url" gorm:"size:500"`
	CoverImageKey         *string         `json:"-" gorm:"size:500"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Derived display fields, populated by controllers, never stored
	UserRegistrationStatus *ParticipantStatus `json:"user_registration_status,omitempty" gorm:"-"`
	State                  string             `json:"state,omitempty" gorm:"-"`
	RegistrationAction     string             `json:"registration_action,omitempty" gorm:"-"`

	// Relationships
	Club         *Club                  `json:"club,omitempty" gorm:"foreignKey:ClubID"`
	Creator      *User                  `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	Participants []ChallengeParticipant `json:"participants,omitempty" gorm:"foreignKey:ChallengeID"`
	Teams        []ChallengeTeam        `json:"teams,omitempty" gorm:"foreignKey:ChallengeID"`
}

type ParticipantStatus string

const (
	ParticipantStatusPending   ParticipantStatus = "pending"
	ParticipantStatusActive    ParticipantStatus = "active"
	ParticipantStatusCompleted ParticipantStatus = "completed"
)

// ChallengeParticipant joins a user (or a team, for team challenges) to a
// challenge. A row exists only after registration was accepted, either freely
// or through approval / approval-password match.
type ChallengeParticipant struct {
	ID          uint              `json:"id" gorm:"primaryKey"`
	ChallengeID string            `json:"challenge_id" gorm:"not null;size:191;index"`
	UserID      *string           `json:"user_id" gorm:"size:191;index"`
	TeamID      *uint             `json:"team_id" gorm:"index"`
	Status      ParticipantStatus `json:"status" gorm:"not null;size:20;default:'pending';index"`
	JoinedAt    time.Time         `json:"joined_at" gorm:"not null"`

	Progress       int        `json:"progress" gorm:"default:0"` // 0-100
	TotalValue     float64    `json:"total_value" gorm:"default:0"`
	LastActivityAt *time.Time `json:"last_activity_at"`
	CompletedAt    *time.Time `json:"completed_at"`

	Challenge *Challenge     `json:"challenge,omitempty" gorm:"foreignKey:ChallengeID"`
	User      *User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Team      *ChallengeTeam `json:"team,omitempty" gorm:"foreignKey:TeamID"`
}

type ChallengeTeam struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ChallengeID string    `json:"challenge_id" gorm:"not null;size:191;index"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	CaptainID   string    `json:"captain_id" gorm:"not null;size:191"`
	MemberCount int       `json:"member_count" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at"`

	Members []ChallengeTeamMember `json:"members,omitempty" gorm:"foreignKey:TeamID"`
}

type ChallengeTeamMember struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	TeamID   uint      `json:"team_id" gorm:"not null;index"`
	UserID   string    `json:"user_id" gorm:"not null;size:191;index"`
	JoinedAt time.Time `json:"joined_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// LeaderboardEntry is one row of the individual leaderboard response.
// Rank is assigned server-side; ties on total_value are broken by the
// earlier last_activity.
type LeaderboardEntry struct {
	Rank         int        `json:"rank"`
	UserID       string     `json:"user_id"`
	Name         string     `json:"name"`
	Avatar       *string    `json:"avatar,omitempty"`
	Progress     int        `json:"progress"` // 0-100
	TotalValue   float64    `json:"total_value"`
	LastActivity *time.Time `json:"last_activity"`
}

// TeamLeaderboardEntry is one row of the team leaderboard response.
// AverageDistance is always TotalDistance / MemberCount.
type TeamLeaderboardEntry struct {
	Rank            int     `json:"rank"`
	TeamID          uint    `json:"team_id"`
	Team            string  `json:"team"`
	MemberCount     int     `json:"member_count"`
	TotalDistance   float64 `json:"total_distance"`
	AverageDistance float64 `json:"average_distance"`
}

// CompletionStats is the aggregate served by /challenges/:id/completion-stats.
// All arithmetic happens here; clients render it as-is.
type CompletionStats struct {
	TotalParticipants     int      `json:"total_participants"`
	CompletedParticipants int      `json:"completed_participants"`
	PendingParticipants   int      `json:"pending_participants"`
	ActiveParticipants    int      `json:"active_participants"`
	CompletionRate        float64  `json:"completion_rate"` // percent
	AverageCompletionTime *float64 `json:"average_completion_time"` // hours since joining
	FastestCompletion     *float64 `json:"fastest_completion"`
	SlowestCompletion     *float64 `json:"slowest_completion"`
}
