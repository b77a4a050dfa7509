// File: /controllers/challenge_controller.go
package controllers

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"xclub-api/lifecycle"
	"xclub-api/models"
	"xclub-api/realtime"
	"xclub-api/services"
	"xclub-api/storage"
	"xclub-api/utils"
)

type ChallengeController struct {
	db            *gorm.DB
	leaderboards  *services.LeaderboardService
	emailService  *services.EmailService
	notifications *NotificationController
	hub           *realtime.Hub
	uploader      storage.FileUploader
}

func NewChallengeController(db *gorm.DB, leaderboards *services.LeaderboardService, emailService *services.EmailService, hub *realtime.Hub, uploader storage.FileUploader) *ChallengeController {
	return &ChallengeController{
		db:            db,
		leaderboards:  leaderboards,
		emailService:  emailService,
		notifications: NewNotificationController(db),
		hub:           hub,
		uploader:      uploader,
	}
}

type CreateChallengeRequest struct {
	Name        string                     `json:"name" binding:"required,min=3,max=255"`
	Description string                     `json:"description"`
	ClubID      *string                    `json:"club_id"`
	Type        models.ChallengeType       `json:"type" binding:"required,oneof=distance time frequency streak speed combined"`
	Category    models.ChallengeCategory   `json:"category" binding:"omitempty,oneof=individual team"`
	Difficulty  models.ChallengeDifficulty `json:"difficulty" binding:"omitempty,oneof=easy medium hard expert"`
	Visibility  models.ChallengeVisibility `json:"visibility" binding:"omitempty,oneof=public private club_only invite_only"`

	StartDate             time.Time  `json:"start_date" binding:"required"`
	EndDate               time.Time  `json:"end_date" binding:"required"`
	RegistrationStartDate *time.Time `json:"registration_start_date"`
	RegistrationEndDate   *time.Time `json:"registration_end_date"`
	TimeLimit             *int       `json:"time_limit"`

	TargetValue float64           `json:"target_value" binding:"required,gt=0"`
	TargetUnit  models.TargetUnit `json:"target_unit" binding:"required,oneof=km m hours minutes days times"`

	MaxParticipants           int     `json:"max_participants" binding:"omitempty,min=0"`
	MaxTeams                  int     `json:"max_teams" binding:"omitempty,min=0"`
	MaxTeamMembers            int     `json:"max_team_members" binding:"omitempty,min=0"`
	MinTracklogDistance       float64 `json:"min_tracklog_distance" binding:"omitempty,min=0"`
	MaxIndividualContribution float64 `json:"max_individual_contribution" binding:"omitempty,min=0,max=100"`

	AllowFreeRegistration *bool   `json:"allow_free_registration"`
	ApprovalPassword      *string `json:"approval_password"`
}

func (cc *ChallengeController) CreateChallenge(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if reason := validateChallengeDates(req.StartDate, req.EndDate, req.RegistrationStartDate, req.RegistrationEndDate); reason != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": reason})
		return
	}

	if req.ClubID != nil {
		var club models.Club
		if err := cc.db.First(&club, "id = ?", *req.ClubID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Club not found"})
			return
		}
	}

	category := req.Category
	if category == "" {
		category = models.ChallengeCategoryIndividual
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = models.ChallengeDifficultyMedium
	}
	visibility := req.Visibility
	if visibility == "" {
		visibility = models.ChallengeVisibilityPublic
	}
	allowFree := true
	if req.AllowFreeRegistration != nil {
		allowFree = *req.AllowFreeRegistration
	}

	challenge := models.Challenge{
		ID:                        uuid.New().String(),
		ChallengeCode:             generateChallengeCode(),
		Name:                      req.Name,
		Description:               req.Description,
		ClubID:                    req.ClubID,
		CreatedBy:                 userID,
		Type:                      req.Type,
		Category:                  category,
		Difficulty:                difficulty,
		Visibility:                visibility,
		StartDate:                 req.StartDate,
		EndDate:                   req.EndDate,
		RegistrationStartDate:     req.RegistrationStartDate,
		RegistrationEndDate:       req.RegistrationEndDate,
		TimeLimit:                 req.TimeLimit,
		TargetValue:               req.TargetValue,
		TargetUnit:                req.TargetUnit,
		MaxParticipants:           req.MaxParticipants,
		MaxTeams:                  req.MaxTeams,
		MaxTeamMembers:            req.MaxTeamMembers,
		MinTracklogDistance:       req.MinTracklogDistance,
		MaxIndividualContribution: req.MaxIndividualContribution,
		AllowFreeRegistration:     allowFree,
		ApprovalPassword:          req.ApprovalPassword,
		Status:                    models.ChallengeStatusPublished,
	}

	if err := cc.db.Create(&challenge).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create challenge"})
		return
	}

	cc.decorate(&challenge, nil, time.Now())
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Challenge created successfully",
		"challenge": challenge,
	})
}

// GetChallenges lists visible challenges with optional filters. When the
// viewer is authenticated, each row carries their registration overlay.
func (cc *ChallengeController) GetChallenges(c *gin.Context) {
	userID := c.GetString("user_id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	query := cc.db.Model(&models.Challenge{}).
		Where("visibility IN ?", []models.ChallengeVisibility{models.ChallengeVisibilityPublic, models.ChallengeVisibilityClubOnly}).
		Where("status <> ?", models.ChallengeStatusDraft)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if challengeType := c.Query("type"); challengeType != "" {
		query = query.Where("type = ?", challengeType)
	}
	if clubID := c.Query("club_id"); clubID != "" {
		query = query.Where("club_id = ?", clubID)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ? OR challenge_code LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch challenges"})
		return
	}

	var challenges []models.Challenge
	offset := (page - 1) * limit
	if err := query.Preload("Club").
		Order("start_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&challenges).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch challenges"})
		return
	}

	overlays := cc.viewerStatuses(userID, challenges)
	now := time.Now()
	for i := range challenges {
		cc.decorate(&challenges[i], overlays[challenges[i].ID], now)
	}

	utils.SendPaginated(c, challenges, page, limit, total)
}

func (cc *ChallengeController) GetChallenge(c *gin.Context) {
	userID := c.GetString("user_id")

	var challenge models.Challenge
	if err := cc.db.Preload("Club").Preload("Creator").
		First(&challenge, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}

	cc.decorate(&challenge, cc.viewerStatus(challenge.ID, userID), time.Now())
	c.JSON(http.StatusOK, challenge)
}

// GetChallengeState returns only the derived rendering state: display state,
// badge, registration action and the formatted target.
func (cc *ChallengeController) GetChallengeState(c *gin.Context) {
	userID := c.GetString("user_id")

	var challenge models.Challenge
	if err := cc.db.First(&challenge, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}

	now := time.Now()
	state := lifecycle.DeriveChallengeState(&challenge, now)
	action := lifecycle.EvaluateRegistration(&challenge, cc.viewerStatus(challenge.ID, userID), now)
	regStart, regEnd := lifecycle.RegistrationWindow(&challenge)

	c.JSON(http.StatusOK, gin.H{
		"state":                   state,
		"badge":                   lifecycle.StateBadge(state),
		"status_badge":            lifecycle.ChallengeStatusBadge(challenge.Status),
		"registration_action":     action,
		"actionable":              action.Actionable(),
		"registration_open":       lifecycle.RegistrationOpen(&challenge, now),
		"registration_start_date": regStart,
		"registration_end_date":   regEnd,
		"target_display":          lifecycle.FormatProgressValue(challenge.TargetValue, string(challenge.TargetUnit)),
	})
}

type UpdateChallengeRequest struct {
	Name                  *string    `json:"name" binding:"omitempty,min=3,max=255"`
	Description           *string    `json:"description"`
	StartDate             *time.Time `json:"start_date"`
	EndDate               *time.Time `json:"end_date"`
	RegistrationStartDate *time.Time `json:"registration_start_date"`
	RegistrationEndDate   *time.Time `json:"registration_end_date"`
	TargetValue           *float64   `json:"target_value" binding:"omitempty,gt=0"`
	MaxParticipants       *int       `json:"max_participants" binding:"omitempty,min=0"`
	MinTracklogDistance   *float64   `json:"min_tracklog_distance" binding:"omitempty,min=0"`
	AllowFreeRegistration *bool      `json:"allow_free_registration"`
	ApprovalPassword      *string    `json:"approval_password"`
}

func (cc *ChallengeController) UpdateChallenge(c *gin.Context) {
	challenge, ok := cc.loadManaged(c)
	if !ok {
		return
	}

	var req UpdateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		challenge.Name = *req.Name
	}
	if req.Description != nil {
		challenge.Description = *req.Description
	}
	if req.StartDate != nil {
		challenge.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		challenge.EndDate = *req.EndDate
	}
	if req.RegistrationStartDate != nil {
		challenge.RegistrationStartDate = req.RegistrationStartDate
	}
	if req.RegistrationEndDate != nil {
		challenge.RegistrationEndDate = req.RegistrationEndDate
	}
	if req.TargetValue != nil {
		challenge.TargetValue = *req.TargetValue
	}
	if req.MaxParticipants != nil {
		challenge.MaxParticipants = *req.MaxParticipants
	}
	if req.MinTracklogDistance != nil {
		challenge.MinTracklogDistance = *req.MinTracklogDistance
	}
	if req.AllowFreeRegistration != nil {
		challenge.AllowFreeRegistration = *req.AllowFreeRegistration
	}
	if req.ApprovalPassword != nil {
		challenge.ApprovalPassword = req.ApprovalPassword
	}

	if reason := validateChallengeDates(challenge.StartDate, challenge.EndDate, challenge.RegistrationStartDate, challenge.RegistrationEndDate); reason != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": reason})
		return
	}

	if err := cc.db.Save(challenge).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update challenge"})
		return
	}

	cc.leaderboards.Invalidate(c.Request.Context(), challenge.ID)
	cc.decorate(challenge, nil, time.Now())
	c.JSON(http.StatusOK, gin.H{
		"message":   "Challenge updated successfully",
		"challenge": challenge,
	})
}

type UpdateChallengeStatusRequest struct {
	Status models.ChallengeStatus `json:"status" binding:"required,oneof=draft published registration_open registration_closed active completed cancelled"`
}

// UpdateChallengeStatus transitions the authoritative backend status. Only
// the creator or an admin may call it; registrants never change status.
func (cc *ChallengeController) UpdateChallengeStatus(c *gin.Context) {
	challenge, ok := cc.loadManaged(c)
	if !ok {
		return
	}

	var req UpdateChallengeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := cc.db.Model(challenge).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update challenge status"})
		return
	}
	challenge.Status = req.Status

	cc.hub.BroadcastToChallenge(challenge.ID, realtime.Message{
		Type: realtime.MessageStatusChanged,
		Payload: gin.H{
			"status": challenge.Status,
			"state":  lifecycle.DeriveChallengeState(challenge, time.Now()),
		},
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Challenge status updated",
		"status":  challenge.Status,
	})
}

func (cc *ChallengeController) DeleteChallenge(c *gin.Context) {
	challenge, ok := cc.loadManaged(c)
	if !ok {
		return
	}

	if err := cc.db.Delete(challenge).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete challenge"})
		return
	}

	cc.leaderboards.Invalidate(c.Request.Context(), challenge.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Challenge deleted successfully"})
}

type RegisterChallengeRequest struct {
	ApprovalPassword *string `json:"approval_password"`
	TeamID           *uint   `json:"team_id"`
	TeamName         string  `json:"team_name"`
}

// RegisterForChallenge runs the registration decision table and, when the
// outcome is actionable, creates the participant row. Free registration and
// a matching approval password activate immediately; everything else waits
// for approval.
func (cc *ChallengeController) RegisterForChallenge(c *gin.Context) {
	userID := c.GetString("user_id")

	// Body is optional for free registration
	var req RegisterChallengeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var challenge models.Challenge
	if err := cc.db.First(&challenge, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}

	now := time.Now()
	action := lifecycle.EvaluateRegistration(&challenge, cc.viewerStatus(challenge.ID, userID), now)
	if !action.Actionable() {
		c.JSON(http.StatusConflict, gin.H{
			"error":  lifecycle.RejectionReason(action),
			"action": action,
		})
		return
	}

	status := models.ParticipantStatusPending
	if challenge.AllowFreeRegistration {
		status = models.ParticipantStatusActive
	} else if challenge.ApprovalPassword != nil && req.ApprovalPassword != nil && *challenge.ApprovalPassword == *req.ApprovalPassword {
		status = models.ParticipantStatusActive
	}

	var teamID *uint
	if challenge.Category == models.ChallengeCategoryTeam {
		id, err := cc.resolveTeam(&challenge, userID, req, now)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		teamID = id
	}

	participant := models.ChallengeParticipant{
		ChallengeID: challenge.ID,
		UserID:      &userID,
		TeamID:      teamID,
		Status:      status,
		JoinedAt:    now,
	}
	if err := cc.db.Create(&participant).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already registered for this challenge"})
		return
	}

	cc.db.Model(&challenge).Update("participant_count", gorm.Expr("participant_count + 1"))

	cc.leaderboards.Invalidate(c.Request.Context(), challenge.ID)
	cc.hub.BroadcastToChallenge(challenge.ID, realtime.Message{
		Type:    realtime.MessageLeaderboardUpdated,
		Payload: gin.H{"participant_count": challenge.ParticipantCount + 1},
	})

	message := "Registered successfully"
	if status == models.ParticipantStatusPending {
		message = "Registration submitted, awaiting approval"
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":     message,
		"status":      status,
		"participant": participant,
	})
}

// resolveTeam joins an existing team or creates a new one for a team
// challenge registration.
func (cc *ChallengeController) resolveTeam(challenge *models.Challenge, userID string, req RegisterChallengeRequest, now time.Time) (*uint, error) {
	if req.TeamID != nil {
		var team models.ChallengeTeam
		if err := cc.db.First(&team, "id = ? AND challenge_id = ?", *req.TeamID, challenge.ID).Error; err != nil {
			return nil, fmt.Errorf("team not found")
		}
		if challenge.MaxTeamMembers > 0 && team.MemberCount >= challenge.MaxTeamMembers {
			return nil, fmt.Errorf("team is full")
		}
		if err := cc.db.Create(&models.ChallengeTeamMember{TeamID: team.ID, UserID: userID, JoinedAt: now}).Error; err != nil {
			return nil, fmt.Errorf("failed to join team")
		}
		cc.db.Model(&team).Update("member_count", gorm.Expr("member_count + 1"))
		return &team.ID, nil
	}

	if req.TeamName == "" {
		return nil, fmt.Errorf("team challenges require team_id or team_name")
	}

	if challenge.MaxTeams > 0 {
		var teamCount int64
		cc.db.Model(&models.ChallengeTeam{}).Where("challenge_id = ?", challenge.ID).Count(&teamCount)
		if teamCount >= int64(challenge.MaxTeams) {
			return nil, fmt.Errorf("maximum number of teams reached")
		}
	}

	team := models.ChallengeTeam{
		ChallengeID: challenge.ID,
		Name:        req.TeamName,
		CaptainID:   userID,
		MemberCount: 1,
	}
	if err := cc.db.Create(&team).Error; err != nil {
		return nil, fmt.Errorf("failed to create team")
	}
	if err := cc.db.Create(&models.ChallengeTeamMember{TeamID: team.ID, UserID: userID, JoinedAt: now}).Error; err != nil {
		return nil, fmt.Errorf("failed to join team")
	}
	return &team.ID, nil
}

func (cc *ChallengeController) GetParticipants(c *gin.Context) {
	var participants []models.ChallengeParticipant
	if err := cc.db.Preload("User").Preload("Team").
		Where("challenge_id = ?", c.Param("id")).
		Where("status IN ?", []models.ParticipantStatus{models.ParticipantStatusActive, models.ParticipantStatusCompleted}).
		Order("total_value DESC").
		Find(&participants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch participants"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"participants": participants,
		"total":        len(participants),
	})
}

func (cc *ChallengeController) GetPendingRegistrations(c *gin.Context) {
	challenge, ok := cc.loadManaged(c)
	if !ok {
		return
	}

	var pending []models.ChallengeParticipant
	if err := cc.db.Preload("User").
		Where("challenge_id = ? AND status = ?", challenge.ID, models.ParticipantStatusPending).
		Order("joined_at ASC").
		Find(&pending).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending registrations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pending": pending,
		"total":   len(pending),
	})
}

// ApproveRegistration activates a pending participant and notifies them by
// notification and email.
func (cc *ChallengeController) ApproveRegistration(c *gin.Context) {
	challenge, ok := cc.loadManaged(c)
	if !ok {
		return
	}
	actorID := c.GetString("user_id")

	// Participants are unique per (challenge_id, user_id), so the user id
	// identifies the row.
	var participant models.ChallengeParticipant
	if err := cc.db.Preload("User").
		First(&participant, "challenge_id = ? AND user_id = ?", challenge.ID, c.Param("userId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
		return
	}
	if participant.Status != models.ParticipantStatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Registration is not pending"})
		return
	}

	if err := cc.db.Model(&participant).Update("status", models.ParticipantStatusActive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve registration"})
		return
	}

	if participant.UserID != nil {
		if err := cc.notifications.CreateApprovalNotification(actorID, *participant.UserID, challenge.ID); err != nil {
			fmt.Printf("Failed to create approval notification: %v\n", err)
		}
	}
	if participant.User != nil {
		go func(email, name, challengeName string) {
			if err := cc.emailService.SendRegistrationApprovedEmail(email, name, challengeName); err != nil {
				fmt.Printf("Failed to send approval email: %v\n", err)
			}
		}(participant.User.Email, participant.User.Name, challenge.Name)
	}

	cc.leaderboards.Invalidate(c.Request.Context(), challenge.ID)
	cc.hub.BroadcastToChallenge(challenge.ID, realtime.Message{
		Type:    realtime.MessageLeaderboardUpdated,
		Payload: gin.H{"approved_participant": participant.ID},
	})

	c.JSON(http.StatusOK, gin.H{"message": "Registration approved"})
}

// RejectRegistration removes a pending participant row.
func (cc *ChallengeController) RejectRegistration(c *gin.Context) {
	challenge, ok := cc.loadManaged(c)
	if !ok {
		return
	}
	actorID := c.GetString("user_id")

	var participant models.ChallengeParticipant
	if err := cc.db.First(&participant, "challenge_id = ? AND user_id = ?", challenge.ID, c.Param("userId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
		return
	}
	if participant.Status != models.ParticipantStatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Registration is not pending"})
		return
	}

	if err := cc.db.Delete(&participant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject registration"})
		return
	}
	cc.db.Model(challenge).Where("participant_count > 0").
		Update("participant_count", gorm.Expr("participant_count - 1"))

	if participant.UserID != nil {
		if err := cc.notifications.CreateRejectionNotification(actorID, *participant.UserID, challenge.ID); err != nil {
			fmt.Printf("Failed to create rejection notification: %v\n", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registration rejected"})
}

// UploadCoverImage stores a challenge cover image in object storage.
func (cc *ChallengeController) UploadCoverImage(c *gin.Context) {
	challenge, ok := cc.loadManaged(c)
	if !ok {
		return
	}

	if cc.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "File storage is not configured"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	if header.Size > 5<<20 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 5MB limit"})
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image uploads are allowed"})
		return
	}

	key := fmt.Sprintf("challenges/%s/cover-%d", challenge.ID, time.Now().Unix())
	result, err := cc.uploader.Upload(c.Request.Context(), key, contentType, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload cover image"})
		return
	}

	// Best effort cleanup of the previous cover
	if challenge.CoverImageKey != nil {
		if err := cc.uploader.Delete(c.Request.Context(), *challenge.CoverImageKey); err != nil {
			fmt.Printf("Failed to delete old cover image: %v\n", err)
		}
	}

	publicURL := cc.uploader.GetPublicURL(result.Key)
	if err := cc.db.Model(challenge).Updates(map[string]interface{}{
		"cover_image_url": publicURL,
		"cover_image_key": result.Key,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cover image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Cover image uploaded",
		"cover_image_url": publicURL,
	})
}

// GetMyChallenges lists the viewer's registrations with their challenges.
func (cc *ChallengeController) GetMyChallenges(c *gin.Context) {
	userID := c.GetString("user_id")

	var participations []models.ChallengeParticipant
	if err := cc.db.Preload("Challenge").Preload("Challenge.Club").
		Where("user_id = ?", userID).
		Order("joined_at DESC").
		Find(&participations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch challenges"})
		return
	}

	now := time.Now()
	for i := range participations {
		if participations[i].Challenge != nil {
			status := participations[i].Status
			cc.decorate(participations[i].Challenge, &status, now)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"participations": participations,
		"total":          len(participations),
	})
}

// Helpers

// decorate fills the transient display fields on a challenge.
func (cc *ChallengeController) decorate(ch *models.Challenge, viewerStatus *models.ParticipantStatus, now time.Time) {
	ch.UserRegistrationStatus = viewerStatus
	ch.State = string(lifecycle.DeriveChallengeState(ch, now))
	ch.RegistrationAction = string(lifecycle.EvaluateRegistration(ch, viewerStatus, now))
}

// viewerStatus returns the viewer's participant status for a challenge, or
// nil when unauthenticated or not registered.
func (cc *ChallengeController) viewerStatus(challengeID, userID string) *models.ParticipantStatus {
	if userID == "" {
		return nil
	}
	var participant models.ChallengeParticipant
	if err := cc.db.Select("status").
		First(&participant, "challenge_id = ? AND user_id = ?", challengeID, userID).Error; err != nil {
		return nil
	}
	status := participant.Status
	return &status
}

// viewerStatuses batches the overlay lookup for a challenge list.
func (cc *ChallengeController) viewerStatuses(userID string, challenges []models.Challenge) map[string]*models.ParticipantStatus {
	overlays := make(map[string]*models.ParticipantStatus, len(challenges))
	if userID == "" || len(challenges) == 0 {
		return overlays
	}

	ids := make([]string, 0, len(challenges))
	for _, ch := range challenges {
		ids = append(ids, ch.ID)
	}

	var rows []models.ChallengeParticipant
	if err := cc.db.Select("challenge_id", "status").
		Where("challenge_id IN ? AND user_id = ?", ids, userID).
		Find(&rows).Error; err != nil {
		return overlays
	}
	for i := range rows {
		status := rows[i].Status
		overlays[rows[i].ChallengeID] = &status
	}
	return overlays
}

// loadManaged loads the challenge and enforces that the caller is its
// creator or an admin.
func (cc *ChallengeController) loadManaged(c *gin.Context) (*models.Challenge, bool) {
	var challenge models.Challenge
	if err := cc.db.First(&challenge, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return nil, false
	}

	userID := c.GetString("user_id")
	if challenge.CreatedBy != userID && c.GetString("role") != string(models.UserRoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the challenge creator can do this"})
		return nil, false
	}
	return &challenge, true
}

// validateChallengeDates enforces the date invariants shared by create and
// update: end after start, registration window ordered and never past the
// challenge end.
func validateChallengeDates(start, end time.Time, regStart, regEnd *time.Time) string {
	if !end.After(start) {
		return "end_date must be after start_date"
	}
	if regStart != nil && regEnd != nil && regEnd.Before(*regStart) {
		return "registration_end_date must not be before registration_start_date"
	}
	if regEnd != nil && regEnd.After(end) {
		return "registration_end_date must not be after end_date"
	}
	return ""
}

// generateChallengeCode produces a short shareable code like XC-4F2A9C.
func generateChallengeCode() string {
	const hexDigits = "0123456789ABCDEF"
	b := make([]byte, 6)
	rand.Read(b)
	code := make([]byte, 6)
	for i, v := range b {
		code[i] = hexDigits[int(v)%len(hexDigits)]
	}
	return "XC-" + string(code)
}
