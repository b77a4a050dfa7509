// File: /controllers/invitation_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"xclub-api/lifecycle"
	"xclub-api/models"
	"xclub-api/services"
)

// Invitations default to a one week response window.
const defaultInvitationTTL = 7 * 24 * time.Hour

type InvitationController struct {
	db            *gorm.DB
	emailService  *services.EmailService
	notifications *NotificationController
}

func NewInvitationController(db *gorm.DB, emailService *services.EmailService) *InvitationController {
	return &InvitationController{
		db:            db,
		emailService:  emailService,
		notifications: NewNotificationController(db),
	}
}

type CreateInvitationRequest struct {
	InviteeID string `json:"invitee_id" binding:"required"`
	ExpiresIn *int   `json:"expires_in"` // hours, optional
}

// CreateInvitation invites a user into a challenge. Only the creator or an
// existing participant may invite.
func (ic *InvitationController) CreateInvitation(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var challenge models.Challenge
	if err := ic.db.First(&challenge, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}

	if challenge.Status == models.ChallengeStatusCompleted || challenge.Status == models.ChallengeStatusCancelled {
		c.JSON(http.StatusConflict, gin.H{"error": "Challenge is no longer accepting invitations"})
		return
	}

	if challenge.CreatedBy != userID {
		var membership models.ChallengeParticipant
		if err := ic.db.First(&membership, "challenge_id = ? AND user_id = ?", challenge.ID, userID).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only participants can invite others"})
			return
		}
	}

	var invitee models.User
	if err := ic.db.First(&invitee, "id = ?", req.InviteeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Already registered users don't need an invitation
	var existing models.ChallengeParticipant
	if err := ic.db.First(&existing, "challenge_id = ? AND user_id = ?", challenge.ID, invitee.ID).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User is already registered for this challenge"})
		return
	}

	var pending models.ChallengeInvitation
	if err := ic.db.First(&pending, "challenge_id = ? AND invitee_id = ? AND status = ?",
		challenge.ID, invitee.ID, models.InvitationStatusPending).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User already has a pending invitation"})
		return
	}

	ttl := defaultInvitationTTL
	if req.ExpiresIn != nil && *req.ExpiresIn > 0 {
		ttl = time.Duration(*req.ExpiresIn) * time.Hour
	}

	invitation := models.ChallengeInvitation{
		ID:          uuid.New().String(),
		ChallengeID: challenge.ID,
		InvitedBy:   userID,
		InviteeID:   invitee.ID,
		Status:      models.InvitationStatusPending,
		ExpiresAt:   time.Now().Add(ttl),
	}
	if err := ic.db.Create(&invitation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invitation"})
		return
	}

	if err := ic.notifications.CreateInviteNotification(userID, invitee.ID, challenge.ID); err != nil {
		fmt.Printf("Failed to create invite notification: %v\n", err)
	}

	var inviter models.User
	if err := ic.db.First(&inviter, "id = ?", userID).Error; err == nil {
		go func(email, name, inviterName, challengeName string, expiresAt time.Time) {
			if err := ic.emailService.SendChallengeInvitationEmail(email, name, inviterName, challengeName, expiresAt); err != nil {
				fmt.Printf("Failed to send invitation email: %v\n", err)
			}
		}(invitee.Email, invitee.Name, inviter.Name, challenge.Name, invitation.ExpiresAt)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Invitation sent",
		"invitation": invitation,
	})
}

// GetMyInvitations lists invitations addressed to the viewer, newest first.
func (ic *InvitationController) GetMyInvitations(c *gin.Context) {
	userID := c.GetString("user_id")

	query := ic.db.Preload("Challenge").Preload("Inviter").
		Where("invitee_id = ?", userID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var invitations []models.ChallengeInvitation
	if err := query.Order("created_at DESC").Find(&invitations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invitations"})
		return
	}

	type invitationView struct {
		models.ChallengeInvitation
		Badge      lifecycle.Badge `json:"badge"`
		CanRespond bool            `json:"can_respond"`
	}

	now := time.Now()
	views := make([]invitationView, 0, len(invitations))
	for i := range invitations {
		views = append(views, invitationView{
			ChallengeInvitation: invitations[i],
			Badge:               lifecycle.InvitationStatusBadge(invitations[i].Status),
			CanRespond:          invitations[i].CanRespond(now),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"invitations": views,
		"total":       len(views),
	})
}

type RespondInvitationRequest struct {
	Status models.InvitationStatus `json:"status" binding:"required,oneof=accepted declined"`
}

// RespondToInvitation accepts or declines a pending invitation. Expired or
// already-responded invitations are immutable and answer 409.
func (ic *InvitationController) RespondToInvitation(c *gin.Context) {
	userID := c.GetString("user_id")

	var req RespondInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var invitation models.ChallengeInvitation
	if err := ic.db.Preload("Challenge").
		First(&invitation, "id = ? AND invitee_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
		return
	}

	now := time.Now()
	if !invitation.CanRespond(now) {
		reason := "Invitation has already been responded to"
		if invitation.Status == models.InvitationStatusPending {
			reason = "Invitation has expired"
		}
		c.JSON(http.StatusConflict, gin.H{"error": reason, "status": invitation.Status})
		return
	}

	status := req.Status

	if err := ic.db.Model(&invitation).Updates(map[string]interface{}{
		"status":       status,
		"responded_at": now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to respond to invitation"})
		return
	}

	response := gin.H{
		"message": "Invitation " + string(status),
		"status":  status,
	}

	// Accepting registers the invitee, bypassing visibility but not the
	// lifecycle rules: a closed or full challenge still refuses.
	if status == models.InvitationStatusAccepted && invitation.Challenge != nil {
		action := lifecycle.EvaluateRegistration(invitation.Challenge, nil, now)
		if !action.Actionable() {
			response["warning"] = lifecycle.RejectionReason(action)
		} else {
			participant := models.ChallengeParticipant{
				ChallengeID: invitation.ChallengeID,
				UserID:      &userID,
				Status:      models.ParticipantStatusActive,
				JoinedAt:    now,
			}
			if err := ic.db.Create(&participant).Error; err == nil {
				ic.db.Model(invitation.Challenge).
					Update("participant_count", gorm.Expr("participant_count + 1"))
				response["participant"] = participant
			}
		}
	}

	c.JSON(http.StatusOK, response)
}
