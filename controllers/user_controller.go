// File: /controllers/user_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"xclub-api/models"
	"xclub-api/storage"
)

type UserController struct {
	db       *gorm.DB
	uploader storage.FileUploader
}

func NewUserController(db *gorm.DB, uploader storage.FileUploader) *UserController {
	return &UserController{db: db, uploader: uploader}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := uc.db.Preload("ClubMemberships.Club").First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		Name   *string `json:"name"`
		Avatar *string `json:"avatar"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}

	if err := uc.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

func (uc *UserController) GetStatistics(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var activitiesCount int64
	uc.db.Model(&models.Activity{}).Where("user_id = ?", userID).Count(&activitiesCount)

	var challengesCount int64
	uc.db.Model(&models.ChallengeParticipant{}).Where("user_id = ?", userID).Count(&challengesCount)

	var completedChallenges int64
	uc.db.Model(&models.ChallengeParticipant{}).
		Where("user_id = ? AND status = ?", userID, models.ParticipantStatusCompleted).
		Count(&completedChallenges)

	var clubsCount int64
	uc.db.Model(&models.ClubMember{}).Where("user_id = ?", userID).Count(&clubsCount)

	statistics := gin.H{
		"activities_count":     activitiesCount,
		"challenges_count":     challengesCount,
		"completed_challenges": completedChallenges,
		"clubs_count":          clubsCount,
		"total_time":           user.TotalTime,
		"total_distance":       user.TotalDistance,
	}

	c.JSON(http.StatusOK, statistics)
}

// GetUser returns another user's public profile.
func (uc *UserController) GetUser(c *gin.Context) {
	var user models.User
	if err := uc.db.First(&user, "id = ? OR handle = ?", c.Param("id"), c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user.Password = ""
	user.Email = ""
	c.JSON(http.StatusOK, user)
}

// UploadAvatar stores a profile picture in object storage.
func (uc *UserController) UploadAvatar(c *gin.Context) {
	userID := c.GetString("user_id")

	if uc.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "File storage is not configured"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	if header.Size > 2<<20 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 2MB limit"})
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image uploads are allowed"})
		return
	}

	key := fmt.Sprintf("users/%s/avatar-%d", userID, time.Now().Unix())
	result, err := uc.uploader.Upload(c.Request.Context(), key, contentType, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload avatar"})
		return
	}

	publicURL := uc.uploader.GetPublicURL(result.Key)
	if err := uc.db.Model(&models.User{}).Where("id = ?", userID).
		Update("avatar", publicURL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save avatar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Avatar uploaded",
		"avatar":  publicURL,
	})
}
