// File: /controllers/club_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"xclub-api/models"
	"xclub-api/storage"
	"xclub-api/utils"
)

type ClubController struct {
	db            *gorm.DB
	uploader      storage.FileUploader
	notifications *NotificationController
}

func NewClubController(db *gorm.DB, uploader storage.FileUploader) *ClubController {
	return &ClubController{
		db:            db,
		uploader:      uploader,
		notifications: NewNotificationController(db),
	}
}

type CreateClubRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=255"`
	Description string `json:"description"`
	City        string `json:"city" binding:"omitempty,max=100"`
}

func (cc *ClubController) CreateClub(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	club := models.Club{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Slug:        cc.generateUniqueSlug(req.Name),
		Description: req.Description,
		City:        req.City,
		MemberCount: 1,
		CreatedBy:   userID,
	}
	if err := cc.db.Create(&club).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create club"})
		return
	}

	// The creator is the first admin member
	member := models.ClubMember{
		ClubID:   club.ID,
		UserID:   userID,
		Role:     models.ClubRoleAdmin,
		JoinedAt: time.Now(),
	}
	if err := cc.db.Create(&member).Error; err != nil {
		fmt.Printf("Failed to create club admin membership: %v\n", err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Club created successfully",
		"club":    club,
	})
}

func (cc *ClubController) GetClubs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	query := cc.db.Model(&models.Club{})
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ? OR city LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch clubs"})
		return
	}

	var clubs []models.Club
	offset := (page - 1) * limit
	if err := query.Order("member_count DESC").
		Offset(offset).
		Limit(limit).
		Find(&clubs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch clubs"})
		return
	}

	utils.SendPaginated(c, clubs, page, limit, total)
}

func (cc *ClubController) GetClub(c *gin.Context) {
	var club models.Club
	if err := cc.db.Preload("Creator").
		First(&club, "id = ? OR slug = ?", c.Param("id"), c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Club not found"})
		return
	}

	c.JSON(http.StatusOK, club)
}

func (cc *ClubController) GetClubMembers(c *gin.Context) {
	var club models.Club
	if err := cc.db.First(&club, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Club not found"})
		return
	}

	var members []models.ClubMember
	if err := cc.db.Preload("User").
		Where("club_id = ?", club.ID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch members"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members": members,
		"total":   len(members),
	})
}

func (cc *ClubController) JoinClub(c *gin.Context) {
	userID := c.GetString("user_id")

	var club models.Club
	if err := cc.db.First(&club, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Club not found"})
		return
	}

	var existing models.ClubMember
	if err := cc.db.First(&existing, "club_id = ? AND user_id = ?", club.ID, userID).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already a member of this club"})
		return
	}

	member := models.ClubMember{
		ClubID:   club.ID,
		UserID:   userID,
		Role:     models.ClubRoleMember,
		JoinedAt: time.Now(),
	}
	if err := cc.db.Create(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join club"})
		return
	}
	cc.db.Model(&club).Update("member_count", gorm.Expr("member_count + 1"))

	if err := cc.notifications.CreateClubJoinNotification(userID, club.CreatedBy, club.ID); err != nil {
		fmt.Printf("Failed to create club join notification: %v\n", err)
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Joined club successfully"})
}

func (cc *ClubController) LeaveClub(c *gin.Context) {
	userID := c.GetString("user_id")

	var club models.Club
	if err := cc.db.First(&club, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Club not found"})
		return
	}

	var member models.ClubMember
	if err := cc.db.First(&member, "club_id = ? AND user_id = ?", club.ID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not a member of this club"})
		return
	}
	if club.CreatedBy == userID {
		c.JSON(http.StatusConflict, gin.H{"error": "The club creator cannot leave the club"})
		return
	}

	if err := cc.db.Delete(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave club"})
		return
	}
	cc.db.Model(&club).Where("member_count > 0").
		Update("member_count", gorm.Expr("member_count - 1"))

	c.JSON(http.StatusOK, gin.H{"message": "Left club successfully"})
}

// UploadLogo stores a club logo in object storage. Club admins only.
func (cc *ClubController) UploadLogo(c *gin.Context) {
	userID := c.GetString("user_id")

	var club models.Club
	if err := cc.db.First(&club, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Club not found"})
		return
	}

	var member models.ClubMember
	err := cc.db.First(&member, "club_id = ? AND user_id = ? AND role = ?", club.ID, userID, models.ClubRoleAdmin).Error
	if err != nil && c.GetString("role") != string(models.UserRoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only club admins can upload the logo"})
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

	if header.Size > 2<<20 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 2MB limit"})
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image uploads are allowed"})
		return
	}

	key := fmt.Sprintf("clubs/%s/logo-%d", club.ID, time.Now().Unix())
	result, err := cc.uploader.Upload(c.Request.Context(), key, contentType, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload logo"})
		return
	}

	if club.LogoKey != nil {
		if err := cc.uploader.Delete(c.Request.Context(), *club.LogoKey); err != nil {
			fmt.Printf("Failed to delete old club logo: %v\n", err)
		}
	}

	publicURL := cc.uploader.GetPublicURL(result.Key)
	if err := cc.db.Model(&club).Updates(map[string]interface{}{
		"logo_url": publicURL,
		"logo_key": result.Key,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save logo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Logo uploaded",
		"logo_url": publicURL,
	})
}

func (cc *ClubController) generateUniqueSlug(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "-")
	var cleaned strings.Builder
	for _, r := range base {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			cleaned.WriteRune(r)
		}
	}
	slug := cleaned.String()
	if slug == "" {
		slug = "club"
	}

	candidate := slug
	counter := 1
	for {
		var existing models.Club
		if err := cc.db.Where("slug = ?", candidate).First(&existing).Error; err != nil {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", slug, counter)
		counter++
	}
}
