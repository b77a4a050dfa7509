// File: /controllers/race_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"xclub-api/models"
	"xclub-api/services"
	"xclub-api/utils"
)

type RaceController struct {
	db           *gorm.DB
	emailService *services.EmailService
}

func NewRaceController(db *gorm.DB, emailService *services.EmailService) *RaceController {
	return &RaceController{db: db, emailService: emailService}
}

type CreateRaceRequest struct {
	Title           string             `json:"title" binding:"required,min=3,max=255"`
	Description     string             `json:"description" binding:"required"`
	ClubID          *string            `json:"club_id"`
	RaceDate        time.Time          `json:"race_date" binding:"required"`
	LocationName    string             `json:"location_name" binding:"required,max=255"`
	LocationAddress string             `json:"location_address" binding:"omitempty,max=500"`
	DistanceKm      float64            `json:"distance_km" binding:"omitempty,min=0"`
	Difficulty      string             `json:"difficulty" binding:"required,oneof=easy medium hard"`
	RegistrationFee float64            `json:"registration_fee" binding:"omitempty,min=0"`
	MaxParticipants int                `json:"max_participants" binding:"required,min=1"`
	Tags            models.StringSlice `json:"tags"`
	ImageUrls       models.StringSlice `json:"image_urls"`
}

func (rc *RaceController) CreateRace(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateRaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.RaceDate.After(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "race_date must be in the future"})
		return
	}

	var organizer models.User
	if err := rc.db.First(&organizer, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load organizer"})
		return
	}

	race := models.RaceEvent{
		ID:              uuid.New().String(),
		Title:           req.Title,
		Description:     req.Description,
		ClubID:          req.ClubID,
		OrganizerID:     userID,
		OrganizerName:   organizer.Name,
		RaceDate:        req.RaceDate,
		LocationName:    req.LocationName,
		LocationAddress: req.LocationAddress,
		DistanceKm:      req.DistanceKm,
		Difficulty:      req.Difficulty,
		RegistrationFee: req.RegistrationFee,
		MaxParticipants: req.MaxParticipants,
		Tags:            req.Tags,
		ImageUrls:       req.ImageUrls,
	}
	if err := rc.db.Create(&race).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create race"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Race created successfully",
		"race":    race,
	})
}

func (rc *RaceController) GetRaces(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	query := rc.db.Model(&models.RaceEvent{})
	if search := c.Query("search"); search != "" {
		query = query.Where("title LIKE ? OR location_name LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if difficulty := c.Query("difficulty"); difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}
	if clubID := c.Query("club_id"); clubID != "" {
		query = query.Where("club_id = ?", clubID)
	}
	if c.Query("upcoming") == "true" {
		query = query.Where("race_date > ?", time.Now())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch races"})
		return
	}

	var races []models.RaceEvent
	offset := (page - 1) * limit
	if err := query.Order("race_date ASC").
		Offset(offset).
		Limit(limit).
		Find(&races).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch races"})
		return
	}

	utils.SendPaginated(c, races, page, limit, total)
}

func (rc *RaceController) GetRace(c *gin.Context) {
	var race models.RaceEvent
	if err := rc.db.Preload("Organizer").Preload("Club").
		First(&race, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Race not found"})
		return
	}

	c.JSON(http.StatusOK, race)
}

type RaceRegistrationRequest struct {
	EmergencyContactName  string `json:"emergency_contact_name" binding:"required,max=255"`
	EmergencyContactPhone string `json:"emergency_contact_phone" binding:"required,max=50"`
	MedicalNotes          string `json:"medical_notes"`
}

// RegisterForRace registers the viewer and assigns the next bib number.
func (rc *RaceController) RegisterForRace(c *gin.Context) {
	userID := c.GetString("user_id")

	var req RaceRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !utils.IsValidPhone(req.EmergencyContactPhone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid emergency contact phone number"})
		return
	}

	var race models.RaceEvent
	if err := rc.db.First(&race, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Race not found"})
		return
	}

	if race.RaceDate.Before(time.Now()) {
		c.JSON(http.StatusConflict, gin.H{"error": "Race has already taken place"})
		return
	}
	if race.IsFull || race.ParticipantsCount >= race.MaxParticipants {
		c.JSON(http.StatusConflict, gin.H{"error": "Race is full"})
		return
	}

	var existing models.RaceRegistration
	err := rc.db.First(&existing, "race_id = ? AND user_id = ? AND status = ?",
		race.ID, userID, models.RaceRegistrationStatusRegistered).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already registered for this race"})
		return
	}

	bib := race.ParticipantsCount + 1
	registration := models.RaceRegistration{
		RaceID:                race.ID,
		UserID:                userID,
		BibNumber:             &bib,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		MedicalNotes:          req.MedicalNotes,
		Status:                models.RaceRegistrationStatusRegistered,
	}
	if err := rc.db.Create(&registration).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register for race"})
		return
	}

	updates := map[string]interface{}{
		"participants_count": gorm.Expr("participants_count + 1"),
	}
	if race.ParticipantsCount+1 >= race.MaxParticipants {
		updates["is_full"] = true
	}
	rc.db.Model(&race).Updates(updates)

	var user models.User
	if err := rc.db.First(&user, "id = ?", userID).Error; err == nil {
		go func(email, name, title string, raceDate time.Time) {
			if err := rc.emailService.SendRaceRegistrationEmail(email, name, title, raceDate); err != nil {
				fmt.Printf("Failed to send race registration email: %v\n", err)
			}
		}(user.Email, user.Name, race.Title, race.RaceDate)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Registered for race",
		"registration": registration,
	})
}

// CancelRaceRegistration cancels the viewer's registration and frees the
// spot.
func (rc *RaceController) CancelRaceRegistration(c *gin.Context) {
	userID := c.GetString("user_id")

	var registration models.RaceRegistration
	err := rc.db.First(&registration, "race_id = ? AND user_id = ? AND status = ?",
		c.Param("id"), userID, models.RaceRegistrationStatusRegistered).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
		return
	}

	if err := rc.db.Model(&registration).Update("status", models.RaceRegistrationStatusCancelled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel registration"})
		return
	}

	rc.db.Model(&models.RaceEvent{}).Where("id = ? AND participants_count > 0", registration.RaceID).
		Updates(map[string]interface{}{
			"participants_count": gorm.Expr("participants_count - 1"),
			"is_full":            false,
		})

	c.JSON(http.StatusOK, gin.H{"message": "Registration cancelled"})
}

// GetMyRaceRegistrations lists the viewer's race registrations.
func (rc *RaceController) GetMyRaceRegistrations(c *gin.Context) {
	userID := c.GetString("user_id")

	var registrations []models.RaceRegistration
	if err := rc.db.Preload("Race").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&registrations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch registrations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"registrations": registrations,
		"total":         len(registrations),
	})
}
