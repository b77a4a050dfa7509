// File: /controllers/leaderboard_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
	"xclub-api/models"
	"xclub-api/realtime"
	"xclub-api/services"
)

type LeaderboardController struct {
	db           *gorm.DB
	leaderboards *services.LeaderboardService
	hub          *realtime.Hub
	upgrader     websocket.Upgrader
}

func NewLeaderboardController(db *gorm.DB, leaderboards *services.LeaderboardService, hub *realtime.Hub) *LeaderboardController {
	return &LeaderboardController{
		db:           db,
		leaderboards: leaderboards,
		hub:          hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (lc *LeaderboardController) loadChallenge(c *gin.Context) (*models.Challenge, bool) {
	var challenge models.Challenge
	if err := lc.db.First(&challenge, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return nil, false
	}
	return &challenge, true
}

// GetLeaderboard returns the ranked individual board.
func (lc *LeaderboardController) GetLeaderboard(c *gin.Context) {
	challenge, ok := lc.loadChallenge(c)
	if !ok {
		return
	}

	entries, err := lc.leaderboards.IndividualLeaderboard(c.Request.Context(), challenge)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leaderboard": entries,
		"total":       len(entries),
	})
}

// GetTeamLeaderboard returns the ranked team board. Individual challenges
// have no team board.
func (lc *LeaderboardController) GetTeamLeaderboard(c *gin.Context) {
	challenge, ok := lc.loadChallenge(c)
	if !ok {
		return
	}
	if challenge.Category != models.ChallengeCategoryTeam {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Not a team challenge"})
		return
	}

	entries, err := lc.leaderboards.TeamLeaderboard(c.Request.Context(), challenge)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build team leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"team_leaderboard": entries,
		"total":            len(entries),
	})
}

// GetCompletionStats returns the completion aggregate.
func (lc *LeaderboardController) GetCompletionStats(c *gin.Context) {
	challenge, ok := lc.loadChallenge(c)
	if !ok {
		return
	}

	stats, err := lc.leaderboards.CompletionStats(c.Request.Context(), challenge)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute completion stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetDashboard bundles leaderboard, team board and completion stats for the
// challenge detail page.
func (lc *LeaderboardController) GetDashboard(c *gin.Context) {
	challenge, ok := lc.loadChallenge(c)
	if !ok {
		return
	}

	dashboard, err := lc.leaderboards.Dashboard(c.Request.Context(), challenge)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// Subscribe upgrades the connection to a websocket and joins the challenge
// room for live leaderboard and status updates.
func (lc *LeaderboardController) Subscribe(c *gin.Context) {
	challenge, ok := lc.loadChallenge(c)
	if !ok {
		return
	}

	conn, err := lc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		return
	}

	lc.hub.NewClient(conn, challenge.ID)
}
