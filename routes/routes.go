// File: /routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"xclub-api/config"
	"xclub-api/controllers"
	"xclub-api/middleware"
	"xclub-api/models"
	"xclub-api/realtime"
	"xclub-api/services"
	"xclub-api/storage"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, emailService *services.EmailService, leaderboards *services.LeaderboardService, hub *realtime.Hub, uploader storage.FileUploader) {
	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret, emailService)
	userController := controllers.NewUserController(db, uploader)
	challengeController := controllers.NewChallengeController(db, leaderboards, emailService, hub, uploader)
	leaderboardController := controllers.NewLeaderboardController(db, leaderboards, hub)
	invitationController := controllers.NewInvitationController(db, emailService)
	clubController := controllers.NewClubController(db, uploader)
	activityController := controllers.NewActivityController(db, leaderboards, hub)
	raceController := controllers.NewRaceController(db, emailService)
	notificationController := controllers.NewNotificationController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/register", authController.Register)
		auth.POST("/logout", authController.Logout)
		auth.POST("/send-verification", authController.SendVerification)
		auth.POST("/verify-code", authController.VerifyCode)
		auth.POST("/reset-password", authController.ResetPassword)

		auth.GET("/debug/verification-code", authController.GetVerificationCode)
	}

	// Public reads. OptionalAuth fills the viewer overlay when a token is
	// present without requiring one.
	public := v1.Group("/")
	public.Use(middleware.OptionalAuth(cfg.JWTSecret))
	{
		challenges := public.Group("/challenges")
		{
			challenges.GET("", challengeController.GetChallenges)
			challenges.GET("/:id", challengeController.GetChallenge)
			challenges.GET("/:id/state", challengeController.GetChallengeState)
			challenges.GET("/:id/participants", challengeController.GetParticipants)
			challenges.GET("/:id/leaderboard", leaderboardController.GetLeaderboard)
			challenges.GET("/:id/team-leaderboard", leaderboardController.GetTeamLeaderboard)
			challenges.GET("/:id/completion-stats", leaderboardController.GetCompletionStats)
			challenges.GET("/:id/dashboard", leaderboardController.GetDashboard)
			challenges.GET("/:id/ws", leaderboardController.Subscribe)
		}

		clubs := public.Group("/clubs")
		{
			clubs.GET("", clubController.GetClubs)
			clubs.GET("/:id", clubController.GetClub)
			clubs.GET("/:id/members", clubController.GetClubMembers)
		}

		races := public.Group("/races")
		{
			races.GET("", raceController.GetRaces)
			races.GET("/:id", raceController.GetRace)
		}
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		// Challenge management and registration
		challenges := protected.Group("/challenges")
		{
			challenges.POST("", challengeController.CreateChallenge)
			challenges.GET("/my", challengeController.GetMyChallenges)
			challenges.PUT("/:id", challengeController.UpdateChallenge)
			challenges.DELETE("/:id", challengeController.DeleteChallenge)
			challenges.PATCH("/:id/status", challengeController.UpdateChallengeStatus)
			challenges.POST("/:id/register", challengeController.RegisterForChallenge)
			challenges.GET("/:id/participants/pending", challengeController.GetPendingRegistrations)
			challenges.POST("/:id/participants/:userId/approve", challengeController.ApproveRegistration)
			challenges.POST("/:id/participants/:userId/reject", challengeController.RejectRegistration)
			challenges.POST("/:id/upload-cover", challengeController.UploadCoverImage)
			challenges.POST("/:id/invitations", invitationController.CreateInvitation)
			challenges.PATCH("/invitations/:id/respond", invitationController.RespondToInvitation)
		}

		// Invitation inbox
		invitations := protected.Group("/invitations")
		{
			invitations.GET("", invitationController.GetMyInvitations)
		}

		// Club membership
		clubs := protected.Group("/clubs")
		{
			clubs.POST("", clubController.CreateClub)
			clubs.POST("/:id/join", clubController.JoinClub)
			clubs.DELETE("/:id/leave", clubController.LeaveClub)
			clubs.POST("/:id/upload-logo", clubController.UploadLogo)
		}

		// Activities
		activities := protected.Group("/activities")
		{
			activities.GET("", activityController.GetActivities)
			activities.POST("", activityController.CreateActivity)
		}

		// Race registrations
		races := protected.Group("/races")
		{
			races.POST("", raceController.CreateRace)
			races.GET("/my-registrations", raceController.GetMyRaceRegistrations)
			races.POST("/:id/register", raceController.RegisterForRace)
			races.DELETE("/:id/register", raceController.CancelRaceRegistration)
		}

		// User routes
		users := protected.Group("/users")
		{
			users.GET("/profile", userController.GetProfile)
			users.PUT("/profile", userController.UpdateProfile)
			users.GET("/statistics", userController.GetStatistics)
			users.POST("/upload-avatar", userController.UploadAvatar)
			users.GET("/:id", userController.GetUser)
		}

		// Notification routes
		notifications := protected.Group("/notifications")
		{
			notifications.GET("", notificationController.GetNotifications)
			notifications.GET("/stats", notificationController.GetNotificationStats)
			notifications.PUT("/:id/read", notificationController.MarkAsRead)
			notifications.PUT("/read-all", notificationController.MarkAllAsRead)
			notifications.DELETE("/:id", notificationController.DeleteNotification)
		}

		// Admin routes
		admin := protected.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/overview", func(c *gin.Context) {
				var users, clubs, challenges, activities int64
				db.Model(&models.User{}).Count(&users)
				db.Model(&models.Club{}).Count(&clubs)
				db.Model(&models.Challenge{}).Count(&challenges)
				db.Model(&models.Activity{}).Count(&activities)
				c.JSON(200, gin.H{
					"users":      users,
					"clubs":      clubs,
					"challenges": challenges,
					"activities": activities,
				})
			})
		}
	}
}
