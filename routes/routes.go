package routes

import (
	"research-approval-api/controllers"
	"research-approval-api/middleware"
	"research-approval-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Research Approval API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Reviewer assignment (admin only for mutations)
			submissions := protected.Group("/submissions")
			{
				submissions.GET("/:id/reviewers", controllers.GetSubmissionReviewers)

				submissions.POST("/:id/reviewers", middleware.RequireRole(models.RoleAdmin), controllers.AssignReviewers)
				submissions.DELETE("/:id/reviewers/:user_id", middleware.RequireRole(models.RoleAdmin), controllers.RemoveReviewer)
				// Legacy form posts cannot issue DELETE
				submissions.POST("/:id/reviewers/:user_id/remove", middleware.RequireRole(models.RoleAdmin), controllers.RemoveReviewer)
			}

			// Legacy admin AJAX endpoints (submission id in the body)
			protected.POST("/assign-reviewers", middleware.RequireRole(models.RoleAdmin), controllers.AssignReviewersLegacy)
			protected.POST("/remove-reviewer", middleware.RequireRole(models.RoleAdmin), controllers.RemoveReviewerLegacy)

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.GET("/counter", controllers.GetNotificationCounter)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
			}
		}
	}
}
