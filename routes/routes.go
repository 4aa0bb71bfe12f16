package routes

import (
	"manuscript-review-api/controllers"
	"manuscript-review-api/middleware"
	"manuscript-review-api/models"

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
					"message": "Manuscript Review API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)

			// Articles
			articles := protected.Group("/articles")
			{
				articles.GET("", controllers.GetArticles)
				articles.GET("/:id", controllers.GetArticle)
				articles.POST("", controllers.CreateArticle)
				articles.PUT("/:id", controllers.UpdateArticle)
				articles.DELETE("/:id", controllers.DeleteArticle)

				// Workflow actions on the article
				articles.POST("/:id/submit", controllers.SubmitArticle)
				articles.POST("/:id/withdraw", controllers.WithdrawArticle)
				articles.POST("/:id/publish",
					middleware.RequireRole(models.RoleEditor, models.RoleAdmin),
					controllers.PublishArticle)

				// Co-authors
				articles.GET("/:id/coauthors", controllers.GetCoauthors)
				articles.POST("/:id/coauthors", controllers.AddCoauthor)
				articles.DELETE("/:id/coauthors/:user_id", controllers.RemoveCoauthor)
			}

			// Submissions
			submissions := protected.Group("/submissions")
			{
				submissions.GET("", controllers.GetSubmissions)
				submissions.GET("/:id", controllers.GetSubmission)
				submissions.GET("/:id/history", controllers.GetSubmissionHistory)

				// Only editors/admins assign reviewers and decide
				submissions.POST("/:id/assign",
					middleware.RequireRole(models.RoleEditor, models.RoleAdmin),
					controllers.AssignReviewers)
				submissions.GET("/:id/assignments",
					middleware.RequireRole(models.RoleEditor, models.RoleAdmin),
					controllers.GetAssignments)
				submissions.POST("/:id/decide",
					middleware.RequireRole(models.RoleEditor, models.RoleAdmin),
					controllers.DecideSubmission)

				// Reviews (the engine checks assignment for reviewer role)
				submissions.POST("/:id/reviews", controllers.SubmitReview)
				submissions.GET("/:id/reviews", controllers.GetReviews)
			}

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
			}

			// Metrics
			metrics := protected.Group("/metrics")
			metrics.Use(middleware.RequireRole(models.RoleEditor, models.RoleAdmin))
			{
				metrics.GET("/review-times", controllers.GetReviewTurnaround)
			}
		}
	}
}
