package routes

import (
	"github.com/N4171k/45DOC/internal/handlers"
	"github.com/N4171k/45DOC/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterChallengeRoutes(r gin.IRouter) {
	challenges := r.Group("/challenges")
	{
		challenges.GET("", handlers.ListChallenges)
		challenges.GET("/today", handlers.GetTodayChallenge)
		challenges.GET("/:day", handlers.GetChallenge)
		challenges.GET("/:day/:difficulty", handlers.GetQuestion)

		protected := challenges.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/:day/:difficulty/submit",
				middleware.RequireSubmissionsEnabled(), middleware.SubmitRateLimit(), handlers.SubmitSolution)
			protected.GET("/:day/:difficulty/completion", handlers.GetCompletion)
			protected.POST("/:day/:difficulty/reset", handlers.ResetCompletion)
		}
	}
}
