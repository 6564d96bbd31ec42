package routes

import (
	"github.com/N4171k/45DOC/internal/handlers"
	"github.com/N4171k/45DOC/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterSubmissionRoutes(r gin.IRouter) {
	submissions := r.Group("/submissions")
	submissions.Use(middleware.AuthMiddleware())
	{
		submissions.POST("", middleware.RequireSubmissionsEnabled(), middleware.SubmitRateLimit(), handlers.CreateSubmission)
		submissions.GET("/mine", handlers.ListMySubmissions)
	}

	r.POST("/review", middleware.AuthMiddleware(), middleware.ReviewRateLimit(), handlers.ReviewCode)
}
