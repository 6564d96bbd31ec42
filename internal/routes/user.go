package routes

import (
	"github.com/N4171k/45DOC/internal/handlers"
	"github.com/N4171k/45DOC/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(r gin.IRouter) {
	me := r.Group("/users/me")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("", handlers.GetProfile)
		me.GET("/streak", handlers.GetStreak)
		me.GET("/stats", handlers.GetStats)
		me.GET("/completions", handlers.ListCompletions)
		me.POST("/completions/sync", handlers.SyncCompletions)
	}
}
