package routes

import (
	"github.com/N4171k/45DOC/internal/handlers"
	"github.com/N4171k/45DOC/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterAdminRoutes(rg gin.IRouter) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminOnly())

	admin.GET("/submissions", handlers.AdminListSubmissions)
	admin.POST("/challenges", handlers.AdminAddChallenge)
	admin.GET("/settings", handlers.AdminListSettings)
	admin.PUT("/settings/:key", handlers.AdminUpdateSetting)
}
