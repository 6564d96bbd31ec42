package middleware

import (
	"net/http"
	"strings"

	"github.com/N4171k/45DOC/internal/database"
	"github.com/N4171k/45DOC/internal/models"
	"github.com/N4171k/45DOC/internal/session"
	"github.com/gin-gonic/gin"
)

// MaintenanceMode blocks non-admin users while maintenance_mode is on. It
// must run after OptionalAuthMiddleware so admins are recognised. Auth
// routes and the health check stay reachable.
func MaintenanceMode() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !database.IsFeatureEnabled(models.SettingMaintenanceMode) {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/auth/") || path == "/health" {
			c.Next()
			return
		}
		if session.From(c).IsAdmin {
			c.Next()
			return
		}

		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Maintenance in progress",
			"message": "CodeStreak is currently under maintenance. Please try again later.",
		})
		c.Abort()
	}
}

// FeatureGate answers 503 when the setting key is off.
func FeatureGate(key, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !database.IsFeatureEnabled(key) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": message})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSubmissionsEnabled blocks submission endpoints when disabled
func RequireSubmissionsEnabled() gin.HandlerFunc {
	return FeatureGate(models.SettingSubmissionsEnabled, "Submissions are currently disabled")
}

// RequireRegistrationOpen blocks user registration when disabled
func RequireRegistrationOpen() gin.HandlerFunc {
	return FeatureGate(models.SettingRegistrationOpen, "User registration is currently closed")
}
