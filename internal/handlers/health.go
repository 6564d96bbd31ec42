package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/N4171k/45DOC/internal/database"
	"github.com/gin-gonic/gin"
)

// Health reports database and Redis reachability.
func Health(c *gin.Context) {
	dbStatus := "ok"
	redisStatus := "ok"

	if database.DB == nil {
		dbStatus = "error"
	} else if sqlDB, err := database.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "error"
	}

	if database.Redis != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if _, err := database.Redis.Ping(ctx).Result(); err != nil {
			redisStatus = "error"
		}
	} else {
		redisStatus = "not configured"
	}

	status := "ok"
	if dbStatus != "ok" || redisStatus == "error" {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"message": "CodeStreak API is running",
		"checks": gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		},
	})
}
