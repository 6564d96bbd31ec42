package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/N4171k/45DOC/internal/database"
	"github.com/N4171k/45DOC/internal/models"
	"github.com/N4171k/45DOC/internal/services"
	"github.com/N4171k/45DOC/internal/session"
	apperrors "github.com/N4171k/45DOC/pkg/errors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func GetProfile(c *gin.Context) {
	s := session.From(c)
	var user models.User
	err := database.DB.First(&user, "id = ?", s.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, apperrors.NotFound("User not found"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetStreak computes the current streak from the user's completion cache,
// using calendar days in the requested zone.
func GetStreak(c *gin.Context) {
	loc, err := requestLocation(c)
	if err != nil {
		respondError(c, err)
		return
	}
	s := session.From(c)
	doc := submissionFlow.Store().All(c.Request.Context(), s.Profile())
	c.JSON(http.StatusOK, gin.H{
		"streak":   services.StreakFromRecords(doc, time.Now().In(loc)),
		"timezone": loc.String(),
	})
}

func GetStats(c *gin.Context) {
	loc, err := requestLocation(c)
	if err != nil {
		respondError(c, err)
		return
	}
	s := session.From(c)
	doc := submissionFlow.Store().All(c.Request.Context(), s.Profile())
	c.JSON(http.StatusOK, gin.H{"stats": services.Stats(doc, time.Now().In(loc))})
}

func ListCompletions(c *gin.Context) {
	s := session.From(c)
	c.JSON(http.StatusOK, gin.H{"completions": submissionFlow.Store().All(c.Request.Context(), s.Profile())})
}

// SyncCompletions rebuilds the user's cache from their remote submissions.
func SyncCompletions(c *gin.Context) {
	s := session.From(c)
	doc, err := submissionFlow.Reconcile(c.Request.Context(), s)
	if err != nil {
		if errors.Is(err, services.ErrNotAuthenticated) {
			respondError(c, err)
			return
		}
		respondError(c, apperrors.BadGateway("Could not sync completions. Please try again.", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"completions": doc})
}
