package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/N4171k/45DOC/internal/database"
	"github.com/N4171k/45DOC/internal/models"
	"github.com/N4171k/45DOC/internal/services"
	"github.com/N4171k/45DOC/internal/session"
	apperrors "github.com/N4171k/45DOC/pkg/errors"
	"github.com/N4171k/45DOC/pkg/logger"
	"github.com/N4171k/45DOC/pkg/utils"
	"github.com/gin-gonic/gin"
)

// AdminListSubmissions returns the newest submissions, optionally filtered
// by ?email= (partial, case-insensitive).
func AdminListSubmissions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	emailLike := ""
	if q := c.Query("email"); q != "" {
		emailLike = utils.SanitizeSearchQuery(q)
	}
	list, err := services.NewGormSink(database.DB).ListRecent(c.Request.Context(), emailLike, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": list, "count": len(list)})
}

type QuestionInput struct {
	Difficulty  models.Difficulty `json:"difficulty" binding:"required,oneof=easy medium hard"`
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description" binding:"required"`
	Link        string            `json:"link" binding:"required,url"`
}

type ChallengeInput struct {
	Day         int             `json:"day" binding:"required,min=1"`
	Date        time.Time       `json:"date" binding:"required"`
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Questions   []QuestionInput `json:"questions" binding:"required,min=1,dive"`
}

func AdminAddChallenge(c *gin.Context) {
	var input ChallengeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	seen := make(map[models.Difficulty]bool, len(input.Questions))
	ch := models.Challenge{
		Day:         input.Day,
		Date:        input.Date,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
	}
	for _, q := range input.Questions {
		if seen[q.Difficulty] {
			respondError(c, apperrors.Validation("Please correct the highlighted fields.",
				map[string]string{"questions": "Only one question per difficulty is allowed."}))
			return
		}
		seen[q.Difficulty] = true
		ch.Questions = append(ch.Questions, models.Question{
			Difficulty:  q.Difficulty,
			Title:       q.Title,
			Description: q.Description,
			Link:        q.Link,
		})
	}

	var count int64
	database.DB.Model(&models.Challenge{}).Where("day = ?", input.Day).Count(&count)
	if count > 0 {
		respondError(c, apperrors.Conflict("A challenge for day "+strconv.Itoa(input.Day)+" already exists"))
		return
	}

	if err := database.DB.Create(&ch).Error; err != nil {
		respondError(c, err)
		return
	}
	if err := database.CacheInvalidate("challenges:*"); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate challenge cache")
	}

	logger.Info().Str("admin_id", session.From(c).UserID).Int("day", ch.Day).Msg("Challenge added")
	c.JSON(http.StatusCreated, gin.H{"challenge": ch})
}

func AdminListSettings(c *gin.Context) {
	var settings []models.SystemSettings
	if err := database.DB.Order("key ASC").Find(&settings).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

type SettingInput struct {
	Value *bool `json:"value" binding:"required"`
}

// AdminUpdateSetting switches a feature gate on or off.
func AdminUpdateSetting(c *gin.Context) {
	key := c.Param("key")
	if !models.KnownSettings[key] {
		respondError(c, apperrors.NotFound("Unknown setting: "+key))
		return
	}
	var input SettingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	s := session.From(c)
	setting, err := database.SetSetting(key, strconv.FormatBool(*input.Value), s.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info().Str("admin_id", s.UserID).Str("key", key).Bool("value", *input.Value).Msg("System setting updated")
	c.JSON(http.StatusOK, gin.H{"setting": setting})
}
