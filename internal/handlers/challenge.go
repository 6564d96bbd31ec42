package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/N4171k/45DOC/internal/completion"
	"github.com/N4171k/45DOC/internal/config"
	"github.com/N4171k/45DOC/internal/database"
	"github.com/N4171k/45DOC/internal/models"
	"github.com/N4171k/45DOC/internal/services"
	"github.com/N4171k/45DOC/internal/session"
	apperrors "github.com/N4171k/45DOC/pkg/errors"
	"github.com/N4171k/45DOC/pkg/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	challengeListCacheKey = "challenges:all"
	challengeListCacheTTL = 10 * time.Minute
	customDifficulty      = "custom"
)

// requestLocation resolves the calendar zone: ?tz=, then STREAK_TIMEZONE,
// then the server's local zone.
func requestLocation(c *gin.Context) (*time.Location, error) {
	name := c.Query("tz")
	if name == "" && config.AppConfig != nil {
		name = config.AppConfig.StreakTimezone
	}
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, apperrors.BadRequest("Unknown time zone: " + name)
	}
	return loc, nil
}

func loadChallenges() ([]models.Challenge, error) {
	var list []models.Challenge
	if err := database.CacheGet(challengeListCacheKey, &list); err == nil {
		return list, nil
	}
	if err := database.DB.Preload("Questions").Order("day ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	if err := database.CacheSet(challengeListCacheKey, list, challengeListCacheTTL); err != nil {
		logger.Debug().Err(err).Msg("Challenge list not cached")
	}
	return list, nil
}

func parseDay(c *gin.Context) (int, bool) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 1 {
		respondError(c, apperrors.BadRequest("Day must be a positive number"))
		return 0, false
	}
	return day, true
}

func findChallenge(c *gin.Context, day int) (models.Challenge, bool) {
	var ch models.Challenge
	err := database.DB.Preload("Questions").Where("day = ?", day).First(&ch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, apperrors.NotFound("Challenge not found"))
		return ch, false
	}
	if err != nil {
		respondError(c, err)
		return ch, false
	}
	return ch, true
}

func ListChallenges(c *gin.Context) {
	list, err := loadChallenges()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"challenges": list})
}

// GetTodayChallenge returns the challenge whose date falls on today's
// calendar day, or 404 when the calendar has none.
func GetTodayChallenge(c *gin.Context) {
	loc, err := requestLocation(c)
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := loadChallenges()
	if err != nil {
		respondError(c, err)
		return
	}
	now := time.Now()
	for _, ch := range list {
		if services.CalendarDaysBetween(ch.Date, now, loc) == 0 {
			c.JSON(http.StatusOK, gin.H{"challenge": ch})
			return
		}
	}
	respondError(c, apperrors.NotFound("No challenge for today. Check back tomorrow!"))
}

func GetChallenge(c *gin.Context) {
	day, ok := parseDay(c)
	if !ok {
		return
	}
	ch, ok := findChallenge(c, day)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"challenge": ch})
}

func GetQuestion(c *gin.Context) {
	day, ok := parseDay(c)
	if !ok {
		return
	}
	ch, ok := findChallenge(c, day)
	if !ok {
		return
	}
	q, found := ch.Question(models.Difficulty(c.Param("difficulty")))
	if !found {
		respondError(c, apperrors.NotFound("Question not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"challengeId": strconv.Itoa(ch.Day), "day": ch.Day, "question": q})
}

type SubmitInput struct {
	Code       string `json:"code"`
	Language   string `json:"language"`
	GithubLink string `json:"githubLink"`
	// Problem is only read for "code of my choice".
	Problem string `json:"problem"`
}

// completionKeyFor is the cache key for a day and difficulty path segment.
func completionKeyFor(day int, difficulty string) string {
	if difficulty == customDifficulty {
		return completion.CustomChallengeID(day)
	}
	return completion.Key(strconv.Itoa(day), models.Difficulty(difficulty))
}

// SubmitSolution records a solution for a day's question. The difficulty
// segment "custom" selects the "code of my choice" submission.
func SubmitSolution(c *gin.Context) {
	day, ok := parseDay(c)
	if !ok {
		return
	}
	var input SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	s := session.From(c)
	ctx := c.Request.Context()
	difficulty := c.Param("difficulty")

	var (
		rec completion.Record
		err error
	)
	if difficulty == customDifficulty {
		rec, err = submissionFlow.SubmitCustom(ctx, s, services.CustomDraft{
			Day:        day,
			Problem:    input.Problem,
			Code:       input.Code,
			Language:   input.Language,
			GithubLink: input.GithubLink,
		})
	} else {
		ch, found := findChallenge(c, day)
		if !found {
			return
		}
		q, found := ch.Question(models.Difficulty(difficulty))
		if !found {
			respondError(c, apperrors.NotFound("Question not found"))
			return
		}
		rec, err = submissionFlow.Submit(ctx, s, services.Draft{
			ChallengeID:   strconv.Itoa(ch.Day),
			QuestionTitle: q.Title,
			Difficulty:    q.Difficulty,
			Code:          input.Code,
			Language:      input.Language,
			GithubLink:    input.GithubLink,
		})
	}
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info().Str("user_id", s.UserID).Str("key", rec.Key()).Str("submission_id", rec.ID).Msg("Solution submitted")
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Your solution has been submitted successfully.",
		"completion": rec,
		"state":      services.Submitted,
	})
}

// GetCompletion reports the cached record and display state for a question.
func GetCompletion(c *gin.Context) {
	day, ok := parseDay(c)
	if !ok {
		return
	}
	s := session.From(c)
	key := completionKeyFor(day, c.Param("difficulty"))
	ctx := c.Request.Context()

	body := gin.H{"key": key, "state": submissionFlow.State(ctx, s.Profile(), key)}
	if rec, found := submissionFlow.Store().Get(ctx, s.Profile(), key); found {
		body["completion"] = rec
	}
	c.JSON(http.StatusOK, body)
}

// ResetCompletion reopens the submit form. The saved solution stays until a
// new one is submitted.
func ResetCompletion(c *gin.Context) {
	day, ok := parseDay(c)
	if !ok {
		return
	}
	s := session.From(c)
	key := completionKeyFor(day, c.Param("difficulty"))
	submissionFlow.Reset(s.Profile(), key)
	c.JSON(http.StatusOK, gin.H{"key": key, "state": submissionFlow.State(c.Request.Context(), s.Profile(), key)})
}
