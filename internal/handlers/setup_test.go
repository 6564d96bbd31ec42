package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/N4171k/45DOC/internal/completion"
	"github.com/N4171k/45DOC/internal/config"
	"github.com/N4171k/45DOC/internal/database"
	"github.com/N4171k/45DOC/internal/middleware"
	"github.com/N4171k/45DOC/internal/models"
	"github.com/N4171k/45DOC/internal/services"
	"github.com/N4171k/45DOC/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB initializes an in-memory SQLite DB for testing
func SetupTestDB(t *testing.T) *completion.MemoryStore {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{Env: "test", JWTSecret: "test-secret", StreakTimezone: "UTC"}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	database.DB = db
	database.Redis = nil
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	store := completion.NewMemoryStore()
	InitServices(services.NewSubmissionFlow(services.NewGormSink(db), store), &fakeReviewer{})
	return store
}

type fakeReviewer struct {
	err   error
	calls int
}

func (f *fakeReviewer) Review(ctx context.Context, req services.ReviewRequest) (completion.Review, error) {
	f.calls++
	if f.err != nil {
		return completion.Review{}, f.err
	}
	return completion.Review{Feedback: "Looks good for " + req.Language, Grade: "A"}, nil
}

var errUpstream = errors.New("upstream unavailable")

func createUser(t *testing.T, email string, admin bool) (models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := models.User{Name: "Test " + email, Email: email, Password: string(hash), IsAdmin: admin}
	require.NoError(t, database.DB.Create(&u).Error)
	token, _, err := utils.GenerateToken(u.ID)
	require.NoError(t, err)
	return u, token
}

func seedChallenge(t *testing.T, day int, date time.Time) models.Challenge {
	t.Helper()
	ch := models.Challenge{
		Day:         day,
		Date:        date,
		Title:       fmt.Sprintf("Daily Challenge: Day %d", day),
		Description: "Practice",
		Questions: []models.Question{
			{Difficulty: models.DifficultyEasy, Title: "Two Sum", Description: "d", Link: "https://leetcode.com/problems/two-sum/"},
			{Difficulty: models.DifficultyMedium, Title: "Reverse a String", Description: "d", Link: "https://www.codechef.com/problems/FLOW007"},
			{Difficulty: models.DifficultyHard, Title: "Palindrome Check", Description: "d", Link: "https://leetcode.com/problems/palindromic-substrings/"},
		},
	}
	require.NoError(t, database.DB.Create(&ch).Error)
	return ch
}

// testRouter mounts the handlers the way the server does, minus rate limits.
func testRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandlerMiddleware())
	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", middleware.RequireRegistrationOpen(), Register)
	auth.POST("/login", Login)
	auth.POST("/admin/login", AdminLogin)
	auth.POST("/logout", middleware.AuthMiddleware(), Logout)
	auth.GET("/me", middleware.AuthMiddleware(), Me)

	api.GET("/challenges", ListChallenges)
	api.GET("/challenges/today", GetTodayChallenge)
	api.GET("/challenges/:day", GetChallenge)
	api.GET("/challenges/:day/:difficulty", GetQuestion)

	user := api.Group("")
	user.Use(middleware.AuthMiddleware())
	user.POST("/challenges/:day/:difficulty/submit", middleware.RequireSubmissionsEnabled(), SubmitSolution)
	user.GET("/challenges/:day/:difficulty/completion", GetCompletion)
	user.POST("/challenges/:day/:difficulty/reset", ResetCompletion)
	user.POST("/submissions", CreateSubmission)
	user.GET("/submissions/mine", ListMySubmissions)
	user.GET("/users/me", GetProfile)
	user.GET("/users/me/streak", GetStreak)
	user.GET("/users/me/stats", GetStats)
	user.GET("/users/me/completions", ListCompletions)
	user.POST("/users/me/completions/sync", SyncCompletions)
	user.POST("/review", ReviewCode)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	admin.GET("/submissions", AdminListSubmissions)
	admin.POST("/challenges", AdminAddChallenge)
	admin.GET("/settings", AdminListSettings)
	admin.PUT("/settings/:key", AdminUpdateSetting)

	r.GET("/health", Health)
	return r
}

var requestSeq int64

func do(t *testing.T, r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	n := atomic.AddInt64(&requestSeq, 1)
	req.RemoteAddr = fmt.Sprintf("10.1.%d.%d:4321", (n/250)%250, n%250+1)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
