package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/N4171k/45DOC/internal/database"
	"github.com/N4171k/45DOC/internal/models"
	"github.com/N4171k/45DOC/internal/session"
	apperrors "github.com/N4171k/45DOC/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
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
}

func withSession(s session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		session.Attach(c, s)
		c.Next()
	}
}

func okHandler(c *gin.Context) { c.String(http.StatusOK, "ok") }

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestAdminOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name string
		s    session.Session
		want int
	}{
		{"anonymous", session.Session{}, http.StatusUnauthorized},
		{"user", session.Session{UserID: "u1", Email: "u@example.com"}, http.StatusForbidden},
		{"admin", session.Session{UserID: "a1", Email: "a@example.com", IsAdmin: true}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/admin", withSession(tc.s), AdminOnly(), okHandler)
			assert.Equal(t, tc.want, serve(r, http.MethodGet, "/admin").Code)
		})
	}
}

func TestMaintenanceMode(t *testing.T) {
	setupDB(t)
	_, err := database.SetSetting(models.SettingMaintenanceMode, "true", "test")
	require.NoError(t, err)

	user := session.Session{UserID: "u1", Email: "u@example.com"}
	admin := session.Session{UserID: "a1", Email: "a@example.com", IsAdmin: true}

	build := func(s session.Session) *gin.Engine {
		r := gin.New()
		r.Use(withSession(s), MaintenanceMode())
		r.GET("/api/challenges", okHandler)
		r.POST("/api/auth/login", okHandler)
		r.GET("/health", okHandler)
		return r
	}

	assert.Equal(t, http.StatusServiceUnavailable, serve(build(user), http.MethodGet, "/api/challenges").Code)
	assert.Equal(t, http.StatusOK, serve(build(user), http.MethodPost, "/api/auth/login").Code)
	assert.Equal(t, http.StatusOK, serve(build(user), http.MethodGet, "/health").Code)
	assert.Equal(t, http.StatusOK, serve(build(admin), http.MethodGet, "/api/challenges").Code)

	_, err = database.SetSetting(models.SettingMaintenanceMode, "false", "test")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, serve(build(user), http.MethodGet, "/api/challenges").Code)
}

func TestFeatureGate_DefaultsWhenUnset(t *testing.T) {
	setupDB(t)
	r := gin.New()
	r.POST("/submit", RequireSubmissionsEnabled(), okHandler)
	r.POST("/register", RequireRegistrationOpen(), okHandler)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/submit").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/register").Code)

	_, err := database.SetSetting(models.SettingRegistrationOpen, "false", "test")
	require.NoError(t, err)
	w := serve(r, http.MethodPost, "/register")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "registration is currently closed")
}

func TestErrorHandlerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandlerMiddleware())
	r.GET("/validation", func(c *gin.Context) {
		_ = c.Error(apperrors.Validation("Please correct the highlighted fields.", map[string]string{"code": "required"}))
	})
	r.GET("/plain", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
	})
	r.GET("/written", func(c *gin.Context) {
		_ = c.Error(apperrors.Internal("ignored"))
		c.JSON(http.StatusTeapot, gin.H{"error": "already answered"})
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := serve(r, http.MethodGet, "/validation")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Please correct the highlighted fields.","fields":{"code":"required"}}`, w.Body.String())

	w = serve(r, http.MethodGet, "/plain")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())

	w = serve(r, http.MethodGet, "/written")
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.NotContains(t, w.Body.String(), "ignored")

	w = serve(r, http.MethodGet, "/panic")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewIPRateLimiter(rate.Limit(0.001), 2)
	r := gin.New()
	r.GET("/limited", RateLimitMiddleware(limiter), okHandler)

	req := func(ip string) int {
		w := httptest.NewRecorder()
		rq := httptest.NewRequest(http.MethodGet, "/limited", nil)
		rq.RemoteAddr = ip + ":1234"
		r.ServeHTTP(w, rq)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, req("192.0.2.1"))
	assert.Equal(t, http.StatusOK, req("192.0.2.1"))
	assert.Equal(t, http.StatusTooManyRequests, req("192.0.2.1"))
	assert.Equal(t, http.StatusOK, req("192.0.2.2"), "limits are per IP")
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	setupDB(t)
	r := gin.New()
	r.GET("/me", AuthMiddleware(), okHandler)

	w := serve(r, http.MethodGet, "/me")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
