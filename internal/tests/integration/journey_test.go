package integration

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/N4171k/45DOC/internal/routes"
	"github.com/N4171k/45DOC/internal/seeds"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLearnerJourney(t *testing.T) {
	db := setupTestDB(t)
	r := routes.NewRouter()

	// Day 1 of the calendar is today.
	now := time.Now().UTC()
	created, err := seeds.SeedChallenges(db, time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, seeds.CalendarDays, created)

	w := performRequest(r, http.MethodPost, "/api/auth/register", gin.H{
		"name": "Journey User", "email": "journey@example.com", "password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	token := login(t, r, "/api/auth/login", "journey@example.com", "password123")

	w = performRequest(r, http.MethodGet, "/api/challenges/today?tz=UTC", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	code := gin.H{"code": "func solve(nums []int) int { return 0 }", "language": "Go"}
	w = performRequest(r, http.MethodPost, "/api/challenges/1/easy/submit", code, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = performRequest(r, http.MethodPost, "/api/challenges/1/easy/submit", code, token)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = performRequest(r, http.MethodPost, "/api/challenges/1/custom/submit", gin.H{
		"problem": "Rotate a matrix by ninety degrees in place", "code": "func rotate(m [][]int) {}", "language": "Go",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = performRequest(r, http.MethodGet, "/api/users/me/stats?tz=UTC", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		Stats struct {
			Easy, Custom, Total, Streak int
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Stats.Easy)
	assert.Equal(t, 1, stats.Stats.Custom)
	assert.Equal(t, 2, stats.Stats.Total)
	assert.Equal(t, 1, stats.Stats.Streak)

	// The admin sees both submissions.
	_, err = seeds.SeedAdmin(db, "Admin", "admin@example.com", "adminpass123")
	require.NoError(t, err)
	adminToken := login(t, r, "/api/auth/admin/login", "admin@example.com", "adminpass123")

	w = performRequest(r, http.MethodGet, "/api/admin/submissions?email=journey", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 2, list.Count)

	w = performRequest(r, http.MethodGet, "/api/admin/submissions", nil, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
