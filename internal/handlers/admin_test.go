package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/N4171k/45DOC/internal/database"
	"github.com/N4171k/45DOC/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func challengeBody(day int) gin.H {
	return gin.H{
		"day":         day,
		"date":        time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC),
		"title":       "Daily Challenge",
		"description": "Arrays",
		"questions": []gin.H{
			{"difficulty": "easy", "title": "Two Sum", "description": "d", "link": "https://leetcode.com/problems/two-sum/"},
			{"difficulty": "hard", "title": "Trapping Rain Water", "description": "d", "link": "https://leetcode.com/problems/trapping-rain-water/"},
		},
	}
}

func TestAdminRoutes_RequireAdmin(t *testing.T) {
	SetupTestDB(t)
	r := testRouter()
	_, token := createUser(t, "plain@example.com", false)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/admin/submissions"},
		{http.MethodPost, "/api/admin/challenges"},
		{http.MethodGet, "/api/admin/settings"},
		{http.MethodPut, "/api/admin/settings/maintenance_mode"},
	} {
		w := do(t, r, tc.method, tc.path, token, gin.H{})
		assert.Equal(t, http.StatusForbidden, w.Code, tc.path)

		w = do(t, r, tc.method, tc.path, "", gin.H{})
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.path)
	}
}

func TestAdminListSubmissions_FilterByEmail(t *testing.T) {
	SetupTestDB(t)
	r := testRouter()
	_, token := createUser(t, "admin@example.com", true)

	now := time.Now().UTC()
	for i, email := range []string{"alice@example.com", "bob@example.com", "alice_2@example.com"} {
		require.NoError(t, database.DB.Create(&models.Submission{
			UserEmail: email, ChallengeID: "1", QuestionTitle: "Two Sum", Difficulty: models.DifficultyEasy,
			Code: "func twoSum() {}", Language: "Go", CompletedAt: now.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	var resp struct {
		Submissions []models.Submission `json:"submissions"`
		Count       int                 `json:"count"`
	}
	w := do(t, r, http.MethodGet, "/api/admin/submissions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, "alice_2@example.com", resp.Submissions[0].UserEmail, "newest first")

	w = do(t, r, http.MethodGet, "/api/admin/submissions?email=ALICE", token, nil)
	decode(t, w, &resp)
	assert.Equal(t, 2, resp.Count)

	// The underscore is literal, not a LIKE wildcard.
	w = do(t, r, http.MethodGet, "/api/admin/submissions?email=alice_", token, nil)
	decode(t, w, &resp)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "alice_2@example.com", resp.Submissions[0].UserEmail)

	w = do(t, r, http.MethodGet, "/api/admin/submissions?limit=1", token, nil)
	decode(t, w, &resp)
	assert.Equal(t, 1, resp.Count)
}

func TestAdminAddChallenge(t *testing.T) {
	SetupTestDB(t)
	r := testRouter()
	_, token := createUser(t, "admin@example.com", true)

	w := do(t, r, http.MethodPost, "/api/admin/challenges", token, challengeBody(3))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var ch models.Challenge
	require.NoError(t, database.DB.Preload("Questions").First(&ch, "day = ?", 3).Error)
	assert.Len(t, ch.Questions, 2)

	w = do(t, r, http.MethodGet, "/api/challenges/3/hard", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPost, "/api/admin/challenges", token, challengeBody(3))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAdminAddChallenge_Validation(t *testing.T) {
	SetupTestDB(t)
	r := testRouter()
	_, token := createUser(t, "admin@example.com", true)

	dup := challengeBody(4)
	dup["questions"] = []gin.H{
		{"difficulty": "easy", "title": "A", "description": "d", "link": "https://example.com/a"},
		{"difficulty": "easy", "title": "B", "description": "d", "link": "https://example.com/b"},
	}
	w := do(t, r, http.MethodPost, "/api/admin/challenges", token, dup)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "questions")

	bad := challengeBody(5)
	bad["questions"] = []gin.H{{"difficulty": "extreme", "title": "A", "description": "d", "link": "not a url"}}
	w = do(t, r, http.MethodPost, "/api/admin/challenges", token, bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	database.DB.Model(&models.Challenge{}).Count(&count)
	assert.Zero(t, count)
}

func TestAdminUpdateSetting(t *testing.T) {
	SetupTestDB(t)
	r := testRouter()
	_, token := createUser(t, "admin@example.com", true)
	_, userToken := createUser(t, "user@example.com", false)
	seedChallenge(t, 1, time.Now().UTC())

	w := do(t, r, http.MethodPut, "/api/admin/settings/submissions_enabled", token, gin.H{"value": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.False(t, database.IsFeatureEnabled(models.SettingSubmissionsEnabled))

	w = do(t, r, http.MethodPost, "/api/challenges/1/easy/submit", userToken, gin.H{
		"code": "func twoSum() {}", "language": "Go",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = do(t, r, http.MethodGet, "/api/admin/settings", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Settings []models.SystemSettings `json:"settings"`
	}
	decode(t, w, &resp)
	require.Len(t, resp.Settings, 1)
	assert.Equal(t, "false", resp.Settings[0].Value)
	assert.Equal(t, "admin@example.com", resp.Settings[0].UpdatedBy)

	w = do(t, r, http.MethodPut, "/api/admin/settings/dark_mode", token, gin.H{"value": true})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPut, "/api/admin/settings/registration_open", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	SetupTestDB(t)
	w := do(t, testRouter(), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
