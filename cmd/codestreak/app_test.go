package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/N4171k/45DOC/internal/completion"
	"github.com/N4171k/45DOC/internal/models"
	"github.com/N4171k/45DOC/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI answers the endpoints the CLI touches and counts submissions.
func fakeAPI(t *testing.T) (*httptest.Server, *int64) {
	t.Helper()
	var creates int64
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Invalid or expired token"}`))
			return
		}
		_, _ = w.Write([]byte(`{"session":{"userId":"u1","email":"cli@example.com","name":"CLI"}}`))
	})
	mux.HandleFunc("/api/submissions", func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&creates, 1)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": fmt.Sprintf("sub-%d", n)})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &creates
}

func TestOpenApp_ResumesSavedToken(t *testing.T) {
	srv, _ := fakeAPI(t)
	dir := t.TempDir()

	a, err := openAppAt(t.Context(), srv.URL, dir)
	require.NoError(t, err)
	assert.False(t, a.session.Authenticated())
	require.NoError(t, a.store.SetMeta("token", "good"))
	a.Close()

	a, err = openAppAt(t.Context(), srv.URL, dir)
	require.NoError(t, err)
	defer a.Close()
	assert.Equal(t, "cli@example.com", a.session.Email)
}

func TestSubmitDraft_ResetIsRememberedAcrossRuns(t *testing.T) {
	srv, creates := fakeAPI(t)
	dir := t.TempDir()

	seed, err := openAppAt(t.Context(), srv.URL, dir)
	require.NoError(t, err)
	require.NoError(t, seed.store.SetMeta("token", "good"))
	seed.Close()

	draft := services.Draft{
		ChallengeID: "1", QuestionTitle: "Two Sum", Difficulty: models.DifficultyEasy,
		Code: "func twoSum() {}", Language: "Go",
	}
	run := func(resubmit bool) error {
		a, err := openAppAt(t.Context(), srv.URL, dir)
		require.NoError(t, err)
		defer a.Close()
		_, err = a.submitDraft(t.Context(), "1-easy", resubmit, func() (completion.Record, error) {
			return a.flow.Submit(t.Context(), a.session, draft)
		})
		return err
	}
	reset := func() {
		a, err := openAppAt(t.Context(), srv.URL, dir)
		require.NoError(t, err)
		defer a.Close()
		require.NoError(t, a.markResubmit("1-easy"))
	}

	require.NoError(t, run(false))
	assert.ErrorIs(t, run(false), services.ErrAlreadySubmitted)

	reset()
	require.NoError(t, run(false))
	assert.ErrorIs(t, run(false), services.ErrAlreadySubmitted, "the reset marker is consumed")

	require.NoError(t, run(true))
	assert.Equal(t, int64(3), atomic.LoadInt64(creates))
}

func TestKeyFor(t *testing.T) {
	key, err := keyFor(3, "Hard")
	require.NoError(t, err)
	assert.Equal(t, "3-hard", key)

	key, err = keyFor(3, "custom")
	require.NoError(t, err)
	assert.Equal(t, "day-3-custom", key)

	_, err = keyFor(3, "extreme")
	assert.Error(t, err)

	_, err = parseDayArg("0")
	assert.Error(t, err)
}

func TestDescribeError(t *testing.T) {
	msg := describeError(&services.ValidationError{Fields: map[string]string{
		"language": "Language is required.",
		"code":     "Code must be at least 10 characters.",
	}})
	assert.Equal(t, "Please correct the following\n  code: Code must be at least 10 characters.\n  language: Language is required.", msg)
	assert.Equal(t, "already submitted; pass --new to resubmit", describeError(services.ErrAlreadySubmitted))
}

func TestPrintChallenge(t *testing.T) {
	ch := models.Challenge{
		Day: 2, Title: "Daily Challenge: Day 2", Date: time.Now(),
		Questions: []models.Question{
			{Difficulty: models.DifficultyHard, Title: "Trapping Rain Water"},
			{Difficulty: models.DifficultyEasy, Title: "Two Sum"},
		},
	}
	doc := map[string]completion.Record{"2-easy": {}}

	var buf bytes.Buffer
	printChallenge(&buf, ch, doc)
	out := buf.String()
	assert.Contains(t, out, "[x] easy")
	assert.Contains(t, out, "[ ] hard")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Two Sum")), bytes.Index(buf.Bytes(), []byte("Trapping")))
}
