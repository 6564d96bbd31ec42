package handlers

import (
	"net/http"
	"time"

	"github.com/N4171k/45DOC/internal/completion"
	"github.com/N4171k/45DOC/internal/database"
	"github.com/N4171k/45DOC/internal/services"
	"github.com/N4171k/45DOC/internal/session"
	"github.com/gin-gonic/gin"
)

type CreateSubmissionInput struct {
	services.Draft
	CompletedAt time.Time `json:"completedAt"`
}

// clockSkew is how far ahead of the server a client timestamp may be.
const clockSkew = 5 * time.Minute

// completedAtOrNow keeps a client-supplied completion time unless it is
// missing or in the future.
func completedAtOrNow(t, now time.Time) time.Time {
	if t.IsZero() || t.After(now.Add(clockSkew)) {
		return now.UTC()
	}
	return t.UTC()
}

// CreateSubmission appends a record to the remote sink without touching the
// server-side cache. The terminal client calls it before writing its own
// on-disk cache. The submitter is always the session's user.
func CreateSubmission(c *gin.Context) {
	var input CreateSubmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	s := session.From(c)
	if !s.Authenticated() {
		respondError(c, services.ErrNotAuthenticated)
		return
	}
	d := input.Draft
	if err := services.Validate(d); err != nil {
		respondError(c, err)
		return
	}

	rec := completion.Record{
		UserEmail:     s.Email,
		ChallengeID:   d.ChallengeID,
		QuestionTitle: d.QuestionTitle,
		Difficulty:    d.Difficulty,
		Code:          d.Code,
		Language:      d.Language,
		GithubLink:    d.GithubLink,
		CompletedAt:   completedAtOrNow(input.CompletedAt, time.Now()),
	}

	ctx := services.WithUserID(c.Request.Context(), s.UserID)
	id, err := services.NewGormSink(database.DB).Create(ctx, rec)
	if err != nil {
		respondError(c, &services.RemoteWriteError{Err: err})
		return
	}
	rec.ID = id
	c.JSON(http.StatusCreated, gin.H{"id": id, "submission": rec})
}

func ListMySubmissions(c *gin.Context) {
	s := session.From(c)
	list, err := services.NewGormSink(database.DB).ListByUser(c.Request.Context(), s.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": list})
}
