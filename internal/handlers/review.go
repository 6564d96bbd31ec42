package handlers

import (
	"net/http"

	"github.com/N4171k/45DOC/internal/completion"
	"github.com/N4171k/45DOC/internal/services"
	"github.com/N4171k/45DOC/internal/session"
	apperrors "github.com/N4171k/45DOC/pkg/errors"
	"github.com/N4171k/45DOC/pkg/logger"
	"github.com/gin-gonic/gin"
)

type ReviewInput struct {
	services.ReviewRequest
	// Key, when set, attaches the review to that cached completion.
	Key string `json:"key"`
}

// ReviewCode asks the AI reviewer for feedback. Reviews are never written to
// the submission store.
func ReviewCode(c *gin.Context) {
	var input ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	if codeReviewer == nil {
		respondError(c, services.ErrReviewUnavailable)
		return
	}

	review, err := codeReviewer.Review(c.Request.Context(), input.ReviewRequest)
	if err != nil {
		logger.Error().Err(err).Msg("Code review failed")
		respondError(c, apperrors.BadGateway("An unexpected error occurred during code review.", err))
		return
	}

	body := gin.H{"review": review}
	if input.Key != "" {
		s := session.From(c)
		var rec completion.Record
		rec, err = submissionFlow.AttachReview(c.Request.Context(), s.Profile(), input.Key, review)
		if err != nil {
			respondError(c, err)
			return
		}
		body["completion"] = rec
	}
	c.JSON(http.StatusOK, body)
}
