package handlers

import (
	"errors"
	"net/http"

	"github.com/N4171k/45DOC/internal/services"
	apperrors "github.com/N4171k/45DOC/pkg/errors"
	"github.com/N4171k/45DOC/pkg/logger"
	"github.com/gin-gonic/gin"
)

var (
	submissionFlow *services.SubmissionFlow
	codeReviewer   services.Reviewer
)

// InitServices wires the submission flow and the (optional) AI reviewer used
// by the challenge, user and review handlers.
func InitServices(flow *services.SubmissionFlow, reviewer services.Reviewer) {
	submissionFlow = flow
	codeReviewer = reviewer
}

// toAppError maps domain errors onto HTTP statuses.
func toAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return apperrors.Validation("Please correct the highlighted fields.", verr.Fields)
	}
	var rerr *services.RemoteWriteError
	if errors.As(err, &rerr) {
		return apperrors.BadGateway("Submission Failed: your solution could not be saved. Please try again.", rerr.Err)
	}

	switch {
	case errors.Is(err, services.ErrNotAuthenticated):
		return apperrors.Unauthorized(err.Error())
	case errors.Is(err, services.ErrSubmissionInFlight), errors.Is(err, services.ErrAlreadySubmitted):
		return apperrors.Conflict(err.Error())
	case errors.Is(err, services.ErrNoCompletion):
		return apperrors.NotFound(err.Error())
	case errors.Is(err, services.ErrReviewUnavailable):
		return apperrors.NewAppError(http.StatusServiceUnavailable, err.Error())
	}
	return apperrors.Wrap(http.StatusInternalServerError, "Internal server error", err)
}

// respondError renders err and records it on the context for the logging
// middleware.
func respondError(c *gin.Context, err error) {
	appErr := toAppError(err)
	if appErr.Code >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg(appErr.Message)
	}
	_ = c.Error(err)

	body := gin.H{"error": appErr.Message}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	c.AbortWithStatusJSON(appErr.Code, body)
}

// bindError turns a gin binding failure into a 400 with per-field messages.
func bindError(c *gin.Context, err error) {
	if fields := bindingFields(err); len(fields) > 0 {
		respondError(c, apperrors.Validation("Please correct the highlighted fields.", fields))
		return
	}
	respondError(c, apperrors.BadRequest("Invalid request body"))
}
