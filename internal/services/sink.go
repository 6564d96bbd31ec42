package services

import (
	"context"
	"fmt"

	"github.com/N4171k/45DOC/internal/completion"
	"github.com/N4171k/45DOC/internal/models"
	"gorm.io/gorm"
)

// Sink is the append-only remote store of record for submissions.
type Sink interface {
	Create(ctx context.Context, rec completion.Record) (string, error)
	ListByUser(ctx context.Context, email string) ([]completion.Record, error)
}

// GormSink writes submissions to the database.
type GormSink struct {
	db *gorm.DB
}

func NewGormSink(db *gorm.DB) *GormSink {
	return &GormSink{db: db}
}

// userIDKey lets the server attach the submitter's account id to a row
// without widening the Sink interface.
type userIDKey struct{}

// WithUserID marks ctx with the account id rows created under it belong to.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func (s *GormSink) Create(ctx context.Context, rec completion.Record) (string, error) {
	userID, _ := ctx.Value(userIDKey{}).(string)
	row := models.Submission{
		UserID:        userID,
		UserEmail:     rec.UserEmail,
		ChallengeID:   rec.ChallengeID,
		QuestionTitle: rec.QuestionTitle,
		Difficulty:    rec.Difficulty,
		Code:          rec.Code,
		Language:      rec.Language,
		GithubLink:    rec.GithubLink,
		CompletedAt:   rec.CompletedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("insert submission: %w", err)
	}
	return row.ID, nil
}

func (s *GormSink) ListByUser(ctx context.Context, email string) ([]completion.Record, error) {
	var rows []models.Submission
	if err := s.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("completed_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list submissions for %s: %w", email, err)
	}
	out := make([]completion.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, completion.FromSubmission(r))
	}
	return out, nil
}

// ListRecent returns the newest submissions across all users, optionally
// filtered by a case-insensitive email fragment. Used by the admin review screen.
func (s *GormSink) ListRecent(ctx context.Context, emailLike string, limit int) ([]models.Submission, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	q := s.db.WithContext(ctx).Model(&models.Submission{})
	if emailLike != "" {
		q = q.Where("LOWER(user_email) LIKE ? ESCAPE '\\'", emailLike)
	}
	var rows []models.Submission
	if err := q.Order("completed_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list recent submissions: %w", err)
	}
	return rows, nil
}
