package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission is the append-only remote record of a solution. There is no
// uniqueness per (challenge, difficulty); resubmissions add rows. Reviews are
// never stored here.
type Submission struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UserID        string     `gorm:"index" json:"userId"`
	UserEmail     string     `gorm:"not null" json:"userEmail"`
	ChallengeID   string     `gorm:"not null" json:"challengeId"`
	QuestionTitle string     `json:"questionTitle"`
	Difficulty    Difficulty `gorm:"type:text;not null" json:"difficulty"`
	Code          string     `gorm:"type:text;not null" json:"code"`
	Language      string     `gorm:"not null" json:"language"`
	GithubLink    string     `json:"githubLink,omitempty"`
	CompletedAt   time.Time  `gorm:"not null" json:"completedAt"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
