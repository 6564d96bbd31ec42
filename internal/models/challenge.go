package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the three tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Challenge is one day of the calendar, holding a question per difficulty.
type Challenge struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Day         int        `gorm:"uniqueIndex;not null" json:"day"`
	Date        time.Time  `gorm:"not null" json:"date"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Questions   []Question `gorm:"foreignKey:ChallengeID;constraint:OnDelete:CASCADE" json:"questions"`
}

func (Challenge) TableName() string {
	return "challenges"
}

func (c *Challenge) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// Question returns the question for the given tier, if the challenge has one.
func (c *Challenge) Question(d Difficulty) (Question, bool) {
	for _, q := range c.Questions {
		if q.Difficulty == d {
			return q, true
		}
	}
	return Question{}, false
}

type Question struct {
	ID          string     `gorm:"primaryKey;type:text" json:"id"`
	ChallengeID string     `gorm:"index;not null" json:"challengeId"`
	Difficulty  Difficulty `gorm:"type:text;not null" json:"difficulty"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Link        string     `json:"link"`
}

func (Question) TableName() string {
	return "questions"
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	return nil
}
