package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a CodeStreak account. Only the bcrypt hash of the password is kept.
type User struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name       string `gorm:"not null" json:"name"`
	Email      string `gorm:"uniqueIndex;not null" json:"email"`
	Password   string `json:"-"`
	IsAdmin    bool   `gorm:"default:false" json:"isAdmin"`
	Phone      string `json:"phone,omitempty"`
	Batch      string `json:"batch,omitempty"`
	Course     string `json:"course,omitempty"`
	Section    string `json:"section,omitempty"`
	GithubRepo string `json:"githubRepo,omitempty"`
	Enroll     string `json:"enroll,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
