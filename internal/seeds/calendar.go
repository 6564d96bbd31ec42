package seeds

import (
	"fmt"
	"time"

	"github.com/N4171k/45DOC/internal/models"
	"github.com/N4171k/45DOC/pkg/logger"
	"gorm.io/gorm"
)

// CalendarDays is the length of the challenge calendar.
const CalendarDays = 45

// Calendar builds the full calendar with day 1 on start's calendar day.
func Calendar(start time.Time) []models.Challenge {
	y, m, d := start.Date()
	first := time.Date(y, m, d, 0, 0, 0, 0, start.Location())

	out := make([]models.Challenge, 0, CalendarDays)
	for i := 0; i < CalendarDays; i++ {
		base := baseDays[i%len(baseDays)]
		questions := make([]models.Question, len(base.questions))
		copy(questions, base.questions)
		out = append(out, models.Challenge{
			Day:         i + 1,
			Date:        first.AddDate(0, 0, i),
			Title:       fmt.Sprintf("Daily Challenge: Day %d", i+1),
			Description: base.description,
			Questions:   questions,
		})
	}
	return out
}

// SeedChallenges inserts the calendar days that do not exist yet and
// returns how many were created.
func SeedChallenges(db *gorm.DB, start time.Time) (int, error) {
	log := logger.Component("seeds")
	created := 0
	for _, ch := range Calendar(start) {
		var count int64
		if err := db.Model(&models.Challenge{}).Where("day = ?", ch.Day).Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			log.Debug().Int("day", ch.Day).Msg("Challenge already exists")
			continue
		}
		if err := db.Create(&ch).Error; err != nil {
			return created, fmt.Errorf("seed day %d: %w", ch.Day, err)
		}
		created++
	}
	log.Info().Int("created", created).Msg("Challenge calendar seeded")
	return created, nil
}
