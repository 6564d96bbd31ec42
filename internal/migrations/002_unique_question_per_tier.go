package migrations

import (
	"gorm.io/gorm"
)

// Migration002UniqueQuestionPerTier allows one question per difficulty per
// challenge. Duplicates left by older seeders are removed first, keeping the
// lowest id.
func Migration002UniqueQuestionPerTier() Migration {
	return Migration{
		ID:        "002_unique_question_per_tier",
		Name:      "One question per difficulty per challenge",
		DependsOn: []string{"001_submission_indexes"},
		Up: func(db *gorm.DB) error {
			cleanup := `
				DELETE FROM questions
				WHERE id NOT IN (
					SELECT MIN(id) FROM questions GROUP BY challenge_id, difficulty
				)
			`
			if err := db.Exec(cleanup).Error; err != nil {
				return err
			}
			return db.Exec(`
				CREATE UNIQUE INDEX IF NOT EXISTS idx_questions_challenge_difficulty
				ON questions (challenge_id, difficulty)
			`).Error
		},
		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP INDEX IF EXISTS idx_questions_challenge_difficulty`).Error
		},
	}
}
