package migrations

import (
	"gorm.io/gorm"
)

// Migration001SubmissionIndexes backs the two hot queries on submissions:
// a user's history (user_email, completed_at DESC) and the admin feed
// (completed_at DESC).
func Migration001SubmissionIndexes() Migration {
	return Migration{
		ID:   "001_submission_indexes",
		Name: "Add indexes for submission history and admin feed",
		Up: func(db *gorm.DB) error {
			stmts := []string{
				`CREATE INDEX IF NOT EXISTS idx_submissions_user_completed
					ON submissions (user_email, completed_at DESC)`,
				`CREATE INDEX IF NOT EXISTS idx_submissions_completed
					ON submissions (completed_at DESC)`,
			}
			for _, s := range stmts {
				if err := db.Exec(s).Error; err != nil {
					return err
				}
			}
			return nil
		},
		Down: func(db *gorm.DB) error {
			if err := db.Exec(`DROP INDEX IF EXISTS idx_submissions_completed`).Error; err != nil {
				return err
			}
			return db.Exec(`DROP INDEX IF EXISTS idx_submissions_user_completed`).Error
		},
	}
}
