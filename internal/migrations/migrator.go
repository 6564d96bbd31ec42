package migrations

import (
	"fmt"
	"time"

	"github.com/N4171k/45DOC/pkg/logger"
	"gorm.io/gorm"
)

// Migration is a schema change applied once, on top of AutoMigrate.
type Migration struct {
	ID        string // e.g. "001_submission_indexes"
	Name      string
	Up        func(db *gorm.DB) error
	Down      func(db *gorm.DB) error
	DependsOn []string
}

// MigrationRecord tracks which migrations have been applied
type MigrationRecord struct {
	ID        string    `gorm:"primaryKey;type:text"`
	Name      string    `gorm:"type:text"`
	AppliedAt time.Time `gorm:"autoUpdateTime:nano"`
}

func (MigrationRecord) TableName() string {
	return "schema_migrations"
}

type Migrator struct {
	db         *gorm.DB
	migrations []Migration
}

func NewMigrator(db *gorm.DB) *Migrator {
	return &Migrator{
		db:         db,
		migrations: GetMigrations(),
	}
}

// Run executes all pending migrations in order, each in its own transaction.
func (m *Migrator) Run() error {
	log := logger.Component("migrations")

	if err := m.db.AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var applied []MigrationRecord
	if err := m.db.Find(&applied).Error; err != nil {
		return fmt.Errorf("failed to fetch applied migrations: %w", err)
	}
	appliedMap := make(map[string]bool, len(applied))
	for _, r := range applied {
		appliedMap[r.ID] = true
	}

	for _, migration := range m.migrations {
		if appliedMap[migration.ID] {
			continue
		}
		for _, dep := range migration.DependsOn {
			if !appliedMap[dep] {
				return fmt.Errorf("migration %s depends on %s which is not applied", migration.ID, dep)
			}
		}

		log.Info().Str("migration", migration.ID).Str("name", migration.Name).Msg("Running migration")
		if err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return err
			}
			return tx.Create(&MigrationRecord{
				ID:   migration.ID,
				Name: migration.Name,
			}).Error
		}); err != nil {
			log.Error().Err(err).Str("migration", migration.ID).Msg("Migration failed")
			return fmt.Errorf("migration %s failed: %w", migration.ID, err)
		}
		appliedMap[migration.ID] = true
		log.Info().Str("migration", migration.ID).Msg("Migration completed")
	}

	return nil
}

// Rollback reverts the most recently applied migration.
func (m *Migrator) Rollback() error {
	var last MigrationRecord
	if err := m.db.Order("id DESC").First(&last).Error; err != nil {
		return fmt.Errorf("no applied migration to roll back: %w", err)
	}
	for _, migration := range m.migrations {
		if migration.ID != last.ID {
			continue
		}
		return m.db.Transaction(func(tx *gorm.DB) error {
			if migration.Down != nil {
				if err := migration.Down(tx); err != nil {
					return err
				}
			}
			return tx.Delete(&MigrationRecord{}, "id = ?", last.ID).Error
		})
	}
	return fmt.Errorf("migration %s is not registered", last.ID)
}

// MigrationStatus is one registered migration and whether it has run.
type MigrationStatus struct {
	ID        string
	Name      string
	Applied   bool
	AppliedAt time.Time
}

// Status lists the registered migrations in order.
func (m *Migrator) Status() ([]MigrationStatus, error) {
	if err := m.db.AutoMigrate(&MigrationRecord{}); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}
	var applied []MigrationRecord
	if err := m.db.Find(&applied).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch applied migrations: %w", err)
	}
	byID := make(map[string]MigrationRecord, len(applied))
	for _, r := range applied {
		byID[r.ID] = r
	}

	out := make([]MigrationStatus, 0, len(m.migrations))
	for _, migration := range m.migrations {
		st := MigrationStatus{ID: migration.ID, Name: migration.Name}
		if r, ok := byID[migration.ID]; ok {
			st.Applied = true
			st.AppliedAt = r.AppliedAt
		}
		out = append(out, st)
	}
	return out, nil
}

// GetMigrations returns all registered migrations in order
func GetMigrations() []Migration {
	return []Migration{
		Migration001SubmissionIndexes(),
		Migration002UniqueQuestionPerTier(),
		Migration003DefaultSettings(),
	}
}
