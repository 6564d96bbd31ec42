package migrations

import (
	"testing"

	"github.com/N4171k/45DOC/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

func TestMigrator_RunIsIdempotent(t *testing.T) {
	db := setupDB(t)

	require.NoError(t, NewMigrator(db).Run())
	require.NoError(t, NewMigrator(db).Run())

	var count int64
	db.Model(&MigrationRecord{}).Count(&count)
	assert.Equal(t, int64(len(GetMigrations())), count)

	var settings []models.SystemSettings
	require.NoError(t, db.Find(&settings).Error)
	assert.Len(t, settings, 3)
}

func TestMigrator_DefaultSettingsKeepExistingValues(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&models.SystemSettings{Key: models.SettingRegistrationOpen, Value: "false", UpdatedBy: "admin"}).Error)

	require.NoError(t, NewMigrator(db).Run())

	var s models.SystemSettings
	require.NoError(t, db.First(&s, "key = ?", models.SettingRegistrationOpen).Error)
	assert.Equal(t, "false", s.Value)
}

func TestMigrator_UniqueQuestionPerTier(t *testing.T) {
	db := setupDB(t)
	ch := models.Challenge{Day: 1, Title: "Day 1"}
	require.NoError(t, db.Create(&ch).Error)
	// Duplicate tier from an old seed run.
	require.NoError(t, db.Create(&models.Question{ID: "a", ChallengeID: ch.ID, Difficulty: models.DifficultyEasy, Title: "first"}).Error)
	require.NoError(t, db.Create(&models.Question{ID: "b", ChallengeID: ch.ID, Difficulty: models.DifficultyEasy, Title: "dup"}).Error)

	require.NoError(t, NewMigrator(db).Run())

	var qs []models.Question
	require.NoError(t, db.Find(&qs, "challenge_id = ?", ch.ID).Error)
	require.Len(t, qs, 1)
	assert.Equal(t, "a", qs[0].ID)

	err := db.Create(&models.Question{ChallengeID: ch.ID, Difficulty: models.DifficultyEasy, Title: "again"}).Error
	assert.Error(t, err)
}

func TestMigrator_Rollback(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, NewMigrator(db).Run())
	require.NoError(t, NewMigrator(db).Rollback())

	var ids []string
	db.Model(&MigrationRecord{}).Pluck("id", &ids)
	assert.NotContains(t, ids, "003_default_settings")

	var count int64
	db.Model(&models.SystemSettings{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestMigrator_Status(t *testing.T) {
	db := setupDB(t)
	m := NewMigrator(db)

	st, err := m.Status()
	require.NoError(t, err)
	require.Len(t, st, len(GetMigrations()))
	for _, s := range st {
		assert.False(t, s.Applied, s.ID)
	}

	require.NoError(t, m.Run())
	require.NoError(t, m.Rollback())

	st, err = m.Status()
	require.NoError(t, err)
	assert.True(t, st[0].Applied)
	assert.True(t, st[1].Applied)
	assert.False(t, st[2].Applied, "the last migration was rolled back")
}
