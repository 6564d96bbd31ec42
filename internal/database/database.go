package database

import (
	"errors"
	"time"

	"github.com/N4171k/45DOC/internal/config"
	"github.com/N4171k/45DOC/internal/models"
	"github.com/N4171k/45DOC/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect() {
	dsn := config.AppConfig.DatabaseURL
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to get underlying sql.DB")
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	DB = db
	logger.Info().Int("max_open", 25).Int("max_idle", 10).Msg("Connected to PostgreSQL")
}

// AutoMigrate creates or updates the tables for every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(models.AllModels()...)
}

// settingDefaults apply when a setting has never been written.
var settingDefaults = map[string]bool{
	models.SettingMaintenanceMode:    false,
	models.SettingSubmissionsEnabled: true,
	models.SettingRegistrationOpen:   true,
}

// IsFeatureEnabled reports whether a system setting is "true". Unset keys
// fall back to their default; an unreachable database reports false.
func IsFeatureEnabled(key string) bool {
	if DB == nil {
		return false
	}
	var setting models.SystemSettings
	err := DB.Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return settingDefaults[key]
	}
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Failed to read system setting")
		return false
	}
	return setting.Value == "true"
}

// SetSetting upserts a system setting.
func SetSetting(key, value, updatedBy string) (models.SystemSettings, error) {
	setting := models.SystemSettings{
		Key:       key,
		Value:     value,
		UpdatedBy: updatedBy,
		UpdatedAt: time.Now(),
	}
	err := DB.Save(&setting).Error
	return setting, err
}
