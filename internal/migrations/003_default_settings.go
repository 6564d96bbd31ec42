package migrations

import (
	"time"

	"github.com/N4171k/45DOC/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migration003DefaultSettings writes the feature gates with their defaults so
// the admin screen lists them. Existing values are left alone.
func Migration003DefaultSettings() Migration {
	return Migration{
		ID:   "003_default_settings",
		Name: "Insert default system settings",
		Up: func(db *gorm.DB) error {
			now := time.Now()
			rows := []models.SystemSettings{
				{Key: models.SettingRegistrationOpen, Value: "true", UpdatedBy: "system", UpdatedAt: now},
				{Key: models.SettingSubmissionsEnabled, Value: "true", UpdatedBy: "system", UpdatedAt: now},
				{Key: models.SettingMaintenanceMode, Value: "false", UpdatedBy: "system", UpdatedAt: now},
			}
			return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
		},
		Down: func(db *gorm.DB) error {
			return db.Where("updated_by = ?", "system").Delete(&models.SystemSettings{}).Error
		},
	}
}
