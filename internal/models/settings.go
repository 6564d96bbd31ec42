package models

import "time"

// SystemSettings stores global configuration toggles
type SystemSettings struct {
	Key       string    `gorm:"primaryKey;type:text" json:"key"`
	Value     string    `json:"value"`
	UpdatedBy string    `json:"updatedBy"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (SystemSettings) TableName() string {
	return "system_settings"
}

const (
	SettingMaintenanceMode    = "maintenance_mode"
	SettingSubmissionsEnabled = "submissions_enabled"
	SettingRegistrationOpen   = "registration_open"
)

// KnownSettings lists the keys an admin may change.
var KnownSettings = map[string]bool{
	SettingMaintenanceMode:    true,
	SettingSubmissionsEnabled: true,
	SettingRegistrationOpen:   true,
}

// AllModels is the AutoMigrate set, parents first.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Challenge{},
		&Question{},
		&Submission{},
		&SystemSettings{},
	}
}
