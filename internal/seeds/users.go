package seeds

import (
	"errors"
	"strings"

	"github.com/N4171k/45DOC/internal/models"
	"github.com/N4171k/45DOC/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates an admin account, or promotes the existing account with
// that email. The password is only used when the account is created.
func SeedAdmin(db *gorm.DB, name, email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		if !user.IsAdmin {
			if err := db.Model(&user).Update("is_admin", true).Error; err != nil {
				return user, err
			}
			user.IsAdmin = true
		}
		logger.Info().Str("email", email).Msg("Admin account already exists")
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return user, err
	}
	if len(password) < 8 {
		return user, errors.New("admin password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user, err
	}
	user = models.User{Name: name, Email: email, Password: string(hash), IsAdmin: true}
	if err := db.Create(&user).Error; err != nil {
		return user, err
	}
	logger.Info().Str("email", email).Msg("Admin account created")
	return user, nil
}
