package handlers

import (
	"net/http"
	"strings"

	"github.com/N4171k/45DOC/internal/database"
	"github.com/N4171k/45DOC/internal/models"
	"github.com/N4171k/45DOC/internal/session"
	apperrors "github.com/N4171k/45DOC/pkg/errors"
	"github.com/N4171k/45DOC/pkg/logger"
	"github.com/N4171k/45DOC/pkg/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Name       string `json:"name" binding:"required,min=2"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Enroll     string `json:"enroll"`
	Phone      string `json:"phone"`
	Batch      string `json:"batch"`
	Course     string `json:"course"`
	Section    string `json:"section"`
	GithubRepo string `json:"githubRepo" binding:"omitempty,url"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token     string      `json:"token"`
	ExpiresAt int64       `json:"expiresAt"`
	User      models.User `json:"user"`
}

func issueToken(c *gin.Context, status int, user models.User) {
	token, claims, err := utils.GenerateToken(user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		respondError(c, apperrors.Internal("Failed to generate token"))
		return
	}
	c.JSON(status, authResponse{
		Token:     token,
		ExpiresAt: claims.GetExpiresAt().Unix(),
		User:      user,
	})
}

func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var count int64
	database.DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		respondError(c, apperrors.Conflict("An account with this email already exists. Please sign in instead."))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		respondError(c, apperrors.Internal("Failed to hash password"))
		return
	}

	user := models.User{
		Name:       strings.TrimSpace(input.Name),
		Email:      email,
		Password:   string(hashedPassword),
		Enroll:     input.Enroll,
		Phone:      input.Phone,
		Batch:      input.Batch,
		Course:     input.Course,
		Section:    input.Section,
		GithubRepo: input.GithubRepo,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		logger.Warn().Err(err).Str("email", email).Msg("Registration failed")
		respondError(c, apperrors.Conflict("An account with this email already exists. Please sign in instead."))
		return
	}

	logger.Info().Str("user_id", user.ID).Msg("User registered successfully")
	issueToken(c, http.StatusCreated, user)
}

func checkCredentials(input LoginInput) (models.User, bool) {
	var user models.User
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		logger.Warn().Str("email", email).Msg("Login failed: user not found")
		return models.User{}, false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		logger.Warn().Str("email", email).Msg("Login failed: invalid password")
		return models.User{}, false
	}
	return user, true
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	user, ok := checkCredentials(input)
	if !ok {
		respondError(c, apperrors.Unauthorized("Invalid credentials"))
		return
	}
	logger.Info().Str("user_id", user.ID).Msg("User logged in")
	issueToken(c, http.StatusOK, user)
}

// AdminLogin only issues a token to accounts flagged as admin.
func AdminLogin(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	user, ok := checkCredentials(input)
	if !ok {
		respondError(c, apperrors.Unauthorized("Invalid credentials"))
		return
	}
	if !user.IsAdmin {
		logger.Warn().Str("user_id", user.ID).Msg("Admin login refused: not an admin")
		respondError(c, apperrors.Forbidden("You do not have admin privileges."))
		return
	}
	logger.Info().Str("user_id", user.ID).Msg("Admin logged in")
	issueToken(c, http.StatusOK, user)
}

// Logout revokes the current token until it would have expired anyway.
func Logout(c *gin.Context) {
	s := session.From(c)
	if s.TokenID == "" {
		c.JSON(http.StatusOK, gin.H{"message": "Already logged out"})
		return
	}
	if err := database.BlacklistToken(s.TokenID, s.ExpiresAt); err != nil {
		logger.Error().Err(err).Str("user_id", s.UserID).Msg("Failed to revoke token")
		respondError(c, apperrors.Wrap(http.StatusServiceUnavailable, "Logout is temporarily unavailable", err))
		return
	}
	logger.Info().Str("user_id", s.UserID).Msg("User logged out")
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me returns the session behind the bearer token.
func Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"session": session.From(c)})
}
