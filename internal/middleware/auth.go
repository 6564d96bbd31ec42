package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/N4171k/45DOC/internal/database"
	"github.com/N4171k/45DOC/internal/models"
	"github.com/N4171k/45DOC/internal/session"
	"github.com/N4171k/45DOC/pkg/utils"
	"github.com/gin-gonic/gin"
)

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// resolveSession turns a bearer token into a session, loading the user so a
// deleted account or revoked token is rejected.
func resolveSession(token string) (session.Session, string) {
	claims, err := utils.ValidateToken(token)
	if err != nil {
		return session.Session{}, "Invalid or expired token"
	}
	if database.IsTokenBlacklisted(claims.GetJTI()) {
		return session.Session{}, "Token has been revoked"
	}

	var user models.User
	if err := database.DB.Select("id", "email", "name", "is_admin").First(&user, "id = ?", claims.UserID).Error; err != nil {
		return session.Session{}, "User not found or inactive"
	}

	var exp time.Time
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	return session.Session{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		IsAdmin:   user.IsAdmin,
		TokenID:   claims.GetJTI(),
		ExpiresAt: exp,
	}, ""
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		s, reason := resolveSession(token)
		if reason != "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": reason})
			c.Abort()
			return
		}

		session.Attach(c, s)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches a session when a valid token is present and
// lets the request through either way.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if s, reason := resolveSession(token); reason == "" {
				session.Attach(c, s)
			}
		}
		c.Next()
	}
}
