// Package session carries the authenticated identity explicitly through a
// request instead of through process-wide state.
package session

import (
	"time"

	"github.com/gin-gonic/gin"
)

type Session struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsAdmin   bool      `json:"isAdmin"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Authenticated reports whether the session identifies a user. Both the id
// (profile scope of the cache) and the email (submitter identity) are needed.
func (s Session) Authenticated() bool {
	return s.UserID != "" && s.Email != ""
}

// Profile is the cache scope for this session.
func (s Session) Profile() string {
	return s.UserID
}

const contextKey = "session"

// Attach stores s on the request. The legacy "userId" key is kept for the
// logging middleware.
func Attach(c *gin.Context, s Session) {
	c.Set(contextKey, s)
	c.Set("userId", s.UserID)
}

// From returns the request's session, or the zero Session when there is none.
func From(c *gin.Context) Session {
	v, ok := c.Get(contextKey)
	if !ok {
		return Session{}
	}
	s, _ := v.(Session)
	return s
}
