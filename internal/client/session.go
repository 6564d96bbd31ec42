package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/N4171k/45DOC/internal/session"
	"github.com/N4171k/45DOC/pkg/logger"
)

const tokenMeta = "token"

// TokenStore persists the bearer token between runs. completion.BadgerStore
// satisfies it.
type TokenStore interface {
	GetMeta(name string) (string, bool)
	SetMeta(name, value string) error
	DeleteMeta(name string) error
}

// SessionManager keeps the client's token on disk and resolves it into a
// session with the server.
type SessionManager struct {
	client *Client
	store  TokenStore
}

func NewSessionManager(c *Client, store TokenStore) *SessionManager {
	return &SessionManager{client: c, store: store}
}

func isUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Resume loads a saved token and asks the server who it belongs to. A missing
// or rejected token yields the zero Session and no error.
func (m *SessionManager) Resume(ctx context.Context) (session.Session, error) {
	token, ok := m.store.GetMeta(tokenMeta)
	if !ok || token == "" {
		return session.Session{}, nil
	}
	m.client.SetToken(token)

	s, err := m.client.Me(ctx)
	if isUnauthorized(err) {
		logger.Debug().Msg("Saved token rejected, clearing it")
		m.client.SetToken("")
		if err := m.store.DeleteMeta(tokenMeta); err != nil {
			logger.Warn().Err(err).Msg("Failed to clear saved token")
		}
		return session.Session{}, nil
	}
	if err != nil {
		return session.Session{}, err
	}
	return s, nil
}

func (m *SessionManager) Login(ctx context.Context, email, password string) (session.Session, error) {
	res, err := m.client.Login(ctx, email, password)
	if err != nil {
		return session.Session{}, err
	}
	if err := m.store.SetMeta(tokenMeta, res.Token); err != nil {
		return session.Session{}, fmt.Errorf("save token: %w", err)
	}
	return m.client.Me(ctx)
}

// Logout revokes the token on the server and forgets it locally. An already
// invalid token still counts as logged out.
func (m *SessionManager) Logout(ctx context.Context) error {
	if m.client.Token() == "" {
		token, ok := m.store.GetMeta(tokenMeta)
		if !ok {
			return nil
		}
		m.client.SetToken(token)
	}
	if err := m.client.Logout(ctx); err != nil && !isUnauthorized(err) {
		return err
	}
	m.client.SetToken("")
	if err := m.store.DeleteMeta(tokenMeta); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
