// Package client talks to the CodeStreak API for the terminal client.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/N4171k/45DOC/internal/completion"
	"github.com/N4171k/45DOC/internal/models"
	"github.com/N4171k/45DOC/internal/services"
	"github.com/N4171k/45DOC/internal/session"
)

// DefaultTimeout bounds every API call.
const DefaultTimeout = 30 * time.Second

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned %d", e.Status)
	}
	return fmt.Sprintf("api returned %d: %s", e.Status, e.Message)
}

// Client is an authenticated API client. It implements services.Sink so the
// terminal client can run a SubmissionFlow against the server.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) Token() string { return c.token }

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Error   string            `json:"error"`
			Message string            `json:"message"`
			Fields  map[string]string `json:"fields"`
		}
		if json.Unmarshal(raw, &payload) == nil {
			apiErr.Message = payload.Error
			if apiErr.Message == "" {
				apiErr.Message = payload.Message
			}
			apiErr.Fields = payload.Fields
		}
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// LoginResult is the token issued by POST /api/auth/login.
type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt int64       `json:"expiresAt"`
	User      models.User `json:"user"`
}

// Login exchanges credentials for a token and keeps it on the client.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var res LoginResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &res)
	if err != nil {
		return LoginResult{}, err
	}
	c.token = res.Token
	return res, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

// Me resolves the current token to a session.
func (c *Client) Me(ctx context.Context) (session.Session, error) {
	var res struct {
		Session session.Session `json:"session"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &res); err != nil {
		return session.Session{}, err
	}
	return res.Session, nil
}

func (c *Client) Today(ctx context.Context) (models.Challenge, error) {
	var res struct {
		Challenge models.Challenge `json:"challenge"`
	}
	err := c.do(ctx, http.MethodGet, "/api/challenges/today", nil, &res)
	return res.Challenge, err
}

func (c *Client) Challenge(ctx context.Context, day int) (models.Challenge, error) {
	var res struct {
		Challenge models.Challenge `json:"challenge"`
	}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/challenges/%d", day), nil, &res)
	return res.Challenge, err
}

// Question looks up one tier of a day. The returned id is the challenge id
// submissions for it carry.
func (c *Client) Question(ctx context.Context, day int, difficulty models.Difficulty) (string, models.Question, error) {
	var res struct {
		ChallengeID string          `json:"challengeId"`
		Question    models.Question `json:"question"`
	}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/challenges/%d/%s", day, difficulty), nil, &res)
	return res.ChallengeID, res.Question, err
}

// Create implements services.Sink over POST /api/submissions.
func (c *Client) Create(ctx context.Context, rec completion.Record) (string, error) {
	var res struct {
		ID string `json:"id"`
	}
	in := struct {
		services.Draft
		CompletedAt time.Time `json:"completedAt"`
	}{
		Draft: services.Draft{
			ChallengeID:   rec.ChallengeID,
			QuestionTitle: rec.QuestionTitle,
			Difficulty:    rec.Difficulty,
			Code:          rec.Code,
			Language:      rec.Language,
			GithubLink:    rec.GithubLink,
		},
		CompletedAt: rec.CompletedAt,
	}
	if err := c.do(ctx, http.MethodPost, "/api/submissions", in, &res); err != nil {
		return "", err
	}
	return res.ID, nil
}

// ListByUser implements services.Sink. The server only ever lists the
// token's own submissions, so email is not sent.
func (c *Client) ListByUser(ctx context.Context, email string) ([]completion.Record, error) {
	var res struct {
		Submissions []completion.Record `json:"submissions"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/submissions/mine", nil, &res); err != nil {
		return nil, err
	}
	return res.Submissions, nil
}

// Review implements services.Reviewer through the server's reviewer.
func (c *Client) Review(ctx context.Context, req services.ReviewRequest) (completion.Review, error) {
	var res struct {
		Review completion.Review `json:"review"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/review", req, &res); err != nil {
		return completion.Review{}, err
	}
	return res.Review, nil
}

var (
	_ services.Sink     = (*Client)(nil)
	_ services.Reviewer = (*Client)(nil)
)
