package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/N4171k/45DOC/internal/client"
	"github.com/N4171k/45DOC/internal/completion"
	"github.com/N4171k/45DOC/internal/services"
	"github.com/N4171k/45DOC/internal/session"
	"github.com/N4171k/45DOC/pkg/logger"
	"github.com/spf13/viper"
)

// app is one CLI invocation: the API client, the on-disk cache and the
// resolved session.
type app struct {
	client   *client.Client
	store    *completion.BadgerStore
	sessions *client.SessionManager
	session  session.Session
	flow     *services.SubmissionFlow
}

func openApp(ctx context.Context) (*app, error) {
	return openAppAt(ctx, viper.GetString("api_url"), filepath.Join(viper.GetString("home"), "cache"))
}

func openAppAt(ctx context.Context, apiURL, cacheDir string) (*app, error) {
	store, err := completion.OpenBadgerStore(cacheDir)
	if err != nil {
		return nil, err
	}
	c := client.New(apiURL)
	a := &app{
		client:   c,
		store:    store,
		sessions: client.NewSessionManager(c, store),
		flow:     services.NewSubmissionFlow(c, store),
	}
	s, err := a.sessions.Resume(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Could not reach the server to resume the session")
	}
	a.session = s
	return a, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		logger.Warn().Err(err).Msg("Failed to close the local cache")
	}
}

func (a *app) requireLogin() error {
	if !a.session.Authenticated() {
		return errors.New("not logged in; run `codestreak login` first")
	}
	return nil
}

// Resets are remembered between runs so `codestreak reset` followed by a
// later `codestreak submit` overwrites the cached entry.
func resubmitMeta(profile, key string) string {
	return "resubmit/" + profile + "/" + key
}

func (a *app) markResubmit(key string) error {
	return a.store.SetMeta(resubmitMeta(a.session.Profile(), key), "1")
}

func (a *app) pendingResubmit(key string) bool {
	_, ok := a.store.GetMeta(resubmitMeta(a.session.Profile(), key))
	return ok
}

func (a *app) clearResubmit(key string) {
	if err := a.store.DeleteMeta(resubmitMeta(a.session.Profile(), key)); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Failed to clear resubmit marker")
	}
}

// submitDraft runs the flow, honouring an earlier reset or --new.
func (a *app) submitDraft(ctx context.Context, key string, resubmit bool, send func() (completion.Record, error)) (completion.Record, error) {
	if resubmit || a.pendingResubmit(key) {
		a.flow.Reset(a.session.Profile(), key)
	}
	rec, err := send()
	if err != nil {
		return rec, err
	}
	a.clearResubmit(key)
	return rec, nil
}

func readCode(path string) (string, error) {
	if path == "" {
		return "", errors.New("--file is required")
	}
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read code: %w", err)
	}
	return string(raw), nil
}

// describeError turns flow and API errors into a line for the terminal.
func describeError(err error) string {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return formatFields("Please correct the following", verr.Fields)
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		return formatFields(apiErr.Message, apiErr.Fields)
	}
	switch {
	case errors.Is(err, services.ErrAlreadySubmitted):
		return "already submitted; pass --new to resubmit"
	case errors.Is(err, services.ErrSubmissionInFlight):
		return "a submission for this question is already in progress"
	case errors.Is(err, services.ErrNotAuthenticated):
		return "not logged in; run `codestreak login` first"
	}
	return err.Error()
}

func formatFields(msg string, fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteString(msg)
	for _, name := range names {
		fmt.Fprintf(&b, "\n  %s: %s", name, fields[name])
	}
	return b.String()
}
