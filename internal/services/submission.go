package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/N4171k/45DOC/internal/completion"
	"github.com/N4171k/45DOC/internal/metrics"
	"github.com/N4171k/45DOC/internal/models"
	"github.com/N4171k/45DOC/internal/session"
	"github.com/N4171k/45DOC/pkg/logger"
	"github.com/N4171k/45DOC/pkg/utils"
	"github.com/rs/zerolog"
)

// SubmissionState is the per-question display state of the submit form.
type SubmissionState int

const (
	Unsubmitted SubmissionState = iota
	Submitting
	Submitted
	Resubmitting
)

func (s SubmissionState) String() string {
	switch s {
	case Submitting:
		return "submitting"
	case Submitted:
		return "submitted"
	case Resubmitting:
		return "resubmitting"
	default:
		return "unsubmitted"
	}
}

func (s SubmissionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Draft is a solution as entered by the user.
type Draft struct {
	ChallengeID   string            `json:"challengeId" validate:"required"`
	QuestionTitle string            `json:"questionTitle" validate:"required"`
	Difficulty    models.Difficulty `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Code          string            `json:"code" validate:"required,min=10"`
	Language      string            `json:"language" validate:"required"`
	GithubLink    string            `json:"githubLink" validate:"omitempty,url"`
}

// CustomDraft is a "code of my choice" solution: the user supplies the problem.
type CustomDraft struct {
	Day        int    `json:"day" validate:"min=1"`
	Problem    string `json:"problem" validate:"required,min=10"`
	Code       string `json:"code" validate:"required,min=10"`
	Language   string `json:"language" validate:"required"`
	GithubLink string `json:"githubLink" validate:"omitempty,url"`
}

// Draft converts c into a regular draft. Custom entries are filed as easy
// with the first 50 characters of the problem as their title.
func (c CustomDraft) Draft() Draft {
	return Draft{
		ChallengeID:   completion.CustomChallengeID(c.Day),
		QuestionTitle: utils.TruncateString(c.Problem, 50) + "...",
		Difficulty:    models.DifficultyEasy,
		Code:          c.Code,
		Language:      c.Language,
		GithubLink:    c.GithubLink,
	}
}

// SubmissionFlow records solutions: the remote sink first, then the
// profile's completion cache.
type SubmissionFlow struct {
	sink  Sink
	store completion.Store
	now   func() time.Time
	log   zerolog.Logger

	mu     sync.Mutex
	states map[string]SubmissionState
}

type FlowOption func(*SubmissionFlow)

// WithClock replaces time.Now as the source of completedAt.
func WithClock(now func() time.Time) FlowOption {
	return func(f *SubmissionFlow) {
		f.now = now
	}
}

func NewSubmissionFlow(sink Sink, store completion.Store, opts ...FlowOption) *SubmissionFlow {
	f := &SubmissionFlow{
		sink:   sink,
		store:  store,
		now:    time.Now,
		log:    logger.Component("submission"),
		states: make(map[string]SubmissionState),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Store exposes the cache the flow writes to.
func (f *SubmissionFlow) Store() completion.Store {
	return f.store
}

func stateKey(profile, key string) string {
	return profile + "/" + key
}

// State reports the display state of key. Without an explicit transition a
// cached record means Submitted.
func (f *SubmissionFlow) State(ctx context.Context, profile, key string) SubmissionState {
	f.mu.Lock()
	st, ok := f.states[stateKey(profile, key)]
	f.mu.Unlock()
	if ok {
		return st
	}
	if _, cached := f.store.Get(ctx, profile, key); cached {
		return Submitted
	}
	return Unsubmitted
}

// Submit records d for the session's user.
func (f *SubmissionFlow) Submit(ctx context.Context, sess session.Session, d Draft) (completion.Record, error) {
	return f.submit(ctx, sess, d, completion.Key(d.ChallengeID, d.Difficulty))
}

// SubmitCustom records a "code of my choice" solution for c.Day.
func (f *SubmissionFlow) SubmitCustom(ctx context.Context, sess session.Session, c CustomDraft) (completion.Record, error) {
	if !sess.Authenticated() {
		metrics.Submissions.WithLabelValues("unauthenticated").Inc()
		return completion.Record{}, ErrNotAuthenticated
	}
	if err := Validate(c); err != nil {
		metrics.Submissions.WithLabelValues("invalid").Inc()
		return completion.Record{}, err
	}
	d := c.Draft()
	return f.submit(ctx, sess, d, d.ChallengeID)
}

func (f *SubmissionFlow) submit(ctx context.Context, sess session.Session, d Draft, key string) (completion.Record, error) {
	if !sess.Authenticated() {
		metrics.Submissions.WithLabelValues("unauthenticated").Inc()
		return completion.Record{}, ErrNotAuthenticated
	}
	if err := Validate(d); err != nil {
		metrics.Submissions.WithLabelValues("invalid").Inc()
		return completion.Record{}, err
	}

	profile := sess.Profile()
	sk := stateKey(profile, key)
	_, cached := f.store.Get(ctx, profile, key)

	f.mu.Lock()
	prev, explicit := f.states[sk]
	current := prev
	if !explicit && cached {
		current = Submitted
	}
	switch current {
	case Submitting:
		f.mu.Unlock()
		metrics.Submissions.WithLabelValues("conflict").Inc()
		return completion.Record{}, ErrSubmissionInFlight
	case Submitted:
		f.mu.Unlock()
		metrics.Submissions.WithLabelValues("conflict").Inc()
		return completion.Record{}, ErrAlreadySubmitted
	}
	f.states[sk] = Submitting
	f.mu.Unlock()

	rec := completion.Record{
		UserEmail:     sess.Email,
		ChallengeID:   d.ChallengeID,
		QuestionTitle: d.QuestionTitle,
		Difficulty:    d.Difficulty,
		Code:          d.Code,
		Language:      d.Language,
		GithubLink:    d.GithubLink,
		CompletedAt:   f.now().UTC(),
	}

	id, err := f.sink.Create(WithUserID(ctx, sess.UserID), rec)
	if err != nil {
		f.mu.Lock()
		if explicit {
			f.states[sk] = prev
		} else {
			delete(f.states, sk)
		}
		f.mu.Unlock()
		metrics.Submissions.WithLabelValues("remote_error").Inc()
		f.log.Warn().Err(err).Str("user", sess.UserID).Str("key", key).Msg("remote submission write failed")
		return completion.Record{}, &RemoteWriteError{Err: err}
	}
	rec.ID = id

	if err := f.store.Put(ctx, profile, key, rec); err != nil {
		metrics.CacheWriteFailures.Inc()
		f.log.Error().Err(err).Str("user", sess.UserID).Str("key", key).Str("submission_id", id).
			Msg("submission saved remotely but completion cache write failed")
	}

	f.mu.Lock()
	f.states[sk] = Submitted
	f.mu.Unlock()

	metrics.Submissions.WithLabelValues("ok").Inc()
	return rec, nil
}

// Reset clears the submitted view of key so a new solution can be entered.
// The cached record and the remote row are kept until that solution lands.
func (f *SubmissionFlow) Reset(profile, key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sk := stateKey(profile, key)
	if f.states[sk] == Submitting {
		return
	}
	f.states[sk] = Resubmitting
}

// AttachReview stores an AI review on the cached record for key.
func (f *SubmissionFlow) AttachReview(ctx context.Context, profile, key string, review completion.Review) (completion.Record, error) {
	rec, ok := f.store.Get(ctx, profile, key)
	if !ok {
		return completion.Record{}, ErrNoCompletion
	}
	rec.Review = &review
	if err := f.store.Put(ctx, profile, key, rec); err != nil {
		return completion.Record{}, fmt.Errorf("attach review: %w", err)
	}
	return rec, nil
}

// Reconcile rebuilds the session's cache from the sink: the latest remote
// record per key wins, and a cached review survives when it belongs to that
// same remote record.
func (f *SubmissionFlow) Reconcile(ctx context.Context, sess session.Session) (map[string]completion.Record, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	remote, err := f.sink.ListByUser(ctx, sess.Email)
	if err != nil {
		return nil, fmt.Errorf("list remote submissions: %w", err)
	}

	profile := sess.Profile()
	cached := f.store.All(ctx, profile)
	doc := make(map[string]completion.Record, len(remote))
	for _, rec := range remote {
		if rec.Validate() != nil {
			continue
		}
		key := rec.Key()
		if cur, ok := doc[key]; ok && !rec.CompletedAt.After(cur.CompletedAt) {
			continue
		}
		doc[key] = rec
	}
	for key, rec := range doc {
		if old, ok := cached[key]; ok && old.Review != nil && old.ID != "" && old.ID == rec.ID {
			rec.Review = old.Review
			doc[key] = rec
		}
	}

	if err := f.store.Replace(ctx, profile, doc); err != nil {
		return nil, fmt.Errorf("replace completion cache: %w", err)
	}

	f.mu.Lock()
	for key := range doc {
		sk := stateKey(profile, key)
		if f.states[sk] != Submitting {
			delete(f.states, sk)
		}
	}
	f.mu.Unlock()

	f.log.Info().Str("user", sess.UserID).Int("remote", len(remote)).Int("keys", len(doc)).Msg("completion cache reconciled")
	return doc, nil
}

// IsConflict reports whether err is a state conflict (in flight or already submitted).
func IsConflict(err error) bool {
	return errors.Is(err, ErrSubmissionInFlight) || errors.Is(err, ErrAlreadySubmitted)
}
