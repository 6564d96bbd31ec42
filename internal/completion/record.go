// Package completion keeps the profile-scoped cache of a user's latest
// submission per (challenge, difficulty).
package completion

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/N4171k/45DOC/internal/models"
)

// DocumentName is the name of the persisted document in every backend.
const DocumentName = "codeStreakCompletions"

// Review is the AI feedback attached to a cached record. It never leaves the cache.
type Review struct {
	Feedback string `json:"feedback"`
	Grade    string `json:"grade"`
}

// Record is the cached snapshot of one submission.
type Record struct {
	ID            string            `json:"id,omitempty"`
	UserEmail     string            `json:"userEmail"`
	ChallengeID   string            `json:"challengeId"`
	QuestionTitle string            `json:"questionTitle"`
	Difficulty    models.Difficulty `json:"difficulty"`
	Code          string            `json:"code"`
	Language      string            `json:"language"`
	GithubLink    string            `json:"githubLink,omitempty"`
	CompletedAt   time.Time         `json:"completedAt"`
	Review        *Review           `json:"review,omitempty"`
}

// Key is the cache key for a (challenge, difficulty) pair.
func Key(challengeID string, difficulty models.Difficulty) string {
	return fmt.Sprintf("%s-%s", challengeID, difficulty)
}

// CustomChallengeID is the challenge id of a day's "code of my choice" entry.
// Its cache key is the id itself, with no difficulty suffix.
func CustomChallengeID(day int) string {
	return fmt.Sprintf("day-%d-custom", day)
}

// IsCustom reports whether challengeID names a "code of my choice" entry.
func IsCustom(challengeID string) bool {
	return strings.HasPrefix(challengeID, "day-") && strings.HasSuffix(challengeID, "-custom")
}

// Key returns the cache key the record belongs under.
func (r Record) Key() string {
	if IsCustom(r.ChallengeID) {
		return r.ChallengeID
	}
	return Key(r.ChallengeID, r.Difficulty)
}

var (
	errMissingChallenge = errors.New("record has no challengeId")
	errBadDifficulty    = errors.New("record has an unknown difficulty")
	errNoTimestamp      = errors.New("record has no completedAt")
)

// Validate checks the shape every backend relies on.
func (r Record) Validate() error {
	if r.ChallengeID == "" {
		return errMissingChallenge
	}
	if !r.Difficulty.Valid() {
		return errBadDifficulty
	}
	if r.CompletedAt.IsZero() {
		return errNoTimestamp
	}
	return nil
}

// FromSubmission converts a remote row into a cache record.
func FromSubmission(s models.Submission) Record {
	return Record{
		ID:            s.ID,
		UserEmail:     s.UserEmail,
		ChallengeID:   s.ChallengeID,
		QuestionTitle: s.QuestionTitle,
		Difficulty:    s.Difficulty,
		Code:          s.Code,
		Language:      s.Language,
		GithubLink:    s.GithubLink,
		CompletedAt:   s.CompletedAt,
	}
}

// DecodeDocument parses a persisted document. A document that does not parse
// yields an empty map; entries that fail validation are dropped one by one.
// The returned error only reports what was discarded.
func DecodeDocument(raw []byte) (map[string]Record, error) {
	out := make(map[string]Record)
	if len(raw) == 0 {
		return out, nil
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return out, fmt.Errorf("decode %s: %w", DocumentName, err)
	}

	var dropped []string
	for key, entry := range entries {
		var rec Record
		if err := json.Unmarshal(entry, &rec); err != nil {
			dropped = append(dropped, key)
			continue
		}
		if err := rec.Validate(); err != nil {
			dropped = append(dropped, key)
			continue
		}
		out[key] = rec
	}

	if len(dropped) > 0 {
		return out, fmt.Errorf("dropped %d invalid entries from %s: %v", len(dropped), DocumentName, dropped)
	}
	return out, nil
}

// EncodeDocument serializes doc after validating every entry.
func EncodeDocument(doc map[string]Record) ([]byte, error) {
	for key, rec := range doc {
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}
	}
	if doc == nil {
		doc = map[string]Record{}
	}
	return json.Marshal(doc)
}
