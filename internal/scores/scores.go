// Package scores persists best scores per player id and serves them over
// HTTP. The game submits a finished session's score; the store keeps the
// maximum ever submitted for each id.
package scores

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
)

// Limits for leaderboard listing.
const (
	DefaultLimit = 100
	MaxLimit     = 10000
	MaxScore     = 1_000_000
	MaxFirstName = 32
)

var (
	// ErrInvalid marks a malformed submission or query. The wrapping error
	// carries the detail shown to the caller.
	ErrInvalid = errors.New("invalid submission")
	// ErrProfileRequired is returned for a new id submitted without a first
	// name. The caller resubmits with the profile fields filled in.
	ErrProfileRequired = errors.New("profile required")
	// ErrNotFound is returned by lookups of unknown ids.
	ErrNotFound = errors.New("score not found")
)

// Entry is one player's best score.
type Entry struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastInitial string    `json:"lastInitial"`
	Score       int       `json:"score"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DisplayName is "First L." or just "First" without an initial.
func (e Entry) DisplayName() string {
	if e.LastInitial == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastInitial + "."
}

// Key is the case-insensitive identity of an id.
func Key(id string) string {
	return strings.ToLower(id)
}

// Submission is the body of POST /scores. Score is a pointer so a missing
// field can be told apart from zero.
type Submission struct {
	ID          string   `json:"id"`
	Score       *float64 `json:"score"`
	FirstName   string   `json:"firstName,omitempty"`
	LastInitial string   `json:"lastInitial,omitempty"`
}

// NewSubmission builds a submission for an integer game score.
func NewSubmission(id string, score int) Submission {
	s := float64(score)
	return Submission{ID: id, Score: &s}
}

// WithProfile returns a copy carrying the profile fields.
func (s Submission) WithProfile(firstName, lastInitial string) Submission {
	s.FirstName = firstName
	s.LastInitial = lastInitial
	return s
}

// Result is the outcome of an accepted submission.
type Result struct {
	Entry   Entry
	Created bool
}

// Board is the contract the game uses to record and read scores. Service
// implements it in process; Client implements it over HTTP.
type Board interface {
	Submit(ctx context.Context, sub Submission) (Result, error)
	Lookup(ctx context.Context, id string) (Entry, error)
	List(ctx context.Context, limit int) ([]Entry, error)
}

// Store is a persistence backend. Keys are already lower-cased.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Put(ctx context.Context, e Entry) error
	// Top returns the n best entries in any order. It may return more
	// when scores tie at the cut.
	Top(ctx context.Context, n int) ([]Entry, error)
	Close() error
}

// ClampLimit bounds a listing size to [1, MaxLimit].
func ClampLimit(n int) int {
	return max(1, min(n, MaxLimit))
}

// Sort orders entries by score descending, ties by display name.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if an, bn := a.DisplayName(), b.DisplayName(); an != bn {
			return an < bn
		}
		return Key(a.ID) < Key(b.ID)
	})
}
