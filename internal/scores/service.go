package scores

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{2,40}$`)

// Service validates submissions and applies the max-merge rule on top of a
// Store.
type Service struct {
	store Store
	now   func() time.Time

	// Serializes read-modify-write in Submit.
	mu sync.Mutex
}

var _ Board = (*Service)(nil)

// NewService wraps a store.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Submit records a score. An existing id keeps the larger of its stored and
// submitted scores. A new id needs a first name or ErrProfileRequired is
// returned.
func (s *Service) Submit(ctx context.Context, sub Submission) (Result, error) {
	score, err := validate(sub)
	if err != nil {
		return Result{}, err
	}
	first, initial, err := normalizeProfile(sub.FirstName, sub.LastInitial)
	if err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := Key(sub.ID)
	existing, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return Result{}, fmt.Errorf("get %s: %w", key, err)
	}
	now := s.now().UTC()

	if ok {
		changed := false
		if score > existing.Score {
			existing.Score = score
			changed = true
		}
		if first != "" && (first != existing.FirstName || initial != existing.LastInitial) {
			existing.FirstName = first
			existing.LastInitial = initial
			changed = true
		}
		if !changed {
			return Result{Entry: existing}, nil
		}
		existing.UpdatedAt = now
		if err := s.store.Put(ctx, existing); err != nil {
			return Result{}, fmt.Errorf("put %s: %w", key, err)
		}
		return Result{Entry: existing}, nil
	}

	if first == "" {
		return Result{}, ErrProfileRequired
	}
	e := Entry{
		ID:          sub.ID,
		FirstName:   first,
		LastInitial: initial,
		Score:       score,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Put(ctx, e); err != nil {
		return Result{}, fmt.Errorf("put %s: %w", key, err)
	}
	return Result{Entry: e, Created: true}, nil
}

// Lookup finds an entry by id, ignoring case.
func (s *Service) Lookup(ctx context.Context, id string) (Entry, error) {
	if !idPattern.MatchString(id) {
		return Entry{}, fmt.Errorf("%w: id must match %s", ErrInvalid, idPattern)
	}
	e, ok, err := s.store.Get(ctx, Key(id))
	if err != nil {
		return Entry{}, fmt.Errorf("get %s: %w", id, err)
	}
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

// List returns up to limit entries, best first. limit is clamped to
// [1, MaxLimit].
func (s *Service) List(ctx context.Context, limit int) ([]Entry, error) {
	limit = ClampLimit(limit)
	entries, err := s.store.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	Sort(entries)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func validate(sub Submission) (int, error) {
	if !idPattern.MatchString(sub.ID) {
		return 0, fmt.Errorf("%w: id must match %s", ErrInvalid, idPattern)
	}
	if sub.Score == nil {
		return 0, fmt.Errorf("%w: score is required", ErrInvalid)
	}
	v := *sub.Score
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: score must be finite", ErrInvalid)
	}
	if v < 0 || v > MaxScore {
		return 0, fmt.Errorf("%w: score must be in [0, %d]", ErrInvalid, MaxScore)
	}
	return int(math.Trunc(v)), nil
}

// normalizeProfile trims the first name and reduces the last name to its
// first letter, upper-cased.
func normalizeProfile(firstName, lastInitial string) (string, string, error) {
	first := strings.TrimSpace(firstName)
	if utf8.RuneCountInString(first) > MaxFirstName {
		return "", "", fmt.Errorf("%w: firstName must be at most %d characters", ErrInvalid, MaxFirstName)
	}
	for _, r := range first {
		if unicode.IsControl(r) {
			return "", "", fmt.Errorf("%w: firstName contains control characters", ErrInvalid)
		}
	}
	initial := ""
	for _, r := range strings.TrimSpace(lastInitial) {
		if unicode.IsLetter(r) {
			initial = string(unicode.ToUpper(r))
			break
		}
	}
	return first, initial, nil
}
