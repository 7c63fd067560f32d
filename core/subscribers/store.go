// ABOUTME: In-memory subscriber registry for monthly report notifications
// ABOUTME: Add is idempotent; delivery itself happens outside this service

package subscribers

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"affiliate-tracker-api/core/errors"
)

// emailPattern is intentionally loose: one @, no spaces, a dot in the
// domain. Real validation happens when mail actually bounces.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Store holds the subscriber set. Addresses are stored lowercased so
// Alice@example.com and alice@example.com count once.
type Store struct {
	mu     sync.RWMutex
	emails map[string]struct{}
}

// NewStore creates an empty subscriber store.
func NewStore() *Store {
	return &Store{emails: make(map[string]struct{})}
}

// Add registers an email address. Adding an existing address is a
// no-op; the returned bool reports whether the address was new.
func (s *Store) Add(email string) (bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(normalized) {
		return false, &errors.ValidationError{
			Field:   "email",
			Message: "not a valid email address",
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.emails[normalized]; exists {
		return false, nil
	}
	s.emails[normalized] = struct{}{}
	return true, nil
}

// List returns all subscribed addresses in sorted order.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]string, 0, len(s.emails))
	for email := range s.emails {
		list = append(list, email)
	}
	sort.Strings(list)
	return list
}

// Count returns the number of subscribers.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.emails)
}
