// Package cache provides an in-memory TTL cache for analysis results.
// Entries expire after a configurable window and a cron-driven sweep
// reclaims expired entries between requests.
package cache

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
)

// DefaultTTL is used when no TTL is configured.
const DefaultTTL = 5 * time.Minute

// DefaultMaxEntries caps the cache when no limit is configured.
const DefaultMaxEntries = 256

type entry struct {
	value    interface{}
	storedAt time.Time
	expires  time.Time
}

// Service is a bounded TTL cache. All methods are safe for concurrent use.
type Service struct {
	mu         sync.Mutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
	logger     arbor.ILogger
	cron       *cron.Cron
}

// NewService creates a cache service with the given TTL and entry cap.
func NewService(ttl time.Duration, maxEntries int, logger arbor.ILogger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Service{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		logger:     logger,
	}
}

// Get returns the cached value for key if present and not expired.
func (s *Service) Get(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expires) {
		delete(s.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores a value for key. When the cache is at capacity the oldest
// entry is evicted first.
func (s *Service) Set(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists && len(s.entries) >= s.maxEntries {
		s.evictOldestLocked()
	}

	now := time.Now()
	s.entries[key] = entry{
		value:    value,
		storedAt: now,
		expires:  now.Add(s.ttl),
	}
}

// Delete removes a key from the cache.
func (s *Service) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Len returns the number of stored entries, including any not yet swept.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep removes all expired entries and returns how many were removed.
func (s *Service) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, e := range s.entries {
		if now.After(e.expires) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// evictOldestLocked removes the entry with the earliest store time.
// Caller must hold the mutex.
func (s *Service) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	for key, e := range s.entries {
		if oldestKey == "" || e.storedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = e.storedAt
		}
	}
	if oldestKey != "" {
		delete(s.entries, oldestKey)
	}
}

// StartSweeper schedules periodic expired-entry sweeps on a cron schedule.
// Returns an error when the schedule expression is invalid.
func (s *Service) StartSweeper(schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		removed := s.Sweep()
		if removed > 0 && s.logger != nil {
			s.logger.Debug().
				Int("removed", removed).
				Int("remaining", s.Len()).
				Msg("Cache sweep completed")
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	s.cron = c
	return nil
}

// StopSweeper stops the background sweep schedule.
func (s *Service) StopSweeper() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
