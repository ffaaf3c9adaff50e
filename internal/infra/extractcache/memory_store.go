package extractcache

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/cspark/internal/domain/extractor"
)

type entry struct {
	payload   extractor.Result
	expiresAt time.Time
}

// MemoryStore keeps extraction results in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get implements extractor.Cache.
func (s *MemoryStore) Get(_ context.Context, key string) (extractor.Result, bool, error) {
	s.mu.RLock()
	record, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return extractor.Result{}, false, nil
	}
	if s.hasExpired(record.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return extractor.Result{}, false, nil
	}
	return record.payload, true, nil
}

// Set stores result with an optional TTL.
func (s *MemoryStore) Set(_ context.Context, key string, result extractor.Result, ttl time.Duration) error {
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[key] = entry{payload: result, expiresAt: exp}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(s.now())
}

var _ extractor.Cache = (*MemoryStore)(nil)
