package cache

import (
	"sync"
	"time"

	apperrors "github.com/innovators-table/followup-assistant/errors"
	"github.com/innovators-table/followup-assistant/internal/domain/entities"
)

// MemoryRunStore keeps run records in process memory with expiration.
// It is the fallback store when Redis is not configured.
type MemoryRunStore struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]*memoryItem
}

type memoryItem struct {
	run        entities.Run
	expireTime time.Time
}

// NewMemoryRunStore creates an in-memory run store with the given TTL.
func NewMemoryRunStore(ttl time.Duration) *MemoryRunStore {
	store := &MemoryRunStore{
		ttl:   ttl,
		items: make(map[string]*memoryItem),
	}

	go store.cleanupExpired()

	return store
}

// Save stores a snapshot of the run, resetting its expiration.
func (ms *MemoryRunStore) Save(run *entities.Run) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.items[run.ID.String()] = &memoryItem{
		run:        *run,
		expireTime: time.Now().Add(ms.ttl),
	}
	return nil
}

// Get retrieves a run by ID. Missing or expired runs return RunNotFound.
func (ms *MemoryRunStore) Get(runID string) (*entities.Run, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	item, exists := ms.items[runID]
	if !exists || time.Now().After(item.expireTime) {
		return nil, apperrors.ErrRunNotFound(runID)
	}

	run := item.run
	return &run, nil
}

// cleanupExpired periodically removes expired runs.
func (ms *MemoryRunStore) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		ms.mu.Lock()
		now := time.Now()
		for key, item := range ms.items {
			if now.After(item.expireTime) {
				delete(ms.items, key)
			}
		}
		ms.mu.Unlock()
	}
}
