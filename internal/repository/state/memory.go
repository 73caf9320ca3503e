package state

import (
	"context"
	"encoding/json"
	"sync"

	"storefront/internal/domain"
)

type memoryRepo struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemory returns an in-process Repository. Used by tests and as the
// degraded mode when no database is configured.
func NewMemory() Repository {
	return &memoryRepo{slots: make(map[string][]byte)}
}

func (r *memoryRepo) Load(_ context.Context, visitorID, slot string, dest interface{}) error {
	r.mu.RLock()
	raw, ok := r.slots[visitorID+"/"+slot]
	r.mu.RUnlock()
	if !ok {
		return domain.ErrNotFound
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return domain.ErrNotFound
	}
	return nil
}

func (r *memoryRepo) Save(_ context.Context, visitorID, slot string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.slots[visitorID+"/"+slot] = raw
	r.mu.Unlock()
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, visitorID, slot string) error {
	r.mu.Lock()
	delete(r.slots, visitorID+"/"+slot)
	r.mu.Unlock()
	return nil
}
