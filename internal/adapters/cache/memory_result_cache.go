package cache

import (
	"context"
	"room-matching-service/internal/domain"
	"sync"
)

// MemoryResultCache is a process-local ResultCache used when no Redis
// address is configured, and in tests.
type MemoryResultCache struct {
	mu   sync.RWMutex
	data map[string]domain.Result
}

func NewMemoryResultCache() *MemoryResultCache {
	return &MemoryResultCache{data: make(map[string]domain.Result)}
}

func (m *MemoryResultCache) Get(_ context.Context, key string) (domain.Result, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.data[key]
	if !ok {
		return domain.Result{}, false, nil
	}
	r.Assignment = append(domain.Assignment(nil), r.Assignment...)
	return r, true, nil
}

func (m *MemoryResultCache) Set(_ context.Context, key string, r domain.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r.Assignment = append(domain.Assignment(nil), r.Assignment...)
	m.data[key] = r
	return nil
}

// Len reports the number of cached entries.
func (m *MemoryResultCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
