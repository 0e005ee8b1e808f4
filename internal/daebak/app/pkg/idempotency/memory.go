package idempotency

import (
	"context"
	"sync"
	"time"
)

// Memory is the single-process variant of Store.
type Memory struct {
	mu   sync.Mutex
	keys map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		keys: make(map[string]time.Time),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (m *Memory) Seen(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	for k, exp := range m.keys {
		if !now.Before(exp) {
			delete(m.keys, k)
		}
	}

	if _, ok := m.keys[key]; ok {
		return true, nil
	}

	m.keys[key] = now.Add(m.ttl)

	return false, nil
}

func (m *Memory) Forget(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.keys, key)
	m.mu.Unlock()

	return nil
}
