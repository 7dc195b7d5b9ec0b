package session

import (
	"context"
	"sync"
	"time"
)

type Store interface {
	Save(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps sessions in process. Sessions do not survive a restart
// and are not shared between replicas.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]Session
	now   func() time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]Session),
		now:   time.Now,
	}
}

// Save also drops every expired session, so sessions abandoned without a
// logout do not pile up.
func (m *MemoryStore) Save(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep(m.now())
	m.items[s.ID] = s
	return nil
}

func (m *MemoryStore) sweep(now time.Time) {
	for id, s := range m.items {
		if s.Expired(now) {
			delete(m.items, id)
		}
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.items[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if s.Expired(m.now()) {
		delete(m.items, id)
		return Session{}, ErrSessionNotFound
	}
	return s, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.items, id)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
