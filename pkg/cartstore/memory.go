package cartstore

import (
	"context"
	"sync"
	"time"

	"hotelfood/entity"
)

type memEntry struct {
	mu      sync.Mutex
	cart    *entity.Cart
	expires time.Time
}

// MemoryStore keeps carts in process. Each session has its own lock, the store-wide lock
// only guards the session map.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memEntry
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*memEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemoryStore) entry(sessionID string) *memEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		e = &memEntry{expires: s.now().Add(s.ttl)}
		s.sessions[sessionID] = e
	}
	return e
}

// lockEntry returns the session entry locked. Lock order is entry then store; the
// re-check catches an entry swept or deleted between lookup and lock.
func (s *MemoryStore) lockEntry(sessionID string) *memEntry {
	for {
		e := s.entry(sessionID)
		e.mu.Lock()

		s.mu.Lock()
		live := s.sessions[sessionID] == e
		s.mu.Unlock()
		if live {
			return e
		}
		e.mu.Unlock()
	}
}

// current must be called with e.mu held.
func (s *MemoryStore) current(e *memEntry) *entity.Cart {
	if e.cart == nil || (s.ttl > 0 && s.now().After(e.expires)) {
		return entity.NewCart()
	}
	return e.cart
}

func (s *MemoryStore) touch(e *memEntry, c *entity.Cart) {
	e.cart = c
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*entity.Cart, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	s.mu.Lock()
	e, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return entity.NewCart(), nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneCart(s.current(e)), nil
}

func (s *MemoryStore) Update(ctx context.Context, sessionID string, fn func(*entity.Cart) error) (*entity.Cart, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	e := s.lockEntry(sessionID)
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	working := cloneCart(s.current(e))
	if err := fn(working); err != nil {
		return nil, err
	}
	s.touch(e, working)
	return cloneCart(working), nil
}

func (s *MemoryStore) Reset(_ context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrNoSession
	}
	e := s.lockEntry(sessionID)
	defer e.mu.Unlock()
	s.touch(e, entity.NewCart())
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// Sweep drops expired sessions and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.sessions {
		if !e.mu.TryLock() {
			continue
		}
		if now.After(e.expires) {
			delete(s.sessions, id)
			removed++
		}
		e.mu.Unlock()
	}
	return removed
}

// StartSweeper runs Sweep every interval until ctx is done.
func (s *MemoryStore) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
