package cart

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Service hands out the single authoritative Store per session, restoring
// the persisted snapshot the first time a session shows up.
type Service struct {
	mu        sync.RWMutex
	stores    map[string]*Store
	persister Persister
	sfg       singleflight.Group // collapses concurrent first-loads per session
}

func NewService(persister Persister) *Service {
	return &Service{
		stores:    make(map[string]*Store),
		persister: persister,
	}
}

// ForSession returns the session's store, creating and restoring it on first
// use. Restore failures degrade to an empty cart; this never fails.
func (s *Service) ForSession(ctx context.Context, sessionID string) *Store {
	s.mu.RLock()
	store, ok := s.stores[sessionID]
	s.mu.RUnlock()
	if ok {
		return store
	}

	v, _, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		s.mu.RLock()
		existing, ok := s.stores[sessionID]
		s.mu.RUnlock()
		if ok {
			return existing, nil
		}

		created := newStore(sessionID, s.persister)
		created.restore(ctx)

		s.mu.Lock()
		s.stores[sessionID] = created
		s.mu.Unlock()
		return created, nil
	})

	return v.(*Store)
}
