package store

import (
	"sort"
	"sync"

	"github.com/mitkoooo/trading-simulator/internal/domain"
)

// TraderStore holds every participant registered for the lifetime of the
// process: the interactive trader plus the noise pool. IDs are claimed
// first-come and never released, so a duplicate registration fails
// instead of replacing the trader that owns the ID's portfolio.
type TraderStore struct {
	mu      sync.RWMutex
	traders map[string]*domain.Trader
}

// NewTraderStore creates an empty TraderStore.
func NewTraderStore() *TraderStore {
	return &TraderStore{traders: make(map[string]*domain.Trader)}
}

// Create claims the trader's ID and stores it. Returns
// domain.ErrTraderAlreadyExists if the ID is taken.
func (s *TraderStore) Create(t *domain.Trader) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.traders[t.TraderID]; taken {
		return domain.ErrTraderAlreadyExists
	}
	s.traders[t.TraderID] = t
	return nil
}

// Get returns the trader registered under id, or domain.ErrTraderNotFound.
func (s *TraderStore) Get(id string) (*domain.Trader, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.traders[id]
	if !ok {
		return nil, domain.ErrTraderNotFound
	}
	return t, nil
}

// Exists reports whether id is registered.
func (s *TraderStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.traders[id]
	return ok
}

// All returns the registered traders in ID order.
func (s *TraderStore) All() []*domain.Trader {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*domain.Trader, 0, len(s.traders))
	for _, t := range s.traders {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].TraderID < all[j].TraderID
	})
	return all
}
