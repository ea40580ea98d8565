package store

import (
	"sync"

	"github.com/mitkoooo/trading-simulator/internal/domain"
)

// OrderStore is a thread-safe in-memory store for orders, with a primary
// index by order_id and a secondary index by trader_id. It keeps every
// order ever accepted, resting or filled, as the trader's transaction log.
type OrderStore struct {
	mu           sync.RWMutex
	orders       map[string]*domain.Order
	traderOrders map[string][]*domain.Order // trader_id → orders (append-only)
}

// NewOrderStore creates an empty OrderStore.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders:       make(map[string]*domain.Order),
		traderOrders: make(map[string][]*domain.Order),
	}
}

// Create adds an order to the store and appends it to the trader's
// secondary index.
func (s *OrderStore) Create(o *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[o.OrderID] = o
	s.traderOrders[o.TraderID] = append(s.traderOrders[o.TraderID], o)
}

// Get retrieves an order by ID. It returns
// domain.ErrOrderNotFound if the order does not exist.
func (s *OrderStore) Get(id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

// ListByTrader returns the trader's orders in submission order.
func (s *OrderStore) ListByTrader(traderID string) []*domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.traderOrders[traderID]
	result := make([]*domain.Order, len(all))
	copy(result, all)
	return result
}
