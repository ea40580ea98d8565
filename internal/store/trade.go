package store

import (
	"sync"

	"github.com/mitkoooo/trading-simulator/internal/domain"
)

// TradeStore is the simulator's trade tape: every execution the matching
// loop produces, per symbol, in the order it happened. Entries are never
// updated or removed.
type TradeStore struct {
	mu   sync.RWMutex
	tape map[string][]*domain.Trade
}

// NewTradeStore creates an empty TradeStore.
func NewTradeStore() *TradeStore {
	return &TradeStore{tape: make(map[string][]*domain.Trade)}
}

// Append records a trade on the symbol's tape.
func (s *TradeStore) Append(symbol string, t *domain.Trade) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tape[symbol] = append(s.tape[symbol], t)
}

// GetBySymbol returns a copy of the symbol's tape, oldest trade first.
// A symbol that never traded yields an empty tape.
func (s *TradeStore) GetBySymbol(symbol string) []*domain.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Trade, len(s.tape[symbol]))
	copy(result, s.tape[symbol])
	return result
}
