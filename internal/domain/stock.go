package domain

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
)

// TickModel computes a stock's next price in cents from its current price
// and volatility. Models draw randomness from the supplied source so a
// seeded run is reproducible.
type TickModel func(price int64, volatility float64, rng *rand.Rand) int64

// Stock represents a tradable asset's market price and its history.
type Stock struct {
	Symbol     string
	Price      int64 // cents
	Volatility float64
	History    []int64 // chronological, includes the starting price
	Model      TickModel
}

// NewStock creates a Stock at the given starting price (cents).
func NewStock(symbol string, price int64, volatility float64, model TickModel) *Stock {
	return &Stock{
		Symbol:     symbol,
		Price:      price,
		Volatility: volatility,
		History:    []int64{price},
		Model:      model,
	}
}

// SimulateTick returns the next price from the configured tick model
// without applying it.
func (s *Stock) SimulateTick(rng *rand.Rand) int64 {
	return s.Model(s.Price, s.Volatility, rng)
}

// UpdatePrice sets the current price and appends it to the history.
// Negative prices are rejected.
func (s *Stock) UpdatePrice(price int64) error {
	if price < 0 {
		return fmt.Errorf("price must be non-negative, got %d", price)
	}
	s.Price = price
	s.History = append(s.History, price)
	return nil
}

// MarketData tracks the known stocks and their current prices in a
// thread-safe manner. The set of symbols is fixed at startup.
type MarketData struct {
	mu     sync.RWMutex
	stocks map[string]*Stock
}

// NewMarketData creates a MarketData holding the given stocks.
func NewMarketData(stocks ...*Stock) *MarketData {
	m := &MarketData{stocks: make(map[string]*Stock)}
	for _, s := range stocks {
		m.stocks[s.Symbol] = s
	}
	return m
}

// Get returns the stock for the symbol, or false if unknown.
func (m *MarketData) Get(symbol string) (*Stock, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.stocks[symbol]
	return s, ok
}

// Price returns the current market price for the symbol in cents.
func (m *MarketData) Price(symbol string) (int64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.stocks[symbol]
	if !ok {
		return 0, false
	}
	return s.Price, true
}

// Exists returns true if the symbol is traded on this market.
func (m *MarketData) Exists(symbol string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.stocks[symbol]
	return ok
}

// Symbols returns all known symbols in lexicographic order.
func (m *MarketData) Symbols() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	symbols := make([]string, 0, len(m.stocks))
	for symbol := range m.stocks {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// Each calls fn for every stock in lexicographic symbol order, holding
// the write lock so fn may mutate prices.
func (m *MarketData) Each(fn func(*Stock)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	symbols := make([]string, 0, len(m.stocks))
	for symbol := range m.stocks {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	for _, symbol := range symbols {
		fn(m.stocks[symbol])
	}
}
