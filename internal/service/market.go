package service

import (
	"time"

	"github.com/mitkoooo/trading-simulator/internal/domain"
	"github.com/mitkoooo/trading-simulator/internal/engine"
)

// StockQuote represents one symbol's current price and its move since
// the previous tick, in cents.
type StockQuote struct {
	Symbol string
	Price  int64
	Change int64
}

// BookSnapshot represents the aggregated state of one symbol's book.
type BookSnapshot struct {
	Symbol     string
	Bids       []engine.PriceLevel
	Asks       []engine.PriceLevel
	Spread     *int64 // nil if either side empty
	SnapshotAt time.Time
}

// MarketService handles tick processing and read-only market queries
// for the command loop.
type MarketService struct {
	exchange *engine.Exchange
	noise    *engine.NoisePool // nil when the simulation runs without noise traders
}

// NewMarketService creates a new MarketService.
func NewMarketService(exchange *engine.Exchange, noise *engine.NoisePool) *MarketService {
	return &MarketService{
		exchange: exchange,
		noise:    noise,
	}
}

// Tick advances the exchange clock, moves every stock's price one step,
// and lets the noise traders refresh their quotes against the new prices.
func (s *MarketService) Tick() {
	s.exchange.ProcessTick()
	if s.noise != nil {
		s.noise.Quote(s.exchange)
	}
}

// Quotes returns the current price of every stock in symbol order.
func (s *MarketService) Quotes() []StockQuote {
	var quotes []StockQuote
	s.exchange.Market().Each(func(stock *domain.Stock) {
		q := StockQuote{Symbol: stock.Symbol, Price: stock.Price}
		if n := len(stock.History); n >= 2 {
			q.Change = stock.Price - stock.History[n-2]
		}
		quotes = append(quotes, q)
	})
	return quotes
}

// Book returns up to depth aggregated price levels per side for a symbol.
func (s *MarketService) Book(symbol string, depth int) (*BookSnapshot, error) {
	if !s.exchange.Market().Exists(symbol) {
		return nil, domain.ErrSymbolNotFound
	}

	snapshot := &BookSnapshot{
		Symbol:     symbol,
		SnapshotAt: time.Now(),
	}
	book, ok := s.exchange.Books().Get(symbol)
	if !ok {
		return snapshot, nil
	}

	snapshot.Bids = book.TopBids(depth)
	snapshot.Asks = book.TopAsks(depth)
	if len(snapshot.Bids) > 0 && len(snapshot.Asks) > 0 {
		spread := snapshot.Asks[0].Price - snapshot.Bids[0].Price
		snapshot.Spread = &spread
	}
	return snapshot, nil
}

// Pending returns the resting orders on each side of a symbol's book in
// priority order.
func (s *MarketService) Pending(symbol string) (buys, sells []*domain.Order, err error) {
	if !s.exchange.Market().Exists(symbol) {
		return nil, nil, domain.ErrSymbolNotFound
	}
	book, ok := s.exchange.Books().Get(symbol)
	if !ok {
		return nil, nil, nil
	}
	book.WalkBuys(func(o *domain.Order) bool {
		buys = append(buys, o)
		return true
	})
	book.WalkSells(func(o *domain.Order) bool {
		sells = append(sells, o)
		return true
	})
	return buys, sells, nil
}
