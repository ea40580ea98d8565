package service

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/mitkoooo/trading-simulator/internal/domain"
	"github.com/mitkoooo/trading-simulator/internal/engine"
)

var traderIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// RegisterTraderRequest represents the input for trader registration.
type RegisterTraderRequest struct {
	TraderID        string
	StartingCash    float64
	InitialHoldings []HoldingInput
}

// HoldingInput represents a single holding in a registration request.
type HoldingInput struct {
	Symbol   string
	Quantity int64
}

// PositionBalance represents one symbol's holdings in a balance report.
type PositionBalance struct {
	Symbol           string
	Quantity         int64
	ReservedQuantity int64
	AvgCost          int64 // cents
}

// BalanceResponse represents a trader's portfolio snapshot, including
// its mark-to-market total value.
type BalanceResponse struct {
	TraderID     string
	Cash         int64 // free cash, cents
	ReservedCash int64
	Positions    []PositionBalance
	TotalValue   int64 // cents, at current market prices
}

// TraderService handles trader registration and balance reporting.
type TraderService struct {
	exchange *engine.Exchange
}

// NewTraderService creates a new TraderService.
func NewTraderService(exchange *engine.Exchange) *TraderService {
	return &TraderService{exchange: exchange}
}

// Register validates the request and registers a trader on the exchange
// with the given starting cash and holdings.
func (s *TraderService) Register(req RegisterTraderRequest) (*domain.Trader, error) {
	if !traderIDRegex.MatchString(req.TraderID) {
		return nil, &domain.ValidationError{
			Message: "trader_id must match ^[a-zA-Z0-9_-]{1,64}$",
		}
	}
	if req.StartingCash < 0 {
		return nil, &domain.ValidationError{
			Message: "starting_cash must be >= 0",
		}
	}
	cashCents, err := domain.DollarsToCents(req.StartingCash)
	if err != nil {
		return nil, &domain.ValidationError{
			Message: "starting_cash must have at most 2 decimal places",
		}
	}

	seen := make(map[string]bool)
	for _, h := range req.InitialHoldings {
		if !s.exchange.Market().Exists(h.Symbol) {
			return nil, domain.ErrSymbolNotFound
		}
		if h.Quantity <= 0 {
			return nil, &domain.ValidationError{
				Message: fmt.Sprintf("holding quantity must be > 0 for symbol %s", h.Symbol),
			}
		}
		if seen[h.Symbol] {
			return nil, &domain.ValidationError{
				Message: fmt.Sprintf("duplicate symbol in initial_holdings: %s", h.Symbol),
			}
		}
		seen[h.Symbol] = true
	}

	trader := domain.NewTrader(req.TraderID, cashCents)
	for _, h := range req.InitialHoldings {
		trader.Portfolio.Positions[h.Symbol] = &domain.Position{Quantity: h.Quantity}
	}

	if err := s.exchange.RegisterTrader(trader); err != nil {
		return nil, err
	}
	return trader, nil
}

// Balance reports the trader's current cash, positions, reservations,
// and total portfolio value at market prices.
func (s *TraderService) Balance(traderID string) (*BalanceResponse, error) {
	trader, err := s.exchange.Trader(traderID)
	if err != nil {
		return nil, err
	}

	p := trader.Portfolio

	// Merge free positions and share reservations into one row per symbol.
	symbols := make(map[string]bool)
	for symbol := range p.Positions {
		symbols[symbol] = true
	}
	for symbol := range p.ReservedShares {
		symbols[symbol] = true
	}

	positions := make([]PositionBalance, 0, len(symbols))
	for symbol := range symbols {
		row := PositionBalance{
			Symbol:           symbol,
			ReservedQuantity: p.ReservedShares[symbol],
		}
		if pos, ok := p.Positions[symbol]; ok {
			row.Quantity = pos.Quantity
			row.AvgCost = pos.AvgCost
		}
		positions = append(positions, row)
	}
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].Symbol < positions[j].Symbol
	})

	return &BalanceResponse{
		TraderID:     trader.TraderID,
		Cash:         p.Cash,
		ReservedCash: p.ReservedCash,
		Positions:    positions,
		TotalValue:   p.Value(s.exchange.Market()),
	}, nil
}
