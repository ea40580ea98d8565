package domain

import (
	"fmt"
	"math"
)

// Position represents a trader's unreserved stake in a single symbol.
// AvgCost is the volume-weighted average purchase price in cents.
type Position struct {
	Quantity int64
	AvgCost  int64
}

// PriceSource resolves a symbol to its current market price in cents.
// Implemented by MarketData; Value uses it for mark-to-market reporting.
type PriceSource interface {
	Price(symbol string) (int64, bool)
}

// Portfolio is a single trader's ledger of free cash, reserved cash,
// free shares, and reserved shares.
//
// Cash and ReservedCash are disjoint buckets: reserving moves value from
// Cash into ReservedCash and settlement moves it back (or out to the
// counterparty). The same holds per symbol for Positions and
// ReservedShares. Value is never created or destroyed here, only moved,
// so summing both buckets across all traders is invariant under matching.
type Portfolio struct {
	Cash           int64 // free cash, cents
	ReservedCash   int64 // cash earmarked for resting buy orders, cents
	Positions      map[string]*Position
	ReservedShares map[string]int64 // shares earmarked for resting sell orders
}

// NewPortfolio creates a Portfolio with the given free cash and no positions.
func NewPortfolio(startingCash int64) *Portfolio {
	return &Portfolio{
		Cash:           startingCash,
		Positions:      make(map[string]*Position),
		ReservedShares: make(map[string]int64),
	}
}

// FreeQuantity returns the unreserved share count for the symbol.
func (p *Portfolio) FreeQuantity(symbol string) int64 {
	if pos, ok := p.Positions[symbol]; ok {
		return pos.Quantity
	}
	return 0
}

// Reserve earmarks the assets the order needs: quantity × limit price of
// cash for a buy, the share quantity for a sell. It is all-or-nothing:
// on ErrInsufficientCash or ErrInsufficientHoldings nothing is mutated.
// Called exactly once per order, before the order is queued.
func (p *Portfolio) Reserve(o *Order) error {
	switch o.Side {
	case SideBuy:
		// An order whose cost exceeds int64 cents can never be covered;
		// reject it before the product wraps negative.
		if o.Quantity > math.MaxInt64/o.LimitPrice {
			return ErrInsufficientCash
		}
		required := o.Quantity * o.LimitPrice
		if p.Cash < required {
			return ErrInsufficientCash
		}
		p.Cash -= required
		p.ReservedCash += required
	case SideSell:
		if p.FreeQuantity(o.Symbol) < o.Quantity {
			return ErrInsufficientHoldings
		}
		p.Positions[o.Symbol].Quantity -= o.Quantity
		p.ReservedShares[o.Symbol] += o.Quantity
	default:
		return &ValidationError{
			Message: fmt.Sprintf("side must be 'buy' or 'sell', got %q", o.Side),
		}
	}
	return nil
}

// SettleBuy applies a trade to the buying side's ledger. Must be invoked
// exactly once per trade, on the portfolio owned by the buy order's trader.
//
// The reservation held for the buy order before this trade was
// pre-trade quantity × limit price. That full amount is released, the
// actual cost (executed quantity × executed price, at-or-better than the
// limit) is paid out, and for a partial fill the unfilled remainder is
// re-reserved at the original limit so the resting order stays fully
// collateralized. The result is that a resting buy order's share of
// ReservedCash always equals its remaining quantity × its limit price.
func (p *Portfolio) SettleBuy(t *Trade) {
	original := t.BuyQuantityBefore
	limit := t.Buy.LimitPrice

	// Release the whole pre-trade reservation, pay the executed cost.
	p.ReservedCash -= original * limit
	p.Cash += original*limit - t.Quantity*t.Price

	// Fold the fill into the position at volume-weighted average cost.
	pos, ok := p.Positions[t.Symbol]
	if !ok {
		pos = &Position{}
		p.Positions[t.Symbol] = pos
	}
	pos.AvgCost = (pos.AvgCost*pos.Quantity + t.Quantity*t.Price) / (pos.Quantity + t.Quantity)
	pos.Quantity += t.Quantity

	// Re-collateralize the unfilled remainder still resting on the book.
	if remaining := original - t.Quantity; remaining > 0 {
		p.Cash -= remaining * limit
		p.ReservedCash += remaining * limit
	}
}

// SettleSell applies a trade to the selling side's ledger. Must be invoked
// exactly once per trade, on the portfolio owned by the sell order's trader.
//
// The full pre-trade share reservation is released, proceeds are credited
// to free cash, and for a partial fill the unfilled remainder is
// re-reserved.
func (p *Portfolio) SettleSell(t *Trade) {
	original := t.SellQuantityBefore

	p.ReservedShares[t.Symbol] -= original
	p.Cash += t.Quantity * t.Price

	if remaining := original - t.Quantity; remaining > 0 {
		p.ReservedShares[t.Symbol] += remaining
	}
	if p.ReservedShares[t.Symbol] == 0 {
		delete(p.ReservedShares, t.Symbol)
	}
}

// Value returns total worth in cents: free cash + reserved cash + every
// held and reserved share marked at the current market price. Symbols
// the price source does not know are skipped. Used for reporting only,
// never for matching.
func (p *Portfolio) Value(prices PriceSource) int64 {
	total := p.Cash + p.ReservedCash
	for symbol, pos := range p.Positions {
		if price, ok := prices.Price(symbol); ok {
			total += pos.Quantity * price
		}
	}
	for symbol, reserved := range p.ReservedShares {
		if price, ok := prices.Price(symbol); ok {
			total += reserved * price
		}
	}
	return total
}
