package engine

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/mitkoooo/trading-simulator/internal/domain"
)

// NoisePool drives a set of simulated counterparties that quote limit
// orders around the current market price, giving the interactive trader
// liquidity to match against. Quotes are placed synchronously from the
// tick path, preserving the exchange's single-threaded execution model.
type NoisePool struct {
	traders  []*domain.Trader
	rng      *rand.Rand
	maxQty   int64
	rangePct float64
}

// NewNoisePool registers count noise traders on the exchange, each funded
// with startingCash cents and startingShares of every traded symbol.
// Registration fails only if a noise trader ID collides with an existing
// trader.
func NewNoisePool(ex *Exchange, count int, startingCash, startingShares int64, rng *rand.Rand) (*NoisePool, error) {
	pool := &NoisePool{
		rng:      rng,
		maxQty:   10,
		rangePct: 0.03,
	}
	symbols := ex.Market().Symbols()
	for i := 1; i <= count; i++ {
		trader := domain.NewTrader(fmt.Sprintf("noise-%d", i), startingCash)
		for _, symbol := range symbols {
			trader.Portfolio.Positions[symbol] = &domain.Position{Quantity: startingShares}
		}
		if err := ex.RegisterTrader(trader); err != nil {
			return nil, err
		}
		pool.traders = append(pool.traders, trader)
	}
	return pool, nil
}

// Size returns the number of noise traders in the pool.
func (p *NoisePool) Size() int {
	return len(p.traders)
}

// Quote has every noise trader place one limit order on a random symbol,
// a few percent away from the current market price: buys below it, sells
// above it, so noise quotes alone rarely cross. Traders that have run out
// of cash or shares simply sit the round out.
func (p *NoisePool) Quote(ex *Exchange) {
	symbols := ex.Market().Symbols()
	if len(symbols) == 0 {
		return
	}

	for _, trader := range p.traders {
		symbol := symbols[p.rng.Intn(len(symbols))]
		price, ok := ex.Market().Price(symbol)
		if !ok || price == 0 {
			continue
		}

		side := domain.SideBuy
		if p.rng.Intn(2) == 1 {
			side = domain.SideSell
		}

		offset := int64(float64(price) * p.rng.Float64() * p.rangePct)
		limit := price - offset
		if side == domain.SideSell {
			limit = price + offset
		}
		if limit <= 0 {
			limit = 1
		}
		quantity := p.rng.Int63n(p.maxQty) + 1

		order, err := trader.PlaceOrder(symbol, side, quantity, limit)
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientCash) || errors.Is(err, domain.ErrInsufficientHoldings) {
				continue
			}
			// Anything else is a programming error in the quote itself.
			panic(fmt.Sprintf("engine: noise quote rejected: %v", err))
		}
		if err := ex.AddOrder(order); err != nil {
			panic(fmt.Sprintf("engine: noise order not enqueued: %v", err))
		}
	}
}
