package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/mitkoooo/trading-simulator/internal/domain"
	"github.com/mitkoooo/trading-simulator/internal/store"
)

// Exchange is the process-root entity: it owns the market data, one
// order book per symbol, the registered traders, and the matching
// algorithm that turns queued orders into trades.
//
// Execution is single-threaded: submission, matching, settlement, and
// tick processing all run to completion on the command path before the
// next command is accepted.
type Exchange struct {
	market      *domain.MarketData
	books       *BookManager
	traderStore *store.TraderStore
	orderStore  *store.OrderStore
	tradeStore  *store.TradeStore
	rng         *rand.Rand
	now         func() time.Time
	currentTime time.Time
}

// NewExchange creates an Exchange over the given market data, with one
// (lazily created) order book per symbol.
func NewExchange(
	market *domain.MarketData,
	traderStore *store.TraderStore,
	orderStore *store.OrderStore,
	tradeStore *store.TradeStore,
	rng *rand.Rand,
) *Exchange {
	return &Exchange{
		market:      market,
		books:       NewBookManager(),
		traderStore: traderStore,
		orderStore:  orderStore,
		tradeStore:  tradeStore,
		rng:         rng,
		now:         time.Now,
		currentTime: time.Now(),
	}
}

// Market returns the exchange's market data.
func (e *Exchange) Market() *domain.MarketData {
	return e.market
}

// Books returns the exchange's per-symbol book registry.
func (e *Exchange) Books() *BookManager {
	return e.books
}

// CurrentTime returns the timestamp of the last processed tick.
func (e *Exchange) CurrentTime() time.Time {
	return e.currentTime
}

// RegisterTrader registers a trader so its orders can be matched and
// settled. Returns domain.ErrTraderAlreadyExists on a duplicate ID.
func (e *Exchange) RegisterTrader(t *domain.Trader) error {
	return e.traderStore.Create(t)
}

// Trader resolves a registered trader by ID.
func (e *Exchange) Trader(id string) (*domain.Trader, error) {
	return e.traderStore.Get(id)
}

// AddOrder enqueues an order into its symbol's book for later matching.
// The caller must have reserved the order's assets already. Returns
// domain.ErrSymbolNotFound if the symbol is not traded on this exchange.
func (e *Exchange) AddOrder(o *domain.Order) error {
	if !e.market.Exists(o.Symbol) {
		return domain.ErrSymbolNotFound
	}
	if err := e.books.GetOrCreate(o.Symbol).Add(o); err != nil {
		return err
	}
	e.orderStore.Create(o)
	return nil
}

// ProcessTick advances the exchange clock and moves every stock's price
// one step according to its tick model.
func (e *Exchange) ProcessTick() {
	e.currentTime = e.now()
	e.market.Each(func(s *domain.Stock) {
		next := s.SimulateTick(e.rng)
		// Models never produce a negative price, so UpdatePrice cannot fail.
		_ = s.UpdatePrice(next)
	})
}

// MatchOrders repeatedly pairs the symbol's best buy against its best
// sell until either side empties or the best bid no longer reaches the
// best ask. Each match executes min(remaining, remaining) shares at the
// ask side's limit price, which is at-or-better than the bid's limit.
// Partially filled orders keep their original time/sequence priority at
// the head of their side; fully consumed orders are popped.
//
// Every trade is settled on both counterparties' portfolios the moment
// it is produced, exactly once per side. Matching an unknown symbol is
// a no-op returning an empty result.
//
// Returns the trades in chronological execution order. Calling
// MatchOrders again with no new orders added yields an empty result.
func (e *Exchange) MatchOrders(symbol string) []*domain.Trade {
	book, ok := e.books.Get(symbol)
	if !ok {
		return nil
	}

	var trades []*domain.Trade
	for {
		buy, okBuy := book.PeekBestBuy()
		sell, okSell := book.PeekBestSell()
		if !okBuy || !okSell {
			break
		}
		if buy.LimitPrice < sell.LimitPrice {
			// No cross: the best bid doesn't reach the best ask.
			break
		}

		quantity := buy.Quantity
		if sell.Quantity < quantity {
			quantity = sell.Quantity
		}

		trade := &domain.Trade{
			TradeID:            uuid.New().String(),
			Buy:                buy,
			Sell:               sell,
			Symbol:             symbol,
			Quantity:           quantity,
			Price:              sell.LimitPrice,
			BuyQuantityBefore:  buy.Quantity,
			SellQuantityBefore: sell.Quantity,
			ExecutedAt:         e.now(),
		}

		buy.Quantity -= quantity
		sell.Quantity -= quantity
		if buy.Quantity == 0 {
			book.PopBestBuy()
		}
		if sell.Quantity == 0 {
			book.PopBestSell()
		}

		// An order must never exist for an unregistered trader; the
		// placement path guarantees it, so a miss here is a caller
		// contract violation.
		e.mustTrader(buy.TraderID).Portfolio.SettleBuy(trade)
		e.mustTrader(sell.TraderID).Portfolio.SettleSell(trade)

		e.tradeStore.Append(symbol, trade)
		trades = append(trades, trade)
	}
	return trades
}

func (e *Exchange) mustTrader(id string) *domain.Trader {
	t, err := e.traderStore.Get(id)
	if err != nil {
		panic(fmt.Sprintf("engine: order references unregistered trader %q", id))
	}
	return t
}
