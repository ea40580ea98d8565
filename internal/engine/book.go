package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/btree"

	"github.com/mitkoooo/trading-simulator/internal/domain"
)

// bookEntry is the key stored in a book side's B-tree. The comparators
// read only the copied priority fields, so decrementing the resting
// order's remaining quantity never disturbs tree order.
type bookEntry struct {
	price     int64
	createdAt time.Time
	sequence  uint64
	order     *domain.Order
}

// bidLess defines ordering for the bid side: price descending, then
// created_at ascending, then sequence ascending. Min() returns the best
// bid (highest price, earliest arrival).
func bidLess(a, b bookEntry) bool {
	if a.price != b.price {
		return a.price > b.price
	}
	if !a.createdAt.Equal(b.createdAt) {
		return a.createdAt.Before(b.createdAt)
	}
	return a.sequence < b.sequence
}

// askLess defines ordering for the ask side: price ascending, then the
// same time/sequence tie-break. Min() returns the best ask.
func askLess(a, b bookEntry) bool {
	if a.price != b.price {
		return a.price < b.price
	}
	if !a.createdAt.Equal(b.createdAt) {
		return a.createdAt.Before(b.createdAt)
	}
	return a.sequence < b.sequence
}

// PriceLevel represents an aggregated price level in the order book.
type PriceLevel struct {
	Price         int64
	TotalQuantity int64
	OrderCount    int
}

// OrderBook maintains the bid and ask sides for a single symbol as two
// separately-typed B-trees, so buy and sell orders are never compared
// against each other. The book owns the monotonic sequence counter used
// as the final tie-break: sequence numbers are assigned gaplessly in
// insertion order, making priority deterministic and starvation-free.
//
// The book is not safe for concurrent use; the Exchange serializes all
// access to it.
type OrderBook struct {
	symbol  string
	bids    *btree.BTreeG[bookEntry]
	asks    *btree.BTreeG[bookEntry]
	nextSeq uint64
}

// NewOrderBook creates an empty order book for the given symbol.
func NewOrderBook(symbol string) *OrderBook {
	const degree = 32
	return &OrderBook{
		symbol: symbol,
		bids:   btree.NewG[bookEntry](degree, bidLess),
		asks:   btree.NewG[bookEntry](degree, askLess),
	}
}

// Symbol returns the symbol this book trades.
func (ob *OrderBook) Symbol() string {
	return ob.symbol
}

// Add stamps the order with the next sequence number and inserts it into
// the side matching its Side. Stamping is idempotent: an order that
// already carries a sequence number is not re-stamped. Returns an error
// if the side is unrecognized, in which case nothing is inserted.
func (ob *OrderBook) Add(o *domain.Order) error {
	if !o.Side.Valid() {
		return &domain.ValidationError{
			Message: fmt.Sprintf("unknown order side %q", o.Side),
		}
	}
	if o.Sequence == 0 {
		ob.nextSeq++
		o.Sequence = ob.nextSeq
	}
	entry := bookEntry{
		price:     o.LimitPrice,
		createdAt: o.CreatedAt,
		sequence:  o.Sequence,
		order:     o,
	}
	if o.Side == domain.SideBuy {
		ob.bids.ReplaceOrInsert(entry)
	} else {
		ob.asks.ReplaceOrInsert(entry)
	}
	return nil
}

// PeekBestBuy returns the highest-priority buy order without removing it.
func (ob *OrderBook) PeekBestBuy() (*domain.Order, bool) {
	entry, ok := ob.bids.Min()
	if !ok {
		return nil, false
	}
	return entry.order, true
}

// PeekBestSell returns the highest-priority sell order without removing it.
func (ob *OrderBook) PeekBestSell() (*domain.Order, bool) {
	entry, ok := ob.asks.Min()
	if !ok {
		return nil, false
	}
	return entry.order, true
}

// PopBestBuy removes and returns the highest-priority buy order.
func (ob *OrderBook) PopBestBuy() (*domain.Order, bool) {
	entry, ok := ob.bids.DeleteMin()
	if !ok {
		return nil, false
	}
	return entry.order, true
}

// PopBestSell removes and returns the highest-priority sell order.
func (ob *OrderBook) PopBestSell() (*domain.Order, bool) {
	entry, ok := ob.asks.DeleteMin()
	if !ok {
		return nil, false
	}
	return entry.order, true
}

// BuyCount returns the number of resting buy orders.
func (ob *OrderBook) BuyCount() int {
	return ob.bids.Len()
}

// SellCount returns the number of resting sell orders.
func (ob *OrderBook) SellCount() int {
	return ob.asks.Len()
}

// WalkBuys iterates buy orders in priority order. The callback returns
// true to continue, false to stop.
func (ob *OrderBook) WalkBuys(fn func(*domain.Order) bool) {
	ob.bids.Ascend(func(entry bookEntry) bool {
		return fn(entry.order)
	})
}

// WalkSells iterates sell orders in priority order.
func (ob *OrderBook) WalkSells(fn func(*domain.Order) bool) {
	ob.asks.Ascend(func(entry bookEntry) bool {
		return fn(entry.order)
	})
}

// TopBids returns up to n aggregated price levels from the bid side,
// ordered by price descending.
func (ob *OrderBook) TopBids(n int) []PriceLevel {
	return topLevels(ob.bids, n)
}

// TopAsks returns up to n aggregated price levels from the ask side,
// ordered by price ascending.
func (ob *OrderBook) TopAsks(n int) []PriceLevel {
	return topLevels(ob.asks, n)
}

// topLevels iterates a side in order and aggregates entries into at most
// n price levels.
func topLevels(tree *btree.BTreeG[bookEntry], n int) []PriceLevel {
	if n <= 0 {
		return nil
	}
	levels := make([]PriceLevel, 0, n)
	tree.Ascend(func(entry bookEntry) bool {
		if len(levels) > 0 && levels[len(levels)-1].Price == entry.price {
			levels[len(levels)-1].TotalQuantity += entry.order.Quantity
			levels[len(levels)-1].OrderCount++
			return true
		}
		if len(levels) >= n {
			return false
		}
		levels = append(levels, PriceLevel{
			Price:         entry.price,
			TotalQuantity: entry.order.Quantity,
			OrderCount:    1,
		})
		return true
	})
	return levels
}

// BookManager is a thread-safe map of symbol → OrderBook.
type BookManager struct {
	mu    sync.RWMutex
	books map[string]*OrderBook
}

// NewBookManager creates a new BookManager.
func NewBookManager() *BookManager {
	return &BookManager{
		books: make(map[string]*OrderBook),
	}
}

// GetOrCreate returns the order book for the given symbol, creating one
// if it doesn't already exist.
func (bm *BookManager) GetOrCreate(symbol string) *OrderBook {
	bm.mu.RLock()
	book, ok := bm.books[symbol]
	bm.mu.RUnlock()
	if ok {
		return book
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()
	// Double-check after acquiring write lock.
	if book, ok = bm.books[symbol]; ok {
		return book
	}
	book = NewOrderBook(symbol)
	bm.books[symbol] = book
	return book
}

// Get returns the book for the symbol if one has been created.
func (bm *BookManager) Get(symbol string) (*OrderBook, bool) {
	bm.mu.RLock()
	defer bm.mu.RUnlock()
	book, ok := bm.books[symbol]
	return book, ok
}
