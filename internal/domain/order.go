package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Side indicates whether an order buys (bid) or sells (ask) shares.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Valid returns true if the side is one of the two recognized values.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Order represents one side of a trading intent submitted by a trader.
//
// Quantity is the remaining unfilled quantity: it starts at the requested
// amount and is decremented only by the matching loop. An order whose
// quantity reaches zero is removed from its book immediately; while
// resting, quantity is always > 0. All other fields are fixed after
// creation, except Sequence, which the owning book stamps exactly once
// on insertion.
type Order struct {
	OrderID    string
	TraderID   string
	Symbol     string
	Side       Side
	Quantity   int64  // remaining shares, > 0 while resting
	LimitPrice int64  // cents, > 0
	Sequence   uint64 // 0 until assigned by a book
	CreatedAt  time.Time
}

// NewOrder validates the request and constructs an Order with a generated
// ID. Validation failures return a *ValidationError and create nothing.
func NewOrder(traderID, symbol string, side Side, quantity, limitPrice int64, createdAt time.Time) (*Order, error) {
	if !side.Valid() {
		return nil, &ValidationError{
			Message: fmt.Sprintf("side must be 'buy' or 'sell', got %q", side),
		}
	}
	if quantity <= 0 {
		return nil, &ValidationError{
			Message: fmt.Sprintf("quantity must be a positive integer, got %d", quantity),
		}
	}
	if limitPrice <= 0 {
		return nil, &ValidationError{
			Message: fmt.Sprintf("limit price must be greater than 0 cents, got %d", limitPrice),
		}
	}

	return &Order{
		OrderID:    uuid.New().String(),
		TraderID:   traderID,
		Symbol:     symbol,
		Side:       side,
		Quantity:   quantity,
		LimitPrice: limitPrice,
		CreatedAt:  createdAt,
	}, nil
}
