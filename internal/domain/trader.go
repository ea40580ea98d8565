package domain

import "time"

// Trader represents a registered market participant: an identity plus
// the Portfolio it exclusively owns.
type Trader struct {
	TraderID  string
	Portfolio *Portfolio
	CreatedAt time.Time
}

// NewTrader creates a trader with the given starting cash (cents).
func NewTrader(traderID string, startingCash int64) *Trader {
	return &Trader{
		TraderID:  traderID,
		Portfolio: NewPortfolio(startingCash),
		CreatedAt: time.Now(),
	}
}

// PlaceOrder validates the parameters, constructs an Order owned by this
// trader, and reserves the required cash or shares in its portfolio.
// On any error no order exists and nothing was mutated. The caller is
// responsible for enqueueing the returned order with Exchange.AddOrder.
func (t *Trader) PlaceOrder(symbol string, side Side, quantity, limitPrice int64) (*Order, error) {
	order, err := NewOrder(t.TraderID, symbol, side, quantity, limitPrice, time.Now())
	if err != nil {
		return nil, err
	}
	if err := t.Portfolio.Reserve(order); err != nil {
		return nil, err
	}
	return order, nil
}
