package domain

import "time"

// Trade represents a matched execution between a buy and a sell order.
//
// BuyQuantityBefore and SellQuantityBefore snapshot each order's remaining
// quantity at the moment the match was made, before the fill was applied.
// Settlement needs them to size reservation releases on partial fills.
// A Trade is immutable once created; the order references are shared with
// the book and only their remaining quantities change afterwards.
type Trade struct {
	TradeID            string
	Buy                *Order
	Sell               *Order
	Symbol             string
	Quantity           int64 // executed shares
	Price              int64 // cents, always the ask side's limit
	BuyQuantityBefore  int64
	SellQuantityBefore int64
	ExecutedAt         time.Time
}
