package domain

import "errors"

// Sentinel errors for domain-level error handling.
// The CLI layer maps these to user-facing messages.
var (
	ErrTraderAlreadyExists  = errors.New("trader_already_exists")
	ErrTraderNotFound       = errors.New("trader_not_found")
	ErrOrderNotFound        = errors.New("order_not_found")
	ErrSymbolNotFound       = errors.New("symbol_not_found")
	ErrInsufficientCash     = errors.New("insufficient_cash")
	ErrInsufficientHoldings = errors.New("insufficient_holdings")
)

// ValidationError represents an input validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
