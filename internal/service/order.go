package service

import (
	"regexp"

	"github.com/mitkoooo/trading-simulator/internal/domain"
	"github.com/mitkoooo/trading-simulator/internal/engine"
	"github.com/mitkoooo/trading-simulator/internal/store"
)

var orderSymbolRegex = regexp.MustCompile(`^[A-Z]{1,10}$`)

// PlaceOrderRequest represents the input for order submission.
type PlaceOrderRequest struct {
	TraderID string
	Symbol   string
	Side     domain.Side
	Quantity int64
	Price    float64 // limit price in dollars
}

// OrderService handles order submission and matching orchestration.
type OrderService struct {
	exchange   *engine.Exchange
	orderStore *store.OrderStore
}

// NewOrderService creates a new OrderService.
func NewOrderService(exchange *engine.Exchange, orderStore *store.OrderStore) *OrderService {
	return &OrderService{
		exchange:   exchange,
		orderStore: orderStore,
	}
}

// PlaceOrder validates the request, reserves the trader's assets, and
// enqueues the order for matching. Rejections are atomic: on any error
// no order exists and no balance moved.
func (s *OrderService) PlaceOrder(req PlaceOrderRequest) (*domain.Order, error) {
	if !orderSymbolRegex.MatchString(req.Symbol) {
		return nil, &domain.ValidationError{
			Message: "symbol must match ^[A-Z]{1,10}$",
		}
	}
	if !s.exchange.Market().Exists(req.Symbol) {
		return nil, domain.ErrSymbolNotFound
	}
	if req.Price <= 0 {
		return nil, &domain.ValidationError{
			Message: "price must be greater than 0",
		}
	}
	priceCents, err := domain.DollarsToCents(req.Price)
	if err != nil {
		return nil, &domain.ValidationError{
			Message: "price must have at most 2 decimal places",
		}
	}

	trader, err := s.exchange.Trader(req.TraderID)
	if err != nil {
		return nil, err
	}

	// Side and quantity validation happen at order construction.
	order, err := trader.PlaceOrder(req.Symbol, req.Side, req.Quantity, priceCents)
	if err != nil {
		return nil, err
	}
	if err := s.exchange.AddOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Match runs the matching loop for a symbol and returns the executed
// trades in chronological order.
func (s *OrderService) Match(symbol string) ([]*domain.Trade, error) {
	if !s.exchange.Market().Exists(symbol) {
		return nil, domain.ErrSymbolNotFound
	}
	return s.exchange.MatchOrders(symbol), nil
}

// ListOrders returns a trader's orders in submission order.
func (s *OrderService) ListOrders(traderID string) ([]*domain.Order, error) {
	if _, err := s.exchange.Trader(traderID); err != nil {
		return nil, err
	}
	return s.orderStore.ListByTrader(traderID), nil
}
