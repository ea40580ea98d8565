package domain

import "testing"

func TestTrader_PlaceOrder(t *testing.T) {
	trader := NewTrader("trader-1", 100000)

	order, err := trader.PlaceOrder("AAPL", SideBuy, 5, 10000)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if order.TraderID != "trader-1" {
		t.Fatalf("expected owner trader-1, got %s", order.TraderID)
	}
	if trader.Portfolio.Cash != 50000 || trader.Portfolio.ReservedCash != 50000 {
		t.Fatalf("reservation not applied: cash=%d reserved=%d",
			trader.Portfolio.Cash, trader.Portfolio.ReservedCash)
	}
}

func TestTrader_PlaceOrder_ValidationLeavesPortfolioUntouched(t *testing.T) {
	trader := NewTrader("trader-1", 100000)

	if _, err := trader.PlaceOrder("AAPL", SideBuy, 0, 10000); err == nil {
		t.Fatal("expected a validation error for zero quantity")
	}
	if _, err := trader.PlaceOrder("AAPL", Side("hold"), 1, 10000); err == nil {
		t.Fatal("expected a validation error for unknown side")
	}
	if trader.Portfolio.Cash != 100000 || trader.Portfolio.ReservedCash != 0 {
		t.Fatal("rejected order mutated the portfolio")
	}
}

func TestTrader_PlaceOrder_InsufficientFundsLeavesPortfolioUntouched(t *testing.T) {
	trader := NewTrader("trader-1", 100)

	if _, err := trader.PlaceOrder("AAPL", SideBuy, 5, 10000); err != ErrInsufficientCash {
		t.Fatalf("expected ErrInsufficientCash, got %v", err)
	}
	if _, err := trader.PlaceOrder("AAPL", SideSell, 5, 10000); err != ErrInsufficientHoldings {
		t.Fatalf("expected ErrInsufficientHoldings, got %v", err)
	}
	if trader.Portfolio.Cash != 100 {
		t.Fatal("rejected order mutated the portfolio")
	}
}
