package engine

import (
	"math/rand"
	"testing"

	"github.com/mitkoooo/trading-simulator/internal/domain"
)

func TestNoisePool_RegistersFundedTraders(t *testing.T) {
	ex := newTestExchange(t, "AAA", "BBB")

	pool, err := NewNoisePool(ex, 3, 100000, 50, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pool.Size() != 3 {
		t.Fatalf("expected 3 noise traders, got %d", pool.Size())
	}

	for _, id := range []string{"noise-1", "noise-2", "noise-3"} {
		trader, err := ex.Trader(id)
		if err != nil {
			t.Fatalf("expected %s to be registered, got %v", id, err)
		}
		if trader.Portfolio.Cash != 100000 {
			t.Fatalf("%s cash = %d, want 100000", id, trader.Portfolio.Cash)
		}
		for _, symbol := range []string{"AAA", "BBB"} {
			if got := trader.Portfolio.FreeQuantity(symbol); got != 50 {
				t.Fatalf("%s holds %d %s, want 50", id, got, symbol)
			}
		}
	}
}

func TestNoisePool_DuplicateIDFailsRegistration(t *testing.T) {
	ex := newTestExchange(t, "AAA")
	registerTrader(t, ex, "noise-1", 0, nil)

	if _, err := NewNoisePool(ex, 1, 100000, 50, rand.New(rand.NewSource(1))); err != domain.ErrTraderAlreadyExists {
		t.Fatalf("expected ErrTraderAlreadyExists, got %v", err)
	}
}

func TestNoisePool_QuotePlacesOrdersNearMarket(t *testing.T) {
	ex := newTestExchange(t, "AAA")
	rng := rand.New(rand.NewSource(1))

	pool, err := NewNoisePool(ex, 5, 10000000, 1000, rng)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	pool.Quote(ex)

	book, ok := ex.Books().Get("AAA")
	if !ok {
		t.Fatal("expected a book for AAA")
	}
	total := book.BuyCount() + book.SellCount()
	if total != 5 {
		t.Fatalf("expected one order per trader, got %d", total)
	}

	// Every quote stays within 3% of the 10000 market price, buys at
	// or below it and sells at or above it.
	check := func(o *domain.Order) bool {
		if o.LimitPrice < 9700 || o.LimitPrice > 10300 {
			t.Fatalf("quote %d is more than 3%% from market", o.LimitPrice)
		}
		if o.Side == domain.SideBuy && o.LimitPrice > 10000 {
			t.Fatalf("buy quote above market: %d", o.LimitPrice)
		}
		if o.Side == domain.SideSell && o.LimitPrice < 10000 {
			t.Fatalf("sell quote below market: %d", o.LimitPrice)
		}
		if o.Quantity < 1 || o.Quantity > 10 {
			t.Fatalf("quote quantity out of range: %d", o.Quantity)
		}
		return true
	}
	book.WalkBuys(check)
	book.WalkSells(check)
}

func TestNoisePool_BrokeTradersSitOut(t *testing.T) {
	ex := newTestExchange(t, "AAA")

	// No cash and no shares: every quote fails its reservation and the
	// round completes without placing anything.
	pool, err := NewNoisePool(ex, 3, 0, 0, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	pool.Quote(ex)

	if book, ok := ex.Books().Get("AAA"); ok && book.BuyCount()+book.SellCount() > 0 {
		t.Fatal("broke traders still placed orders")
	}
}
