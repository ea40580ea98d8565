package domain

import (
	"testing"
	"time"
)

func TestNewOrder(t *testing.T) {
	now := time.Now()

	o, err := NewOrder("trader-1", "AAPL", SideBuy, 10, 15000, now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if o.OrderID == "" {
		t.Fatal("expected a generated order ID")
	}
	if o.Quantity != 10 || o.LimitPrice != 15000 {
		t.Fatalf("unexpected order fields: qty=%d price=%d", o.Quantity, o.LimitPrice)
	}
	if o.Sequence != 0 {
		t.Fatalf("sequence should be unassigned at creation, got %d", o.Sequence)
	}
	if !o.CreatedAt.Equal(now) {
		t.Fatalf("expected createdAt %v, got %v", now, o.CreatedAt)
	}
}

func TestNewOrder_Validation(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name  string
		side  Side
		qty   int64
		price int64
	}{
		{"zero quantity", SideBuy, 0, 100},
		{"negative quantity", SideSell, -5, 100},
		{"zero price", SideBuy, 1, 0},
		{"negative price", SideSell, 1, -100},
		{"unknown side", Side("short"), 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrder("trader-1", "AAPL", tt.side, tt.qty, tt.price, now)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if _, ok := err.(*ValidationError); !ok {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
		})
	}
}

func TestSide_Valid(t *testing.T) {
	if !SideBuy.Valid() || !SideSell.Valid() {
		t.Fatal("buy and sell must be valid sides")
	}
	if Side("hold").Valid() {
		t.Fatal("unknown side must be invalid")
	}
}
