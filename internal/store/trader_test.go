package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/mitkoooo/trading-simulator/internal/domain"
)

func TestTraderStore_CreateAndGet(t *testing.T) {
	s := NewTraderStore()
	trader := domain.NewTrader("trader-1", 100000)

	if err := s.Create(trader); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got, err := s.Get("trader-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != trader {
		t.Fatal("expected the same trader back")
	}
}

func TestTraderStore_CreateDuplicate(t *testing.T) {
	s := NewTraderStore()

	if err := s.Create(domain.NewTrader("trader-1", 0)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := s.Create(domain.NewTrader("trader-1", 0)); err != domain.ErrTraderAlreadyExists {
		t.Fatalf("expected ErrTraderAlreadyExists, got %v", err)
	}
}

func TestTraderStore_GetMissing(t *testing.T) {
	s := NewTraderStore()

	if _, err := s.Get("nobody"); err != domain.ErrTraderNotFound {
		t.Fatalf("expected ErrTraderNotFound, got %v", err)
	}
}

func TestTraderStore_Exists(t *testing.T) {
	s := NewTraderStore()
	_ = s.Create(domain.NewTrader("trader-1", 0))

	if !s.Exists("trader-1") {
		t.Fatal("expected trader-1 to exist")
	}
	if s.Exists("nobody") {
		t.Fatal("expected nobody to be missing")
	}
}

func TestTraderStore_AllIsSorted(t *testing.T) {
	s := NewTraderStore()
	for _, id := range []string{"charlie", "alice", "bob"} {
		if err := s.Create(domain.NewTrader(id, 0)); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	all := s.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 traders, got %d", len(all))
	}
	for i, want := range []string{"alice", "bob", "charlie"} {
		if all[i].TraderID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, all[i].TraderID)
		}
	}
}

func TestTraderStore_ConcurrentAccess(t *testing.T) {
	s := NewTraderStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("trader-%d", n)
			_ = s.Create(domain.NewTrader(id, 0))
			_, _ = s.Get(id)
			_ = s.Exists(id)
		}(i)
	}
	wg.Wait()

	if len(s.All()) != 50 {
		t.Fatalf("expected 50 traders, got %d", len(s.All()))
	}
}
