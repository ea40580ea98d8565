package cli

import (
	"bytes"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"testing"

	"github.com/mitkoooo/trading-simulator/internal/domain"
	"github.com/mitkoooo/trading-simulator/internal/engine"
	"github.com/mitkoooo/trading-simulator/internal/service"
	"github.com/mitkoooo/trading-simulator/internal/store"
)

func flatModel(price int64, volatility float64, rng *rand.Rand) int64 {
	return price
}

// runSession executes a scripted session for a trader holding $10,000
// and returns the full terminal output.
func runSession(t *testing.T, script string, holdings ...service.HoldingInput) string {
	t.Helper()

	orderStore := store.NewOrderStore()
	ex := engine.NewExchange(
		domain.NewMarketData(domain.NewStock("AAPL", 15000, 0.01, flatModel)),
		store.NewTraderStore(),
		orderStore,
		store.NewTradeStore(),
		rand.New(rand.NewSource(1)),
	)
	orders := service.NewOrderService(ex, orderStore)
	traders := service.NewTraderService(ex)
	market := service.NewMarketService(ex, nil)

	if _, err := traders.Register(service.RegisterTraderRequest{
		TraderID:        "trader-1",
		StartingCash:    10000.00,
		InitialHoldings: holdings,
	}); err != nil {
		t.Fatalf("failed to register trader: %v", err)
	}
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := New(orders, traders, market, "trader-1", strings.NewReader(script), &out, logger)
	if err := c.Run(); err != nil {
		t.Fatalf("session failed: %v", err)
	}
	return out.String()
}

func TestCLI_QuitAndEOF(t *testing.T) {
	out := runSession(t, "quit\n")
	if !strings.Contains(out, "help") {
		t.Errorf("expected the greeting, got %q", out)
	}

	// EOF without quit also ends the session cleanly.
	out = runSession(t, "")
	if !strings.Contains(out, ">>> ") {
		t.Errorf("expected at least one prompt, got %q", out)
	}
}

func TestCLI_Help(t *testing.T) {
	out := runSession(t, "help\nquit\n")
	for _, cmd := range []string{"next", "buy", "sell", "match", "book", "orders", "status", "quit"} {
		if !strings.Contains(out, cmd) {
			t.Errorf("help should list %q:\n%s", cmd, out)
		}
	}
}

func TestCLI_UnknownCommand(t *testing.T) {
	out := runSession(t, "frobnicate\nquit\n")
	if !strings.Contains(out, "Unknown command") {
		t.Errorf("expected the unknown command message:\n%s", out)
	}
}

func TestCLI_UsageErrors(t *testing.T) {
	out := runSession(t, strings.Join([]string{
		"buy",
		"buy AAPL five 150.00",
		"buy AAPL 5 lots",
		"match",
		"book",
		"quit",
	}, "\n")+"\n")

	if got := strings.Count(out, "Usage: buy|sell"); got != 3 {
		t.Errorf("expected 3 buy/sell usage messages, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, "Usage: match SYMBOL") {
		t.Errorf("expected match usage:\n%s", out)
	}
	if !strings.Contains(out, "Usage: book SYMBOL") {
		t.Errorf("expected book usage:\n%s", out)
	}
}

func TestCLI_BuyAndMatchFlow(t *testing.T) {
	out := runSession(t, strings.Join([]string{
		"sell AAPL 5 150.00", // resting sell from the trader's own holdings
		"buy aapl 5 150.00",  // lowercase symbol is accepted
		"match AAPL",
		"orders",
		"quit",
	}, "\n")+"\n", service.HoldingInput{Symbol: "AAPL", Quantity: 5})

	if got := strings.Count(out, "Order placed for AAPL"); got != 2 {
		t.Errorf("expected 2 order confirmations, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, "Trade: 5 AAPL @ $150.00") {
		t.Errorf("expected a trade confirmation:\n%s", out)
	}
	if !strings.Contains(out, "No open orders.") {
		t.Errorf("expected no open orders after the full fill:\n%s", out)
	}
}

func TestCLI_RejectionsAreExplained(t *testing.T) {
	out := runSession(t, strings.Join([]string{
		"buy AAPL 999 150.00", // more cash than the trader has
		"sell AAPL 1 150.00",  // no holdings at all
		"buy GONE 1 150.00",   // unknown symbol
		"buy AAPL 0 150.00",   // zero quantity
		"quit",
	}, "\n")+"\n")

	for _, want := range []string{
		"not enough cash",
		"not enough shares",
		"Unknown symbol",
		"Invalid order",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in the output:\n%s", want, out)
		}
	}
}

func TestCLI_NextShowsPricesAndPortfolio(t *testing.T) {
	out := runSession(t, "next\nquit\n")

	if !strings.Contains(out, "AAPL") {
		t.Errorf("expected a price line:\n%s", out)
	}
	if !strings.Contains(out, "PORTFOLIO") || !strings.Contains(out, "$10000.00") {
		t.Errorf("expected the portfolio box with starting cash:\n%s", out)
	}
}

func TestCLI_BookAndStatus(t *testing.T) {
	out := runSession(t, strings.Join([]string{
		"buy AAPL 5 149.00",
		"book AAPL",
		"status",
		"quit",
	}, "\n")+"\n")

	if !strings.Contains(out, "Book for AAPL") || !strings.Contains(out, "BID") {
		t.Errorf("expected the book snapshot:\n%s", out)
	}
	if !strings.Contains(out, "Pending orders for AAPL") {
		t.Errorf("expected pending orders in status:\n%s", out)
	}
}
