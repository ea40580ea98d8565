// Package render formats market and portfolio state for the interactive
// terminal. It is pure presentation: nothing here mutates engine state.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mitkoooo/trading-simulator/internal/domain"
	"github.com/mitkoooo/trading-simulator/internal/service"
)

// Dollars formats a cents amount as a dollar string, e.g. "$1234.50".
func Dollars(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// Prices writes one line per stock with its current price and the move
// since the previous tick.
func Prices(w io.Writer, quotes []service.StockQuote) {
	for _, q := range quotes {
		arrow := " "
		if q.Change > 0 {
			arrow = "↑"
		} else if q.Change < 0 {
			arrow = "↓"
		}
		fmt.Fprintf(w, "%-6s| %10s %s\n", q.Symbol, Dollars(q.Price), arrow)
	}
}

// Portfolio writes the trader's balance as a boxed summary: cash,
// reserved cash, holdings with average cost, and total value at market.
func Portfolio(w io.Writer, b *service.BalanceResponse) {
	lines := []string{
		fmt.Sprintf("Cash:          %s", Dollars(b.Cash)),
		fmt.Sprintf("Reserved cash: %s", Dollars(b.ReservedCash)),
		"Holdings:",
	}
	if len(b.Positions) == 0 {
		lines = append(lines, "  None")
	}
	for _, pos := range b.Positions {
		line := fmt.Sprintf("  %-6s %5d @ avg %s", pos.Symbol, pos.Quantity, Dollars(pos.AvgCost))
		if pos.ReservedQuantity > 0 {
			line += fmt.Sprintf(" (%d reserved)", pos.ReservedQuantity)
		}
		lines = append(lines, line)
	}
	lines = append(lines, fmt.Sprintf("Total value:   %s", Dollars(b.TotalValue)))

	box(w, "PORTFOLIO", lines)
}

// PendingOrders writes the resting orders on both sides of a book in
// priority order.
func PendingOrders(w io.Writer, symbol string, buys, sells []*domain.Order) {
	fmt.Fprintf(w, "Pending orders for %s:\n", symbol)
	if len(buys) == 0 && len(sells) == 0 {
		fmt.Fprintln(w, "  None")
		return
	}
	for _, o := range buys {
		fmt.Fprintf(w, "  BUY  %5d @ %10s  (%s)\n", o.Quantity, Dollars(o.LimitPrice), o.TraderID)
	}
	for _, o := range sells {
		fmt.Fprintf(w, "  SELL %5d @ %10s  (%s)\n", o.Quantity, Dollars(o.LimitPrice), o.TraderID)
	}
}

// Trades writes one confirmation line per executed trade.
func Trades(w io.Writer, trades []*domain.Trade) {
	if len(trades) == 0 {
		fmt.Fprintln(w, "No trades executed.")
		return
	}
	for _, t := range trades {
		fmt.Fprintf(w, "Trade: %d %s @ %s (%s bought from %s)\n",
			t.Quantity, t.Symbol, Dollars(t.Price), t.Buy.TraderID, t.Sell.TraderID)
	}
}

// Book writes the aggregated depth of a symbol's book, asks above bids.
func Book(w io.Writer, snap *service.BookSnapshot) {
	fmt.Fprintf(w, "Book for %s:\n", snap.Symbol)
	if len(snap.Bids) == 0 && len(snap.Asks) == 0 {
		fmt.Fprintln(w, "  Empty")
		return
	}
	// Asks print worst-to-best so the spread sits in the middle.
	for i := len(snap.Asks) - 1; i >= 0; i-- {
		lvl := snap.Asks[i]
		fmt.Fprintf(w, "  ASK %10s x %-5d (%d orders)\n", Dollars(lvl.Price), lvl.TotalQuantity, lvl.OrderCount)
	}
	if snap.Spread != nil {
		fmt.Fprintf(w, "  --- spread %s ---\n", Dollars(*snap.Spread))
	}
	for _, lvl := range snap.Bids {
		fmt.Fprintf(w, "  BID %10s x %-5d (%d orders)\n", Dollars(lvl.Price), lvl.TotalQuantity, lvl.OrderCount)
	}
}

// box draws a titled box around the given lines, sized to the content.
func box(w io.Writer, title string, lines []string) {
	width := utf8.RuneCountInString(title)
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > width {
			width = n
		}
	}
	width += 2 // one space of padding on each side

	fmt.Fprintf(w, "┌%s┐\n", repeat("─", width))
	fmt.Fprintf(w, "│%s│\n", center(title, width))
	fmt.Fprintf(w, "├%s┤\n", repeat("─", width))
	for _, line := range lines {
		pad := width - 1 - utf8.RuneCountInString(line)
		fmt.Fprintf(w, "│ %s%s│\n", line, repeat(" ", pad))
	}
	fmt.Fprintf(w, "└%s┘\n", repeat("─", width))
}

func repeat(s string, n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat(s, n)
}

func center(s string, width int) string {
	gap := width - utf8.RuneCountInString(s)
	left := gap / 2
	return repeat(" ", left) + s + repeat(" ", gap-left)
}
