// Package cli implements the interactive command loop. It is a thin
// shell over the service layer: every command parses its arguments,
// calls one service, and renders the result. Rejected input never
// mutates state.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mitkoooo/trading-simulator/internal/domain"
	"github.com/mitkoooo/trading-simulator/internal/render"
	"github.com/mitkoooo/trading-simulator/internal/service"
)

const bookDepth = 10

// CLI reads commands from in and writes results to out, acting on
// behalf of a single interactive trader.
type CLI struct {
	orders   *service.OrderService
	traders  *service.TraderService
	market   *service.MarketService
	traderID string
	in       io.Reader
	out      io.Writer
	logger   *slog.Logger
}

// New creates a CLI bound to the given trader.
func New(
	orders *service.OrderService,
	traders *service.TraderService,
	market *service.MarketService,
	traderID string,
	in io.Reader,
	out io.Writer,
	logger *slog.Logger,
) *CLI {
	return &CLI{
		orders:   orders,
		traders:  traders,
		market:   market,
		traderID: traderID,
		in:       in,
		out:      out,
		logger:   logger,
	}
}

// Run reads commands until "quit" or EOF.
func (c *CLI) Run() error {
	scanner := bufio.NewScanner(c.in)
	fmt.Fprintln(c.out, `Type "help" for the list of commands.`)

	for {
		fmt.Fprint(c.out, ">>> ")
		if !scanner.Scan() {
			fmt.Fprintln(c.out)
			c.logger.Info("session ended")
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		if cmd == "quit" {
			c.logger.Info("session ended")
			return nil
		}

		c.logger.Info("command received", slog.String("command", cmd), slog.Any("args", args))
		c.dispatch(cmd, args)
	}
}

func (c *CLI) dispatch(cmd string, args []string) {
	switch cmd {
	case "next":
		c.doNext()
	case "buy":
		c.doPlaceOrder(domain.SideBuy, args)
	case "sell":
		c.doPlaceOrder(domain.SideSell, args)
	case "match":
		c.doMatch(args)
	case "book":
		c.doBook(args)
	case "orders":
		c.doOrders()
	case "status":
		c.doStatus()
	case "help":
		c.doHelp()
	default:
		fmt.Fprintln(c.out, "Unknown command. Please try again.")
	}
}

// doNext advances the market by one tick and shows prices and portfolio.
func (c *CLI) doNext() {
	c.market.Tick()
	render.Prices(c.out, c.market.Quotes())
	c.showPortfolio()
}

// doPlaceOrder handles "buy SYMBOL QTY PRICE" and "sell SYMBOL QTY PRICE".
func (c *CLI) doPlaceOrder(side domain.Side, args []string) {
	if len(args) != 3 {
		fmt.Fprintln(c.out, "Usage: buy|sell SYMBOL QTY PRICE")
		return
	}
	symbol := strings.ToUpper(args[0])
	quantity, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		fmt.Fprintln(c.out, "Usage: buy|sell SYMBOL QTY PRICE (QTY must be an integer)")
		return
	}
	price, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		fmt.Fprintln(c.out, "Usage: buy|sell SYMBOL QTY PRICE (PRICE must be a number)")
		return
	}

	order, err := c.orders.PlaceOrder(service.PlaceOrderRequest{
		TraderID: c.traderID,
		Symbol:   symbol,
		Side:     side,
		Quantity: quantity,
		Price:    price,
	})
	if err != nil {
		c.printError(err)
		return
	}

	c.logger.Info("order queued",
		slog.String("order_id", order.OrderID),
		slog.String("symbol", order.Symbol),
		slog.String("side", string(order.Side)),
		slog.Int64("quantity", order.Quantity),
		slog.Int64("limit_price", order.LimitPrice),
	)
	fmt.Fprintf(c.out, "\nOrder placed for %s.\n", symbol)
	c.showPortfolio()
}

// doMatch handles "match SYMBOL".
func (c *CLI) doMatch(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: match SYMBOL")
		return
	}
	symbol := strings.ToUpper(args[0])

	trades, err := c.orders.Match(symbol)
	if err != nil {
		c.printError(err)
		return
	}
	c.logger.Info("match processed", slog.String("symbol", symbol), slog.Int("trades", len(trades)))
	render.Trades(c.out, trades)
}

// doBook handles "book SYMBOL".
func (c *CLI) doBook(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: book SYMBOL")
		return
	}
	symbol := strings.ToUpper(args[0])

	snap, err := c.market.Book(symbol, bookDepth)
	if err != nil {
		c.printError(err)
		return
	}
	render.Book(c.out, snap)
}

// doOrders lists the trader's resting orders per symbol.
func (c *CLI) doOrders() {
	all, err := c.orders.ListOrders(c.traderID)
	if err != nil {
		c.printError(err)
		return
	}
	var resting []*domain.Order
	for _, o := range all {
		if o.Quantity > 0 {
			resting = append(resting, o)
		}
	}
	if len(resting) == 0 {
		fmt.Fprintln(c.out, "No open orders.")
		return
	}
	for _, o := range resting {
		fmt.Fprintf(c.out, "%-4s %-6s %5d @ %s\n",
			strings.ToUpper(string(o.Side)), o.Symbol, o.Quantity, render.Dollars(o.LimitPrice))
	}
}

// doStatus shows current prices, the trader's portfolio, and every
// symbol's pending orders.
func (c *CLI) doStatus() {
	render.Prices(c.out, c.market.Quotes())
	c.showPortfolio()
	for _, q := range c.market.Quotes() {
		buys, sells, err := c.market.Pending(q.Symbol)
		if err != nil {
			continue
		}
		if len(buys) > 0 || len(sells) > 0 {
			render.PendingOrders(c.out, q.Symbol, buys, sells)
		}
	}
}

func (c *CLI) doHelp() {
	fmt.Fprint(c.out, `Commands:
  next                      advance the market one tick
  buy SYMBOL QTY PRICE      place a limit buy order
  sell SYMBOL QTY PRICE     place a limit sell order
  match SYMBOL              run the matching engine for a symbol
  book SYMBOL               show aggregated book depth
  orders                    list your open orders
  status                    show prices, portfolio, and pending orders
  quit                      exit
`)
}

func (c *CLI) showPortfolio() {
	balance, err := c.traders.Balance(c.traderID)
	if err != nil {
		c.printError(err)
		return
	}
	render.Portfolio(c.out, balance)
}

// printError maps domain errors to user-facing messages.
func (c *CLI) printError(err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		fmt.Fprintf(c.out, "Invalid order: %s\n", verr.Message)
	case errors.Is(err, domain.ErrInsufficientCash):
		fmt.Fprintln(c.out, "Order rejected: not enough cash.")
	case errors.Is(err, domain.ErrInsufficientHoldings):
		fmt.Fprintln(c.out, "Order rejected: not enough shares.")
	case errors.Is(err, domain.ErrSymbolNotFound):
		fmt.Fprintln(c.out, "Unknown symbol.")
	default:
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
	c.logger.Warn("command rejected", slog.String("error", err.Error()))
}
