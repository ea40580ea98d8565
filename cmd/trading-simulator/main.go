package main

import (
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/mitkoooo/trading-simulator/internal/cli"
	"github.com/mitkoooo/trading-simulator/internal/config"
	"github.com/mitkoooo/trading-simulator/internal/domain"
	"github.com/mitkoooo/trading-simulator/internal/engine"
	"github.com/mitkoooo/trading-simulator/internal/service"
	"github.com/mitkoooo/trading-simulator/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up slog logger with configured level, on stderr so log lines
	// don't interleave with the interactive output.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Seed the simulation. RANDOM_SEED=0 means a fresh run every time.
	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// Market data.
	model, err := engine.TickModelByName(cfg.TickModel)
	if err != nil {
		logger.Error("failed to resolve tick model", slog.String("error", err.Error()))
		os.Exit(1)
	}
	stocks := make([]*domain.Stock, 0, len(cfg.Stocks))
	for _, sc := range cfg.Stocks {
		stocks = append(stocks, domain.NewStock(sc.Symbol, sc.Price, cfg.Volatility, model))
	}
	market := domain.NewMarketData(stocks...)

	// Stores and engine.
	traderStore := store.NewTraderStore()
	orderStore := store.NewOrderStore()
	tradeStore := store.NewTradeStore()
	exchange := engine.NewExchange(market, traderStore, orderStore, tradeStore, rng)

	// Noise traders provide liquidity for the interactive trader.
	var noise *engine.NoisePool
	if cfg.NoiseTraders > 0 {
		noiseCash, err := domain.DollarsToCents(cfg.NoiseCash)
		if err != nil {
			logger.Error("invalid noise cash", slog.String("error", err.Error()))
			os.Exit(1)
		}
		noise, err = engine.NewNoisePool(exchange, cfg.NoiseTraders, noiseCash, cfg.NoiseShares, rng)
		if err != nil {
			logger.Error("failed to register noise traders", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Services.
	orderSvc := service.NewOrderService(exchange, orderStore)
	traderSvc := service.NewTraderService(exchange)
	marketSvc := service.NewMarketService(exchange, noise)

	// Register the interactive trader.
	if _, err := traderSvc.Register(service.RegisterTraderRequest{
		TraderID:     cfg.TraderID,
		StartingCash: cfg.StartingCash,
	}); err != nil {
		logger.Error("failed to register trader", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("simulator starting",
		slog.String("trader_id", cfg.TraderID),
		slog.Int("symbols", len(cfg.Stocks)),
		slog.String("tick_model", cfg.TickModel),
		slog.Int64("seed", seed),
	)

	repl := cli.New(orderSvc, traderSvc, marketSvc, cfg.TraderID, os.Stdin, os.Stdout, logger)
	if err := repl.Run(); err != nil {
		logger.Error("session error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
