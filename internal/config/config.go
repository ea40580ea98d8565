package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/caarlos0/env/v10"

	"github.com/mitkoooo/trading-simulator/internal/domain"
)

var symbolRegex = regexp.MustCompile(`^[A-Z]{1,10}$`)

// StockConfig is one entry parsed from the SYMBOLS variable.
type StockConfig struct {
	Symbol string
	Price  int64 // starting price in cents
}

// Config holds all runtime configuration for the trading simulator.
type Config struct {
	LogLevel     string  `env:"LOG_LEVEL" envDefault:"info"`
	Symbols      string  `env:"SYMBOLS" envDefault:"AAPL:150.00,MSFT:300.00,MTKO:100.00"`
	TickModel    string  `env:"TICK_MODEL" envDefault:"walk"`
	Volatility   float64 `env:"VOLATILITY" envDefault:"0.01"`
	RandomSeed   int64   `env:"RANDOM_SEED" envDefault:"0"`
	TraderID     string  `env:"TRADER_ID" envDefault:"trader-1"`
	StartingCash float64 `env:"STARTING_CASH" envDefault:"10000.00"`
	NoiseTraders int     `env:"NOISE_TRADERS" envDefault:"4"`
	NoiseCash    float64 `env:"NOISE_CASH" envDefault:"100000.00"`
	NoiseShares  int64   `env:"NOISE_SHARES" envDefault:"100"`

	Stocks []StockConfig `env:"-"`
}

// Load reads configuration from environment variables, applies defaults,
// and validates values. It returns an error for any invalid value.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if !isValidLogLevel(cfg.LogLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", cfg.LogLevel)
	}
	if cfg.TickModel != "walk" && cfg.TickModel != "gbm" {
		return nil, fmt.Errorf("invalid TICK_MODEL: %q, must be one of: walk, gbm", cfg.TickModel)
	}
	if cfg.Volatility <= 0 || cfg.Volatility > 1 {
		return nil, fmt.Errorf("invalid VOLATILITY: %v, must be in (0, 1]", cfg.Volatility)
	}
	if cfg.StartingCash < 0 {
		return nil, fmt.Errorf("invalid STARTING_CASH: %v, must be >= 0", cfg.StartingCash)
	}
	if cfg.NoiseTraders < 0 {
		return nil, fmt.Errorf("invalid NOISE_TRADERS: %d, must be >= 0", cfg.NoiseTraders)
	}
	if cfg.NoiseCash < 0 {
		return nil, fmt.Errorf("invalid NOISE_CASH: %v, must be >= 0", cfg.NoiseCash)
	}
	if cfg.NoiseShares < 0 {
		return nil, fmt.Errorf("invalid NOISE_SHARES: %d, must be >= 0", cfg.NoiseShares)
	}

	stocks, err := parseSymbols(cfg.Symbols)
	if err != nil {
		return nil, fmt.Errorf("invalid SYMBOLS: %w", err)
	}
	cfg.Stocks = stocks

	return cfg, nil
}

// parseSymbols parses a "SYM:price,SYM:price" list into stock configs.
func parseSymbols(s string) ([]StockConfig, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("at least one symbol is required")
	}

	var stocks []StockConfig
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		symbol, price, found := strings.Cut(strings.TrimSpace(part), ":")
		if !found {
			return nil, fmt.Errorf("entry %q must have the form SYMBOL:PRICE", part)
		}
		if !symbolRegex.MatchString(symbol) {
			return nil, fmt.Errorf("symbol %q must match ^[A-Z]{1,10}$", symbol)
		}
		if seen[symbol] {
			return nil, fmt.Errorf("duplicate symbol %q", symbol)
		}
		seen[symbol] = true

		var dollars float64
		if _, err := fmt.Sscanf(price, "%f", &dollars); err != nil {
			return nil, fmt.Errorf("price %q for %s is not a number", price, symbol)
		}
		if dollars <= 0 {
			return nil, fmt.Errorf("price for %s must be > 0", symbol)
		}
		cents, err := domain.DollarsToCents(dollars)
		if err != nil {
			return nil, fmt.Errorf("price for %s must have at most 2 decimal places", symbol)
		}
		stocks = append(stocks, StockConfig{Symbol: symbol, Price: cents})
	}
	return stocks, nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
