package engine

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/mitkoooo/trading-simulator/internal/domain"
)

// RandomWalk moves the price by a uniform percentage in ±volatility.
// With the default volatility of 0.01 this is a ±1% random walk.
func RandomWalk(price int64, volatility float64, rng *rand.Rand) int64 {
	pct := (rng.Float64()*2 - 1) * volatility
	next := math.Round(float64(price) * (1 + pct))
	if next < 0 {
		return 0
	}
	return int64(next)
}

// GeometricBrownianMotion moves the price by S·exp(σZ − σ²/2) with
// Z ~ N(0,1) and σ the stock's volatility, clamped at zero.
func GeometricBrownianMotion(price int64, volatility float64, rng *rand.Rand) int64 {
	z := rng.NormFloat64()
	next := math.Round(float64(price) * math.Exp(volatility*z-0.5*volatility*volatility))
	if next < 0 {
		return 0
	}
	return int64(next)
}

// TickModelByName resolves a configured model name to its implementation.
// Recognized names: "walk", "gbm".
func TickModelByName(name string) (domain.TickModel, error) {
	switch name {
	case "walk":
		return RandomWalk, nil
	case "gbm":
		return GeometricBrownianMotion, nil
	}
	return nil, fmt.Errorf("unknown tick model %q, must be one of: walk, gbm", name)
}
