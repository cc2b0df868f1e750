// Package pricegen produces synthetic close-price series for exploring formulas
// without a market data feed.
package pricegen

import (
	"context"
	"math"
	"math/rand"
	"sync"
)

const (
	MinPoints     = 50
	MaxPoints     = 5000
	MinVolatility = 0.1
	MaxVolatility = 10.0

	DefaultPoints     = 500
	DefaultVolatility = 1.5

	// InitialPrice is the level the walk starts from before the first shock.
	InitialPrice = 100.0
	// MinPrice is the floor applied after each step.
	MinPrice = 0.1

	tradingDaysPerYear = 252
)

// Generator generates geometric Brownian motion close prices.
// It is safe for concurrent use.
type Generator struct {
	rng *rand.Rand
	mu  sync.Mutex
}

// NewGenerator creates a Generator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)), //nolint:gosec // synthetic data, not security sensitive
		mu:  sync.Mutex{},
	}
}

// ClampPoints limits points to [MinPoints, MaxPoints].
func ClampPoints(points int) int {
	return max(MinPoints, min(MaxPoints, points))
}

// ClampVolatility limits volatility to [MinVolatility, MaxVolatility].
// NaN falls back to MinVolatility.
func ClampVolatility(volatility float64) float64 {
	if math.IsNaN(volatility) {
		return MinVolatility
	}

	return math.Max(MinVolatility, math.Min(MaxVolatility, volatility))
}

// Generate returns a close series of ClampPoints(points) samples.
// Each step applies a lognormal shock scaled by the annualised volatility over one trading day.
func (g *Generator) Generate(ctx context.Context, points int, volatility float64) ([]float64, error) {
	points = ClampPoints(points)
	volatility = ClampVolatility(volatility)
	dt := 1.0 / tradingDaysPerYear
	scale := volatility * math.Sqrt(dt)

	g.mu.Lock()
	defer g.mu.Unlock()

	closes := make([]float64, points)
	price := InitialPrice

	for i := 0; i < points; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		shock := g.normal() * scale
		price = math.Max(MinPrice, price*math.Exp(shock))
		closes[i] = price
	}

	return closes, nil
}

// normal draws from N(0,1) using the Box-Muller transform.
func (g *Generator) normal() float64 {
	u1 := g.rng.Float64()
	for u1 == 0 {
		u1 = g.rng.Float64()
	}

	u2 := g.rng.Float64()

	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
