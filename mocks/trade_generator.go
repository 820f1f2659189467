package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/moznion/go-optional"

	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/journal"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/types"
)

// TradeGenerator generates realistic trade histories for testing and benchmarking.
type TradeGenerator struct {
	rng *rand.Rand
}

// NewTradeGenerator creates a new TradeGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewTradeGenerator(seed int64) *TradeGenerator {
	return &TradeGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// TradeGeneratorConfig configures how trade records are generated.
type TradeGeneratorConfig struct {
	// Symbols are the instruments to trade, assigned round-robin
	Symbols []string
	// StartTime is the entry time of the first trade
	StartTime time.Time
	// Interval is the duration between consecutive entries
	Interval time.Duration
	// HoldDuration is how long each position stays open before its exit
	HoldDuration time.Duration
	// Count is the number of trades to generate
	Count int
	// BasePrice is the price level entries wander around
	BasePrice float64
	// MoveRange controls how far exits land from entries (0.01 = 1% typical move)
	MoveRange float64
	// WinRate is the fraction of trades that close in profit (0.0 to 1.0)
	WinRate float64
	// Strategies are cycled through the strategy tag. Empty leaves trades untagged.
	Strategies []string
}

// DefaultTradeConfig returns a sensible default configuration.
func DefaultTradeConfig() TradeGeneratorConfig {
	return TradeGeneratorConfig{
		Symbols:      []string{"EURUSD"},
		StartTime:    time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC),
		Interval:     6 * time.Hour,
		HoldDuration: 2 * time.Hour,
		Count:        1000,
		BasePrice:    1.1000,
		MoveRange:    0.005, // 0.5% per trade
		WinRate:      0.55,
		Strategies:   []string{"momentum", "breakout", "reversal"},
	}
}

// Generate creates a slice of closed, annotated TradeRecords based on the
// configuration. Move sizes follow a normal distribution scaled by MoveRange,
// and roughly WinRate of the trades close in profit.
func (g *TradeGenerator) Generate(config TradeGeneratorConfig) ([]types.TradeRecord, error) {
	trades := make([]types.TradeRecord, config.Count)
	entryTime := config.StartTime

	for i := 0; i < config.Count; i++ {
		direction := types.TradeDirectionLong
		if g.rng.Float64() < 0.5 {
			direction = types.TradeDirectionShort
		}

		// Entries wander around the base price
		entry := config.BasePrice * (1 + (g.rng.Float64()*2-1)*config.MoveRange*10)

		// Move size from a normal distribution
		// Using Box-Muller transform
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		move := math.Abs(z) * config.MoveRange * entry
		if move == 0 {
			move = config.MoveRange * entry
		}

		win := g.rng.Float64() < config.WinRate

		// A long wins when the exit lands above the entry, a short when below
		exit := entry + move
		if (direction == types.TradeDirectionLong) != win {
			exit = entry - move
		}

		if exit <= 0 {
			exit = entry * 0.5 // Prevent negative prices
		}

		// Stop one typical move beyond the entry, against the position
		stop := entry - config.MoveRange*entry
		if direction == types.TradeDirectionShort {
			stop = entry + config.MoveRange*entry
		}

		trade := types.TradeRecord{
			Symbol:     config.Symbols[i%len(config.Symbols)],
			Direction:  direction,
			EntryPrice: roundToDecimals(entry, 5),
			ExitPrice:  optional.Some(roundToDecimals(exit, 5)),
			Quantity:   1.0,
			LotType:    types.LotTypeMicro,
			EntryTime:  entryTime,
			ExitTime:   optional.Some(entryTime.Add(config.HoldDuration)),
			StopLoss:   optional.Some(roundToDecimals(stop, 5)),
			Status:     types.TradeStatusClosed,
			Mood:       optional.Some(1 + g.rng.Intn(5)),
		}

		if len(config.Strategies) > 0 {
			trade.Strategy = config.Strategies[i%len(config.Strategies)]
		}

		if err := journal.AnnotateDerived(&trade); err != nil {
			return nil, err
		}

		trades[i] = trade
		entryTime = entryTime.Add(config.Interval)
	}

	return trades, nil
}

// GenerateHistory is a convenience function to generate a closed trade
// history with default settings and a fixed seed for reproducibility.
func GenerateHistory(count int) ([]types.TradeRecord, error) {
	gen := NewTradeGenerator(42)
	config := DefaultTradeConfig()
	config.Count = count

	return gen.Generate(config)
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(val*pow) / pow
}
