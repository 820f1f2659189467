package forex

import (
	"math"

	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/types"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/pkg/errors"
)

// PnLInput describes one closed forex trade.
type PnLInput struct {
	Symbol     string
	Direction  types.TradeDirection
	EntryPrice float64
	ExitPrice  float64
	// LotSize is the number of lots of LotType traded.
	LotSize float64
	LotType types.LotType
}

// PnLResult carries the pip-based profit figures for one trade.
type PnLResult struct {
	// PnL in account currency, rounded to 2 decimal places.
	PnL float64 `yaml:"pnl" json:"pnl"`
	// Pips gained (positive) or lost (negative), rounded to 1 decimal place.
	Pips float64 `yaml:"pips" json:"pips"`
	// ReturnPercent is the pnl relative to the position value at entry.
	ReturnPercent float64 `yaml:"return_percent" json:"return_percent"`
	// PositionUnits is the position size in base currency units.
	PositionUnits float64 `yaml:"position_units" json:"position_units"`
}

// ComputePnL converts entry and exit prices into pip and money terms using
// the instrument table. Pure computation; callers hitting
// ErrCodeUnsupportedSymbol decide their own fallback outside this package.
func ComputePnL(input PnLInput) (PnLResult, error) {
	inst, err := Lookup(input.Symbol)
	if err != nil {
		return PnLResult{}, err
	}

	units, err := UnitsPerLot(input.LotType)
	if err != nil {
		return PnLResult{}, err
	}

	if input.EntryPrice <= 0 || input.ExitPrice <= 0 {
		return PnLResult{}, errors.New(errors.ErrCodeInvalidParameter, "entry and exit prices must be greater than zero")
	}

	if input.LotSize <= 0 {
		return PnLResult{}, errors.New(errors.ErrCodeInvalidParameter, "lot size must be greater than zero")
	}

	positionUnits := input.LotSize * units

	// One pip sits at the instrument's pip decimal: 0.0001 on EURUSD,
	// 0.01 on USDJPY.
	pipFactor := math.Pow10(inst.PipDecimalPlace)

	rawPips := (input.ExitPrice - input.EntryPrice) * pipFactor
	pips := rawPips
	if input.Direction == types.TradeDirectionShort {
		pips = -rawPips
	}

	pipValuePerUnit := inst.PipValuePerStandardLot / StandardLotUnits
	pnl := pips * pipValuePerUnit * positionUnits

	returnPercent := 0.0
	if entryValue := positionUnits * input.EntryPrice; entryValue > 0 {
		returnPercent = pnl / entryValue * 100
	}

	return PnLResult{
		PnL:           types.RoundMoney(pnl),
		Pips:          types.RoundPips(pips),
		ReturnPercent: types.RoundPercent(returnPercent),
		PositionUnits: positionUnits,
	}, nil
}
