package forex

import (
	"math"

	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/types"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/pkg/errors"
)

// SizingInput describes a planned trade to size against a risk budget.
type SizingInput struct {
	// AccountBalance in account currency.
	AccountBalance float64
	// RiskPercent is the share of the balance to put at risk, e.g. 2 for 2%.
	RiskPercent float64
	EntryPrice  float64
	StopLoss    float64
	Symbol      string
}

// SizingResult is the recommended position for the given risk budget.
type SizingResult struct {
	// LotType is the largest lot denomination whose unit size fits the
	// required units.
	LotType types.LotType `yaml:"lot_type" json:"lot_type"`
	// LotSize is the recommended number of lots, rounded to 2 decimal places.
	LotSize float64 `yaml:"lot_size" json:"lot_size"`
	// PositionUnits is the exact required position size in base currency units.
	PositionUnits float64 `yaml:"position_units" json:"position_units"`
	// RiskAmount is the account currency amount at risk.
	RiskAmount float64 `yaml:"risk_amount" json:"risk_amount"`
	// StopLossPips is the stop distance in pips.
	StopLossPips float64 `yaml:"stop_loss_pips" json:"stop_loss_pips"`
}

// sizingOrder is checked largest first; nano is the fallback for budgets
// below one nano lot, which then yields a fractional lot count.
var sizingOrder = []types.LotType{
	types.LotTypeStandard,
	types.LotTypeMini,
	types.LotTypeMicro,
	types.LotTypeNano,
}

// RecommendPositionSize converts a risk budget into a lot recommendation.
func RecommendPositionSize(input SizingInput) (SizingResult, error) {
	inst, err := Lookup(input.Symbol)
	if err != nil {
		return SizingResult{}, err
	}

	if input.AccountBalance <= 0 {
		return SizingResult{}, errors.New(errors.ErrCodeInvalidParameter, "account balance must be greater than zero")
	}

	if input.RiskPercent <= 0 {
		return SizingResult{}, errors.New(errors.ErrCodeInvalidParameter, "risk percent must be greater than zero")
	}

	if input.EntryPrice <= 0 || input.StopLoss <= 0 {
		return SizingResult{}, errors.New(errors.ErrCodeInvalidParameter, "entry price and stop loss must be greater than zero")
	}

	pipFactor := math.Pow10(inst.PipDecimalPlace)

	stopLossPips := math.Abs(input.EntryPrice-input.StopLoss) * pipFactor
	if stopLossPips == 0 {
		return SizingResult{}, errors.New(errors.ErrCodeInvalidStopLoss, "stop loss must differ from entry price")
	}

	riskAmount := input.AccountBalance * input.RiskPercent / 100
	pipValuePerUnit := inst.PipValuePerStandardLot / StandardLotUnits
	requiredUnits := riskAmount / (stopLossPips * pipValuePerUnit)

	lotType := types.LotTypeNano
	for _, candidate := range sizingOrder {
		if unitsPerLot[candidate] <= requiredUnits {
			lotType = candidate
			break
		}
	}

	lotSize := requiredUnits / unitsPerLot[lotType]

	return SizingResult{
		LotType:       lotType,
		LotSize:       types.RoundMoney(lotSize),
		PositionUnits: requiredUnits,
		RiskAmount:    types.RoundMoney(riskAmount),
		StopLossPips:  types.RoundPips(stopLossPips),
	}, nil
}
