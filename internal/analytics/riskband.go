package analytics

import (
	"math"

	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/types"
)

// riskBandOrder fixes the presentation order, low to very high.
var riskBandOrder = []types.RiskBand{
	types.RiskBandLow,
	types.RiskBandMedium,
	types.RiskBandHigh,
	types.RiskBandVeryHigh,
}

var riskBandLabels = map[types.RiskBand]string{
	types.RiskBandLow:      "0-1%",
	types.RiskBandMedium:   "1-2%",
	types.RiskBandHigh:     "2-3%",
	types.RiskBandVeryHigh: ">3%",
}

// DistributeRisk classifies every stop-carrying trade by its planned risk as
// a share of the account size. Open trades are sampled alongside closed ones
// since the risk was taken either way; cancelled trades and trades without a
// stop loss are not. All four bands appear in the result even when empty.
func DistributeRisk(trades []types.TradeRecord, accountSize float64) types.RiskDistribution {
	counts := make(map[types.RiskBand]int, len(riskBandOrder))

	sampled := 0
	for _, trade := range trades {
		if !trade.WellFormed() || trade.Status == types.TradeStatusCancelled || trade.StopLoss.IsNone() {
			continue
		}

		riskAmount := math.Abs(trade.EntryPrice-trade.StopLoss.Unwrap()) * trade.Quantity

		riskPercent := 0.0
		if accountSize > 0 {
			riskPercent = riskAmount / accountSize * 100
		}

		counts[classifyRisk(riskPercent)]++
		sampled++
	}

	distribution := types.RiskDistribution{
		SampledTrades: sampled,
		Bands:         make([]types.RiskBandStat, 0, len(riskBandOrder)),
	}

	for _, band := range riskBandOrder {
		stat := types.RiskBandStat{
			Band:   band,
			Label:  riskBandLabels[band],
			Trades: counts[band],
		}

		if sampled > 0 {
			stat.Percent = types.RoundPercent(float64(counts[band]) / float64(sampled) * 100)
		}

		distribution.Bands = append(distribution.Bands, stat)
	}

	return distribution
}

// classifyRisk places a risk percentage into its band. Upper edges are
// inclusive: exactly 2% is still medium.
func classifyRisk(riskPercent float64) types.RiskBand {
	switch {
	case riskPercent <= 1:
		return types.RiskBandLow
	case riskPercent <= 2:
		return types.RiskBandMedium
	case riskPercent <= 3:
		return types.RiskBandHigh
	default:
		return types.RiskBandVeryHigh
	}
}
