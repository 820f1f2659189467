package analytics

import (
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/types"
)

// TrackDrawdown walks the equity curve trade by trade from the starting
// balance, recording the running peak and the drawdown below it at every
// step. The peak never decreases. Percentage drawdown is 0 whenever the peak
// is not positive.
func TrackDrawdown(trades []types.TradeRecord, startingBalance float64) types.DrawdownResult {
	closed := closedTrades(trades)

	equity := startingBalance
	peak := startingBalance

	result := types.DrawdownResult{
		History: make([]types.DrawdownPoint, 0, len(closed)),
	}

	var maxDrawdown, maxDrawdownPct float64

	for _, trade := range closed {
		equity += trade.RealizedPnL()

		if equity > peak {
			peak = equity
		}

		drawdown := peak - equity
		drawdownPct := 0.0
		if peak > 0 {
			drawdownPct = drawdown / peak * 100
		}

		if drawdown > maxDrawdown {
			maxDrawdown = drawdown
		}

		if drawdownPct > maxDrawdownPct {
			maxDrawdownPct = drawdownPct
		}

		result.History = append(result.History, types.DrawdownPoint{
			Timestamp:   trade.AnalyticsTime(),
			Equity:      types.RoundMoney(equity),
			PeakEquity:  types.RoundMoney(peak),
			DrawdownAbs: types.RoundMoney(drawdown),
			DrawdownPct: types.RoundPercent(drawdownPct),
		})
	}

	result.MaxDrawdown = types.RoundMoney(maxDrawdown)
	result.MaxDrawdownPct = types.RoundPercent(maxDrawdownPct)
	result.FinalEquity = types.RoundMoney(equity)

	return result
}
