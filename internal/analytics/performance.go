package analytics

import (
	"math"

	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/types"
)

// Summarize aggregates the closed trades of a snapshot into a performance
// summary. Streaks are counted over exit-time order; breakeven trades count
// toward the total but neither extend nor reset a streak. startingBalance
// feeds the total return and portfolio value and may be zero.
func Summarize(trades []types.TradeRecord, startingBalance float64) types.PerformanceSummary {
	closed := closedTrades(trades)

	summary := types.PerformanceSummary{
		PortfolioValue: types.RoundMoney(startingBalance),
	}

	if len(closed) == 0 {
		return summary
	}

	var totalPnL, winSum, lossSum float64
	currentStreak := 0
	longestWin := 0
	longestLoss := 0

	for _, trade := range closed {
		pnl := trade.RealizedPnL()
		totalPnL += pnl

		switch {
		case pnl > 0:
			summary.WinningTrades++
			winSum += pnl

			if pnl > summary.LargestWin {
				summary.LargestWin = pnl
			}

			if currentStreak > 0 {
				currentStreak++
			} else {
				currentStreak = 1
			}

			if currentStreak > longestWin {
				longestWin = currentStreak
			}
		case pnl < 0:
			summary.LosingTrades++
			lossSum += pnl

			if pnl < summary.LargestLoss {
				summary.LargestLoss = pnl
			}

			if currentStreak < 0 {
				currentStreak--
			} else {
				currentStreak = -1
			}

			if -currentStreak > longestLoss {
				longestLoss = -currentStreak
			}
		}
	}

	summary.TotalTrades = len(closed)
	summary.WinRate = types.RoundPercent(float64(summary.WinningTrades) / float64(len(closed)) * 100)
	summary.TotalPnL = types.RoundMoney(totalPnL)
	summary.LargestWin = types.RoundMoney(summary.LargestWin)
	summary.LargestLoss = types.RoundMoney(summary.LargestLoss)

	if summary.WinningTrades > 0 {
		summary.AverageWin = types.RoundMoney(winSum / float64(summary.WinningTrades))
	}

	if summary.LosingTrades > 0 {
		summary.AverageLoss = types.RoundMoney(lossSum / float64(summary.LosingTrades))
	}

	// Profit factor stays 0 without losers, even for an all-win history.
	if summary.WinningTrades > 0 && summary.LosingTrades > 0 {
		avgWin := winSum / float64(summary.WinningTrades)
		avgLoss := lossSum / float64(summary.LosingTrades)
		summary.ProfitFactor = types.RoundMoney(avgWin / math.Abs(avgLoss))
	}

	summary.CurrentStreak = currentStreak
	summary.LongestWinStreak = longestWin
	summary.LongestLossStreak = longestLoss

	if startingBalance > 0 {
		summary.TotalReturn = types.RoundPercent(totalPnL / startingBalance * 100)
	}

	summary.PortfolioValue = types.RoundMoney(startingBalance + totalPnL)

	return summary
}
