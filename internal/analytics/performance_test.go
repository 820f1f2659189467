package analytics

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"

	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/types"
)

// closedTrade builds a minimal closed trade whose derived pnl is already
// annotated, exiting at the given time.
func closedTrade(pnl float64, exitAt time.Time) types.TradeRecord {
	return types.TradeRecord{
		Symbol:     "EURUSD",
		Direction:  types.TradeDirectionLong,
		EntryPrice: 1.0850,
		ExitPrice:  optional.Some(1.0920),
		Quantity:   1.0,
		LotType:    types.LotTypeMicro,
		EntryTime:  exitAt.Add(-2 * time.Hour),
		ExitTime:   optional.Some(exitAt),
		Status:     types.TradeStatusClosed,
		PnL:        optional.Some(pnl),
	}
}

type PerformanceTestSuite struct {
	suite.Suite
	baseTime time.Time
}

func TestPerformanceSuite(t *testing.T) {
	suite.Run(t, new(PerformanceTestSuite))
}

func (suite *PerformanceTestSuite) SetupTest() {
	suite.baseTime = time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
}

// trades builds closed trades exiting one minute apart, in argument order.
func (suite *PerformanceTestSuite) trades(pnls ...float64) []types.TradeRecord {
	trades := make([]types.TradeRecord, 0, len(pnls))
	for i, pnl := range pnls {
		trades = append(trades, closedTrade(pnl, suite.baseTime.Add(time.Duration(i)*time.Minute)))
	}

	return trades
}

func (suite *PerformanceTestSuite) TestSummarize() {
	summary := Summarize(suite.trades(100, 50, -30, 20, 10, 5), 10000)

	suite.Equal(6, summary.TotalTrades)
	suite.Equal(5, summary.WinningTrades)
	suite.Equal(1, summary.LosingTrades)
	suite.Equal(83.33, summary.WinRate)
	suite.Equal(155.0, summary.TotalPnL)
	suite.Equal(37.0, summary.AverageWin)
	suite.Equal(-30.0, summary.AverageLoss)
	suite.Equal(1.23, summary.ProfitFactor)
	suite.Equal(100.0, summary.LargestWin)
	suite.Equal(-30.0, summary.LargestLoss)
	suite.Equal(3, summary.CurrentStreak)
	suite.Equal(3, summary.LongestWinStreak)
	suite.Equal(1, summary.LongestLossStreak)
	suite.Equal(1.55, summary.TotalReturn)
	suite.Equal(10155.0, summary.PortfolioValue)
}

func (suite *PerformanceTestSuite) TestSummarizeEmpty() {
	summary := Summarize(nil, 5000)

	suite.Equal(0, summary.TotalTrades)
	suite.Equal(0.0, summary.WinRate)
	suite.Equal(0.0, summary.TotalPnL)
	suite.Equal(0.0, summary.ProfitFactor)
	suite.Equal(0, summary.CurrentStreak)
	suite.Equal(0.0, summary.TotalReturn)
	suite.Equal(5000.0, summary.PortfolioValue)
}

func (suite *PerformanceTestSuite) TestSummarizeBreakevenKeepsStreak() {
	summary := Summarize(suite.trades(10, 0, 10), 10000)

	suite.Equal(3, summary.TotalTrades)
	suite.Equal(2, summary.WinningTrades)
	suite.Equal(0, summary.LosingTrades)
	suite.Equal(66.67, summary.WinRate)
	suite.Equal(2, summary.CurrentStreak)
	suite.Equal(2, summary.LongestWinStreak)
	suite.Equal(0, summary.LongestLossStreak)
	// No losers pins the profit factor at 0.
	suite.Equal(0.0, summary.ProfitFactor)
}

func (suite *PerformanceTestSuite) TestSummarizeBreakevenKeepsLossStreak() {
	summary := Summarize(suite.trades(-10, 0, -10), 10000)

	suite.Equal(-2, summary.CurrentStreak)
	suite.Equal(2, summary.LongestLossStreak)
	suite.Equal(0, summary.LongestWinStreak)
}

func (suite *PerformanceTestSuite) TestSummarizeStreaksFollowExitTime() {
	// Slice order is loss first, but the win exits an hour earlier. The
	// streak walk has to see the win first and end on the loss.
	trades := []types.TradeRecord{
		closedTrade(-25, suite.baseTime.Add(time.Hour)),
		closedTrade(40, suite.baseTime),
	}

	summary := Summarize(trades, 10000)

	suite.Equal(-1, summary.CurrentStreak)
	suite.Equal(1, summary.LongestWinStreak)
	suite.Equal(1, summary.LongestLossStreak)
}

func (suite *PerformanceTestSuite) TestSummarizeSkipsOpenTrades() {
	open := types.TradeRecord{
		Symbol:     "EURUSD",
		Direction:  types.TradeDirectionLong,
		EntryPrice: 1.0850,
		Quantity:   1.0,
		LotType:    types.LotTypeMicro,
		EntryTime:  suite.baseTime,
		Status:     types.TradeStatusOpen,
	}

	summary := Summarize([]types.TradeRecord{open, closedTrade(50, suite.baseTime)}, 10000)

	suite.Equal(1, summary.TotalTrades)
	suite.Equal(50.0, summary.TotalPnL)
}

func (suite *PerformanceTestSuite) TestSummarizeCountsOpenWithExitPrice() {
	trade := closedTrade(50, suite.baseTime)
	trade.Status = types.TradeStatusOpen

	summary := Summarize([]types.TradeRecord{trade}, 10000)

	suite.Equal(1, summary.TotalTrades)
}

func (suite *PerformanceTestSuite) TestSummarizeAllWinners() {
	summary := Summarize(suite.trades(10, 20), 10000)

	suite.Equal(100.0, summary.WinRate)
	suite.Equal(0.0, summary.AverageLoss)
	suite.Equal(0.0, summary.LargestLoss)
	suite.Equal(0.0, summary.ProfitFactor)
}

func (suite *PerformanceTestSuite) TestSummarizeZeroStartingBalance() {
	summary := Summarize(suite.trades(100), 0)

	suite.Equal(0.0, summary.TotalReturn)
	suite.Equal(100.0, summary.PortfolioValue)
}
