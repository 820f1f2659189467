package types

import "time"

// Dimension identifies one of the closed set of grouping axes understood by
// the dimensional analyzer. Keeping the set enumerated means a typo in a
// caller is an error instead of a silent empty breakdown.
type Dimension string

const (
	// DimensionTimeOfDay groups by the entry hour into four six-hour blocks.
	DimensionTimeOfDay Dimension = "time_of_day"
	// DimensionWeekday groups by the entry weekday name.
	DimensionWeekday Dimension = "weekday"
	// DimensionMonth groups by the entry month name.
	DimensionMonth Dimension = "month"
	// DimensionStrategy groups by the strategy tag.
	DimensionStrategy Dimension = "strategy"
	// DimensionSetup groups by the setup tag.
	DimensionSetup Dimension = "setup"
	// DimensionTimeframe groups by the timeframe tag.
	DimensionTimeframe Dimension = "timeframe"
	// DimensionMarketCondition groups by the market condition tag.
	DimensionMarketCondition Dimension = "market_condition"
)

// AllDimensions lists every supported dimension in report order.
func AllDimensions() []Dimension {
	return []Dimension{
		DimensionTimeOfDay,
		DimensionWeekday,
		DimensionMonth,
		DimensionStrategy,
		DimensionSetup,
		DimensionTimeframe,
		DimensionMarketCondition,
	}
}

// RiskBand classifies a trade by its planned risk as a percentage of account
// size. Band edges are inclusive on the upper side: exactly 1% is still low.
type RiskBand string

const (
	// RiskBandLow covers risk in [0%, 1%].
	RiskBandLow RiskBand = "low"
	// RiskBandMedium covers risk in (1%, 2%].
	RiskBandMedium RiskBand = "medium"
	// RiskBandHigh covers risk in (2%, 3%].
	RiskBandHigh RiskBand = "high"
	// RiskBandVeryHigh covers risk above 3%.
	RiskBandVeryHigh RiskBand = "very_high"
)

// PerformanceSummary aggregates the closed trades of one snapshot.
type PerformanceSummary struct {
	// Count of all closed trades.
	TotalTrades int `yaml:"total_trades" json:"total_trades"`
	// Count of closed trades with positive pnl.
	WinningTrades int `yaml:"winning_trades" json:"winning_trades"`
	// Count of closed trades with negative pnl. Breakeven trades count in
	// TotalTrades only.
	LosingTrades int `yaml:"losing_trades" json:"losing_trades"`
	// Win rate in percent.
	WinRate float64 `yaml:"win_rate" json:"win_rate"`
	// Sum of realized pnl.
	TotalPnL float64 `yaml:"total_pnl" json:"total_pnl"`
	// Mean pnl of winning trades, 0 when there are none.
	AverageWin float64 `yaml:"average_win" json:"average_win"`
	// Mean pnl of losing trades (negative), 0 when there are none.
	AverageLoss float64 `yaml:"average_loss" json:"average_loss"`
	// ProfitFactor is averageWin / |averageLoss|, fixed at 0 when there are
	// no losing trades.
	ProfitFactor float64 `yaml:"profit_factor" json:"profit_factor"`
	// Largest single winning pnl.
	LargestWin float64 `yaml:"largest_win" json:"largest_win"`
	// Largest single losing pnl (negative).
	LargestLoss float64 `yaml:"largest_loss" json:"largest_loss"`
	// CurrentStreak is positive during a run of wins, negative during a run
	// of losses, counted over exit-time order.
	CurrentStreak int `yaml:"current_streak" json:"current_streak"`
	// Longest run of consecutive wins.
	LongestWinStreak int `yaml:"longest_win_streak" json:"longest_win_streak"`
	// Longest run of consecutive losses.
	LongestLossStreak int `yaml:"longest_loss_streak" json:"longest_loss_streak"`
	// TotalReturn is total pnl over the starting balance, in percent.
	TotalReturn float64 `yaml:"total_return" json:"total_return"`
	// PortfolioValue is the starting balance plus total pnl.
	PortfolioValue float64 `yaml:"portfolio_value" json:"portfolio_value"`
}

// DrawdownPoint is one step of the equity walk.
type DrawdownPoint struct {
	// Timestamp of the closing trade that produced this point.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// Equity after applying the trade's pnl.
	Equity float64 `yaml:"equity" json:"equity"`
	// PeakEquity is the highest equity seen so far. Never decreases.
	PeakEquity float64 `yaml:"peak_equity" json:"peak_equity"`
	// DrawdownAbs is peak equity minus equity.
	DrawdownAbs float64 `yaml:"drawdown_abs" json:"drawdown_abs"`
	// DrawdownPct is the drawdown relative to peak equity, in percent.
	// 0 when the peak is not positive.
	DrawdownPct float64 `yaml:"drawdown_pct" json:"drawdown_pct"`
}

// DrawdownResult is the full drawdown track over a snapshot.
type DrawdownResult struct {
	// MaxDrawdown is the deepest absolute drawdown observed.
	MaxDrawdown float64 `yaml:"max_drawdown" json:"max_drawdown"`
	// MaxDrawdownPct is the deepest percentage drawdown observed.
	MaxDrawdownPct float64 `yaml:"max_drawdown_pct" json:"max_drawdown_pct"`
	// FinalEquity is the equity after the last closed trade.
	FinalEquity float64 `yaml:"final_equity" json:"final_equity"`
	// History holds one point per closed trade in exit-time order.
	History []DrawdownPoint `yaml:"history" json:"history"`
}

// CategoryBucket is one value of a dimensional breakdown.
type CategoryBucket struct {
	// DimensionValue is the bucket key: a time block, weekday or month name,
	// or a normalized tag. Unattributable trades land in "unknown".
	DimensionValue string  `yaml:"dimension_value" json:"dimension_value"`
	Trades         int     `yaml:"trades" json:"trades"`
	Wins           int     `yaml:"wins" json:"wins"`
	Losses         int     `yaml:"losses" json:"losses"`
	TotalPnL       float64 `yaml:"total_pnl" json:"total_pnl"`
	// Win rate within the bucket, in percent.
	WinRate float64 `yaml:"win_rate" json:"win_rate"`
	// Mean pnl per trade within the bucket.
	AveragePnL float64 `yaml:"average_pnl" json:"average_pnl"`
}

// DimensionBreakdown pairs a dimension with its buckets, sorted by total pnl
// descending.
type DimensionBreakdown struct {
	Dimension Dimension        `yaml:"dimension" json:"dimension"`
	Buckets   []CategoryBucket `yaml:"buckets" json:"buckets"`
}

// RiskBandStat is the population of one risk band.
type RiskBandStat struct {
	Band RiskBand `yaml:"band" json:"band"`
	// Label is the human-readable band range, e.g. "1-2%".
	Label  string `yaml:"label" json:"label"`
	Trades int    `yaml:"trades" json:"trades"`
	// Percent is this band's share of the sampled trades, in percent.
	Percent float64 `yaml:"percent" json:"percent"`
}

// RiskDistribution reports how trades spread across the four risk bands.
// All four bands are always present, low to very high.
type RiskDistribution struct {
	// SampledTrades is the number of trades that carried a stop loss and
	// entered the distribution.
	SampledTrades int            `yaml:"sampled_trades" json:"sampled_trades"`
	Bands         []RiskBandStat `yaml:"bands" json:"bands"`
}
