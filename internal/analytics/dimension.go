package analytics

import (
	"sort"
	"strings"

	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/types"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/pkg/errors"
)

// Bucket keys for the four six-hour entry blocks.
const (
	timeBlockNight     = "00-06"
	timeBlockMorning   = "06-12"
	timeBlockAfternoon = "12-18"
	timeBlockEvening   = "18-24"
)

// unknownBucket collects trades that carry no value for the dimension.
const unknownBucket = "unknown"

// GroupByDimension buckets the closed trades of a snapshot along one
// dimension and ranks the buckets by total pnl, best first. Ties break on
// the bucket key so the order is stable across runs.
func GroupByDimension(trades []types.TradeRecord, dimension types.Dimension) (types.DimensionBreakdown, error) {
	extract, err := dimensionExtractor(dimension)
	if err != nil {
		return types.DimensionBreakdown{}, err
	}

	closed := closedTrades(trades)

	buckets := make(map[string]*types.CategoryBucket)
	for _, trade := range closed {
		key := extract(trade)

		bucket, ok := buckets[key]
		if !ok {
			bucket = &types.CategoryBucket{DimensionValue: key}
			buckets[key] = bucket
		}

		pnl := trade.RealizedPnL()
		bucket.Trades++
		bucket.TotalPnL += pnl

		switch {
		case pnl > 0:
			bucket.Wins++
		case pnl < 0:
			bucket.Losses++
		}
	}

	breakdown := types.DimensionBreakdown{
		Dimension: dimension,
		Buckets:   make([]types.CategoryBucket, 0, len(buckets)),
	}

	for _, bucket := range buckets {
		bucket.WinRate = types.RoundPercent(float64(bucket.Wins) / float64(bucket.Trades) * 100)
		bucket.AveragePnL = types.RoundMoney(bucket.TotalPnL / float64(bucket.Trades))
		bucket.TotalPnL = types.RoundMoney(bucket.TotalPnL)
		breakdown.Buckets = append(breakdown.Buckets, *bucket)
	}

	sort.Slice(breakdown.Buckets, func(i, j int) bool {
		if breakdown.Buckets[i].TotalPnL != breakdown.Buckets[j].TotalPnL {
			return breakdown.Buckets[i].TotalPnL > breakdown.Buckets[j].TotalPnL
		}

		return breakdown.Buckets[i].DimensionValue < breakdown.Buckets[j].DimensionValue
	})

	return breakdown, nil
}

// dimensionExtractor maps a dimension to its bucket key function.
func dimensionExtractor(dimension types.Dimension) (func(types.TradeRecord) string, error) {
	switch dimension {
	case types.DimensionTimeOfDay:
		return func(t types.TradeRecord) string { return timeBlock(t.EntryTime.Hour()) }, nil
	case types.DimensionWeekday:
		return func(t types.TradeRecord) string { return t.EntryTime.Weekday().String() }, nil
	case types.DimensionMonth:
		return func(t types.TradeRecord) string { return t.EntryTime.Month().String() }, nil
	case types.DimensionStrategy:
		return func(t types.TradeRecord) string { return tagBucket(t.Strategy) }, nil
	case types.DimensionSetup:
		return func(t types.TradeRecord) string { return tagBucket(t.Setup) }, nil
	case types.DimensionTimeframe:
		return func(t types.TradeRecord) string { return tagBucket(t.Timeframe) }, nil
	case types.DimensionMarketCondition:
		return func(t types.TradeRecord) string { return tagBucket(t.MarketCondition) }, nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidDimension, "unknown dimension: %s", dimension)
	}
}

// timeBlock maps an entry hour to its six-hour block.
func timeBlock(hour int) string {
	switch {
	case hour < 6:
		return timeBlockNight
	case hour < 12:
		return timeBlockMorning
	case hour < 18:
		return timeBlockAfternoon
	default:
		return timeBlockEvening
	}
}

// tagBucket normalizes a free-form tag into a bucket key. Tags differing
// only in case or surrounding whitespace share a bucket.
func tagBucket(tag string) string {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	if normalized == "" {
		return unknownBucket
	}

	return normalized
}
