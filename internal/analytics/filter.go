// Package analytics computes aggregate statistics over journaled trades.
// Every function works on a snapshot slice, never mutates it, and returns
// zeroed results for empty input instead of NaN or Inf.
package analytics

import (
	"sort"

	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/types"
)

// ExcludeMalformed splits out records that cannot participate in aggregate
// computations. Malformed records are counted, never fatal.
func ExcludeMalformed(trades []types.TradeRecord) ([]types.TradeRecord, int) {
	kept := make([]types.TradeRecord, 0, len(trades))
	excluded := 0

	for _, trade := range trades {
		if trade.WellFormed() {
			kept = append(kept, trade)
		} else {
			excluded++
		}
	}

	return kept, excluded
}

// closedTrades returns the closed subset in exit-time order, oldest first.
// Trades without an exit time sort by entry time. The input is left
// untouched.
func closedTrades(trades []types.TradeRecord) []types.TradeRecord {
	closed := make([]types.TradeRecord, 0, len(trades))
	for _, trade := range trades {
		if trade.IsClosed() {
			closed = append(closed, trade)
		}
	}

	sort.SliceStable(closed, func(i, j int) bool {
		return closed[i].AnalyticsTime().Before(closed[j].AnalyticsTime())
	})

	return closed
}
