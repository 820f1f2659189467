package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/types"
)

func TestExcludeMalformed(t *testing.T) {
	exitAt := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	zeroEntry := closedTrade(10, exitAt)
	zeroEntry.EntryPrice = 0

	zeroQuantity := closedTrade(10, exitAt)
	zeroQuantity.Quantity = 0

	trades := []types.TradeRecord{
		closedTrade(100, exitAt),
		zeroEntry,
		closedTrade(-50, exitAt.Add(time.Minute)),
		zeroQuantity,
	}

	kept, excluded := ExcludeMalformed(trades)

	assert.Len(t, kept, 2)
	assert.Equal(t, 2, excluded)
	assert.Equal(t, 100.0, kept[0].RealizedPnL())
	assert.Equal(t, -50.0, kept[1].RealizedPnL())
}

func TestExcludeMalformedEmpty(t *testing.T) {
	kept, excluded := ExcludeMalformed(nil)

	assert.Empty(t, kept)
	assert.Equal(t, 0, excluded)
}
