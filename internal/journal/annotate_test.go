package journal

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/types"
)

func annotatedFixture(symbol string, direction types.TradeDirection, entry, exit float64) types.TradeRecord {
	return types.TradeRecord{
		Symbol:     symbol,
		Direction:  direction,
		EntryPrice: entry,
		ExitPrice:  optional.Some(exit),
		Quantity:   1.0,
		LotType:    types.LotTypeMicro,
		EntryTime:  time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		Status:     types.TradeStatusClosed,
	}
}

func TestAnnotateDerivedKnownSymbol(t *testing.T) {
	trade := annotatedFixture("EURUSD", types.TradeDirectionLong, 1.0850, 1.0920)

	err := AnnotateDerived(&trade)
	require.NoError(t, err)

	require.True(t, trade.PnL.IsSome())
	assert.Equal(t, 7.0, trade.PnL.Unwrap())
	require.True(t, trade.Pips.IsSome())
	assert.Equal(t, 70.0, trade.Pips.Unwrap())
	require.True(t, trade.ReturnPercent.IsSome())
	assert.Equal(t, 0.65, trade.ReturnPercent.Unwrap())
}

func TestAnnotateDerivedUnknownSymbolFallsBack(t *testing.T) {
	trade := annotatedFixture("AAPL", types.TradeDirectionLong, 150, 155)
	trade.Quantity = 10

	err := AnnotateDerived(&trade)
	require.NoError(t, err)

	require.True(t, trade.PnL.IsSome())
	assert.Equal(t, 50.0, trade.PnL.Unwrap())
	// No instrument metadata means no pip distance.
	assert.True(t, trade.Pips.IsNone())
	require.True(t, trade.ReturnPercent.IsSome())
	assert.Equal(t, 3.33, trade.ReturnPercent.Unwrap())
}

func TestAnnotateDerivedUnknownSymbolShort(t *testing.T) {
	trade := annotatedFixture("AAPL", types.TradeDirectionShort, 155, 150)
	trade.Quantity = 10

	err := AnnotateDerived(&trade)
	require.NoError(t, err)

	require.True(t, trade.PnL.IsSome())
	assert.Equal(t, 50.0, trade.PnL.Unwrap())
	assert.Equal(t, 3.23, trade.ReturnPercent.Unwrap())
}

func TestAnnotateDerivedSkipsOpenTrade(t *testing.T) {
	trade := annotatedFixture("EURUSD", types.TradeDirectionLong, 1.0850, 1.0920)
	trade.ExitPrice = optional.None[float64]()
	trade.Status = types.TradeStatusOpen

	err := AnnotateDerived(&trade)
	require.NoError(t, err)

	assert.True(t, trade.PnL.IsNone())
	assert.True(t, trade.Pips.IsNone())
	assert.True(t, trade.ReturnPercent.IsNone())
}

func TestAnnotateDerivedRunsOnce(t *testing.T) {
	trade := annotatedFixture("EURUSD", types.TradeDirectionLong, 1.0850, 1.0920)
	trade.PnL = optional.Some(123.0)

	err := AnnotateDerived(&trade)
	require.NoError(t, err)

	assert.Equal(t, 123.0, trade.PnL.Unwrap())
	assert.True(t, trade.Pips.IsNone())
}
