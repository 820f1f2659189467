// Package journal persists trade records in a DuckDB database and computes
// their derived fields on the way in.
package journal

import (
	"github.com/moznion/go-optional"

	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/forex"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/types"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/pkg/errors"
)

// AnnotateDerived computes pnl, pips and return percent for a trade that has
// an exit price and no derived fields yet. Trades without an exit price and
// trades already carrying derived values are left alone. Symbols without
// instrument metadata fall back to a plain price-difference pnl, leaving
// pips unset.
func AnnotateDerived(trade *types.TradeRecord) error {
	if trade.ExitPrice.IsNone() || trade.HasDerived() {
		return nil
	}

	result, err := forex.ComputePnL(forex.PnLInput{
		Symbol:     trade.Symbol,
		Direction:  trade.Direction,
		EntryPrice: trade.EntryPrice,
		ExitPrice:  trade.ExitPrice.Unwrap(),
		LotSize:    trade.Quantity,
		LotType:    trade.LotType,
	})

	switch {
	case err == nil:
		trade.PnL = optional.Some(result.PnL)
		trade.Pips = optional.Some(result.Pips)
		trade.ReturnPercent = optional.Some(result.ReturnPercent)

		return nil
	case errors.HasCode(err, errors.ErrCodeUnsupportedSymbol):
		annotatePlain(trade)

		return nil
	default:
		return err
	}
}

// annotatePlain derives pnl from the raw price difference times quantity for
// symbols the instrument table does not know.
func annotatePlain(trade *types.TradeRecord) {
	diff := trade.ExitPrice.Unwrap() - trade.EntryPrice
	if trade.Direction == types.TradeDirectionShort {
		diff = -diff
	}

	pnl := diff * trade.Quantity
	trade.PnL = optional.Some(types.RoundMoney(pnl))

	returnPercent := 0.0
	if entryValue := trade.EntryPrice * trade.Quantity; entryValue > 0 {
		returnPercent = types.RoundPercent(pnl / entryValue * 100)
	}

	trade.ReturnPercent = optional.Some(returnPercent)
}
