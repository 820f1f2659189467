package types

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"

	"github.com/CodeWithUtkarsha/TradeJournal-sub000/pkg/errors"
)

type TradeDirection string

type LotType string

type TradeStatus string

const (
	TradeDirectionLong  TradeDirection = "LONG"
	TradeDirectionShort TradeDirection = "SHORT"
)

const (
	LotTypeStandard LotType = "standard"
	LotTypeMini     LotType = "mini"
	LotTypeMicro    LotType = "micro"
	LotTypeNano     LotType = "nano"
)

const (
	TradeStatusOpen      TradeStatus = "OPEN"
	TradeStatusClosed    TradeStatus = "CLOSED"
	TradeStatusCancelled TradeStatus = "CANCELLED"
)

// TradeRecord is a single journaled trade. Records arrive from manual entry
// or bulk import, get their derived fields annotated exactly once when an
// exit price is known, and are otherwise immutable inputs to the analytics.
type TradeRecord struct {
	ID        string         `yaml:"id" json:"id" csv:"id"`
	Symbol    string         `yaml:"symbol" json:"symbol" csv:"symbol" validate:"required,uppercase"`
	Direction TradeDirection `yaml:"direction" json:"direction" csv:"direction" validate:"required,oneof=LONG SHORT"`
	// EntryPrice is the fill price at entry, in the instrument's quote currency.
	EntryPrice float64 `yaml:"entry_price" json:"entry_price" csv:"entry_price" validate:"required,gt=0"`
	// ExitPrice is set once the trade has been closed. None while the position is running.
	ExitPrice optional.Option[float64] `yaml:"exit_price" json:"exit_price" csv:"exit_price"`
	// Quantity is the traded size: the lot count for forex instruments.
	Quantity float64 `yaml:"quantity" json:"quantity" csv:"quantity" validate:"required,gt=0"`
	LotType  LotType `yaml:"lot_type" json:"lot_type" csv:"lot_type" validate:"required,oneof=standard mini micro nano"`

	EntryTime time.Time                  `yaml:"entry_time" json:"entry_time" csv:"entry_time" validate:"required"`
	ExitTime  optional.Option[time.Time] `yaml:"exit_time" json:"exit_time" csv:"exit_time"`

	StopLoss   optional.Option[float64] `yaml:"stop_loss" json:"stop_loss" csv:"stop_loss"`
	TakeProfit optional.Option[float64] `yaml:"take_profit" json:"take_profit" csv:"take_profit"`

	Commission float64 `yaml:"commission" json:"commission" csv:"commission" validate:"gte=0"`
	Fees       float64 `yaml:"fees" json:"fees" csv:"fees" validate:"gte=0"`

	Status TradeStatus `yaml:"status" json:"status" csv:"status" validate:"required,oneof=OPEN CLOSED CANCELLED"`

	// Derived fields, computed exactly once when the exit price lands.
	// Pips stays None for symbols without instrument metadata.
	PnL           optional.Option[float64] `yaml:"pnl" json:"pnl" csv:"pnl"`
	Pips          optional.Option[float64] `yaml:"pips" json:"pips" csv:"pips"`
	ReturnPercent optional.Option[float64] `yaml:"return_percent" json:"return_percent" csv:"return_percent"`

	// Categorical tags used by the dimensional breakdowns. Free-form, may be empty.
	Strategy        string `yaml:"strategy" json:"strategy" csv:"strategy"`
	Setup           string `yaml:"setup" json:"setup" csv:"setup"`
	Timeframe       string `yaml:"timeframe" json:"timeframe" csv:"timeframe"`
	MarketCondition string `yaml:"market_condition" json:"market_condition" csv:"market_condition"`

	// Mood is the trader's self-reported state at entry, 1 (worst) to 5 (best).
	Mood optional.Option[int] `yaml:"mood" json:"mood" csv:"mood"`
}

// Normalize fills defaulted fields in place: trims and uppercases the symbol,
// applies the micro lot default, and marks records without a status as open.
func (t *TradeRecord) Normalize() {
	t.Symbol = strings.ToUpper(strings.TrimSpace(t.Symbol))

	if t.LotType == "" {
		t.LotType = LotTypeMicro
	}

	if t.Status == "" {
		t.Status = TradeStatusOpen
	}
}

// Validate validates the TradeRecord struct.
func (t *TradeRecord) Validate() error {
	validate := validator.New()

	if err := validate.Struct(t); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRecord, "invalid trade record", err)
	}

	if t.ExitPrice.IsSome() && t.ExitPrice.Unwrap() <= 0 {
		return errors.New(errors.ErrCodeInvalidRecord, "exit price must be greater than zero")
	}

	if t.StopLoss.IsSome() && t.StopLoss.Unwrap() <= 0 {
		return errors.New(errors.ErrCodeInvalidStopLoss, "stop loss must be greater than zero")
	}

	if t.TakeProfit.IsSome() && t.TakeProfit.Unwrap() <= 0 {
		return errors.New(errors.ErrCodeInvalidRecord, "take profit must be greater than zero")
	}

	if t.Mood.IsSome() {
		if mood := t.Mood.Unwrap(); mood < 1 || mood > 5 {
			return errors.Newf(errors.ErrCodeInvalidRecord, "mood must be between 1 and 5, got %d", mood)
		}
	}

	return nil
}

// IsClosed reports whether the trade counts as closed for analytics purposes:
// explicitly closed, or still marked open but already carrying an exit price.
// Cancelled trades are never closed.
func (t *TradeRecord) IsClosed() bool {
	switch t.Status {
	case TradeStatusClosed:
		return true
	case TradeStatusOpen:
		return t.ExitPrice.IsSome()
	default:
		return false
	}
}

// WellFormed reports whether the record may participate in aggregate
// computations. Malformed records are excluded and counted, never fatal.
func (t *TradeRecord) WellFormed() bool {
	return t.EntryPrice > 0 && t.Quantity > 0
}

// HasDerived reports whether the derived fields have already been computed.
func (t *TradeRecord) HasDerived() bool {
	return t.PnL.IsSome()
}

// RealizedPnL returns the derived pnl, or 0 when it has not been computed.
func (t *TradeRecord) RealizedPnL() float64 {
	if t.PnL.IsSome() {
		return t.PnL.Unwrap()
	}

	return 0
}

// AnalyticsTime is the ordering key for sequential statistics: the exit time
// when known, otherwise the entry time.
func (t *TradeRecord) AnalyticsTime() time.Time {
	if t.ExitTime.IsSome() {
		return t.ExitTime.Unwrap()
	}

	return t.EntryTime
}
