// Package forex converts trade prices into pip and lot terms using a static,
// extensible instrument metadata table.
package forex

import (
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/types"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/pkg/errors"
)

// StandardLotUnits is the position size of one standard lot in base currency units.
const StandardLotUnits = 100000.0

// Instrument holds the pip metadata for one currency pair.
type Instrument struct {
	// Symbol is the uppercase pair name, e.g. "EURUSD".
	Symbol string `yaml:"symbol" json:"symbol" validate:"required,uppercase"`
	// PipValuePerStandardLot is the USD value of one pip on a standard lot.
	// Approximate for pairs not quoted in USD.
	PipValuePerStandardLot float64 `yaml:"pip_value_per_standard_lot" json:"pip_value_per_standard_lot" validate:"required,gt=0"`
	// PipDecimalPlace is the price decimal a pip lives at: 4 for most pairs,
	// 2 for JPY quotes.
	PipDecimalPlace int `yaml:"pip_decimal_place" json:"pip_decimal_place" validate:"required,oneof=2 4"`
}

// Validate validates the Instrument struct.
func (i *Instrument) Validate() error {
	validate := validator.New()
	if err := validate.Struct(i); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInstrument, "invalid instrument", err)
	}

	return nil
}

var unitsPerLot = map[types.LotType]float64{
	types.LotTypeStandard: 100000,
	types.LotTypeMini:     10000,
	types.LotTypeMicro:    1000,
	types.LotTypeNano:     100,
}

// UnitsPerLot returns the unit size of one lot of the given type.
func UnitsPerLot(lotType types.LotType) (float64, error) {
	units, ok := unitsPerLot[lotType]
	if !ok {
		return 0, errors.Newf(errors.ErrCodeInvalidLotType, "unknown lot type: %s", lotType)
	}

	return units, nil
}

var (
	instrumentsMu sync.RWMutex

	// Major pairs with USD pip values fixed at table-maintenance time.
	// Non-USD quotes are approximations; operators override or extend the
	// table through configuration instead of code changes.
	instruments = map[string]Instrument{
		"EURUSD": {Symbol: "EURUSD", PipValuePerStandardLot: 10.0, PipDecimalPlace: 4},
		"GBPUSD": {Symbol: "GBPUSD", PipValuePerStandardLot: 10.0, PipDecimalPlace: 4},
		"AUDUSD": {Symbol: "AUDUSD", PipValuePerStandardLot: 10.0, PipDecimalPlace: 4},
		"NZDUSD": {Symbol: "NZDUSD", PipValuePerStandardLot: 10.0, PipDecimalPlace: 4},
		"USDJPY": {Symbol: "USDJPY", PipValuePerStandardLot: 9.09, PipDecimalPlace: 2},
		"USDCHF": {Symbol: "USDCHF", PipValuePerStandardLot: 10.87, PipDecimalPlace: 4},
		"USDCAD": {Symbol: "USDCAD", PipValuePerStandardLot: 7.69, PipDecimalPlace: 4},
		"EURGBP": {Symbol: "EURGBP", PipValuePerStandardLot: 12.50, PipDecimalPlace: 4},
		"EURJPY": {Symbol: "EURJPY", PipValuePerStandardLot: 9.09, PipDecimalPlace: 2},
		"GBPJPY": {Symbol: "GBPJPY", PipValuePerStandardLot: 9.09, PipDecimalPlace: 2},
	}
)

// Lookup returns the metadata for a symbol. Symbols are matched uppercase.
// Unknown symbols return ErrCodeUnsupportedSymbol; callers must treat that as
// no-forex-metrics-available rather than substituting their own pip math.
func Lookup(symbol string) (Instrument, error) {
	key := strings.ToUpper(strings.TrimSpace(symbol))

	instrumentsMu.RLock()
	defer instrumentsMu.RUnlock()

	inst, ok := instruments[key]
	if !ok {
		return Instrument{}, errors.Newf(errors.ErrCodeUnsupportedSymbol, "no instrument metadata for symbol: %s", symbol)
	}

	return inst, nil
}

// RegisterInstrument adds an instrument to the table, replacing any existing
// entry for the same symbol. Registration happens at startup, before the
// engine runs.
func RegisterInstrument(inst Instrument) error {
	inst.Symbol = strings.ToUpper(strings.TrimSpace(inst.Symbol))
	if err := inst.Validate(); err != nil {
		return err
	}

	instrumentsMu.Lock()
	defer instrumentsMu.Unlock()

	instruments[inst.Symbol] = inst

	return nil
}

// Symbols returns every known symbol, sorted.
func Symbols() []string {
	instrumentsMu.RLock()
	defer instrumentsMu.RUnlock()

	symbols := make([]string, 0, len(instruments))
	for symbol := range instruments {
		symbols = append(symbols, symbol)
	}

	sort.Strings(symbols)

	return symbols
}
