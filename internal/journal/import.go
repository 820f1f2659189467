package journal

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/types"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/pkg/errors"
)

// ImportResult summarizes a bulk import run.
type ImportResult struct {
	Imported int `yaml:"imported" json:"imported"`
	Skipped  int `yaml:"skipped" json:"skipped"`
}

// requiredColumns must be present in the CSV header. Everything else is
// optional and defaults like a manually entered trade.
var requiredColumns = []string{"symbol", "direction", "entry_price", "quantity", "entry_time"}

// csvTimeFormats are accepted entry and exit time layouts, tried in order.
var csvTimeFormats = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// ImportCSV bulk-loads trades from a CSV file. Malformed rows are skipped
// and counted, never fatal; database failures abort the run. Column order is
// free, matching happens on the header row.
func (s *Store) ImportCSV(ctx context.Context, path string, showProgress bool) (ImportResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return ImportResult{}, errors.Wrapf(errors.ErrCodeImportFailed, err, "failed to open %s", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return ImportResult{}, errors.Wrap(errors.ErrCodeImportFailed, "failed to read csv", err)
	}

	if len(rows) < 2 {
		return ImportResult{}, errors.New(errors.ErrCodeImportFailed, "csv has no data rows")
	}

	header, err := headerIndex(rows[0])
	if err != nil {
		return ImportResult{}, err
	}

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.Default(int64(len(rows) - 1))
		bar.Describe(fmt.Sprintf("Importing %s", filepath.Base(path)))
	}

	var result ImportResult

	for i, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if bar != nil {
			bar.Add(1)
		}

		// Header row is line 1, so the first data row is line 2.
		line := i + 2

		trade, err := parseRow(header, row)
		if err != nil {
			result.Skipped++
			s.logger.Warn("skipping malformed csv row",
				zap.Int("line", line),
				zap.Error(err),
			)

			continue
		}

		if _, err := s.AddTrade(trade); err != nil {
			if errors.HasCode(err, errors.ErrCodeInvalidRecord) || errors.HasCode(err, errors.ErrCodeInvalidStopLoss) {
				result.Skipped++
				s.logger.Warn("skipping invalid csv row",
					zap.Int("line", line),
					zap.Error(err),
				)

				continue
			}

			return result, err
		}

		result.Imported++
	}

	s.logger.Info("csv import finished",
		zap.String("file", path),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}

// headerIndex maps normalized column names to their positions.
func headerIndex(row []string) (map[string]int, error) {
	index := make(map[string]int, len(row))
	for i, name := range row {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, errors.Newf(errors.ErrCodeImportFailed, "csv is missing required column %q", name)
		}
	}

	return index, nil
}

// parseRow converts one CSV row into an unvalidated trade record.
func parseRow(header map[string]int, row []string) (types.TradeRecord, error) {
	field := func(name string) string {
		i, ok := header[name]
		if !ok || i >= len(row) {
			return ""
		}

		return strings.TrimSpace(row[i])
	}

	entryPrice, err := parseFloatField(field("entry_price"), "entry_price")
	if err != nil {
		return types.TradeRecord{}, err
	}

	quantity, err := parseFloatField(field("quantity"), "quantity")
	if err != nil {
		return types.TradeRecord{}, err
	}

	entryTime, err := parseCSVTime(field("entry_time"))
	if err != nil {
		return types.TradeRecord{}, err
	}

	trade := types.TradeRecord{
		ID:              field("id"),
		Symbol:          field("symbol"),
		Direction:       types.TradeDirection(strings.ToUpper(field("direction"))),
		EntryPrice:      entryPrice,
		Quantity:        quantity,
		LotType:         types.LotType(strings.ToLower(field("lot_type"))),
		EntryTime:       entryTime,
		Status:          types.TradeStatus(strings.ToUpper(field("status"))),
		Strategy:        field("strategy"),
		Setup:           field("setup"),
		Timeframe:       field("timeframe"),
		MarketCondition: field("market_condition"),
	}

	if trade.ExitPrice, err = parseOptionalFloat(field("exit_price"), "exit_price"); err != nil {
		return types.TradeRecord{}, err
	}

	if trade.StopLoss, err = parseOptionalFloat(field("stop_loss"), "stop_loss"); err != nil {
		return types.TradeRecord{}, err
	}

	if trade.TakeProfit, err = parseOptionalFloat(field("take_profit"), "take_profit"); err != nil {
		return types.TradeRecord{}, err
	}

	if raw := field("exit_time"); raw != "" {
		exitTime, err := parseCSVTime(raw)
		if err != nil {
			return types.TradeRecord{}, err
		}

		trade.ExitTime = optional.Some(exitTime)
	}

	if raw := field("commission"); raw != "" {
		if trade.Commission, err = parseFloatField(raw, "commission"); err != nil {
			return types.TradeRecord{}, err
		}
	}

	if raw := field("fees"); raw != "" {
		if trade.Fees, err = parseFloatField(raw, "fees"); err != nil {
			return types.TradeRecord{}, err
		}
	}

	if raw := field("mood"); raw != "" {
		mood, err := strconv.Atoi(raw)
		if err != nil {
			return types.TradeRecord{}, errors.Wrapf(errors.ErrCodeInvalidRecord, err, "invalid mood %q", raw)
		}

		trade.Mood = optional.Some(mood)
	}

	return trade, nil
}

func parseFloatField(raw, name string) (float64, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeInvalidRecord, err, "invalid %s %q", name, raw)
	}

	return value, nil
}

func parseOptionalFloat(raw, name string) (optional.Option[float64], error) {
	if raw == "" {
		return optional.None[float64](), nil
	}

	value, err := parseFloatField(raw, name)
	if err != nil {
		return optional.None[float64](), err
	}

	return optional.Some(value), nil
}

func parseCSVTime(raw string) (time.Time, error) {
	for _, format := range csvTimeFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errors.Newf(errors.ErrCodeInvalidRecord, "unrecognized time %q", raw)
}
