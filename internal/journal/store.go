package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/logger"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/types"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/version"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/pkg/errors"
)

// InMemoryPath opens a journal that lives only as long as the process.
const InMemoryPath = ":memory:"

// metaVersionKey is the journal_meta row holding the engine version that
// created the database.
const metaVersionKey = "engine_version"

// tradeColumns is the column list shared by inserts and selects. Scan order
// in scanTrade must match.
var tradeColumns = []string{
	"id", "symbol", "direction", "entry_price", "exit_price",
	"quantity", "lot_type", "entry_time", "exit_time",
	"stop_loss", "take_profit", "commission", "fees", "status",
	"pnl", "pips", "return_percent",
	"strategy", "setup", "timeframe", "market_condition", "mood",
}

// Store persists trade records in a DuckDB database.
type Store struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewStore opens the journal database at path, creating the file if needed.
// Use InMemoryPath for a throwaway journal.
func NewStore(path string, log *logger.Logger) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeJournalOpenFailed, err, "failed to open journal at %s", path)
	}

	return &Store{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Initialize creates the journal tables and verifies that the database was
// written by a compatible engine version. New databases are stamped with the
// current version.
func (s *Store) Initialize() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			id TEXT PRIMARY KEY,
			symbol TEXT,
			direction TEXT,
			entry_price DOUBLE,
			exit_price DOUBLE,
			quantity DOUBLE,
			lot_type TEXT,
			entry_time TIMESTAMP,
			exit_time TIMESTAMP,
			stop_loss DOUBLE,
			take_profit DOUBLE,
			commission DOUBLE,
			fees DOUBLE,
			status TEXT,
			pnl DOUBLE,
			pips DOUBLE,
			return_percent DOUBLE,
			strategy TEXT,
			setup TEXT,
			timeframe TEXT,
			market_condition TEXT,
			mood INTEGER
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create trades table: %w", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS journal_meta (
			key TEXT PRIMARY KEY,
			value TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create journal_meta table: %w", err)
	}

	return s.checkVersionStamp()
}

// checkVersionStamp stamps new databases with the engine version and rejects
// databases written by an incompatible one.
func (s *Store) checkVersionStamp() error {
	var stamped string

	err := s.sq.
		Select("value").
		From("journal_meta").
		Where(squirrel.Eq{"key": metaVersionKey}).
		RunWith(s.db).
		QueryRow().
		Scan(&stamped)

	if err == sql.ErrNoRows {
		insert := s.sq.
			Insert("journal_meta").
			Columns("key", "value").
			Values(metaVersionKey, version.GetVersion()).
			RunWith(s.db)

		if _, err := insert.Exec(); err != nil {
			return fmt.Errorf("failed to stamp journal version: %w", err)
		}

		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to read journal version: %w", err)
	}

	if err := version.CheckJournalCompatibility(version.GetVersion(), stamped); err != nil {
		return errors.Wrapf(errors.ErrCodeVersionMismatch, err, "journal requires a compatible engine")
	}

	return nil
}

// AddTrade normalizes, validates and annotates the trade, then persists it.
// A missing ID is assigned. The stored record is returned.
func (s *Store) AddTrade(trade types.TradeRecord) (types.TradeRecord, error) {
	trade.Normalize()

	if err := trade.Validate(); err != nil {
		return types.TradeRecord{}, err
	}

	if err := AnnotateDerived(&trade); err != nil {
		return types.TradeRecord{}, err
	}

	if trade.ID == "" {
		trade.ID = uuid.New().String()
	}

	insert := s.sq.
		Insert("trades").
		Columns(tradeColumns...).
		Values(
			trade.ID, trade.Symbol, trade.Direction, trade.EntryPrice, nullableFloat(trade.ExitPrice),
			trade.Quantity, trade.LotType, trade.EntryTime, nullableTime(trade.ExitTime),
			nullableFloat(trade.StopLoss), nullableFloat(trade.TakeProfit), trade.Commission, trade.Fees, trade.Status,
			nullableFloat(trade.PnL), nullableFloat(trade.Pips), nullableFloat(trade.ReturnPercent),
			trade.Strategy, trade.Setup, trade.Timeframe, trade.MarketCondition, nullableInt(trade.Mood),
		).
		RunWith(s.db)

	if _, err := insert.Exec(); err != nil {
		return types.TradeRecord{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to insert trade", err)
	}

	s.logger.Debug("journaled trade",
		zap.String("id", trade.ID),
		zap.String("symbol", trade.Symbol),
		zap.String("status", string(trade.Status)),
	)

	return trade, nil
}

// CloseTrade records the exit of an open trade, computes its derived fields
// and marks it closed.
func (s *Store) CloseTrade(id string, exitPrice float64, exitAt time.Time) (types.TradeRecord, error) {
	if exitPrice <= 0 {
		return types.TradeRecord{}, errors.New(errors.ErrCodeInvalidParameter, "exit price must be greater than zero")
	}

	found, err := s.GetTrade(id)
	if err != nil {
		return types.TradeRecord{}, err
	}

	if found.IsNone() {
		return types.TradeRecord{}, errors.Newf(errors.ErrCodeTradeNotFound, "trade %s not found", id)
	}

	trade := found.Unwrap()
	if trade.Status == types.TradeStatusCancelled {
		return types.TradeRecord{}, errors.Newf(errors.ErrCodeInvalidParameter, "trade %s is cancelled", id)
	}

	trade.ExitPrice = optional.Some(exitPrice)
	trade.ExitTime = optional.Some(exitAt)
	trade.Status = types.TradeStatusClosed

	// Derived fields describe the previous exit, if any. Recompute.
	trade.PnL = optional.None[float64]()
	trade.Pips = optional.None[float64]()
	trade.ReturnPercent = optional.None[float64]()

	if err := AnnotateDerived(&trade); err != nil {
		return types.TradeRecord{}, err
	}

	update := s.sq.
		Update("trades").
		Set("exit_price", exitPrice).
		Set("exit_time", exitAt).
		Set("status", trade.Status).
		Set("pnl", nullableFloat(trade.PnL)).
		Set("pips", nullableFloat(trade.Pips)).
		Set("return_percent", nullableFloat(trade.ReturnPercent)).
		Where(squirrel.Eq{"id": id}).
		RunWith(s.db)

	if _, err := update.Exec(); err != nil {
		return types.TradeRecord{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to close trade", err)
	}

	s.logger.Debug("closed trade",
		zap.String("id", trade.ID),
		zap.Float64("exit_price", exitPrice),
	)

	return trade, nil
}

// GetTrade fetches one trade by ID, or None when it does not exist.
func (s *Store) GetTrade(id string) (optional.Option[types.TradeRecord], error) {
	row := s.sq.
		Select(tradeColumns...).
		From("trades").
		Where(squirrel.Eq{"id": id}).
		RunWith(s.db).
		QueryRow()

	trade, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return optional.None[types.TradeRecord](), nil
	}

	if err != nil {
		return optional.None[types.TradeRecord](), errors.Wrap(errors.ErrCodeQueryFailed, "failed to query trade", err)
	}

	return optional.Some(trade), nil
}

// ListTrades returns every journaled trade in entry-time order, oldest first.
func (s *Store) ListTrades(ctx context.Context) ([]types.TradeRecord, error) {
	query := s.sq.
		Select(tradeColumns...).
		From("trades").
		OrderBy("entry_time ASC").
		RunWith(s.db)

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query trades", err)
	}
	defer rows.Close()

	var trades []types.TradeRecord

	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan trade", err)
		}

		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating trades", err)
	}

	return trades, nil
}

// CountTrades returns the number of journaled trades.
func (s *Store) CountTrades(ctx context.Context) (int, error) {
	var count int

	err := s.sq.
		Select("COUNT(*)").
		From("trades").
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&count)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count trades", err)
	}

	return count, nil
}

// Cleanup drops and recreates the journal tables.
func (s *Store) Cleanup() error {
	_, err := s.db.Exec(`
		DROP TABLE IF EXISTS trades;
		DROP TABLE IF EXISTS journal_meta;
	`)
	if err != nil {
		return fmt.Errorf("failed to cleanup tables: %w", err)
	}

	return s.Initialize()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrade reads one row in tradeColumns order.
func scanTrade(row scanner) (types.TradeRecord, error) {
	var (
		trade         types.TradeRecord
		exitPrice     sql.NullFloat64
		exitTime      sql.NullTime
		stopLoss      sql.NullFloat64
		takeProfit    sql.NullFloat64
		pnl           sql.NullFloat64
		pips          sql.NullFloat64
		returnPercent sql.NullFloat64
		mood          sql.NullInt32
	)

	err := row.Scan(
		&trade.ID, &trade.Symbol, &trade.Direction, &trade.EntryPrice, &exitPrice,
		&trade.Quantity, &trade.LotType, &trade.EntryTime, &exitTime,
		&stopLoss, &takeProfit, &trade.Commission, &trade.Fees, &trade.Status,
		&pnl, &pips, &returnPercent,
		&trade.Strategy, &trade.Setup, &trade.Timeframe, &trade.MarketCondition, &mood,
	)
	if err != nil {
		return types.TradeRecord{}, err
	}

	trade.ExitPrice = optionalFloat(exitPrice)
	trade.ExitTime = optionalTime(exitTime)
	trade.StopLoss = optionalFloat(stopLoss)
	trade.TakeProfit = optionalFloat(takeProfit)
	trade.PnL = optionalFloat(pnl)
	trade.Pips = optionalFloat(pips)
	trade.ReturnPercent = optionalFloat(returnPercent)
	trade.Mood = optionalInt(mood)

	return trade, nil
}

func nullableFloat(opt optional.Option[float64]) any {
	if opt.IsSome() {
		return opt.Unwrap()
	}

	return nil
}

func nullableTime(opt optional.Option[time.Time]) any {
	if opt.IsSome() {
		return opt.Unwrap()
	}

	return nil
}

func nullableInt(opt optional.Option[int]) any {
	if opt.IsSome() {
		return opt.Unwrap()
	}

	return nil
}

func optionalFloat(v sql.NullFloat64) optional.Option[float64] {
	if v.Valid {
		return optional.Some(v.Float64)
	}

	return optional.None[float64]()
}

func optionalTime(v sql.NullTime) optional.Option[time.Time] {
	if v.Valid {
		return optional.Some(v.Time)
	}

	return optional.None[time.Time]()
}

func optionalInt(v sql.NullInt32) optional.Option[int] {
	if v.Valid {
		return optional.Some(int(v.Int32))
	}

	return optional.None[int]()
}
