// Package report assembles analytics reports from journal snapshots and
// renders them to files or the console.
package report

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/analytics"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/logger"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/types"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/version"
)

// TradeSource provides the journal snapshot that feeds a report.
type TradeSource interface {
	ListTrades(ctx context.Context) ([]types.TradeRecord, error)
}

// Service turns a journal snapshot into an analytics report.
type Service struct {
	source TradeSource
	config Config
	logger *logger.Logger
}

// NewService creates a report service over the given trade source.
func NewService(source TradeSource, config Config, log *logger.Logger) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Service{
		source: source,
		config: config,
		logger: log,
	}, nil
}

// Generate computes the full analytics report over the current snapshot.
// Malformed records are excluded and counted, never fatal.
func (s *Service) Generate(ctx context.Context) (types.AnalyticsReport, error) {
	trades, err := s.source.ListTrades(ctx)
	if err != nil {
		return types.AnalyticsReport{}, err
	}

	kept, excluded := analytics.ExcludeMalformed(trades)
	if excluded > 0 {
		s.logger.Warn("excluding malformed trades from report",
			zap.Int("excluded", excluded),
			zap.Int("total", len(trades)),
		)
	}

	report := types.AnalyticsReport{
		ID:              uuid.New().String(),
		GeneratedAt:     time.Now().UTC(),
		EngineVersion:   version.GetVersion(),
		StartingBalance: s.config.StartingBalance,
		AccountSize:     s.config.AccountSize,
		TotalRecords:    len(trades),
		ExcludedRecords: excluded,
	}

	// The analyzers are independent reads over the same snapshot; run them
	// concurrently.
	var wg sync.WaitGroup

	wg.Add(3)

	go func() {
		defer wg.Done()

		report.Summary = analytics.Summarize(kept, s.config.StartingBalance)
	}()

	go func() {
		defer wg.Done()

		report.Drawdown = analytics.TrackDrawdown(kept, s.config.StartingBalance)
	}()

	go func() {
		defer wg.Done()

		report.RiskBands = analytics.DistributeRisk(kept, s.config.AccountSize)
	}()

	breakdowns := make([]types.DimensionBreakdown, len(s.config.Dimensions))
	breakdownErrs := make([]error, len(s.config.Dimensions))

	for i, dimension := range s.config.Dimensions {
		wg.Add(1)

		go func(i int, dimension types.Dimension) {
			defer wg.Done()

			breakdowns[i], breakdownErrs[i] = analytics.GroupByDimension(kept, dimension)
		}(i, dimension)
	}

	wg.Wait()

	for _, err := range breakdownErrs {
		if err != nil {
			return types.AnalyticsReport{}, err
		}
	}

	report.Dimensions = breakdowns

	s.logger.Info("generated analytics report",
		zap.String("id", report.ID),
		zap.Int("trades", len(kept)),
		zap.Int("excluded", excluded),
	)

	return report, nil
}
