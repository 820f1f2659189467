package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/logger"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/types"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/pkg/errors"
)

func sampleReport() types.AnalyticsReport {
	return types.AnalyticsReport{
		ID:              "report-1",
		GeneratedAt:     time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
		EngineVersion:   "v0.3.0",
		StartingBalance: 10000,
		AccountSize:     10000,
		TotalRecords:    3,
		ExcludedRecords: 1,
		Summary: types.PerformanceSummary{
			TotalTrades:      2,
			WinningTrades:    2,
			WinRate:          100.0,
			TotalPnL:         75.0,
			AverageWin:       37.5,
			LargestWin:       50.0,
			CurrentStreak:    3,
			LongestWinStreak: 3,
			TotalReturn:      0.75,
			PortfolioValue:   10075.0,
		},
		Drawdown: types.DrawdownResult{
			MaxDrawdown:    50.0,
			MaxDrawdownPct: 0.5,
			FinalEquity:    10075.0,
			History: []types.DrawdownPoint{
				{Equity: 10050.0, PeakEquity: 10050.0},
				{Equity: 10075.0, PeakEquity: 10075.0},
			},
		},
		Dimensions: []types.DimensionBreakdown{
			{
				Dimension: types.DimensionStrategy,
				Buckets: []types.CategoryBucket{
					{DimensionValue: "momentum", Trades: 2, Wins: 2, TotalPnL: 75.0, WinRate: 100.0, AveragePnL: 37.5},
				},
			},
			{Dimension: types.DimensionWeekday},
		},
		RiskBands: types.RiskDistribution{
			SampledTrades: 2,
			Bands: []types.RiskBandStat{
				{Band: types.RiskBandLow, Label: "0-1%", Trades: 2, Percent: 100.0},
				{Band: types.RiskBandMedium, Label: "1-2%"},
				{Band: types.RiskBandHigh, Label: "2-3%"},
				{Band: types.RiskBandVeryHigh, Label: ">3%"},
			},
		},
	}
}

func newTestWriter(t *testing.T, buf *bytes.Buffer) *Writer {
	t.Helper()

	log, err := logger.NewLogger()
	require.NoError(t, err)

	return NewWriterTo(buf, log)
}

func TestRenderConsole(t *testing.T) {
	var buf bytes.Buffer
	w := newTestWriter(t, &buf)

	w.RenderConsole(sampleReport())

	out := buf.String()
	assert.Contains(t, out, "report-1")
	assert.Contains(t, out, "3 total, 1 excluded as malformed")
	assert.Contains(t, out, "=== PERFORMANCE ===")
	assert.Contains(t, out, "$75.00")
	assert.Contains(t, out, "+3")
	assert.Contains(t, out, "=== DRAWDOWN ===")
	assert.Contains(t, out, "$50.00 (0.50%)")
	assert.Contains(t, out, "=== BY strategy ===")
	assert.Contains(t, out, "momentum")
	assert.Contains(t, out, "=== RISK BANDS (2 trades with stops) ===")
	assert.Contains(t, out, "0-1%")
}

func TestRenderConsoleEmptyBuckets(t *testing.T) {
	var buf bytes.Buffer
	w := newTestWriter(t, &buf)

	w.RenderConsole(sampleReport())

	// The weekday breakdown carries no buckets
	assert.Contains(t, buf.String(), "=== BY weekday ===")
	assert.Contains(t, buf.String(), "no closed trades")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	w := newTestWriter(t, &buf)

	path := filepath.Join(t.TempDir(), "report.json")
	err := w.WriteJSON(sampleReport(), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var report types.AnalyticsReport
	require.NoError(t, json.Unmarshal(data, &report))

	assert.Equal(t, "report-1", report.ID)
	assert.Equal(t, 75.0, report.Summary.TotalPnL)
	assert.Len(t, report.Dimensions, 2)
}

func TestWriteJSONBadPath(t *testing.T) {
	var buf bytes.Buffer
	w := newTestWriter(t, &buf)

	err := w.WriteJSON(sampleReport(), filepath.Join(t.TempDir(), "missing", "report.json"))

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeReportWriteFailed))
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	w := newTestWriter(t, &buf)

	path := filepath.Join(t.TempDir(), "report.yaml")
	err := w.WriteYAML(sampleReport(), path)
	require.NoError(t, err)

	report, err := types.ReadAnalyticsReport(path)
	require.NoError(t, err)

	assert.Equal(t, "report-1", report.ID)
	assert.Equal(t, 10075.0, report.Drawdown.FinalEquity)
	assert.Equal(t, 2, report.RiskBands.SampledTrades)
}

func TestWriteYAMLBadPath(t *testing.T) {
	var buf bytes.Buffer
	w := newTestWriter(t, &buf)

	err := w.WriteYAML(sampleReport(), filepath.Join(t.TempDir(), "missing", "report.yaml"))

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeReportWriteFailed))
}

func TestFormatStreak(t *testing.T) {
	assert.Equal(t, "+3", formatStreak(3))
	assert.Equal(t, "-2", formatStreak(-2))
	assert.Equal(t, "0", formatStreak(0))
}
