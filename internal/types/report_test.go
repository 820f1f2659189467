package types

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ReportTestSuite struct {
	suite.Suite
	tempDir string
}

func TestReportSuite(t *testing.T) {
	suite.Run(t, new(ReportTestSuite))
}

func (suite *ReportTestSuite) SetupTest() {
	tempDir, err := os.MkdirTemp("", "report_test")
	suite.NoError(err)
	suite.tempDir = tempDir
}

func (suite *ReportTestSuite) TearDownTest() {
	os.RemoveAll(suite.tempDir)
}

func (suite *ReportTestSuite) TestWriteAndReadAnalyticsReport() {
	report := AnalyticsReport{
		ID:              "run_1",
		GeneratedAt:     time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		EngineVersion:   "1.2.0",
		StartingBalance: 10000,
		AccountSize:     10000,
		TotalRecords:    12,
		ExcludedRecords: 2,
		Summary: PerformanceSummary{
			TotalTrades:    10,
			WinningTrades:  6,
			LosingTrades:   4,
			WinRate:        60,
			TotalPnL:       420.5,
			ProfitFactor:   1.8,
			CurrentStreak:  2,
			TotalReturn:    4.21,
			PortfolioValue: 10420.5,
		},
		Drawdown: DrawdownResult{
			MaxDrawdown:    150.25,
			MaxDrawdownPct: 1.44,
			FinalEquity:    10420.5,
			History: []DrawdownPoint{
				{
					Timestamp:   time.Date(2024, 5, 2, 16, 0, 0, 0, time.UTC),
					Equity:      10100,
					PeakEquity:  10100,
					DrawdownAbs: 0,
					DrawdownPct: 0,
				},
			},
		},
		Dimensions: []DimensionBreakdown{
			{
				Dimension: DimensionWeekday,
				Buckets: []CategoryBucket{
					{DimensionValue: "Tuesday", Trades: 4, Wins: 3, Losses: 1, TotalPnL: 300, WinRate: 75, AveragePnL: 75},
				},
			},
		},
		RiskBands: RiskDistribution{
			SampledTrades: 8,
			Bands: []RiskBandStat{
				{Band: RiskBandLow, Label: "0-1%", Trades: 5, Percent: 62.5},
				{Band: RiskBandMedium, Label: "1-2%", Trades: 3, Percent: 37.5},
				{Band: RiskBandHigh, Label: "2-3%", Trades: 0, Percent: 0},
				{Band: RiskBandVeryHigh, Label: ">3%", Trades: 0, Percent: 0},
			},
		},
	}

	filePath := filepath.Join(suite.tempDir, "report.yaml")
	err := WriteAnalyticsReport(filePath, report)
	suite.NoError(err)

	read, err := ReadAnalyticsReport(filePath)
	suite.NoError(err)

	suite.Equal(report.ID, read.ID)
	suite.Equal(report.EngineVersion, read.EngineVersion)
	suite.Equal(report.StartingBalance, read.StartingBalance)
	suite.Equal(report.TotalRecords, read.TotalRecords)
	suite.Equal(report.ExcludedRecords, read.ExcludedRecords)
	suite.Equal(report.Summary, read.Summary)
	suite.Equal(report.Drawdown.MaxDrawdown, read.Drawdown.MaxDrawdown)
	suite.Len(read.Drawdown.History, 1)
	suite.True(report.Drawdown.History[0].Timestamp.Equal(read.Drawdown.History[0].Timestamp))
	suite.Equal(report.Dimensions, read.Dimensions)
	suite.Equal(report.RiskBands, read.RiskBands)
}

func (suite *ReportTestSuite) TestWriteAnalyticsReportInvalidPath() {
	report := AnalyticsReport{ID: "run_1"}

	filePath := filepath.Join(suite.tempDir, "nonexistent", "dir", "report.yaml")
	err := WriteAnalyticsReport(filePath, report)
	suite.Error(err)
}

func (suite *ReportTestSuite) TestReadAnalyticsReportMissingFile() {
	_, err := ReadAnalyticsReport(filepath.Join(suite.tempDir, "missing.yaml"))
	suite.Error(err)
}

func (suite *ReportTestSuite) TestReadAnalyticsReportMalformedYAML() {
	filePath := filepath.Join(suite.tempDir, "broken.yaml")
	suite.NoError(os.WriteFile(filePath, []byte("summary: [not a mapping"), 0644))

	_, err := ReadAnalyticsReport(filePath)
	suite.Error(err)
}

func (suite *ReportTestSuite) TestAllDimensionsOrder() {
	dims := AllDimensions()
	suite.Len(dims, 7)
	suite.Equal(DimensionTimeOfDay, dims[0])
	suite.Equal(DimensionMarketCondition, dims[6])
}
