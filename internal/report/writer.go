package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"

	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/logger"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/types"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/pkg/errors"
)

// Writer renders analytics reports to files and the console.
type Writer struct {
	out    io.Writer
	logger *logger.Logger
}

// NewWriter creates a writer that prints to stdout.
func NewWriter(log *logger.Logger) *Writer {
	return &Writer{out: os.Stdout, logger: log}
}

// NewWriterTo creates a writer that prints to w. Used by tests.
func NewWriterTo(w io.Writer, log *logger.Logger) *Writer {
	return &Writer{out: w, logger: log}
}

// WriteJSON saves the report as indented JSON.
func (w *Writer) WriteJSON(report types.AnalyticsReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to marshal report", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to write report to %s", path)
	}

	w.logger.Info("wrote analytics report",
		zap.String("path", path),
		zap.String("format", "json"),
	)

	return nil
}

// WriteYAML saves the report as YAML.
func (w *Writer) WriteYAML(report types.AnalyticsReport, path string) error {
	if err := types.WriteAnalyticsReport(path, report); err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to write report to %s", path)
	}

	w.logger.Info("wrote analytics report",
		zap.String("path", path),
		zap.String("format", "yaml"),
	)

	return nil
}

// RenderConsole prints the report as human-readable tables.
func (w *Writer) RenderConsole(report types.AnalyticsReport) {
	fmt.Fprintf(w.out, "\nAnalytics report %s (engine %s, generated %s)\n",
		report.ID, report.EngineVersion, report.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w.out, "Records: %d total, %d excluded as malformed\n\n",
		report.TotalRecords, report.ExcludedRecords)

	w.renderSummary(report.Summary)
	w.renderDrawdown(report.Drawdown)

	for _, breakdown := range report.Dimensions {
		w.renderBreakdown(breakdown)
	}

	w.renderRiskBands(report.RiskBands)
}

func (w *Writer) renderSummary(summary types.PerformanceSummary) {
	fmt.Fprintln(w.out, "=== PERFORMANCE ===")

	table := tablewriter.NewWriter(w.out)
	table.Header("Metric", "Value")

	table.Append("Closed trades", strconv.Itoa(summary.TotalTrades))
	table.Append("Winners / losers", fmt.Sprintf("%d / %d", summary.WinningTrades, summary.LosingTrades))
	table.Append("Win rate", fmt.Sprintf("%.2f%%", summary.WinRate))
	table.Append("Total PnL", fmt.Sprintf("$%.2f", summary.TotalPnL))
	table.Append("Average win", fmt.Sprintf("$%.2f", summary.AverageWin))
	table.Append("Average loss", fmt.Sprintf("$%.2f", summary.AverageLoss))
	table.Append("Profit factor", fmt.Sprintf("%.2f", summary.ProfitFactor))
	table.Append("Largest win", fmt.Sprintf("$%.2f", summary.LargestWin))
	table.Append("Largest loss", fmt.Sprintf("$%.2f", summary.LargestLoss))
	table.Append("Current streak", formatStreak(summary.CurrentStreak))
	table.Append("Longest win streak", strconv.Itoa(summary.LongestWinStreak))
	table.Append("Longest loss streak", strconv.Itoa(summary.LongestLossStreak))
	table.Append("Total return", fmt.Sprintf("%.2f%%", summary.TotalReturn))
	table.Append("Portfolio value", fmt.Sprintf("$%.2f", summary.PortfolioValue))

	table.Render()
}

func (w *Writer) renderDrawdown(drawdown types.DrawdownResult) {
	fmt.Fprintf(w.out, "\n=== DRAWDOWN ===\n")
	fmt.Fprintf(w.out, "  Max drawdown:  $%.2f (%.2f%%)\n", drawdown.MaxDrawdown, drawdown.MaxDrawdownPct)
	fmt.Fprintf(w.out, "  Final equity:  $%.2f over %d closed trades\n\n", drawdown.FinalEquity, len(drawdown.History))
}

func (w *Writer) renderBreakdown(breakdown types.DimensionBreakdown) {
	fmt.Fprintf(w.out, "=== BY %s ===\n", breakdown.Dimension)

	if len(breakdown.Buckets) == 0 {
		fmt.Fprintf(w.out, "  no closed trades\n\n")

		return
	}

	table := tablewriter.NewWriter(w.out)
	table.Header("Value", "Trades", "Wins", "Losses", "Total PnL", "Win rate", "Avg PnL")

	for _, bucket := range breakdown.Buckets {
		table.Append(
			bucket.DimensionValue,
			strconv.Itoa(bucket.Trades),
			strconv.Itoa(bucket.Wins),
			strconv.Itoa(bucket.Losses),
			fmt.Sprintf("$%.2f", bucket.TotalPnL),
			fmt.Sprintf("%.2f%%", bucket.WinRate),
			fmt.Sprintf("$%.2f", bucket.AveragePnL),
		)
	}

	table.Render()
	fmt.Fprintln(w.out)
}

func (w *Writer) renderRiskBands(distribution types.RiskDistribution) {
	fmt.Fprintf(w.out, "=== RISK BANDS (%d trades with stops) ===\n", distribution.SampledTrades)

	table := tablewriter.NewWriter(w.out)
	table.Header("Band", "Range", "Trades", "Share")

	for _, band := range distribution.Bands {
		table.Append(
			string(band.Band),
			band.Label,
			strconv.Itoa(band.Trades),
			fmt.Sprintf("%.2f%%", band.Percent),
		)
	}

	table.Render()
	fmt.Fprintln(w.out)
}

// formatStreak renders the signed streak counter, "+3" for three wins in a
// row, "-2" for two losses.
func formatStreak(streak int) string {
	if streak > 0 {
		return fmt.Sprintf("+%d", streak)
	}

	return strconv.Itoa(streak)
}
