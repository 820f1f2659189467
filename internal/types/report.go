package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AnalyticsReport is the full output of one engine invocation over a trade
// snapshot. Reports are recomputed from scratch every run and never cached
// by the engine; consumers decide what to do with them.
type AnalyticsReport struct {
	// ID is the unique identifier for this report run.
	ID string `yaml:"id" json:"id"`
	// GeneratedAt is when this report was computed.
	GeneratedAt time.Time `yaml:"generated_at" json:"generated_at"`
	// EngineVersion is the version of the engine that produced the report.
	EngineVersion string `yaml:"engine_version" json:"engine_version"`
	// StartingBalance used for the equity walk and return figures.
	StartingBalance float64 `yaml:"starting_balance" json:"starting_balance"`
	// AccountSize used for the risk distribution.
	AccountSize float64 `yaml:"account_size" json:"account_size"`
	// TotalRecords is the snapshot size before any filtering.
	TotalRecords int `yaml:"total_records" json:"total_records"`
	// ExcludedRecords counts malformed records dropped from the snapshot.
	ExcludedRecords int `yaml:"excluded_records" json:"excluded_records"`
	// Summary of wins, losses, streaks and returns.
	Summary PerformanceSummary `yaml:"summary" json:"summary"`
	// Drawdown track over the closed trades.
	Drawdown DrawdownResult `yaml:"drawdown" json:"drawdown"`
	// Dimensions holds one breakdown per requested dimension, in request order.
	Dimensions []DimensionBreakdown `yaml:"dimensions" json:"dimensions"`
	// RiskBands is the stop-loss risk distribution.
	RiskBands RiskDistribution `yaml:"risk_bands" json:"risk_bands"`
}

// WriteAnalyticsReport writes a report to a YAML file.
func WriteAnalyticsReport(path string, report AnalyticsReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal analytics report to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write analytics report to file: %w", err)
	}

	return nil
}

// ReadAnalyticsReport reads a report from a YAML file.
func ReadAnalyticsReport(path string) (AnalyticsReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AnalyticsReport{}, fmt.Errorf("failed to read analytics report file: %w", err)
	}

	var report AnalyticsReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return AnalyticsReport{}, fmt.Errorf("failed to unmarshal analytics report: %w", err)
	}

	return report, nil
}
