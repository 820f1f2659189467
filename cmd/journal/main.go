package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/moznion/go-optional"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/forex"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/journal"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/logger"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/report"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/types"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/version"
)

// timeLayouts accepted by every timestamp flag, most specific first.
var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// journalPath resolves the journal database location: the --db flag value,
// then the JOURNAL_DB environment variable, then journal.duckdb in the
// working directory.
func journalPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if path := os.Getenv("JOURNAL_DB"); path != "" {
		return path
	}

	return "journal.duckdb"
}

// openStore opens and initializes the journal database for one command run.
func openStore(cmd *cli.Command) (*journal.Store, *logger.Logger, error) {
	journalLogger, err := logger.NewLogger()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	store, err := journal.NewStore(journalPath(cmd.String("db")), journalLogger)
	if err != nil {
		return nil, nil, err
	}

	if err := store.Initialize(); err != nil {
		store.Close()

		return nil, nil, err
	}

	return store, journalLogger, nil
}

func dbFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "db",
		Aliases: []string{"d"},
		Usage:   "Path to the journal database (falls back to JOURNAL_DB, then journal.duckdb)",
	}
}

func timestampFlag(name, usage string) *cli.TimestampFlag {
	return &cli.TimestampFlag{
		Name:  name,
		Usage: usage,
		Config: cli.TimestampConfig{
			Layouts: timeLayouts,
		},
	}
}

func addCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add a trade to the journal",
		Flags: []cli.Flag{
			dbFlag(),
			&cli.StringFlag{Name: "symbol", Aliases: []string{"s"}, Usage: "Instrument symbol, e.g. EURUSD", Required: true},
			&cli.StringFlag{Name: "direction", Usage: "LONG or SHORT", Value: "LONG"},
			&cli.FloatFlag{Name: "entry", Aliases: []string{"e"}, Usage: "Entry price", Required: true},
			&cli.FloatFlag{Name: "quantity", Aliases: []string{"q"}, Usage: "Lot count", Value: 1},
			&cli.StringFlag{Name: "lot", Usage: "Lot type: standard, mini, micro or nano (defaults to micro)"},
			timestampFlag("entry-time", "Entry time (defaults to now)"),
			&cli.FloatFlag{Name: "exit", Usage: "Exit price, marks the trade closed"},
			timestampFlag("exit-time", "Exit time"),
			&cli.FloatFlag{Name: "stop", Usage: "Stop loss price"},
			&cli.FloatFlag{Name: "take-profit", Usage: "Take profit price"},
			&cli.FloatFlag{Name: "commission", Usage: "Commission paid"},
			&cli.FloatFlag{Name: "fees", Usage: "Other fees paid"},
			&cli.StringFlag{Name: "strategy", Usage: "Strategy tag"},
			&cli.StringFlag{Name: "setup", Usage: "Setup tag"},
			&cli.StringFlag{Name: "timeframe", Usage: "Timeframe tag, e.g. H4"},
			&cli.StringFlag{Name: "market-condition", Usage: "Market condition tag, e.g. trending"},
			&cli.IntFlag{Name: "mood", Usage: "Mood at entry, 1 (worst) to 5 (best)"},
		},
		Action: addAction,
	}
}

func addAction(ctx context.Context, cmd *cli.Command) error {
	trade := types.TradeRecord{
		Symbol:          cmd.String("symbol"),
		Direction:       types.TradeDirection(strings.ToUpper(cmd.String("direction"))),
		EntryPrice:      cmd.Float("entry"),
		Quantity:        cmd.Float("quantity"),
		LotType:         types.LotType(strings.ToLower(cmd.String("lot"))),
		EntryTime:       time.Now().UTC(),
		Commission:      cmd.Float("commission"),
		Fees:            cmd.Float("fees"),
		Strategy:        cmd.String("strategy"),
		Setup:           cmd.String("setup"),
		Timeframe:       cmd.String("timeframe"),
		MarketCondition: cmd.String("market-condition"),
	}

	if cmd.IsSet("entry-time") {
		trade.EntryTime = cmd.Timestamp("entry-time")
	}

	if cmd.IsSet("exit") {
		trade.ExitPrice = optional.Some(cmd.Float("exit"))
		trade.Status = types.TradeStatusClosed
	}

	if cmd.IsSet("exit-time") {
		trade.ExitTime = optional.Some(cmd.Timestamp("exit-time"))
	}

	if cmd.IsSet("stop") {
		trade.StopLoss = optional.Some(cmd.Float("stop"))
	}

	if cmd.IsSet("take-profit") {
		trade.TakeProfit = optional.Some(cmd.Float("take-profit"))
	}

	if cmd.IsSet("mood") {
		trade.Mood = optional.Some(int(cmd.Int("mood")))
	}

	store, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	saved, err := store.AddTrade(trade)
	if err != nil {
		return err
	}

	fmt.Printf("Added trade %s: %s %s %.5f", saved.ID, saved.Direction, saved.Symbol, saved.EntryPrice)

	if saved.PnL.IsSome() {
		fmt.Printf(" (pnl $%.2f)", saved.PnL.Unwrap())
	}

	fmt.Println()

	return nil
}

func closeCommand() *cli.Command {
	return &cli.Command{
		Name:  "close",
		Usage: "Close an open trade",
		Flags: []cli.Flag{
			dbFlag(),
			&cli.StringFlag{Name: "id", Usage: "Trade ID", Required: true},
			&cli.FloatFlag{Name: "exit", Aliases: []string{"e"}, Usage: "Exit price", Required: true},
			timestampFlag("exit-time", "Exit time (defaults to now)"),
		},
		Action: closeAction,
	}
}

func closeAction(ctx context.Context, cmd *cli.Command) error {
	store, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	exitAt := time.Now().UTC()
	if cmd.IsSet("exit-time") {
		exitAt = cmd.Timestamp("exit-time")
	}

	trade, err := store.CloseTrade(cmd.String("id"), cmd.Float("exit"), exitAt)
	if err != nil {
		return err
	}

	fmt.Printf("Closed trade %s at %.5f", trade.ID, trade.ExitPrice.Unwrap())

	if trade.PnL.IsSome() {
		fmt.Printf(": pnl $%.2f", trade.PnL.Unwrap())
	}

	if trade.Pips.IsSome() {
		fmt.Printf(" (%.1f pips)", trade.Pips.Unwrap())
	}

	fmt.Println()

	return nil
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Bulk import trades from a CSV file",
		Flags: []cli.Flag{
			dbFlag(),
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "CSV file to import", Required: true},
			&cli.BoolFlag{Name: "quiet", Usage: "Suppress the progress bar"},
		},
		Action: importAction,
	}
}

func importAction(ctx context.Context, cmd *cli.Command) error {
	store, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := store.ImportCSV(ctx, cmd.String("file"), !cmd.Bool("quiet"))
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d trades, skipped %d malformed rows\n", result.Imported, result.Skipped)

	return nil
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Compute the analytics report over the journal",
		Flags: []cli.Flag{
			dbFlag(),
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Report config YAML file"},
			&cli.FloatFlag{Name: "balance", Aliases: []string{"b"}, Usage: "Starting balance when no config file is given", Value: 10000},
			&cli.StringFlag{Name: "format", Usage: "Output format: console, json or yaml", Value: "console"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file path (required for json and yaml)"},
		},
		Action: reportAction,
	}
}

func reportAction(ctx context.Context, cmd *cli.Command) error {
	var (
		config report.Config
		err    error
	)

	if path := cmd.String("config"); path != "" {
		config, err = report.LoadConfig(path)
	} else {
		config = report.DefaultConfig(cmd.Float("balance"))
		err = config.Validate()
	}

	if err != nil {
		return err
	}

	if err := config.RegisterInstruments(); err != nil {
		return err
	}

	store, reportLogger, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	service, err := report.NewService(store, config, reportLogger)
	if err != nil {
		return err
	}

	result, err := service.Generate(ctx)
	if err != nil {
		return err
	}

	writer := report.NewWriter(reportLogger)
	output := cmd.String("output")

	switch format := cmd.String("format"); format {
	case "console":
		writer.RenderConsole(result)

		return nil
	case "json":
		if output == "" {
			return fmt.Errorf("--output is required for json format")
		}

		return writer.WriteJSON(result, output)
	case "yaml":
		if output == "" {
			return fmt.Errorf("--output is required for yaml format")
		}

		return writer.WriteYAML(result, output)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func sizeCommand() *cli.Command {
	return &cli.Command{
		Name:  "size",
		Usage: "Recommend a position size for a planned trade",
		Flags: []cli.Flag{
			&cli.FloatFlag{Name: "balance", Aliases: []string{"b"}, Usage: "Account balance", Required: true},
			&cli.FloatFlag{Name: "risk", Aliases: []string{"r"}, Usage: "Risk percent of the balance, e.g. 1 for 1%", Required: true},
			&cli.StringFlag{Name: "symbol", Aliases: []string{"s"}, Usage: "Instrument symbol", Required: true},
			&cli.FloatFlag{Name: "entry", Aliases: []string{"e"}, Usage: "Planned entry price", Required: true},
			&cli.FloatFlag{Name: "stop", Usage: "Planned stop loss price", Required: true},
		},
		Action: sizeAction,
	}
}

func sizeAction(ctx context.Context, cmd *cli.Command) error {
	result, err := forex.RecommendPositionSize(forex.SizingInput{
		AccountBalance: cmd.Float("balance"),
		RiskPercent:    cmd.Float("risk"),
		EntryPrice:     cmd.Float("entry"),
		StopLoss:       cmd.Float("stop"),
		Symbol:         cmd.String("symbol"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Recommended position for %s:\n", strings.ToUpper(cmd.String("symbol")))
	fmt.Printf("- Lot size: %.2f %s lots (%.1f units)\n", result.LotSize, result.LotType, result.PositionUnits)
	fmt.Printf("- Risk amount: $%.2f over %.1f pips\n", result.RiskAmount, result.StopLossPips)

	return nil
}

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Generate the report config JSON schema and a sample config",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output directory", Value: "./config"},
		},
		Action: schemaAction,
	}
}

func schemaAction(ctx context.Context, cmd *cli.Command) error {
	config := report.DefaultConfig(10000)

	outDir := cmd.String("output")
	schemaName := "analytics-report-config.json"
	schemaPath := filepath.Join(outDir, schemaName)
	samplePath := filepath.Join(outDir, "analytics-report-config.yaml")

	if err := generateSchemaFile(config, schemaPath); err != nil {
		return err
	}

	if err := generateSampleConfig(config, samplePath, schemaName); err != nil {
		return err
	}

	log.Printf("Schema generated at %s", schemaPath)

	return nil
}

// generateSchemaFile writes the report config JSON schema to path.
func generateSchemaFile(config report.Config, path string) error {
	schemaJSON, err := config.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(schemaJSON), 0644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}

	return nil
}

// generateSampleConfig writes a sample config with a schema reference header,
// unless one already exists.
func generateSampleConfig(config report.Config, path, schemaName string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	yamlBytes, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal sample config: %w", err)
	}

	yamlBytes = append([]byte("# yaml-language-server: $schema="+schemaName+"\n"), yamlBytes...)

	if err := os.WriteFile(path, yamlBytes, 0644); err != nil {
		return fmt.Errorf("failed to write sample config: %w", err)
	}

	log.Printf("Sample config generated at %s", path)

	return nil
}

func main() {
	// Load .env if present
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:    "journal",
		Usage:   "Forex trade journal and performance analytics",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			addCommand(),
			closeCommand(),
			importCommand(),
			reportCommand(),
			sizeCommand(),
			schemaCommand(),
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, stopping...")
		cancel()
	}()

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
