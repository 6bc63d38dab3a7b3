package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"lmdicli/internal/config"
	"lmdicli/internal/dataprocessing"
	"lmdicli/internal/exporter"
	"lmdicli/internal/infrastructure"
	"lmdicli/internal/lmdi"
)

func main() {
	input := flag.String("input", "", "input panel file (csv or xlsx)")
	format := flag.String("format", "", "input format: csv | xlsx (inferred from extension when empty)")
	sheet := flag.String("sheet", "", "worksheet name for xlsx input (first matching sheet when empty)")
	modeFlag := flag.String("mode", "add", "decomposition mode: add | mul")
	start := flag.Int("start", 0, "first year of the analysis range")
	stop := flag.Int("stop", 0, "last year of the analysis range (exclusive transition start)")
	driversFlag := flag.String("drivers", "", "comma-separated driver column names")
	yearCol := flag.String("year-col", "year", "year column name")
	sectorCol := flag.String("sector-col", "sector", "sector column name")
	aggCol := flag.String("agg-col", "aggregate", "aggregate column name")
	bySector := flag.Bool("by-sector", false, "decompose each sector separately and emit sector totals")
	shift := flag.Int("shift", 0, "relabel result years by this offset")
	skipFailed := flag.Bool("skip-failed-years", false, "omit failed transitions instead of aborting")
	verify := flag.Bool("verify-identity", false, "check driver products against aggregates before decomposing")
	out := flag.String("out", "", "output csv file path (defaults to results/decomposition.csv)")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "missing required -input flag")
		flag.Usage()
		os.Exit(2)
	}
	if *driversFlag == "" {
		fmt.Fprintln(os.Stderr, "missing required -drivers flag")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
		cfg.Logging.Output = "both"
		cfg.Logging.FilePath = filepath.Join("logs", "decompose.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		logger.Error("Failed to resolve paths", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("Failed to create required directories", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *out == "" {
		*out = paths.GetResultPath("decomposition.csv")
	}

	drivers := splitDrivers(*driversFlag)
	mode, err := lmdi.ParseMode(*modeFlag)
	if err != nil {
		logger.Error("Invalid mode", slog.String("mode", *modeFlag), slog.String("error", err.Error()))
		os.Exit(2)
	}

	schema := dataprocessing.PanelSchema{
		YearColumn:      *yearCol,
		SectorColumn:    *sectorCol,
		AggregateColumn: *aggCol,
		Drivers:         drivers,
	}

	logger.Info("Starting decomposition",
		slog.String("input", *input),
		slog.String("mode", mode.String()),
		slog.Int("start", *start),
		slog.Int("stop", *stop),
		slog.String("output", *out))

	panel, err := loadPanel(*input, *format, *sheet, schema)
	if err != nil {
		logger.Error("Failed to load panel",
			slog.String("path", *input),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	years := panel.Years()
	if len(years) == 0 {
		logger.Error("Panel contains no observations", slog.String("path", *input))
		os.Exit(1)
	}
	if *start == 0 {
		*start = years[0]
	}
	if *stop == 0 {
		*stop = years[len(years)-1]
	}

	if *verify {
		if err := lmdi.VerifyIdentity(panel, drivers, cfg.Analysis.IdentityTolerance); err != nil {
			logger.Error("Identity check failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Identity check passed", slog.Float64("tolerance", cfg.Analysis.IdentityTolerance))
	}

	analyzer := lmdi.NewAnalyzer(mode, drivers, logger)
	analyzer.SetMaxConcurrency(cfg.Analysis.MaxConcurrency)
	analyzer.SetSkipFailedYears(*skipFailed || cfg.Analysis.SkipFailedYears)

	ctx := context.Background()
	opts := exporter.WriteOptions{Precision: 6}

	if *bySector {
		tables, err := analyzer.RunBySector(ctx, panel, *start, *stop)
		if err != nil {
			logger.Error("Decomposition failed", slog.String("error", err.Error()))
			os.Exit(1)
		}

		for sector, table := range tables {
			if *shift != 0 {
				table = table.ShiftYears(*shift)
			}
			path := sectorOutputPath(*out, sector)
			if err := exporter.WriteResultCSV(path, table, opts); err != nil {
				logger.Error("Failed to write sector results",
					slog.String("sector", sector),
					slog.String("path", path),
					slog.String("error", err.Error()))
				os.Exit(1)
			}
			logger.Info("Wrote sector results", slog.String("sector", sector), slog.String("path", path))
		}

		totalsPath := sectorOutputPath(*out, "totals")
		totals := lmdi.SectorTotals(tables)
		if err := exporter.WriteSectorTotalsCSV(totalsPath, totals, drivers, opts); err != nil {
			logger.Error("Failed to write sector totals",
				slog.String("path", totalsPath),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Wrote sector totals", slog.String("path", totalsPath))
		return
	}

	table, err := analyzer.Run(ctx, panel, *start, *stop)
	if err != nil {
		logger.Error("Decomposition failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *shift != 0 {
		table = table.ShiftYears(*shift)
	}

	if err := exporter.WriteResultCSV(*out, table, opts); err != nil {
		logger.Error("Failed to write results",
			slog.String("path", *out),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Decomposition complete",
		slog.Int("rows", table.Len()),
		slog.String("output", *out))
}

// loadPanel dispatches on the explicit format flag or the file extension.
func loadPanel(path, format, sheet string, schema dataprocessing.PanelSchema) (lmdi.Panel, error) {
	switch resolveFormat(path, format) {
	case "xlsx":
		return dataprocessing.LoadPanelWorkbook(path, sheet, schema)
	case "csv":
		return dataprocessing.LoadPanelCSV(path, schema)
	default:
		return lmdi.Panel{}, fmt.Errorf("cannot determine input format for %s, use -format", path)
	}
}

func resolveFormat(path, format string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return "xlsx"
	case ".csv":
		return "csv"
	}
	return ""
}

func splitDrivers(raw string) []string {
	parts := strings.Split(raw, ",")
	drivers := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			drivers = append(drivers, trimmed)
		}
	}
	return drivers
}

// sectorOutputPath derives per-sector file names from the base output
// path: results/decomp.csv becomes results/decomp_industry.csv.
func sectorOutputPath(base, sector string) string {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	safe := strings.ReplaceAll(strings.ToLower(sector), " ", "_")
	return fmt.Sprintf("%s_%s%s", stem, safe, ext)
}
