// Command survey-report loads a questionnaire JSON file, runs the analysis
// suite over it and writes the results as CSV, JSON and/or Excel reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"surveycli/internal/config"
	"surveycli/internal/exporter"
	"surveycli/internal/infrastructure"
	"surveycli/internal/survey"
	"surveycli/internal/validation"
)

func main() {
	inputFile := flag.String("input", "", "questionnaire JSON file to analyze (required)")
	outputDir := flag.String("out", "", "output directory for reports (defaults to configured reports dir)")
	format := flag.String("format", "all", "report format: csv, json, xlsx or all")
	maxNaNs := flag.Int("max-nans", -1, "missing answers allowed before a subject's score is withheld (defaults to configured value)")
	flag.Parse()

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "usage: survey-report -input data.json [-out dir] [-format csv|json|xlsx|all] [-max-nans n]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	if *outputDir != "" {
		cfg.Paths.ReportsDir = *outputDir
	}
	if *maxNaNs < 0 {
		*maxNaNs = cfg.Analysis.MaxNaNsPerSubject
	}

	ctx := infrastructure.ContextWithTraceID(context.Background())
	runID := infrastructure.GetTraceID(ctx)
	logger = logger.With(slog.String("trace_id", runID))

	if err := run(ctx, cfg, logger, *inputFile, *format, *maxNaNs, runID); err != nil {
		logger.ErrorContext(ctx, "Analysis run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger,
	inputFile, format string, maxNaNs int, runID string) error {

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputFile(inputFile); err != nil {
		return err
	}
	if err := validator.ValidateOutputDirectory(cfg.Paths.ReportsDir); err != nil {
		return err
	}

	analyzer, err := survey.New(inputFile, logger)
	if err != nil {
		return err
	}
	if err := analyzer.ReadData(ctx); err != nil {
		return err
	}

	report := exporter.Report{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		SourceFile:  analyzer.DataPath(),
		TotalRows:   len(analyzer.Data()),
	}

	// The loaded table is immutable after ReadData and every operation
	// works on its own copy, so the independent analyses can run in
	// parallel.
	var g errgroup.Group
	g.Go(func() error {
		hist, err := analyzer.AgeDistribution()
		report.Histogram = hist
		return err
	})
	g.Go(func() error {
		valid, err := analyzer.RemoveRowsWithoutMail()
		report.ValidEmails = valid
		return err
	})
	g.Go(func() error {
		imputed, indices, err := analyzer.FillNAWithMean()
		report.Imputed, report.ImputedIdx = imputed, indices
		return err
	})
	g.Go(func() error {
		scored, err := analyzer.ScoreSubjects(maxNaNs)
		report.Scored = scored
		return err
	})
	g.Go(func() error {
		groups, err := analyzer.CorrelateGenderAge()
		report.GroupMeans = groups
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Analysis complete",
		slog.Int("total_rows", report.TotalRows),
		slog.Int("valid_email_rows", len(report.ValidEmails)),
		slog.Int("imputed_rows", len(report.ImputedIdx)),
		slog.Int("correlation_groups", len(report.GroupMeans)))

	return writeReports(cfg, format, report)
}

func writeReports(cfg *config.Config, format string, report exporter.Report) error {
	switch format {
	case "csv", "json", "xlsx", "all":
	default:
		return fmt.Errorf("unknown report format %q", format)
	}

	csvWriter := exporter.NewCSVWriter(cfg.Paths)

	if format == "csv" || format == "all" {
		if err := csvWriter.WriteHistogramCSV(exporter.HistogramFileName, report.Histogram); err != nil {
			return err
		}
		if err := csvWriter.WriteScoresCSV(exporter.ScoresFileName, report.Scored); err != nil {
			return err
		}
		if err := csvWriter.WriteGroupMeansCSV(exporter.GroupMeansFileName, report.GroupMeans); err != nil {
			return err
		}
	}

	if format == "json" || format == "all" {
		if err := csvWriter.WriteReportJSON(exporter.JSONReportFileName, report); err != nil {
			return err
		}
	}

	if format == "xlsx" || format == "all" {
		excelWriter := exporter.NewExcelWriter(cfg.Paths)
		if err := excelWriter.WriteWorkbook(exporter.ExcelFileName, report); err != nil {
			return err
		}
	}

	return nil
}
