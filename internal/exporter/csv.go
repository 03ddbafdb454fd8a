package exporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"surveycli/internal/config"
	apperrors "surveycli/internal/errors"
	"surveycli/internal/survey"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths config.PathsConfig
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths config.PathsConfig) *CSVWriter {
	return &CSVWriter{paths: paths}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	slog.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return apperrors.NewStorageError("failed to create report directory", err)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return apperrors.NewStorageError("failed to open report file", err).
			WithContext("path", fullPath)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return apperrors.NewStorageError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return apperrors.NewStorageError("failed to write headers", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("failed to write record %d", i), err)
		}
	}

	return writer.Error()
}

// WriteHistogramCSV writes the age distribution as one row per bin.
func (w *CSVWriter) WriteHistogramCSV(fileName string, hist survey.AgeHistogram) error {
	records := make([][]string, 0, len(hist.Counts))
	for i, count := range hist.Counts {
		records = append(records, []string{
			strconv.FormatFloat(hist.Edges[i], 'f', -1, 64),
			strconv.FormatFloat(hist.Edges[i+1], 'f', -1, 64),
			strconv.Itoa(count),
		})
	}
	return w.WriteCSV(fileName, WriteOptions{
		Headers:   []string{"BinStart", "BinEnd", "Count"},
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteScoresCSV writes the scored subjects table.
func (w *CSVWriter) WriteScoresCSV(fileName string, scored survey.ScoredTable) error {
	records := make([][]string, 0, len(scored.Records))
	for i, rec := range scored.Records {
		records = append(records, scoredRow(i, rec, scored.Scores[i]))
	}
	return w.WriteCSV(fileName, WriteOptions{
		Headers:   []string{"Index", "Age", "Email", "Gender", "Q1", "Q2", "Q3", "Q4", "Q5", "Score"},
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteGroupMeansCSV writes the gender/age correlation groups.
func (w *CSVWriter) WriteGroupMeansCSV(fileName string, groups []survey.GroupMeans) error {
	records := make([][]string, 0, len(groups))
	for _, g := range groups {
		records = append(records, groupMeansRow(g))
	}
	return w.WriteCSV(fileName, WriteOptions{
		Headers:   []string{"Gender", "Above40", "Q1", "Q2", "Q3", "Q4", "Q5", "Size"},
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteReportJSON writes the full report as a single JSON document, the
// machine-readable companion to the CSV files.
func (w *CSVWriter) WriteReportJSON(fileName string, report Report) error {
	fullPath := w.resolvePath(fileName)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return apperrors.NewStorageError("failed to create report directory", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return apperrors.NewStorageError("failed to encode JSON report", err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return apperrors.NewStorageError("failed to write JSON report", err).
			WithContext("path", fullPath)
	}

	slog.Info("Wrote JSON report", slog.String("path", fullPath))
	return nil
}

// resolvePath anchors relative report names under the reports directory.
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}
	return filepath.Join(w.paths.ReportsDir, filePath)
}
