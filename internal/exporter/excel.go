package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"surveycli/internal/config"
	apperrors "surveycli/internal/errors"
	"surveycli/internal/survey"
)

// Sheet names in the Excel report workbook.
const (
	sheetSummary     = "Summary"
	sheetHistogram   = "AgeDistribution"
	sheetValidEmails = "ValidEmails"
	sheetImputation  = "Imputation"
	sheetScores      = "Scores"
	sheetGroupMeans  = "GenderAgeMeans"
)

// ExcelWriter renders a full analysis report as a single workbook with one
// sheet per analysis, for analysts who want the results in a spreadsheet.
type ExcelWriter struct {
	paths config.PathsConfig
}

// NewExcelWriter creates a new Excel writer instance
func NewExcelWriter(paths config.PathsConfig) *ExcelWriter {
	return &ExcelWriter{paths: paths}
}

// WriteWorkbook writes the report to fileName under the reports directory.
func (w *ExcelWriter) WriteWorkbook(fileName string, report Report) error {
	fullPath := fileName
	if !filepath.IsAbs(fullPath) {
		fullPath = filepath.Join(w.paths.ReportsDir, fullPath)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return apperrors.NewStorageError("failed to create report directory", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeSummarySheet(f, report); err != nil {
		return err
	}
	if err := w.writeHistogramSheet(f, report.Histogram); err != nil {
		return err
	}
	if err := w.writeValidEmailsSheet(f, report.ValidEmails); err != nil {
		return err
	}
	if err := w.writeImputationSheet(f, report.Imputed, report.ImputedIdx); err != nil {
		return err
	}
	if err := w.writeScoresSheet(f, report.Scored); err != nil {
		return err
	}
	if err := w.writeGroupMeansSheet(f, report.GroupMeans); err != nil {
		return err
	}

	// Drop the default sheet so Summary opens first.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return apperrors.NewStorageError("failed to remove default sheet", err)
	}

	if err := f.SaveAs(fullPath); err != nil {
		return apperrors.NewStorageError("failed to save workbook", err).
			WithContext("path", fullPath)
	}

	slog.Info("Wrote Excel report", slog.String("path", fullPath))
	return nil
}

func (w *ExcelWriter) writeSummarySheet(f *excelize.File, report Report) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return apperrors.NewStorageError("failed to create summary sheet", err)
	}

	rows := [][]interface{}{
		{"Run ID", report.RunID},
		{"Generated At", report.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Source File", report.SourceFile},
		{"Total Rows", report.TotalRows},
		{"Rows With Valid Email", len(report.ValidEmails)},
		{"Rows Imputed", len(report.ImputedIdx)},
		{"Correlation Groups", len(report.GroupMeans)},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return apperrors.NewStorageError("failed to compute cell name", err)
		}
		if err := f.SetSheetRow(sheetSummary, cell, &row); err != nil {
			return apperrors.NewStorageError("failed to write summary row", err)
		}
	}
	return nil
}

func (w *ExcelWriter) writeHistogramSheet(f *excelize.File, hist survey.AgeHistogram) error {
	if _, err := f.NewSheet(sheetHistogram); err != nil {
		return apperrors.NewStorageError("failed to create histogram sheet", err)
	}

	if err := f.SetSheetRow(sheetHistogram, "A1",
		&[]interface{}{"BinStart", "BinEnd", "Count"}); err != nil {
		return apperrors.NewStorageError("failed to write histogram header", err)
	}
	for i, count := range hist.Counts {
		row := []interface{}{hist.Edges[i], hist.Edges[i+1], count}
		if err := f.SetSheetRow(sheetHistogram, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return apperrors.NewStorageError("failed to write histogram row", err)
		}
	}
	return nil
}

func (w *ExcelWriter) writeValidEmailsSheet(f *excelize.File, rows survey.Table) error {
	if _, err := f.NewSheet(sheetValidEmails); err != nil {
		return apperrors.NewStorageError("failed to create valid emails sheet", err)
	}

	header := []interface{}{"Index", "Age", "Email", "Gender", "Q1", "Q2", "Q3", "Q4", "Q5"}
	if err := f.SetSheetRow(sheetValidEmails, "A1", &header); err != nil {
		return apperrors.NewStorageError("failed to write valid emails header", err)
	}
	for i, rec := range rows {
		row := []interface{}{i, nullFloatCell(rec.Age), rec.Email, rec.Gender}
		for _, answer := range rec.Answers() {
			row = append(row, nullFloatCell(answer))
		}
		if err := f.SetSheetRow(sheetValidEmails, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return apperrors.NewStorageError("failed to write valid emails row", err)
		}
	}
	return nil
}

func (w *ExcelWriter) writeImputationSheet(f *excelize.File, imputed survey.Table, modified []int) error {
	if _, err := f.NewSheet(sheetImputation); err != nil {
		return apperrors.NewStorageError("failed to create imputation sheet", err)
	}

	modifiedSet := make(map[int]bool, len(modified))
	for _, idx := range modified {
		modifiedSet[idx] = true
	}

	header := []interface{}{"Index", "Imputed", "Q1", "Q2", "Q3", "Q4", "Q5"}
	if err := f.SetSheetRow(sheetImputation, "A1", &header); err != nil {
		return apperrors.NewStorageError("failed to write imputation header", err)
	}
	for i, rec := range imputed {
		row := []interface{}{i, modifiedSet[i]}
		for _, answer := range rec.Answers() {
			row = append(row, nullFloatCell(answer))
		}
		if err := f.SetSheetRow(sheetImputation, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return apperrors.NewStorageError("failed to write imputation row", err)
		}
	}
	return nil
}

func (w *ExcelWriter) writeScoresSheet(f *excelize.File, scored survey.ScoredTable) error {
	if _, err := f.NewSheet(sheetScores); err != nil {
		return apperrors.NewStorageError("failed to create scores sheet", err)
	}

	header := []interface{}{"Index", "Age", "Email", "Gender", "Q1", "Q2", "Q3", "Q4", "Q5", "Score"}
	if err := f.SetSheetRow(sheetScores, "A1", &header); err != nil {
		return apperrors.NewStorageError("failed to write scores header", err)
	}
	for i, rec := range scored.Records {
		row := []interface{}{i, nullFloatCell(rec.Age), rec.Email, rec.Gender}
		for _, answer := range rec.Answers() {
			row = append(row, nullFloatCell(answer))
		}
		row = append(row, nullUint8Cell(scored.Scores[i]))
		if err := f.SetSheetRow(sheetScores, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return apperrors.NewStorageError("failed to write scores row", err)
		}
	}
	return nil
}

func (w *ExcelWriter) writeGroupMeansSheet(f *excelize.File, groups []survey.GroupMeans) error {
	if _, err := f.NewSheet(sheetGroupMeans); err != nil {
		return apperrors.NewStorageError("failed to create group means sheet", err)
	}

	header := []interface{}{"Gender", "Above40", "Q1", "Q2", "Q3", "Q4", "Q5", "Size"}
	if err := f.SetSheetRow(sheetGroupMeans, "A1", &header); err != nil {
		return apperrors.NewStorageError("failed to write group means header", err)
	}
	for i, g := range groups {
		row := []interface{}{g.Key.Gender, g.Key.Above40}
		for _, mean := range g.Means {
			row = append(row, nullFloatCell(mean))
		}
		row = append(row, g.Size)
		if err := f.SetSheetRow(sheetGroupMeans, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return apperrors.NewStorageError("failed to write group means row", err)
		}
	}
	return nil
}

// nullFloatCell renders a nullable cell as a native number or the NA
// marker. Counterpart of formatNullFloat in format.go: Excel cells keep
// numeric typing while CSV needs strings, but both must agree on naCell
// for missing values.
func nullFloatCell(n survey.NullFloat64) interface{} {
	if !n.Valid {
		return naCell
	}
	return n.Float64
}

// nullUint8Cell renders a nullable score as a native number or the NA
// marker. Counterpart of formatNullUint8 in format.go.
func nullUint8Cell(n survey.NullUint8) interface{} {
	if !n.Valid {
		return naCell
	}
	return int(n.Uint8)
}
