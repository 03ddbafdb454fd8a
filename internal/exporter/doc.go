// Package exporter renders analysis results to report files: per-analysis
// CSV files, a machine-readable JSON report, and an Excel workbook with one
// sheet per analysis. Relative report names are anchored under the
// configured reports directory.
package exporter
