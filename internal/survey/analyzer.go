package survey

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "surveycli/internal/errors"
)

// Analyzer reads questionnaire data from a JSON file and exposes the
// analysis operations. Construction validates the path without reading it;
// ReadData loads the table. After ReadData returns, the loaded table is
// treated as immutable and every operation works on its own copy, so the
// independent analyses may safely run concurrently.
type Analyzer struct {
	dataPath string
	data     Table
	logger   *slog.Logger
}

// New creates an analyzer for the questionnaire file at path. The path may
// be a string or any fmt.Stringer (a path-like value). It fails immediately
// with a validation error for other types and with a not-found error when
// the file does not exist. The file is not read here.
func New(path any, logger *slog.Logger) (*Analyzer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var dataPath string
	switch p := path.(type) {
	case string:
		dataPath = p
	case fmt.Stringer:
		dataPath = p.String()
	default:
		return nil, apperrors.NewInvalidArgumentError(
			fmt.Sprintf("data path must be a string or path-like value, got %T", path))
	}

	if dataPath == "" {
		return nil, apperrors.NewInvalidArgumentError("data path must not be empty")
	}
	dataPath = filepath.Clean(dataPath)

	if _, err := os.Stat(dataPath); err != nil {
		return nil, apperrors.NewFileNotFoundError(dataPath, err)
	}

	return &Analyzer{
		dataPath: dataPath,
		logger:   logger.With(slog.String("component", "survey_analyzer")),
	}, nil
}

// DataPath returns the validated path the analyzer was constructed with.
func (a *Analyzer) DataPath() string {
	return a.dataPath
}

// ReadData parses the stored file as a JSON array of respondent objects
// into the analyzer's table, overwriting any previously loaded data. It is
// the only operation that can fail on malformed input; everything after it
// degrades per row instead of erroring.
func (a *Analyzer) ReadData(ctx context.Context) error {
	content, err := os.ReadFile(a.dataPath)
	if err != nil {
		return apperrors.NewParseError(a.dataPath, err)
	}

	var table Table
	if err := json.Unmarshal(content, &table); err != nil {
		return apperrors.NewParseError(a.dataPath, err)
	}

	a.data = table
	a.logger.InfoContext(ctx, "questionnaire data loaded",
		slog.String("path", a.dataPath),
		slog.Int("rows", len(table)))
	return nil
}

// Data returns the loaded table. Callers must not mutate it; derive a copy
// with Clone first.
func (a *Analyzer) Data() Table {
	return a.data
}

// errNoData reports an analysis call before ReadData.
func (a *Analyzer) errNoData(op string) error {
	return apperrors.NewAppError(apperrors.ErrTypeValidation,
		fmt.Sprintf("%s requires loaded data, call ReadData first", op), nil)
}
