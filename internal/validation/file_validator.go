package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileValidator provides input and output file checks for the CLI before
// the analyzer is constructed. The analyzer performs its own fail-fast
// validation; this layer exists to give the operator actionable messages
// earlier.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputFile validates that the questionnaire file exists, is a
// regular file and is not empty. A non-.json extension is only warned
// about, the loader decides whether the content parses.
func (v *FileValidator) ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Input file does not exist",
			slog.String("path", path))
		return fmt.Errorf("input file %s does not exist", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat input file",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to stat input file %s: %w", path, err)
	}
	if info.IsDir() {
		v.logger.Error("Input path is a directory",
			slog.String("path", path))
		return fmt.Errorf("%s is a directory, not a questionnaire file", path)
	}
	if info.Size() == 0 {
		v.logger.Error("Input file is empty",
			slog.String("path", path))
		return fmt.Errorf("input file %s is empty", path)
	}

	if !strings.EqualFold(filepath.Ext(path), ".json") {
		v.logger.Warn("Input file does not have a .json extension",
			slog.String("path", path))
	}

	v.logger.Info("Input file validated",
		slog.String("path", path),
		slog.Int64("size_bytes", info.Size()))
	return nil
}

// ValidateOutputDirectory ensures the output directory exists or can be
// created, and is writable.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)

	return nil
}
