package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SURVEY_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, 1, cfg.Analysis.MaxNaNsPerSubject)
	assert.True(t, filepath.IsAbs(cfg.Paths.ReportsDir))
	assert.True(t, filepath.IsAbs(cfg.Paths.DataDir))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SURVEY_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("SURVEY_LOGGING_LEVEL", "debug")
	t.Setenv("SURVEY_ANALYSIS_MAX_NANS_PER_SUBJECT", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 2, cfg.Analysis.MaxNaNsPerSubject)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "survey-config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
logging:
  level: warn
  format: text
paths:
  reports_dir: out/reports
analysis:
  max_nans_per_subject: 3
`), 0644))
	t.Setenv("SURVEY_CONFIG_FILE", configFile)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 3, cfg.Analysis.MaxNaNsPerSubject)
	assert.True(t, filepath.IsAbs(cfg.Paths.ReportsDir))
	assert.Contains(t, cfg.Paths.ReportsDir, filepath.Join("out", "reports"))
}

func TestLoad_ConfigFileExplicitZero(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "survey-config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
analysis:
  max_nans_per_subject: 0
`), 0644))
	t.Setenv("SURVEY_CONFIG_FILE", configFile)

	cfg, err := Load()
	require.NoError(t, err)

	// An explicit zero in the file must override the nonzero default.
	assert.Equal(t, 0, cfg.Analysis.MaxNaNsPerSubject)
}

func TestLoad_ConfigFileAbsentKeyKeepsDefault(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "survey-config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
logging:
  level: warn
`), 0644))
	t.Setenv("SURVEY_CONFIG_FILE", configFile)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 1, cfg.Analysis.MaxNaNsPerSubject)
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "survey-config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("logging: ["), 0644))
	t.Setenv("SURVEY_CONFIG_FILE", configFile)

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid defaults", mutate: func(c *Config) {}},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
		{
			name:    "max nans out of range",
			mutate:  func(c *Config) { c.Analysis.MaxNaNsPerSubject = 6 },
			wantErr: true,
		},
		{
			name: "file output without path",
			mutate: func(c *Config) {
				c.Logging.Output = "file"
				c.Logging.FilePath = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Logging: LoggingConfig{
					Level:    "info",
					Format:   "json",
					Output:   "console",
					FilePath: "logs/survey.log",
				},
				Paths:    PathsConfig{DataDir: "data", ReportsDir: "reports", LogsDir: "logs"},
				Analysis: AnalysisConfig{MaxNaNsPerSubject: 1},
			}
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnsureReportsDir(t *testing.T) {
	cfg := Config{Paths: PathsConfig{ReportsDir: filepath.Join(t.TempDir(), "nested", "reports")}}

	require.NoError(t, cfg.EnsureReportsDir())
	info, err := os.Stat(cfg.Paths.ReportsDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
