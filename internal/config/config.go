package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// ConfigFileName is the optional YAML config file looked up in the working
// directory. Environment variables take precedence over it.
const ConfigFileName = "survey-config.yaml"

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/survey.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// AnalysisConfig contains analysis defaults
type AnalysisConfig struct {
	// MaxNaNsPerSubject is the missing-answer allowance before a subject's
	// score is withheld.
	MaxNaNsPerSubject int `yaml:"max_nans_per_subject" envconfig:"MAX_NANS_PER_SUBJECT" default:"1" validate:"min=0,max=5"`
}

// Load loads configuration from environment variables and the optional
// config file, resolves paths and validates the result.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("SURVEY", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.resolvePaths(); err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// fileConfig mirrors Config for YAML decoding. Numeric fields are pointers
// so an explicit zero in the file is distinguishable from an absent key.
type fileConfig struct {
	Logging struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		Output   string `yaml:"output"`
		FilePath string `yaml:"file_path"`
	} `yaml:"logging"`
	Paths struct {
		DataDir    string `yaml:"data_dir"`
		ReportsDir string `yaml:"reports_dir"`
		LogsDir    string `yaml:"logs_dir"`
	} `yaml:"paths"`
	Analysis struct {
		MaxNaNsPerSubject *int `yaml:"max_nans_per_subject"`
	} `yaml:"analysis"`
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*fileConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs overlays set file fields on top of the env/default config.
// Fields the file leaves out keep their env or default value.
func mergeConfigs(file fileConfig, envConfig Config) Config {
	if file.Logging.Level != "" {
		envConfig.Logging.Level = file.Logging.Level
	}
	if file.Logging.Format != "" {
		envConfig.Logging.Format = file.Logging.Format
	}
	if file.Logging.Output != "" {
		envConfig.Logging.Output = file.Logging.Output
	}
	if file.Logging.FilePath != "" {
		envConfig.Logging.FilePath = file.Logging.FilePath
	}
	if file.Paths.DataDir != "" {
		envConfig.Paths.DataDir = file.Paths.DataDir
	}
	if file.Paths.ReportsDir != "" {
		envConfig.Paths.ReportsDir = file.Paths.ReportsDir
	}
	if file.Paths.LogsDir != "" {
		envConfig.Paths.LogsDir = file.Paths.LogsDir
	}
	if file.Analysis.MaxNaNsPerSubject != nil {
		envConfig.Analysis.MaxNaNsPerSubject = *file.Analysis.MaxNaNsPerSubject
	}

	return envConfig
}

// getConfigFilePath returns the config file path, overridable for tests
// via SURVEY_CONFIG_FILE.
func getConfigFilePath() string {
	if path := os.Getenv("SURVEY_CONFIG_FILE"); path != "" {
		return path
	}
	return ConfigFileName
}

// resolvePaths makes relative directories absolute against the working
// directory and anchors the log file under the logs dir when relative.
func (c *Config) resolvePaths() error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	for _, dir := range []*string{&c.Paths.DataDir, &c.Paths.ReportsDir, &c.Paths.LogsDir} {
		if *dir != "" && !filepath.IsAbs(*dir) {
			*dir = filepath.Join(wd, *dir)
		}
	}

	if c.Logging.FilePath != "" && !filepath.IsAbs(c.Logging.FilePath) {
		c.Logging.FilePath = filepath.Join(wd, c.Logging.FilePath)
	}

	return nil
}

// Validate checks the configuration against its struct tag rules.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		return fmt.Errorf("logging.file_path is required when logging.output is %q", c.Logging.Output)
	}

	return nil
}

// EnsureReportsDir creates the reports directory if it does not exist.
func (c *Config) EnsureReportsDir() error {
	return os.MkdirAll(c.Paths.ReportsDir, 0755)
}
