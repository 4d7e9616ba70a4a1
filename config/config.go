package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kbukum/resultkit/logger"
	"github.com/kbukum/resultkit/util"
)

const (
	// DefaultHomeDirName is the directory created under the user's home.
	DefaultHomeDirName = ".resultkit"
	// ResultsSubdir is the sub-path of the home directory that holds results.
	ResultsSubdir = "results"
	// DefaultFileType is the tabular format used when none is configured.
	DefaultFileType = "csv"
)

// Config is the process-wide configuration consumed by result constructors.
type Config struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	HomeDir     string        `yaml:"home_dir" mapstructure:"home_dir"`
	Results     ResultsConfig `yaml:"results" mapstructure:"results"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ResultsConfig holds defaults for file-backed results.
type ResultsConfig struct {
	// Dir is the root directory for Local and Tabular results.
	Dir string `yaml:"dir" mapstructure:"dir"`
	// FileType is the default tabular format.
	FileType string `yaml:"file_type" mapstructure:"file_type"`
}

// DefaultHomeDir returns ~/.resultkit, or a directory under the system temp
// dir when no user home can be determined.
func DefaultHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), DefaultHomeDirName)
	}
	return filepath.Join(home, DefaultHomeDirName)
}

// DefaultResultsDir returns <home>/results.
func DefaultResultsDir(home string) string {
	return filepath.Join(home, ResultsSubdir)
}

// ApplyDefaults applies default values to the configuration.
func (c *Config) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.HomeDir == "" {
		c.HomeDir = DefaultHomeDir()
	}
	if c.Results.Dir == "" {
		c.Results.Dir = DefaultResultsDir(c.HomeDir)
	}
	if c.Results.FileType == "" {
		c.Results.FileType = DefaultFileType
	}
	c.Results.FileType = strings.ToLower(c.Results.FileType)
	c.Logging.ApplyDefaults()
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validEnvs := []string{"development", "staging", "production"}
	if !util.Contains(validEnvs, c.Environment) {
		return fmt.Errorf("config.environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	if err := util.ValidateNonEmpty("config.home_dir", c.HomeDir); err != nil {
		return err
	}
	if err := util.ValidateNonEmpty("config.results.dir", c.Results.Dir); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}
