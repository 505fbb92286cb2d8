package config

import (
	"fmt"
	"regexp"

	"github.com/quantmind-br/assetrev/internal/stats"
	"github.com/quantmind-br/assetrev/internal/utils"
	"github.com/quantmind-br/assetrev/pkg/assetrev"
)

// Config represents the application configuration
type Config struct {
	PublicPath string        `mapstructure:"public_path" yaml:"public_path"`
	Whitelist  []string      `mapstructure:"whitelist" yaml:"whitelist"`
	Pattern    string        `mapstructure:"pattern" yaml:"pattern"`
	Manifest   string        `mapstructure:"manifest" yaml:"manifest"`
	Stats      string        `mapstructure:"stats" yaml:"stats"`
	Replace    ReplaceConfig `mapstructure:"replace" yaml:"replace"`
	Logging    LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// ReplaceConfig contains file rewriting settings
type ReplaceConfig struct {
	DryRun   bool   `mapstructure:"dry_run" yaml:"dry_run"`
	Workers  int    `mapstructure:"workers" yaml:"workers"`
	Encoding string `mapstructure:"encoding" yaml:"encoding"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration, repairing values that have a safe
// default.
func (c *Config) Validate() error {
	if c.PublicPath == "" {
		c.PublicPath = DefaultPublicPath
	}
	if len(c.Whitelist) == 0 {
		c.Whitelist = append([]string(nil), DefaultWhitelist...)
	}
	if c.Pattern == "" {
		c.Pattern = DefaultPattern
	}
	if _, err := regexp.Compile(c.Pattern); err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}
	if c.Replace.Workers < 1 {
		c.Replace.Workers = DefaultWorkers
	}
	if c.Replace.Encoding == "" {
		c.Replace.Encoding = DefaultEncoding
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	return nil
}

// Options converts the configuration into library options. The build report
// is read here when Stats names a file.
func (c *Config) Options(logger *utils.Logger) (assetrev.Options, error) {
	pattern, err := regexp.Compile(c.Pattern)
	if err != nil {
		return assetrev.Options{}, fmt.Errorf("invalid pattern: %w", err)
	}

	opts := assetrev.Options{
		PublicPath:   utils.ExpandPath(c.PublicPath),
		Whitelist:    c.Whitelist,
		Pattern:      pattern,
		ManifestPath: utils.ExpandPath(c.Manifest),
		ReplaceOptions: &assetrev.ReplaceOptions{
			DryRun:   c.Replace.DryRun,
			Workers:  c.Replace.Workers,
			Encoding: c.Replace.Encoding,
		},
		Logger: logger,
	}

	if c.Stats != "" {
		report, err := stats.Load(utils.ExpandPath(c.Stats))
		if err != nil {
			return assetrev.Options{}, err
		}
		opts.Stats = report
	}

	return opts, nil
}
