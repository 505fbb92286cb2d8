package config

import (
	"os"
	"path/filepath"

	"github.com/quantmind-br/assetrev/pkg/assetrev"
)

// Default values
const (
	DefaultPublicPath = assetrev.DefaultPublicPath
	DefaultPattern    = assetrev.DefaultPattern

	// Replace defaults
	DefaultWorkers  = 1
	DefaultEncoding = "utf-8"

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// DefaultWhitelist selects top level HTML files
var DefaultWhitelist = []string{"*.html"}

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".assetrev"
	}
	return filepath.Join(home, ".assetrev")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "assetrev.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		PublicPath: DefaultPublicPath,
		Whitelist:  append([]string(nil), DefaultWhitelist...),
		Pattern:    DefaultPattern,
		Replace: ReplaceConfig{
			DryRun:   false,
			Workers:  DefaultWorkers,
			Encoding: DefaultEncoding,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
