package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration from file, environment, and defaults
// Uses the global viper instance to access CLI flag bindings
func Load() (*Config, error) {
	return LoadWithViper(viper.GetViper())
}

// LoadWithViper loads configuration through the given viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// An explicit file (--config) wins; SetConfigName would discard it.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("assetrev")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	// Environment variables (ASSETREV_*)
	v.SetEnvPrefix("ASSETREV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	v.SetDefault("public_path", DefaultPublicPath)
	v.SetDefault("whitelist", DefaultWhitelist)
	v.SetDefault("pattern", DefaultPattern)
	v.SetDefault("manifest", "")
	v.SetDefault("stats", "")

	v.SetDefault("replace.dry_run", false)
	v.SetDefault("replace.workers", DefaultWorkers)
	v.SetDefault("replace.encoding", DefaultEncoding)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}
