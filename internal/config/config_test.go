package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/assetrev/internal/utils"
)

// TestConfig_Validate tests configuration validation
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		check   func(*testing.T, *Config)
		wantErr bool
	}{
		{
			name:   "empty config gets defaults",
			modify: func(c *Config) {},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultPublicPath, c.PublicPath)
				assert.Equal(t, DefaultWhitelist, c.Whitelist)
				assert.Equal(t, DefaultPattern, c.Pattern)
				assert.Equal(t, DefaultWorkers, c.Replace.Workers)
				assert.Equal(t, DefaultEncoding, c.Replace.Encoding)
				assert.Equal(t, DefaultLogLevel, c.Logging.Level)
				assert.Equal(t, DefaultLogFormat, c.Logging.Format)
			},
		},
		{
			name: "workers below minimum defaults to 1",
			modify: func(c *Config) {
				c.Replace.Workers = -3
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultWorkers, c.Replace.Workers)
			},
		},
		{
			name: "explicit values are kept",
			modify: func(c *Config) {
				c.PublicPath = "public"
				c.Whitelist = []string{"**/*.html"}
				c.Replace.Workers = 8
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "public", c.PublicPath)
				assert.Equal(t, []string{"**/*.html"}, c.Whitelist)
				assert.Equal(t, 8, c.Replace.Workers)
			},
		},
		{
			name: "invalid pattern",
			modify: func(c *Config) {
				c.Pattern = `(unclosed`
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			tt.modify(cfg)

			err := cfg.Validate()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "dist", cfg.PublicPath)
	assert.Equal(t, []string{"*.html"}, cfg.Whitelist)
	assert.False(t, cfg.Replace.DryRun)

	// whitelist is not shared with the package default
	cfg.Whitelist[0] = "*.htm"
	assert.Equal(t, []string{"*.html"}, DefaultWhitelist)
}

func TestConfigFilePath(t *testing.T) {
	assert.Equal(t, "assetrev.yaml", filepath.Base(ConfigFilePath()))
	assert.Equal(t, ".assetrev", filepath.Base(ConfigDir()))
}

func TestConfig_Options(t *testing.T) {
	logger := utils.NewNopLogger()

	t.Run("maps fields", func(t *testing.T) {
		cfg := Default()
		cfg.PublicPath = "public"
		cfg.Manifest = "build/manifest.json"
		cfg.Replace.DryRun = true
		cfg.Replace.Workers = 3

		opts, err := cfg.Options(logger)

		require.NoError(t, err)
		assert.Equal(t, "public", opts.PublicPath)
		assert.Equal(t, "build/manifest.json", opts.ManifestPath)
		assert.Equal(t, DefaultPattern, opts.Pattern.String())
		require.NotNil(t, opts.ReplaceOptions)
		assert.True(t, opts.ReplaceOptions.DryRun)
		assert.Equal(t, 3, opts.ReplaceOptions.Workers)
		assert.Nil(t, opts.Stats)
		assert.Same(t, logger, opts.Logger)
	})

	t.Run("loads build report", func(t *testing.T) {
		statsPath := filepath.Join(t.TempDir(), "stats.json")
		require.NoError(t, os.WriteFile(statsPath, []byte(`{"assets": [{"name": "index.html"}]}`), 0644))

		cfg := Default()
		cfg.Stats = statsPath

		opts, err := cfg.Options(logger)

		require.NoError(t, err)
		require.NotNil(t, opts.Stats)
		assert.Equal(t, []string{"index.html"}, opts.Stats.Assets)
	})

	t.Run("missing build report", func(t *testing.T) {
		cfg := Default()
		cfg.Stats = filepath.Join(t.TempDir(), "missing.json")

		_, err := cfg.Options(logger)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		cfg := Default()
		cfg.Pattern = `[`

		_, err := cfg.Options(logger)
		assert.Error(t, err)
	})
}

func TestLoadWithViper(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())

		cfg, err := LoadWithViper(viper.New())

		require.NoError(t, err)
		assert.Equal(t, DefaultPublicPath, cfg.PublicPath)
		assert.Equal(t, DefaultWhitelist, cfg.Whitelist)
		assert.Equal(t, DefaultWorkers, cfg.Replace.Workers)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		t.Setenv("ASSETREV_PUBLIC_PATH", "public")
		t.Setenv("ASSETREV_REPLACE_WORKERS", "4")
		t.Setenv("ASSETREV_LOGGING_LEVEL", "debug")

		cfg, err := LoadWithViper(viper.New())

		require.NoError(t, err)
		assert.Equal(t, "public", cfg.PublicPath)
		assert.Equal(t, 4, cfg.Replace.Workers)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("config file", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		path := filepath.Join(t.TempDir(), "assetrev.yaml")
		content := `
public_path: web/public
whitelist:
  - "**/*.html"
  - "!vendor/**"
replace:
  dry_run: true
  encoding: windows-1252
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		v := viper.New()
		v.SetConfigFile(path)
		cfg, err := LoadWithViper(v)

		require.NoError(t, err)
		assert.Equal(t, "web/public", cfg.PublicPath)
		assert.Equal(t, []string{"**/*.html", "!vendor/**"}, cfg.Whitelist)
		assert.True(t, cfg.Replace.DryRun)
		assert.Equal(t, "windows-1252", cfg.Replace.Encoding)
		assert.Equal(t, DefaultWorkers, cfg.Replace.Workers)
	})

	t.Run("config file found in working directory", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "assetrev.yaml"), []byte("public_path: site\n"), 0644))
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() { _ = os.Chdir(wd) })

		cfg, err := LoadWithViper(viper.New())

		require.NoError(t, err)
		assert.Equal(t, "site", cfg.PublicPath)
	})

	t.Run("malformed config file", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		path := filepath.Join(t.TempDir(), "assetrev.yaml")
		require.NoError(t, os.WriteFile(path, []byte("whitelist: [unclosed"), 0644))

		v := viper.New()
		v.SetConfigFile(path)
		_, err := LoadWithViper(v)

		assert.Error(t, err)
	})
}
