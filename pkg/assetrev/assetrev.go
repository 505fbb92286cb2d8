// Package assetrev rewrites asset references in built markup so they point at
// the versioned file names listed in the bundler's mix-manifest.json.
//
// It runs three steps in order: resolve options (loading the manifest from the
// public directory unless one is given), resolve the files to scan, and
// substitute every matched reference through the manifest.
//
//	results, err := assetrev.ReplaceAssetPaths(ctx, assetrev.Options{
//	    PublicPath: "public",
//	})
package assetrev

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/quantmind-br/assetrev/internal/fileset"
	"github.com/quantmind-br/assetrev/internal/manifest"
	"github.com/quantmind-br/assetrev/internal/rewrite"
	"github.com/quantmind-br/assetrev/internal/stats"
	"github.com/quantmind-br/assetrev/internal/utils"
)

// Default values
const (
	DefaultPublicPath = "dist"
	DefaultPattern    = rewrite.DefaultPattern
)

// ErrManifestUnavailable indicates no manifest could be resolved; no file is
// touched when it is returned.
var ErrManifestUnavailable = errors.New("replace-asset-paths needs the manifest contents")

type (
	// Manifest maps leading-slash asset paths to versioned paths.
	Manifest = manifest.Manifest
	// BuildReport lists the files a build emitted.
	BuildReport = stats.Report
	// ReplaceOptions tunes the file rewriting step.
	ReplaceOptions = rewrite.Options
	// Result describes what happened to one file.
	Result = rewrite.Result
	// Logger receives diagnostics.
	Logger = utils.Logger
	// LoggerOptions configures NewLogger.
	LoggerOptions = utils.LoggerOptions
)

// Options configures ReplaceAssetPaths. Zero fields take their defaults.
type Options struct {
	// PublicPath is the build output directory (default "dist").
	PublicPath string
	// Whitelist selects the files to scan, relative to PublicPath. Entries
	// starting with "!" exclude (default ["*.html"]).
	Whitelist []string
	// Pattern finds asset references; its first group is the asset path.
	Pattern *regexp.Regexp
	// Manifest is used as is when it has entries. A nil or empty Manifest is
	// treated as not supplied, and the manifest is loaded from ManifestPath.
	Manifest Manifest
	// ManifestPath overrides <PublicPath>/mix-manifest.json.
	ManifestPath string
	// Stats, when set, supplies the candidate files instead of the disk.
	Stats *BuildReport
	// ReplaceOptions is passed through to the rewriting step.
	ReplaceOptions *ReplaceOptions
	// Logger receives diagnostics (default: pretty logger on stderr).
	Logger *Logger
}

// NewLogger creates a logger suitable for Options.Logger.
func NewLogger(opts LoggerOptions) *Logger {
	return utils.NewLogger(opts)
}

// NewBuildReport creates a build report from emitted asset names.
func NewBuildReport(assets ...string) *BuildReport {
	return stats.NewReport(assets...)
}

// DefaultOptions returns a fresh set of defaults. It never returns shared
// state, so callers may modify the result.
func DefaultOptions() Options {
	return Options{
		PublicPath: DefaultPublicPath,
		Whitelist:  []string{"*.html"},
		Pattern:    regexp.MustCompile(DefaultPattern),
	}
}

// resolveOptions merges opts over the defaults and loads the manifest when
// none was supplied. A manifest that fails to load is logged and left nil.
func resolveOptions(opts Options) Options {
	cfg := DefaultOptions()
	if opts.PublicPath != "" {
		cfg.PublicPath = opts.PublicPath
	}
	if len(opts.Whitelist) > 0 {
		cfg.Whitelist = opts.Whitelist
	}
	if opts.Pattern != nil {
		cfg.Pattern = opts.Pattern
	}
	cfg.Stats = opts.Stats
	cfg.ReplaceOptions = opts.ReplaceOptions
	cfg.ManifestPath = opts.ManifestPath
	cfg.Logger = opts.Logger
	if cfg.Logger == nil {
		cfg.Logger = utils.NewDefaultLogger()
	}

	if len(opts.Manifest) > 0 {
		cfg.Manifest = opts.Manifest.Normalized()
		return cfg
	}

	if cfg.ManifestPath == "" {
		cfg.ManifestPath = manifest.PathIn(cfg.PublicPath)
	}
	m, err := manifest.NewLoader().Load(cfg.ManifestPath)
	if err != nil {
		cfg.Logger.WithComponent("manifest").Error().
			Err(err).
			Str("path", cfg.ManifestPath).
			Msg("Failed to load manifest")
		return cfg
	}
	cfg.Manifest = m
	return cfg
}

// ReplaceAssetPaths rewrites asset references in the whitelisted files of the
// public directory. It returns ErrManifestUnavailable, without touching any
// file, when no manifest could be resolved. Unmapped references are logged
// and left unchanged; they do not cause an error.
func ReplaceAssetPaths(ctx context.Context, opts Options) ([]Result, error) {
	cfg := resolveOptions(opts)
	log := cfg.Logger

	if len(cfg.Manifest) == 0 {
		log.Error().Msgf("Error: %v", ErrManifestUnavailable)
		return nil, ErrManifestUnavailable
	}

	files, err := fileset.Resolve(cfg.PublicPath, cfg.Stats, cfg.Whitelist)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve files: %w", err)
	}
	log.WithComponent("fileset").Debug().
		Int("count", len(files)).
		Bool("from_stats", cfg.Stats != nil).
		Msg("Resolved files")

	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(cfg.PublicPath, filepath.FromSlash(f))
		if cfg.Stats != nil && !utils.IsRegularFile(path) {
			log.Debug().Str("file", path).Msg("Skipping reported asset missing on disk")
			continue
		}
		paths = append(paths, path)
	}

	rw, err := rewrite.New(cfg.Manifest, cfg.Pattern, log)
	if err != nil {
		return nil, err
	}

	replaceOpts := rewrite.Options{}
	if cfg.ReplaceOptions != nil {
		replaceOpts = *cfg.ReplaceOptions
	}
	replaceOpts.AllowEmptyPaths = true

	return rw.ReplaceFiles(ctx, paths, replaceOpts)
}
