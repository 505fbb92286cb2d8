// Package rewrite replaces asset references in text files with the versioned
// paths listed in a build manifest.
//
// Every match of the pattern is resolved through its first capture group (or
// the whole match when the pattern has none). The captured path is looked up
// with a leading slash; references without one receive the versioned path
// without one, so relative references stay relative. References missing from
// the manifest are reported and left as they are.
package rewrite

import (
	"context"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/quantmind-br/assetrev/internal/manifest"
	"github.com/quantmind-br/assetrev/internal/utils"
)

// Rewriter substitutes manifest entries into text. It is safe for concurrent
// use; the manifest must not be modified while a Rewriter uses it.
type Rewriter struct {
	manifest manifest.Manifest
	pattern  *regexp.Regexp
	logger   *utils.Logger
}

// New creates a Rewriter. A nil logger discards diagnostics.
func New(m manifest.Manifest, pattern *regexp.Regexp, logger *utils.Logger) (*Rewriter, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if pattern == nil {
		return nil, ErrNilPattern
	}
	if logger == nil {
		logger = utils.NewNopLogger()
	}

	return &Rewriter{
		manifest: m,
		pattern:  pattern,
		logger:   logger.WithComponent("rewrite"),
	}, nil
}

// Replace rewrites content and reports what it did. The returned Result has
// no File set.
func (r *Rewriter) Replace(content string) (string, Result) {
	return r.replace(content, r.logger)
}

func (r *Rewriter) replace(content string, log *utils.Logger) (string, Result) {
	var res Result

	locs := r.pattern.FindAllStringSubmatchIndex(content, -1)
	if len(locs) == 0 {
		return content, res
	}

	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, loc := range locs {
		whole := content[loc[0]:loc[1]]
		captured := whole
		if len(loc) >= 4 && loc[2] >= 0 {
			captured = content[loc[2]:loc[3]]
		}

		replacement := r.resolve(whole, captured, &res, log)
		res.NumMatches++
		if replacement != whole {
			res.NumReplacements++
		}

		b.WriteString(content[last:loc[0]])
		b.WriteString(replacement)
		last = loc[1]
	}
	b.WriteString(content[last:])

	out := b.String()
	res.HasChanged = out != content
	return out, res
}

func (r *Rewriter) resolve(whole, captured string, res *Result, log *utils.Logger) string {
	key := manifest.NormalizeKey(captured)
	versioned, ok := r.manifest[key]
	if !ok {
		log.Warn().Str("asset", key).Msgf("No entry in manifest for: %s", key)
		res.Unmapped = append(res.Unmapped, key)
		return whole
	}

	if strings.HasPrefix(captured, "/") {
		return versioned
	}
	return strings.TrimPrefix(versioned, "/")
}

// ReplaceFile rewrites a single file in place. In dry-run mode the file is
// left untouched but the Result still reports what would change.
func (r *Rewriter) ReplaceFile(ctx context.Context, path string, opts Options) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	enc, err := lookupEncoding(opts.Encoding)
	if err != nil {
		return Result{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, NewFileError(path, "read", err)
	}

	text, err := decode(enc, data)
	if err != nil {
		return Result{}, NewFileError(path, "decode", err)
	}

	log := r.logger.WithFile(path)
	out, res := r.replace(text, log)
	res.File = path

	if res.HasChanged && !opts.DryRun {
		encoded, err := encode(enc, out)
		if err != nil {
			return res, NewFileError(path, "encode", err)
		}
		if err := utils.ReplaceFileContents(path, encoded); err != nil {
			return res, NewFileError(path, "write", err)
		}
	}

	log.Debug().
		Int("matches", res.NumMatches).
		Int("replacements", res.NumReplacements).
		Bool("changed", res.HasChanged).
		Bool("dry_run", opts.DryRun).
		Msg("Processed file")

	return res, nil
}

// ReplaceFiles rewrites every file and returns one Result per processed file,
// in input order. Files are independent, so up to opts.Workers run at once.
// The first error is returned together with the results gathered so far.
func (r *Rewriter) ReplaceFiles(ctx context.Context, files []string, opts Options) ([]Result, error) {
	if len(files) == 0 {
		if !opts.AllowEmptyPaths {
			return nil, ErrNoFiles
		}
		return []Result{}, nil
	}

	if _, err := lookupEncoding(opts.Encoding); err != nil {
		return nil, err
	}

	if opts.OnStart != nil {
		opts.OnStart(len(files))
	}

	indices := make([]int, len(files))
	for i := range indices {
		indices[i] = i
	}

	results := make([]Result, len(files))
	done := make([]bool, len(files))
	var mu sync.Mutex

	errs := utils.ParallelForEach(ctx, indices, opts.Workers, func(ctx context.Context, i int) error {
		res, err := r.ReplaceFile(ctx, files[i], opts)
		if err != nil {
			return err
		}

		mu.Lock()
		defer mu.Unlock()
		results[i] = res
		done[i] = true
		if opts.OnFile != nil {
			opts.OnFile(res)
		}
		return nil
	})

	processed := make([]Result, 0, len(files))
	for i, ok := range done {
		if ok {
			processed = append(processed, results[i])
		}
	}

	if failed := utils.CollectErrors(errs); len(failed) > 0 {
		r.logger.Debug().Int("failed", len(failed)).Msg("Some files could not be rewritten")
		return processed, utils.FirstError(failed)
	}
	if err := ctx.Err(); err != nil {
		return processed, err
	}
	return processed, nil
}
