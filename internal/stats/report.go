// Package stats reads the bundler's build report: the list of asset files a
// build emitted. When a report is available the rewriter filters its asset
// names instead of scanning the public directory.
package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrInvalidReport indicates the report could not be decoded
var ErrInvalidReport = errors.New("invalid build report")

// Report lists the asset names emitted by a build, relative to the output
// directory.
type Report struct {
	Assets []string
}

// NewReport creates a report from asset names.
func NewReport(assets ...string) *Report {
	return &Report{Assets: assets}
}

// AssetNames returns the emitted asset names using forward slashes.
func (r *Report) AssetNames() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.Assets))
	for _, a := range r.Assets {
		names = append(names, filepath.ToSlash(a))
	}
	return names
}

type rawAsset struct {
	Name string `json:"name"`
}

type rawReport struct {
	Assets      []rawAsset `json:"assets"`
	Compilation *struct {
		Assets map[string]json.RawMessage `json:"assets"`
	} `json:"compilation"`
}

// Parse decodes a webpack style stats document. Asset names come from the keys
// of compilation.assets when present, otherwise from assets[].name.
func Parse(data []byte) (*Report, error) {
	var raw rawReport
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReport, err)
	}

	r := &Report{}
	if raw.Compilation != nil && len(raw.Compilation.Assets) > 0 {
		for name := range raw.Compilation.Assets {
			r.Assets = append(r.Assets, name)
		}
		// map order is random
		sort.Strings(r.Assets)
		return r, nil
	}

	for _, a := range raw.Assets {
		if a.Name != "" {
			r.Assets = append(r.Assets, a.Name)
		}
	}
	return r, nil
}

// Load reads and parses a stats file.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read build report: %w", err)
	}
	return Parse(data)
}
