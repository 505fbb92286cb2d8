package manifest

import (
	"path/filepath"
	"strings"
)

// FileName is the manifest file written by the bundler into the public directory.
const FileName = "mix-manifest.json"

// Manifest maps a leading-slash asset path to its versioned replacement.
type Manifest map[string]string

// PathIn returns the manifest location inside a public directory.
func PathIn(publicPath string) string {
	return filepath.Join(publicPath, FileName)
}

// NormalizeKey returns p with exactly one leading slash.
func NormalizeKey(p string) string {
	return "/" + strings.TrimPrefix(p, "/")
}

// Lookup resolves an asset path, with or without a leading slash.
func (m Manifest) Lookup(p string) (string, bool) {
	v, ok := m[NormalizeKey(p)]
	return v, ok
}

// Normalized returns a copy whose keys all start with "/". When both "x" and
// "/x" are present the explicit "/x" entry wins.
func (m Manifest) Normalized() Manifest {
	out := make(Manifest, len(m))
	for k, v := range m {
		if strings.HasPrefix(k, "/") {
			out[k] = v
		}
	}
	for k, v := range m {
		key := NormalizeKey(k)
		if _, ok := out[key]; !ok {
			out[key] = v
		}
	}
	return out
}

// Validate checks that the manifest can serve lookups.
func (m Manifest) Validate() error {
	if len(m) == 0 {
		return ErrEmptyManifest
	}
	return nil
}
