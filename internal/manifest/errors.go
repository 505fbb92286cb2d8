package manifest

import "errors"

// Sentinel errors for the manifest package
var (
	// ErrFileNotFound indicates the manifest file does not exist
	ErrFileNotFound = errors.New("manifest file not found")

	// ErrInvalidFormat indicates the manifest is not an object of strings
	ErrInvalidFormat = errors.New("manifest must be a JSON or YAML object of strings")

	// ErrUnsupportedExt indicates an unsupported file extension
	ErrUnsupportedExt = errors.New("unsupported file extension (use .json, .yaml, or .yml)")

	// ErrEmptyManifest indicates the manifest holds no entries
	ErrEmptyManifest = errors.New("manifest has no entries")
)
