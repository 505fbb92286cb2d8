package rewrite

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrNoFiles indicates an empty file list when AllowEmptyPaths is off
	ErrNoFiles = errors.New("no files to rewrite")

	// ErrNilPattern indicates the rewriter was built without a pattern
	ErrNilPattern = errors.New("rewrite pattern is required")

	// ErrUnknownEncoding indicates Options.Encoding names no known charset
	ErrUnknownEncoding = errors.New("unknown encoding")
)

// FileError represents a failure to read, decode, encode or write one file
type FileError struct {
	File string
	Op   string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.File, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileError creates a new FileError
func NewFileError(file, op string, err error) *FileError {
	return &FileError{
		File: file,
		Op:   op,
		Err:  err,
	}
}
