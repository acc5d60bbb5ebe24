package session

import (
	"errors"
	"fmt"
)

// Sentinel errors for session operations.
var (
	ErrNoFilesProvided      = errors.New("no files provided")
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	ErrRenderingFailure     = errors.New("rendering failed")
	ErrConversionFailed     = errors.New("no file could be converted")
	ErrFileNotFound         = errors.New("file not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrStorage              = errors.New("session storage error")
)

// ConversionFailedError is returned by Convert when every file failed.
// It carries the per-file errors and matches ErrConversionFailed.
type ConversionFailedError struct {
	Errors []FileError
}

func (e *ConversionFailedError) Error() string {
	return fmt.Sprintf("%s: %d file(s) failed", ErrConversionFailed, len(e.Errors))
}

// Is reports whether target is ErrConversionFailed.
func (e *ConversionFailedError) Is(target error) bool {
	return target == ErrConversionFailed
}
