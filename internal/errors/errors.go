// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Per-symbol errors. The scan loop logs and skips these; they never abort a
// chunk or the scan.
var (
	ErrInsufficientData = errors.New("insufficient historical data")
	ErrSymbolNotFound   = errors.New("symbol not found")
	ErrRateLimited      = errors.New("rate limited")
	ErrTimeout          = errors.New("operation timed out")
)

// Request-level errors, returned synchronously to the caller.
var (
	ErrAlreadyRunning   = errors.New("a scan is already running")
	ErrNoCheckpoint     = errors.New("no scan checkpoint to resume")
	ErrScanTypeMismatch = errors.New("checkpoint scan type does not match")
	ErrInvalidScanType  = errors.New("invalid scan type")
	ErrConfigInvalid    = errors.New("invalid configuration")
)

// Recoverable reports whether err is a per-symbol error the scan loop can
// swallow.
func Recoverable(err error) bool {
	return errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrSymbolNotFound) ||
		errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrTimeout)
}

// StorageError represents a failed read or write of a persisted document.
// It is fatal to the current run; the checkpoint on disk makes the next start
// resume where the run aborted.
type StorageError struct {
	Path string
	Op   string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error [%s] %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError.
func NewStorageError(op, path string, err error) *StorageError {
	return &StorageError{Op: op, Path: path, Err: err}
}

// ProviderError represents an error from the market data provider for one
// symbol.
type ProviderError struct {
	Symbol string
	Err    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error [%s]: %v", e.Symbol, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a new ProviderError.
func NewProviderError(symbol string, err error) *ProviderError {
	return &ProviderError{Symbol: symbol, Err: err}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
