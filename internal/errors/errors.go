// Package errors provides consistent error types for the Habitual CLI.
// It defines four main categories matching the CLI exit-code contract:
// UsageError (malformed input), NotFoundError (unknown habit/debt id),
// AmbiguousError (selector matched several habits), and IOError (store
// unreadable, locked, or unwritable).
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for common conditions.
var (
	ErrStoreLocked    = errors.New("store is locked by another process")
	ErrStoreCorrupted = errors.New("store corrupted")
	ErrHabitNotFound  = errors.New("habit not found")
	ErrDebtNotFound   = errors.New("penalty debt not found")
)

// Exit codes per error category. Success is 0; unclassified errors exit 1.
const (
	ExitUsage     = 2
	ExitNotFound  = 3
	ExitAmbiguous = 4
	ExitIO        = 5
)

// UsageError represents malformed input that the user can fix.
// Examples: bad date, bad schedule pattern, conflicting flags.
type UsageError struct {
	Message    string // What happened
	Suggestion string // How to fix it (optional)
}

func (e *UsageError) Error() string {
	return e.Message
}

// NewUsageError creates a new UsageError.
func NewUsageError(message string) *UsageError {
	return &UsageError{Message: message}
}

// NewUsageErrorf creates a new UsageError with a formatted message.
func NewUsageErrorf(format string, args ...any) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError represents a reference to an entity that does not exist.
type NotFoundError struct {
	Message string
	Cause   error // Sentinel such as ErrHabitNotFound (optional)
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func (e *NotFoundError) Unwrap() error {
	return e.Cause
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(message string, cause error) *NotFoundError {
	return &NotFoundError{Message: message, Cause: cause}
}

// AmbiguousError represents a selector that matched more than one habit.
// Candidates holds "id name" strings for every match so the CLI can
// enumerate them.
type AmbiguousError struct {
	Selector   string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("Ambiguous selector '%s'. Candidates: %s",
		e.Selector, strings.Join(e.Candidates, ", "))
}

// NewAmbiguousError creates a new AmbiguousError.
func NewAmbiguousError(selector string, candidates []string) *AmbiguousError {
	return &AmbiguousError{Selector: selector, Candidates: candidates}
}

// IOError represents a store or filesystem failure the user cannot
// directly fix: unreadable file, lock contention, failed write.
type IOError struct {
	Message string // What happened
	Cause   error  // The underlying error
	Op      string // The operation that failed (optional)
}

func (e *IOError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s during %s", e.Message, e.Op)
	}
	return e.Message
}

func (e *IOError) Unwrap() error {
	return e.Cause
}

// NewIOError creates a new IOError.
func NewIOError(message string, cause error) *IOError {
	return &IOError{Message: message, Cause: cause}
}

// NewIOErrorWithOp creates a new IOError with operation context.
func NewIOErrorWithOp(op, message string, cause error) *IOError {
	return &IOError{Message: message, Cause: cause, Op: op}
}

// IsUsageError checks if an error is a UsageError.
func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

// IsNotFoundError checks if an error is a NotFoundError.
func IsNotFoundError(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

// IsAmbiguousError checks if an error is an AmbiguousError.
func IsAmbiguousError(err error) bool {
	var ae *AmbiguousError
	return errors.As(err, &ae)
}

// IsIOError checks if an error is an IOError.
func IsIOError(err error) bool {
	var ioe *IOError
	return errors.As(err, &ioe)
}

// AsUsageError extracts a UsageError from an error chain.
func AsUsageError(err error) (*UsageError, bool) {
	var ue *UsageError
	ok := errors.As(err, &ue)
	return ue, ok
}

// AsAmbiguousError extracts an AmbiguousError from an error chain.
func AsAmbiguousError(err error) (*AmbiguousError, bool) {
	var ae *AmbiguousError
	ok := errors.As(err, &ae)
	return ae, ok
}

// ExitCode maps an error to the CLI exit code contract.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case IsUsageError(err):
		return ExitUsage
	case IsNotFoundError(err):
		return ExitNotFound
	case IsAmbiguousError(err):
		return ExitAmbiguous
	case IsIOError(err):
		return ExitIO
	default:
		return 1
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
