package main

import (
	"errors"

	"github.com/nextonesfaster/retrvid/internal/clipboard"
	"github.com/nextonesfaster/retrvid/internal/config"
	"github.com/nextonesfaster/retrvid/internal/idstore"
	"github.com/nextonesfaster/retrvid/internal/intent"
)

// Exit codes
const (
	ExitSuccess        = 0 // Success, including removing a name that isn't stored
	ExitError          = 1 // General error (filesystem failures)
	ExitUsage          = 2 // Conflicting intents, bad operands, bad flags
	ExitConfigError    = 3 // No data directory could be determined
	ExitDataError      = 4 // Malformed id file
	ExitNotFound       = 5 // Lookup of a name that isn't stored
	ExitClipboardError = 6 // Clipboard backend missing or copy failed
)

// usageError marks flag parsing failures reported by cobra.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

// exitCode maps an error returned by the root command to a process exit code.
func exitCode(err error) int {
	var usageErr *usageError
	var clipErr *clipboard.Error

	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &usageErr),
		errors.Is(err, intent.ErrConflict),
		errors.Is(err, intent.ErrMissingOperand),
		errors.Is(err, intent.ErrExtraArgs),
		errors.Is(err, intent.ErrNotUTF8),
		errors.Is(err, idstore.ErrInvalidName),
		errors.Is(err, idstore.ErrInvalidUTF8):
		return ExitUsage
	case errors.Is(err, config.ErrNoDataDir):
		return ExitConfigError
	case errors.Is(err, idstore.ErrDecode):
		return ExitDataError
	case errors.Is(err, idstore.ErrNotFound):
		return ExitNotFound
	case errors.As(err, &clipErr), errors.Is(err, clipboard.ErrClipboardUnavailable):
		return ExitClipboardError
	default:
		return ExitError
	}
}
