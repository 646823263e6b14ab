package idstore

import (
	"errors"
	"fmt"
)

// Common errors returned by the store.
var (
	// ErrNotFound indicates no id is stored under the requested name.
	ErrNotFound = errors.New("id not found")

	// ErrInvalidName indicates an empty name was given to a mutation.
	ErrInvalidName = errors.New("name must not be empty")

	// ErrInvalidUTF8 indicates a name or id that is not valid UTF-8 text.
	// No codec can store such bytes faithfully.
	ErrInvalidUTF8 = errors.New("name and id must be valid UTF-8")

	// ErrDecode indicates the id file exists but is not a flat string mapping.
	ErrDecode = errors.New("malformed id file")
)

// NotFoundError reports a lookup of a name that is not stored.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("id `%s` not found", e.Name)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// DecodeError reports id file contents that could not be decoded.
type DecodeError struct {
	Path   string
	Format string // Codec name (toml, json, yaml)
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("parsing %s id file %s: %v", e.Format, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }
