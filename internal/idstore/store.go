// Package idstore persists the name → id mapping in a single structured text file.
//
// The whole file is read on Load and rewritten on every mutation. Rewrites go
// through a temp file and rename, so readers never see a partial file.
package idstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

// DirMode is the permission used for missing parent directories.
const DirMode = 0755

// Store is the loaded id file.
type Store struct {
	path    string
	codec   Codec
	entries map[string]string
}

// Load reads the id file at path, creating it (and its parents) empty when missing.
// The codec is chosen from the file extension.
func Load(path string) (*Store, error) {
	return LoadWithCodec(path, CodecFor(path))
}

// LoadWithCodec is Load with an explicit codec.
func LoadWithCodec(path string, codec Codec) (*Store, error) {
	s := &Store{path: path, codec: codec}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := createEmpty(path); err != nil {
			return nil, err
		}
		log.Debug().Str("path", path).Msg("created empty id file")
		s.entries = make(map[string]string)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading id file: %w", err)
	}

	entries, err := codec.Decode(data)
	if err != nil {
		return nil, &DecodeError{Path: path, Format: codec.String(), Err: err}
	}
	s.entries = entries

	log.Debug().Str("path", path).Str("format", codec.String()).Int("entries", len(entries)).Msg("loaded id file")
	return s, nil
}

// createEmpty creates path as an empty file along with any missing parents.
func createEmpty(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), DirMode); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, FileMode)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil // Lost a race with another process; its file is fine
		}
		return fmt.Errorf("creating id file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("creating id file: %w", err)
	}
	return nil
}

// prepareLockPath makes sure the id file's directory exists and returns the
// sibling lock file path.
func prepareLockPath(path string) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirMode); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}
	return filepath.Join(dir, "."+filepath.Base(path)+".lock"), nil
}

// Path returns the id file path.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of stored ids.
func (s *Store) Len() int {
	return len(s.entries)
}

// List returns all names in ascending order.
// The bool is false when there are no entries at all.
func (s *Store) List() ([]string, bool) {
	if len(s.entries) == 0 {
		return nil, false
	}

	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, true
}

// Lookup returns the id stored under name.
func (s *Store) Lookup(name string) (string, error) {
	id, ok := s.entries[name]
	if !ok {
		return "", &NotFoundError{Name: name}
	}
	return id, nil
}

// Add stores id under name, replacing any previous id, and rewrites the file.
func (s *Store) Add(name, id string) error {
	if name == "" {
		return ErrInvalidName
	}
	if !utf8.ValidString(name) || !utf8.ValidString(id) {
		return ErrInvalidUTF8
	}

	prev, existed := s.entries[name]
	s.entries[name] = id
	if err := s.Save(); err != nil {
		// Keep memory consistent with disk
		if existed {
			s.entries[name] = prev
		} else {
			delete(s.entries, name)
		}
		return err
	}

	log.Debug().Str("name", name).Bool("replaced", existed).Msg("added id")
	return nil
}

// Remove deletes name and rewrites the file. It reports false, without
// writing, when name is not stored.
func (s *Store) Remove(name string) (bool, error) {
	if name == "" {
		return false, ErrInvalidName
	}

	prev, ok := s.entries[name]
	if !ok {
		return false, nil
	}

	delete(s.entries, name)
	if err := s.Save(); err != nil {
		s.entries[name] = prev
		return false, err
	}

	log.Debug().Str("name", name).Msg("removed id")
	return true, nil
}

// Save encodes every entry and replaces the id file.
func (s *Store) Save() error {
	data, err := s.codec.Encode(s.entries)
	if err != nil {
		return fmt.Errorf("encoding ids: %w", err)
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("writing id file: %w", err)
	}
	return nil
}
