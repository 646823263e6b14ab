package resolver

import (
	"bytes"
	"errors"
	"path/filepath"
	"sort"
	"testing"

	"github.com/nextonesfaster/retrvid/internal/clipboard"
	"github.com/nextonesfaster/retrvid/internal/idstore"
	"github.com/nextonesfaster/retrvid/internal/intent"
)

// memStore is an in-memory Store that records mutations.
type memStore struct {
	entries map[string]string
	writes  int
	addErr  error
}

func newMemStore(entries map[string]string) *memStore {
	if entries == nil {
		entries = make(map[string]string)
	}
	return &memStore{entries: entries}
}

func (m *memStore) List() ([]string, bool) {
	if len(m.entries) == 0 {
		return nil, false
	}
	var names []string
	for name := range m.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, true
}

func (m *memStore) Lookup(name string) (string, error) {
	id, ok := m.entries[name]
	if !ok {
		return "", &idstore.NotFoundError{Name: name}
	}
	return id, nil
}

func (m *memStore) Add(name, id string) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.entries[name] = id
	m.writes++
	return nil
}

func (m *memStore) Remove(name string) (bool, error) {
	if _, ok := m.entries[name]; !ok {
		return false, nil
	}
	delete(m.entries, name)
	m.writes++
	return true, nil
}

// fakeClipboard records copied text or fails with err.
type fakeClipboard struct {
	copied []string
	err    error
}

func (f *fakeClipboard) Copy(text string) error {
	if f.err != nil {
		return f.err
	}
	f.copied = append(f.copied, text)
	return nil
}

func TestResolve_List(t *testing.T) {
	tests := []struct {
		name    string
		entries map[string]string
		want    string
	}{
		{"empty", nil, "no ids found\n"},
		{"two", map[string]string{"b": "2", "a": "1"}, "a\nb\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			r := New(newMemStore(tt.entries), nil, &out)
			if err := r.Resolve(intent.NewList()); err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestResolve_Add(t *testing.T) {
	store := newMemStore(nil)
	var out bytes.Buffer
	r := New(store, nil, &out)

	if err := r.Resolve(intent.NewAdd("work", "12345")); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got, want := out.String(), "added id with name work\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if store.entries["work"] != "12345" {
		t.Errorf("store entries = %v", store.entries)
	}
}

func TestResolve_AddError(t *testing.T) {
	wantErr := errors.New("disk full")
	store := newMemStore(nil)
	store.addErr = wantErr
	var out bytes.Buffer

	err := New(store, nil, &out).Resolve(intent.NewAdd("work", "12345"))
	if !errors.Is(err, wantErr) {
		t.Errorf("Resolve error = %v, want %v", err, wantErr)
	}
	if out.Len() != 0 {
		t.Errorf("output = %q, want nothing on failure", out.String())
	}
}

func TestResolve_Remove(t *testing.T) {
	store := newMemStore(map[string]string{"work": "12345", "home": "67890"})
	var out bytes.Buffer
	r := New(store, nil, &out)

	if err := r.Resolve(intent.NewRemove("home")); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := r.Resolve(intent.NewRemove("home")); err != nil {
		t.Fatalf("second Resolve: %v", err)
	}

	want := "removed id with name home\nno id with name home found\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
	if store.writes != 1 {
		t.Errorf("writes = %d, want 1", store.writes)
	}
}

func TestResolve_Lookup(t *testing.T) {
	tests := []struct {
		name       string
		print      bool
		copy       bool
		wantOut    string
		wantCopied int
	}{
		{"copy only", false, true, "copied id to the clipboard\n", 1},
		{"print only", true, false, "12345\n", 0},
		{"print and copy", true, true, "12345\ncopied id to the clipboard\n", 1},
		{"silent", false, false, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clip := &fakeClipboard{}
			var out bytes.Buffer
			r := New(newMemStore(map[string]string{"work": "12345"}), clip, &out)

			if err := r.Resolve(intent.NewLookup("work", tt.print, tt.copy)); err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if out.String() != tt.wantOut {
				t.Errorf("output = %q, want %q", out.String(), tt.wantOut)
			}
			if len(clip.copied) != tt.wantCopied {
				t.Fatalf("copied %d times, want %d", len(clip.copied), tt.wantCopied)
			}
			if tt.wantCopied > 0 && clip.copied[0] != "12345" {
				t.Errorf("copied %q, want 12345", clip.copied[0])
			}
		})
	}
}

func TestResolve_LookupNotFound(t *testing.T) {
	clip := &fakeClipboard{}
	var out bytes.Buffer
	r := New(newMemStore(nil), clip, &out)

	err := r.Resolve(intent.NewLookup("missing", true, true))
	if !errors.Is(err, idstore.ErrNotFound) {
		t.Fatalf("Resolve error = %v, want ErrNotFound", err)
	}
	if out.Len() != 0 || len(clip.copied) != 0 {
		t.Errorf("output = %q, copied = %v; want nothing", out.String(), clip.copied)
	}
}

func TestResolve_ClipboardError(t *testing.T) {
	clip := &fakeClipboard{err: &clipboard.Error{Err: clipboard.ErrClipboardUnavailable}}
	var out bytes.Buffer
	r := New(newMemStore(map[string]string{"work": "12345"}), clip, &out)

	err := r.Resolve(intent.NewLookup("work", true, true))
	var clipErr *clipboard.Error
	if !errors.As(err, &clipErr) {
		t.Fatalf("Resolve error = %v, want *clipboard.Error", err)
	}
	// The id was already printed before the copy failed
	if out.String() != "12345\n" {
		t.Errorf("output = %q, want %q", out.String(), "12345\n")
	}
}

func TestResolve_NilClipboard(t *testing.T) {
	var out bytes.Buffer
	r := New(newMemStore(map[string]string{"work": "12345"}), nil, &out)

	err := r.Resolve(intent.NewLookup("work", false, true))
	var clipErr *clipboard.Error
	if !errors.As(err, &clipErr) {
		t.Fatalf("Resolve error = %v, want *clipboard.Error", err)
	}
	if !errors.Is(err, clipboard.ErrClipboardUnavailable) {
		t.Errorf("Resolve error = %v, want ErrClipboardUnavailable", err)
	}
}

func TestResolve_WithFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retrvid", "ids.toml")
	store, err := idstore.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	var out bytes.Buffer
	r := New(store, nil, &out)
	steps := []intent.Intent{
		intent.NewAdd("work", "12345"),
		intent.NewLookup("work", true, false),
		intent.NewList(),
		intent.NewRemove("work"),
		intent.NewList(),
	}
	for _, in := range steps {
		if err := r.Resolve(in); err != nil {
			t.Fatalf("Resolve(%+v): %v", in, err)
		}
	}

	want := "added id with name work\n12345\nwork\nremoved id with name work\nno ids found\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}
