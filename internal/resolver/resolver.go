// Package resolver runs one intent against the id store and renders the outcome.
package resolver

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/nextonesfaster/retrvid/internal/clipboard"
	"github.com/nextonesfaster/retrvid/internal/intent"
)

// Output lines.
const (
	MsgNoIDs   = "no ids found"
	MsgCopied  = "copied id to the clipboard"
	fmtAdded   = "added id with name %s"
	fmtRemoved = "removed id with name %s"
	fmtNoID    = "no id with name %s found"
)

// Store is the subset of *idstore.Store the resolver needs.
type Store interface {
	List() ([]string, bool)
	Lookup(name string) (string, error)
	Add(name, id string) error
	Remove(name string) (bool, error)
}

// Clipboard sets the system clipboard's text.
type Clipboard interface {
	Copy(text string) error
}

// Resolver dispatches intents onto a Store.
type Resolver struct {
	store Store
	clip  Clipboard
	out   io.Writer
}

// New returns a Resolver writing its output to out. clip may be nil when no
// lookup will copy.
func New(store Store, clip Clipboard, out io.Writer) *Resolver {
	return &Resolver{store: store, clip: clip, out: out}
}

// Resolve performs in and writes the human-readable result.
func (r *Resolver) Resolve(in intent.Intent) error {
	log.Debug().Stringer("intent", in.Kind).Str("name", in.Name).Msg("resolving")

	switch in.Kind {
	case intent.List:
		return r.list()
	case intent.Add:
		return r.add(in.Name, in.ID)
	case intent.Remove:
		return r.remove(in.Name)
	case intent.Lookup:
		return r.lookup(in)
	default:
		return fmt.Errorf("unknown intent %v", in.Kind)
	}
}

func (r *Resolver) list() error {
	names, ok := r.store.List()
	if !ok {
		return r.println(MsgNoIDs)
	}
	return r.println(strings.Join(names, "\n"))
}

func (r *Resolver) add(name, id string) error {
	if err := r.store.Add(name, id); err != nil {
		return err
	}
	return r.println(fmt.Sprintf(fmtAdded, name))
}

func (r *Resolver) remove(name string) error {
	removed, err := r.store.Remove(name)
	if err != nil {
		return err
	}
	if !removed {
		return r.println(fmt.Sprintf(fmtNoID, name))
	}
	return r.println(fmt.Sprintf(fmtRemoved, name))
}

func (r *Resolver) lookup(in intent.Intent) error {
	id, err := r.store.Lookup(in.Name)
	if err != nil {
		return err
	}

	if in.Print {
		if err := r.println(id); err != nil {
			return err
		}
	}

	if in.Copy {
		if r.clip == nil {
			return &clipboard.Error{Err: clipboard.ErrClipboardUnavailable}
		}
		if err := r.clip.Copy(id); err != nil {
			return err
		}
		return r.println(MsgCopied)
	}

	return nil
}

func (r *Resolver) println(line string) error {
	_, err := fmt.Fprintln(r.out, line)
	return err
}
