// Package intent turns decoded command-line input into the single operation
// a rid invocation performs.
package intent

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrConflict is returned when more than one operation is requested.
	ErrConflict = errors.New("only one of NAME, --list, --add or --remove may be given")

	// ErrMissingOperand is returned when an operation lacks its operands.
	ErrMissingOperand = errors.New("missing operand")

	// ErrExtraArgs is returned when a lookup is given more than one NAME.
	ErrExtraArgs = errors.New("unexpected arguments")

	// ErrNotUTF8 is returned when a name or id is not valid UTF-8 text.
	ErrNotUTF8 = errors.New("argument is not valid UTF-8")
)

// Kind identifies the operation.
type Kind int

const (
	Lookup Kind = iota
	List
	Add
	Remove
)

func (k Kind) String() string {
	switch k {
	case Lookup:
		return "lookup"
	case List:
		return "list"
	case Add:
		return "add"
	case Remove:
		return "remove"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Intent is one operation with its operands. Build it with Parse or the
// New* constructors; the zero value is not a valid intent.
type Intent struct {
	Kind Kind
	Name string
	ID   string // Add only

	// Lookup only
	Print bool
	Copy  bool
}

// NewLookup returns a lookup of name.
func NewLookup(name string, printID, copyID bool) Intent {
	return Intent{Kind: Lookup, Name: name, Print: printID, Copy: copyID}
}

// NewList returns a list intent.
func NewList() Intent {
	return Intent{Kind: List}
}

// NewAdd returns an add of id under name.
func NewAdd(name, id string) Intent {
	return Intent{Kind: Add, Name: name, ID: id}
}

// NewRemove returns a removal of name.
func NewRemove(name string) Intent {
	return Intent{Kind: Remove, Name: name}
}

// Inputs is the raw command-line state.
type Inputs struct {
	Args      []string // Positional arguments
	List      bool
	Add       bool // With Add the positional args are NAME and ID
	Remove    string
	RemoveSet bool
	Print     bool
	NoCopy    bool
}

// Parse validates in and returns the one intent it selects.
func Parse(in Inputs) (Intent, error) {
	var selected []string
	if len(in.Args) > 0 && !in.Add {
		selected = append(selected, "NAME")
	}
	if in.List {
		selected = append(selected, "--list")
	}
	if in.Add {
		selected = append(selected, "--add")
	}
	if in.RemoveSet {
		selected = append(selected, "--remove")
	}
	// --add takes exactly NAME and ID; a third positional is a lookup NAME
	if in.Add && len(in.Args) > 2 {
		selected = append([]string{"NAME"}, selected...)
	}
	if len(selected) > 1 {
		return Intent{}, fmt.Errorf("%w (got %s)", ErrConflict, strings.Join(selected, ", "))
	}

	for _, arg := range in.Args {
		if !utf8.ValidString(arg) {
			return Intent{}, fmt.Errorf("%w: %q", ErrNotUTF8, arg)
		}
	}
	if !utf8.ValidString(in.Remove) {
		return Intent{}, fmt.Errorf("%w: %q", ErrNotUTF8, in.Remove)
	}

	switch {
	case in.List:
		return NewList(), nil
	case in.Add:
		if len(in.Args) != 2 || in.Args[0] == "" {
			return Intent{}, fmt.Errorf("%w: name and/or id to add not specified", ErrMissingOperand)
		}
		return NewAdd(in.Args[0], in.Args[1]), nil
	case in.RemoveSet:
		if in.Remove == "" {
			return Intent{}, fmt.Errorf("%w: id to remove not specified", ErrMissingOperand)
		}
		return NewRemove(in.Remove), nil
	}

	switch len(in.Args) {
	case 0:
		return Intent{}, fmt.Errorf("%w: no id name specified", ErrMissingOperand)
	case 1:
		if in.Args[0] == "" {
			return Intent{}, fmt.Errorf("%w: no id name specified", ErrMissingOperand)
		}
		return NewLookup(in.Args[0], in.Print, !in.NoCopy), nil
	default:
		return Intent{}, fmt.Errorf("%w: expected one NAME, got %d", ErrExtraArgs, len(in.Args))
	}
}
