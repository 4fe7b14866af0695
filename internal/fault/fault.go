package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. The set is closed; callers switch over it.
type Kind uint8

const (
	// Unknown is never constructed directly; KindOf returns it for errors
	// that carry no Kind.
	Unknown Kind = iota
	NotFound
	Store
	InvalidSecret
	IndexCorrupt
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case Store:
		return "credential store error"
	case InvalidSecret:
		return "invalid secret"
	case IndexCorrupt:
		return "index corrupt"
	default:
		return "unknown error"
	}
}

// Error is a classified failure
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "get"
	Name string // secret name involved, if any
	Err  error  // underlying cause, may be nil
}

// E builds an *Error
func E(kind Kind, op, name string, err error) *Error {
	return &Error{Kind: kind, Op: op, Name: name, Err: err}
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Name != "" {
		msg = fmt.Sprintf("%s: %q", msg, e.Name)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unknown
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
