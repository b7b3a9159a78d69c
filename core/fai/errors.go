package fai

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind classifies every error returned by this package.
type Kind uint8

const (
	KindNotFound     Kind = iota + 1 // missing file, missing sidecar, unknown record
	KindFormat                       // malformed FASTA or a geometry-changing write
	KindIndexCorrupt                 // sidecar row does not parse into five fields
	KindRange                        // coordinate outside [0, length]
	KindClosed                       // store used after Close
	KindReadOnly                     // write on a store opened with OpenReadOnly
	KindIO                           // underlying read/write/seek failure
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindFormat:
		return "format error"
	case KindIndexCorrupt:
		return "index corrupt"
	case KindRange:
		return "range error"
	case KindClosed:
		return "store closed"
	case KindReadOnly:
		return "read-only store"
	case KindIO:
		return "i/o error"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Sentinels for errors.Is; they match any *Error of the same Kind.
var (
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrFormat       = &Error{Kind: KindFormat}
	ErrIndexCorrupt = &Error{Kind: KindIndexCorrupt}
	ErrRange        = &Error{Kind: KindRange}
	ErrClosed       = &Error{Kind: KindClosed}
	ErrReadOnly     = &Error{Kind: KindReadOnly}
)

// Error is the single error type surfaced by the index builder and the store.
// Op names the failing operation ("build", "read", ...); Path, Name and Detail
// are filled in when known.
type Error struct {
	Kind   Kind
	Op     string
	Path   string
	Name   string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("fai")
	if e.Op != "" {
		b.WriteString(" ")
		b.WriteString(e.Op)
	}
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.Name != "" {
		fmt.Fprintf(&b, " [%s]", e.Name)
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.String())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, k Kind) bool { return err != nil && KindOf(err) == k }

func newErr(k Kind, op, path, name, format string, a ...any) *Error {
	return &Error{Kind: k, Op: op, Path: path, Name: name, Detail: fmt.Sprintf(format, a...)}
}

// ioErr wraps an OS failure, keeping a stack for %+v and promoting
// fs.ErrNotExist to KindNotFound.
func ioErr(op, path string, err error) *Error {
	k := KindIO
	if isNotExist(err) {
		k = KindNotFound
	}
	return &Error{Kind: k, Op: op, Path: path, Err: errors.WithStack(err)}
}
