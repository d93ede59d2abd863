// Package kvserrors defines Ember's single error type.
//
// Earlier iterations of this codebase split errors into per-layer types
// (StorageError, IndexError, ValidationError, each embedding a shared base).
// That hierarchy pulled its weight when every layer needed its own bespoke
// context fields, but it made simple questions like "was this a KeyNotFound"
// require type assertions against whichever layer happened to produce the
// error. Ember collapses that into one flat sum type with a Kind tag and a
// small set of optional fields that cover every layer: key, segment index,
// and byte offset.
package kvserrors

import (
	"errors"
	"fmt"
)

// Kind categorizes what went wrong, independent of which component raised it.
type Kind string

const (
	// KindIO covers any failed read, write, seek, open, or flush.
	KindIO Kind = "io"
	// KindEncoding covers failures to serialize or deserialize a command record.
	KindEncoding Kind = "encoding"
	// KindKeyNotFound is returned when removing an absent key.
	KindKeyNotFound Kind = "key_not_found"
	// KindProtocol covers index/record inconsistencies and malformed wire requests.
	KindProtocol Kind = "protocol"
)

// Error is Ember's single error type. Every failure surfaced across the
// store, engine, and network layers is one of these, tagged by Kind.
type Error struct {
	Kind         Kind
	Message      string
	Cause        error
	Key          string
	SegmentIndex int
	Offset       int64

	hasSegment bool
}

// New creates an Error of the given kind with a message and no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error of the given kind that wraps an underlying cause.
func Wrap(kind Kind, cause error, message string) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// WithKey returns a copy of e with the key that was being operated on
// attached. It copies rather than mutates e because sentinels like
// KeyNotFound are shared package-level values.
func (e *Error) WithKey(key string) *Error {
	clone := *e
	clone.Key = key
	return &clone
}

// WithLocation returns a copy of e with the segment index and byte offset
// involved in the error attached. It copies for the same reason WithKey
// does.
func (e *Error) WithLocation(segmentIndex int, offset int64) *Error {
	clone := *e
	clone.SegmentIndex = segmentIndex
	clone.Offset = offset
	clone.hasSegment = true
	return &clone
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Key != "" {
		msg = fmt.Sprintf("%s (key=%q)", msg, e.Key)
	}
	if e.hasSegment {
		msg = fmt.Sprintf("%s (segment=%d offset=%d)", msg, e.SegmentIndex, e.Offset)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, kvserrors.New(kind, "")) match on Kind alone,
// regardless of message or wrapped cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KeyNotFound is the canonical sentinel for "the key is absent" used with errors.Is.
var KeyNotFound = &Error{Kind: KindKeyNotFound, Message: "key not found"}

// IsKeyNotFound reports whether err is (or wraps) a KindKeyNotFound error.
func IsKeyNotFound(err error) bool {
	return errors.Is(err, KeyNotFound)
}

// KindOf extracts the Kind from err, or KindIO if err isn't an *Error
// (the safest default: callers should treat unrecognized failures as
// opaque I/O-ish failures rather than silently succeeding).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindIO
}

// IO wraps cause as a KindIO error.
func IO(cause error, message string) *Error {
	return Wrap(KindIO, cause, message)
}

// Encoding wraps cause as a KindEncoding error.
func Encoding(cause error, message string) *Error {
	return Wrap(KindEncoding, cause, message)
}

// Protocol creates a KindProtocol error with no wrapped cause.
func Protocol(message string) *Error {
	return New(KindProtocol, message)
}
