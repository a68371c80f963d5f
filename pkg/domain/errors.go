package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies why an operation was rejected.
type Kind string

const (
	KindNotFound           Kind = "NotFound"
	KindOwnershipMismatch  Kind = "OwnershipMismatch"
	KindInvalidState       Kind = "InvalidState"
	KindQuotaExceeded      Kind = "QuotaExceeded"
	KindDuplicateSelection Kind = "DuplicateSelection"
)

// Entity names used in error reports.
const (
	EntitySession     = "session"
	EntityPodcast     = "podcast"
	EntityMajorBranch = "major branch"
	EntityMinorBranch = "minor branch"
	EntityAccusation  = "accusation"
)

// Sentinel errors, one per Kind. Use errors.Is against these.
var (
	ErrNotFound           = errors.New("not found")
	ErrOwnershipMismatch  = errors.New("ownership mismatch")
	ErrInvalidState       = errors.New("invalid state")
	ErrQuotaExceeded      = errors.New("quota exceeded")
	ErrDuplicateSelection = errors.New("duplicate selection")
)

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = fmt.Errorf("session %w", ErrNotFound)

// ErrVersionConflict is returned by a SessionStore when the stored version moved
// under a compare-and-swap save. It never leaves the session manager.
var ErrVersionConflict = errors.New("session version conflict")

var sentinels = map[Kind]error{
	KindNotFound:           ErrNotFound,
	KindOwnershipMismatch:  ErrOwnershipMismatch,
	KindInvalidState:       ErrInvalidState,
	KindQuotaExceeded:      ErrQuotaExceeded,
	KindDuplicateSelection: ErrDuplicateSelection,
}

// Error is a rejected operation. The Session it targeted was not modified.
type Error struct {
	Kind   Kind
	Op     Operation
	Entity string
	ID     string
	State  State
	Msg    string
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Op != "" {
		sb.WriteString(string(e.Op))
		sb.WriteString(": ")
	}
	sb.WriteString(string(e.Kind))
	if e.Msg != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Msg)
	}
	if e.Entity != "" && e.ID != "" {
		fmt.Fprintf(&sb, " (%s %q)", e.Entity, e.ID)
	}
	if e.State != "" {
		fmt.Fprintf(&sb, " [state %s]", e.State)
	}
	return sb.String()
}

// Unwrap exposes the Kind sentinel.
func (e *Error) Unwrap() error {
	return sentinels[e.Kind]
}

// NotFound builds a KindNotFound error for entity/id.
func NotFound(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, ID: id, Msg: entity + " not found"}
}

// KindOf extracts the Kind of err, or "" when err is not a rejection.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	for k, s := range sentinels {
		if errors.Is(err, s) {
			return k
		}
	}
	return ""
}

// IsBenign reports whether err comes from a late or duplicate trigger.
// Driving collaborators ignore these instead of surfacing them.
func IsBenign(err error) bool {
	return errors.Is(err, ErrInvalidState)
}
