package ports

import (
	"context"

	"github.com/aretw0/casefile/pkg/domain"
)

// SessionStore defines the interface for persisting Sessions.
type SessionStore interface {
	// Save writes session if the stored version equals expectedVersion.
	// expectedVersion 0 means "create": it fails if the id already exists.
	// On mismatch it returns domain.ErrVersionConflict and writes nothing.
	Save(ctx context.Context, session *domain.Session, expectedVersion int64) error

	// Load retrieves the session for a given ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes the session for a given ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of stored sessions.
	List(ctx context.Context) ([]string, error)
}
