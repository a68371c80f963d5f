package middleware

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/casefile/pkg/domain"
	"github.com/aretw0/casefile/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.SessionStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs store failures at Error.
// Version conflicts and missing sessions are expected outcomes and stay at Debug.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.SessionStore) ports.SessionStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(ctx context.Context, op, id string, err error) {
	if err == nil {
		return
	}
	level := slog.LevelError
	if errors.Is(err, domain.ErrVersionConflict) || errors.Is(err, domain.ErrNotFound) {
		level = slog.LevelDebug
	}
	m.logger.Log(ctx, level, "session store call failed", "op", op, "session_id", id, "err", err)
}

func (m *loggingMiddleware) Save(ctx context.Context, s *domain.Session, expectedVersion int64) error {
	err := m.next.Save(ctx, s, expectedVersion)
	m.log(ctx, "save", s.ID, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, id string) (*domain.Session, error) {
	s, err := m.next.Load(ctx, id)
	m.log(ctx, "load", id, err)
	return s, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, id string) error {
	err := m.next.Delete(ctx, id)
	m.log(ctx, "delete", id, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	ids, err := m.next.List(ctx)
	m.log(ctx, "list", "", err)
	return ids, err
}
