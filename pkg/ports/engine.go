package ports

import (
	"context"

	"github.com/aretw0/casefile/pkg/domain"
)

// SessionEngine is the operation surface driving adapters depend on.
// Every call names its Session explicitly; there is no ambient current session.
type SessionEngine interface {
	CreateSession(ctx context.Context, podcastID string) (*domain.Session, error)
	Session(ctx context.Context, sessionID string) (*domain.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	ListSessions(ctx context.Context) ([]string, error)

	StartInvestigation(ctx context.Context, sessionID string) (*domain.Session, error)
	SelectMajorBranch(ctx context.Context, sessionID, majorBranchID string) (*domain.Session, error)
	FinishMainIntro(ctx context.Context, sessionID string) (*domain.Session, error)
	SelectSubBranch(ctx context.Context, sessionID, minorBranchID string) (*domain.Session, error)
	ReturnToSubSelection(ctx context.Context, sessionID string) (*domain.Session, error)
	FinishSubBranch(ctx context.Context, sessionID string) (*domain.Session, error)
	ProceedToAccusations(ctx context.Context, sessionID string) (*domain.Session, error)
	FinishAccusationIntro(ctx context.Context, sessionID string) (*domain.Session, error)
	SelectAccusation(ctx context.Context, sessionID, accusationID string) (*domain.Session, domain.Verdict, error)

	Advance(ctx context.Context, sessionID string, from domain.State) (*domain.Session, error)
	View(ctx context.Context, sessionID string) (*domain.View, error)

	Content() ContentStore
}
