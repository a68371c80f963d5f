package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/casefile/internal/logging"
	"github.com/aretw0/casefile/pkg/domain"
	"github.com/aretw0/casefile/pkg/ports"
)

// Engine is the Session Engine core.
// It holds no session state: every call receives a Session snapshot and returns the next
// snapshot, or a *domain.Error and no snapshot. The input Session is never modified.
type Engine struct {
	content ports.ContentStore
	logger  *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates a new engine reading content from content.
func NewEngine(content ports.ContentStore, opts ...EngineOption) *Engine {
	e := &Engine{
		content: content,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Content returns the content collaborator.
func (e *Engine) Content() ports.ContentStore {
	return e.content
}

// Command is one requested transition. Target carries the selected entity id for
// selectMajorBranch, selectSubBranch and selectAccusation.
type Command struct {
	Op     domain.Operation
	Target string
}

// Apply runs cmd against s. On success it returns the next Session and, for
// selectAccusation only, the Verdict. On rejection s is left untouched and no Session is returned.
func (e *Engine) Apply(ctx context.Context, s *domain.Session, cmd Command) (*domain.Session, *domain.Verdict, error) {
	if s.Terminal() {
		return nil, nil, e.reject(cmd.Op, s, "session already reached its result")
	}

	next := s.Clone()
	var (
		verdict *domain.Verdict
		err     error
	)
	switch cmd.Op {
	case domain.OpStartInvestigation:
		err = e.startInvestigation(next)
	case domain.OpSelectMajorBranch:
		err = e.selectMajorBranch(ctx, next, cmd.Target)
	case domain.OpFinishMainIntro:
		err = e.finishMainIntro(next)
	case domain.OpSelectSubBranch:
		err = e.selectSubBranch(ctx, next, cmd.Target)
	case domain.OpReturnToSubSelection:
		err = e.returnToSubSelection(next)
	case domain.OpFinishSubBranch:
		err = e.finishSubBranch(next)
	case domain.OpProceedToAccusations:
		err = e.proceedToAccusations(ctx, next)
	case domain.OpFinishAccusationIntro:
		err = e.finishAccusationIntro(next)
	case domain.OpSelectAccusation:
		verdict, err = e.selectAccusation(ctx, next, cmd.Target)
	default:
		return nil, nil, fmt.Errorf("unknown operation %q", cmd.Op)
	}
	if err != nil {
		return nil, nil, withOp(err, cmd.Op)
	}

	if !domain.CanTransition(s.State, next.State) {
		// Unreachable unless a transition body disagrees with the edge table.
		return nil, nil, fmt.Errorf("%s produced illegal edge %s -> %s", cmd.Op, s.State, next.State)
	}
	quota, err := e.majorQuota(ctx, next)
	if err != nil {
		return nil, nil, err
	}
	if err := next.CheckInvariants(quota); err != nil {
		// Reported as a fault, not a rejection: the snapshot must never be saved.
		return nil, nil, fmt.Errorf("%s left session %s inconsistent: %v", cmd.Op, s.ID, err)
	}

	e.logger.Debug("transition applied",
		"session_id", s.ID,
		"op", cmd.Op,
		"from", s.State,
		"to", next.State,
	)
	return next, verdict, nil
}

// withOp stamps the operation on domain errors raised by helpers that do not know it.
func withOp(err error, op domain.Operation) error {
	if de, ok := err.(*domain.Error); ok && de.Op == "" {
		cp := *de
		cp.Op = op
		return &cp
	}
	return err
}
