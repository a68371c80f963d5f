package casefile

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/casefile/internal/logging"
	"github.com/aretw0/casefile/internal/runtime"
	"github.com/aretw0/casefile/pkg/adapters/memory"
	"github.com/aretw0/casefile/pkg/domain"
	"github.com/aretw0/casefile/pkg/ports"
	"github.com/aretw0/casefile/pkg/session"
)

// Version is the engine release reported by the CLI and the /info endpoint.
const Version = "0.4.0"

// Engine is the high-level entry point for the casefile library.
// It wraps the runtime core with persistence, locking and lifecycle hooks.
type Engine struct {
	runtime  *runtime.Engine
	sessions *session.Manager
	content  ports.ContentStore

	store   ports.SessionStore
	locker  ports.DistributedLocker
	lockTTL time.Duration
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	newID   func() string
	now     func() time.Time
}

var _ ports.SessionEngine = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore sets the session store. Defaults to an in-memory store.
func WithStore(store ports.SessionStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker enables distributed locking across replicas.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithLockTTL sets the TTL of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(e *Engine) {
		e.lockTTL = ttl
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithIDGenerator overrides how session ids are minted. Defaults to random UUIDs.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// WithClock overrides the time source used for CreatedAt/UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New initializes an Engine serving the given content.
func New(content ports.ContentStore, opts ...Option) (*Engine, error) {
	if content == nil {
		return nil, errors.New("content store is required")
	}
	eng := &Engine{content: content}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.newID == nil {
		eng.newID = uuid.NewString
	}
	if eng.now == nil {
		eng.now = time.Now
	}

	mgrOpts := []session.Option{session.WithLogger(eng.logger)}
	if eng.locker != nil {
		mgrOpts = append(mgrOpts, session.WithLocker(eng.locker), session.WithLockTTL(eng.lockTTL))
	}
	eng.sessions = session.NewManager(eng.store, mgrOpts...)
	eng.runtime = runtime.NewEngine(content, runtime.WithLogger(eng.logger))
	return eng, nil
}

// Content returns the read-only content collaborator.
func (e *Engine) Content() ports.ContentStore {
	return e.content
}

// CreateSession starts a new Session for podcastID in INTRO.
func (e *Engine) CreateSession(ctx context.Context, podcastID string) (*domain.Session, error) {
	if _, err := e.content.GetPodcast(ctx, podcastID); err != nil {
		e.rejected(ctx, "", domain.OpCreate, "", err)
		return nil, err
	}

	s := domain.NewSession(e.newID(), podcastID, e.now())
	if err := e.sessions.Create(ctx, s); err != nil {
		return nil, err
	}

	e.logger.Info("Session created", "session_id", s.ID, "podcast_id", podcastID)
	if e.hooks.OnCreate != nil {
		e.hooks.OnCreate(ctx, s.Clone())
	}
	return s, nil
}

// Session returns the current snapshot of a Session.
func (e *Engine) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	return e.sessions.Load(ctx, sessionID)
}

// DeleteSession removes a Session.
func (e *Engine) DeleteSession(ctx context.Context, sessionID string) error {
	if err := e.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	e.logger.Info("Session deleted", "session_id", sessionID)
	return nil
}

// ListSessions returns the ids of every stored Session.
func (e *Engine) ListSessions(ctx context.Context) ([]string, error) {
	return e.sessions.List(ctx)
}

// StartInvestigation moves INTRO to MAIN_SELECTION.
func (e *Engine) StartInvestigation(ctx context.Context, sessionID string) (*domain.Session, error) {
	s, _, err := e.apply(ctx, sessionID, runtime.Command{Op: domain.OpStartInvestigation})
	return s, err
}

// SelectMajorBranch picks a major branch and plays its intro.
func (e *Engine) SelectMajorBranch(ctx context.Context, sessionID, majorBranchID string) (*domain.Session, error) {
	s, _, err := e.apply(ctx, sessionID, runtime.Command{Op: domain.OpSelectMajorBranch, Target: majorBranchID})
	return s, err
}

// FinishMainIntro moves MAIN_INTRO to SUB_SELECTION.
func (e *Engine) FinishMainIntro(ctx context.Context, sessionID string) (*domain.Session, error) {
	s, _, err := e.apply(ctx, sessionID, runtime.Command{Op: domain.OpFinishMainIntro})
	return s, err
}

// SelectSubBranch picks a minor branch of the current major branch.
func (e *Engine) SelectSubBranch(ctx context.Context, sessionID, minorBranchID string) (*domain.Session, error) {
	s, _, err := e.apply(ctx, sessionID, runtime.Command{Op: domain.OpSelectSubBranch, Target: minorBranchID})
	return s, err
}

// ReturnToSubSelection goes back for the second minor pick.
func (e *Engine) ReturnToSubSelection(ctx context.Context, sessionID string) (*domain.Session, error) {
	s, _, err := e.apply(ctx, sessionID, runtime.Command{Op: domain.OpReturnToSubSelection})
	return s, err
}

// FinishSubBranch closes the current major branch after both picks.
func (e *Engine) FinishSubBranch(ctx context.Context, sessionID string) (*domain.Session, error) {
	s, _, err := e.apply(ctx, sessionID, runtime.Command{Op: domain.OpFinishSubBranch})
	return s, err
}

// ProceedToAccusations leaves MAIN_SELECTION once the major quota is met.
func (e *Engine) ProceedToAccusations(ctx context.Context, sessionID string) (*domain.Session, error) {
	s, _, err := e.apply(ctx, sessionID, runtime.Command{Op: domain.OpProceedToAccusations})
	return s, err
}

// FinishAccusationIntro moves ACCUSATION_INTRO to ACCUSATION_SELECTION.
func (e *Engine) FinishAccusationIntro(ctx context.Context, sessionID string) (*domain.Session, error) {
	s, _, err := e.apply(ctx, sessionID, runtime.Command{Op: domain.OpFinishAccusationIntro})
	return s, err
}

// SelectAccusation records the final accusation and returns its Verdict.
func (e *Engine) SelectAccusation(ctx context.Context, sessionID, accusationID string) (*domain.Session, domain.Verdict, error) {
	s, v, err := e.apply(ctx, sessionID, runtime.Command{Op: domain.OpSelectAccusation, Target: accusationID})
	if err != nil {
		return nil, domain.Verdict{}, err
	}
	return s, *v, nil
}

// Advance reports that the audio started while the Session was in from has finished.
// A signal whose from no longer matches the Session is a late duplicate and is
// rejected as InvalidState.
func (e *Engine) Advance(ctx context.Context, sessionID string, from domain.State) (*domain.Session, error) {
	op := domain.OpAdvance
	var (
		before   domain.State
		snapshot *domain.Session
	)
	saved, err := e.sessions.Update(ctx, sessionID, func(ctx context.Context, cur *domain.Session) (*domain.Session, error) {
		before = cur.State
		snapshot = cur.Clone()
		cmd, err := e.runtime.Resolve(ctx, cur, from)
		if err != nil {
			return nil, err
		}
		op = cmd.Op
		next, _, err := e.runtime.Apply(ctx, cur, cmd)
		if err != nil {
			return nil, err
		}
		next.UpdatedAt = e.now()
		return next, nil
	})
	if err != nil {
		e.rejected(ctx, sessionID, op, before, err)
		return nil, err
	}
	e.transitioned(ctx, op, snapshot, saved, nil)
	return saved, nil
}

// View describes what to present for the Session without advancing it.
func (e *Engine) View(ctx context.Context, sessionID string) (*domain.View, error) {
	s, err := e.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return e.runtime.View(ctx, s)
}

func (e *Engine) apply(ctx context.Context, sessionID string, cmd runtime.Command) (*domain.Session, *domain.Verdict, error) {
	var (
		before   domain.State
		snapshot *domain.Session
		verdict  *domain.Verdict
	)
	saved, err := e.sessions.Update(ctx, sessionID, func(ctx context.Context, cur *domain.Session) (*domain.Session, error) {
		before = cur.State
		snapshot = cur.Clone()
		next, v, err := e.runtime.Apply(ctx, cur, cmd)
		if err != nil {
			return nil, err
		}
		next.UpdatedAt = e.now()
		verdict = v
		return next, nil
	})
	if err != nil {
		e.rejected(ctx, sessionID, cmd.Op, before, err)
		return nil, nil, err
	}
	e.transitioned(ctx, cmd.Op, snapshot, saved, verdict)
	return saved, verdict, nil
}

// transitioned reports a persisted transition. prev is the snapshot the winning
// Update attempt mutated, so the diff never includes another writer's changes.
func (e *Engine) transitioned(ctx context.Context, op domain.Operation, prev, s *domain.Session, v *domain.Verdict) {
	attrs := []any{"session_id", s.ID, "op", op, "from", prev.State, "to", s.State}
	if v != nil {
		attrs = append(attrs, "correct", v.IsCorrect)
	}
	e.logger.Info("Session transitioned", attrs...)

	if e.hooks.OnTransition != nil {
		e.hooks.OnTransition(ctx, &domain.TransitionEvent{
			EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventTransition, SessionID: s.ID},
			Op:        op,
			From:      prev.State,
			To:        s.State,
			Verdict:   v,
			Diff:      domain.Diff(prev, s),
		})
	}
}

// rejected logs a refused operation. Late duplicates are expected under normal play
// and stay at Info; every other rejection kind is a client mistake and goes to Warn.
func (e *Engine) rejected(ctx context.Context, sessionID string, op domain.Operation, state domain.State, err error) {
	kind := domain.KindOf(err)
	switch {
	case kind == "":
		e.logger.Error("Session operation failed", "session_id", sessionID, "op", op, "err", err)
		return
	case kind == domain.KindInvalidState:
		e.logger.Info("Operation rejected", "session_id", sessionID, "op", op, "kind", kind, "err", err)
	default:
		e.logger.Warn("Operation rejected", "session_id", sessionID, "op", op, "kind", kind, "err", err)
	}

	if e.hooks.OnReject != nil {
		e.hooks.OnReject(ctx, &domain.RejectionEvent{
			EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventRejection, SessionID: sessionID},
			Op:        op,
			State:     state,
			Kind:      kind,
			Err:       err.Error(),
		})
	}
}
