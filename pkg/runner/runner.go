package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/casefile/internal/logging"
	"github.com/aretw0/casefile/pkg/domain"
	"github.com/aretw0/casefile/pkg/ports"
)

// Runner handles the play loop of one session using the provided IO.
// This allows for easy testing and integration with different frontends (CLI, TUI, etc).
type Runner struct {
	Engine  ports.SessionEngine
	Handler IOHandler
	Player  Player
	Logger  *slog.Logger
}

// New creates a Runner with a text handler on Stdin/Stdout and a LogPlayer on Stderr.
func New(engine ports.SessionEngine, opts ...Option) *Runner {
	r := &Runner{
		Engine: engine,
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	if r.Player == nil {
		r.Player = NewLogPlayer(os.Stderr, 0)
	}
	return r
}

// Run drives sessionID until it reaches RESULT, the listener leaves (nil error)
// or ctx is cancelled.
func (r *Runner) Run(ctx context.Context, sessionID string) error {
	for {
		view, err := r.Engine.View(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("view: %w", err)
		}
		if err := r.Handler.Present(ctx, view); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
		if view.Terminal {
			return nil
		}

		switch {
		case view.Next != "":
			r.play(ctx, view.Audio)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			_, err = r.Engine.Advance(ctx, sessionID, view.Session.State)

		case len(view.Choices) > 0:
			var choice string
			choice, err = r.Handler.Choose(ctx, view.Choices)
			if errors.Is(err, io.EOF) {
				r.Logger.Debug("listener left", "session_id", sessionID)
				return nil
			}
			if err != nil {
				return fmt.Errorf("input error: %w", err)
			}
			err = r.choose(ctx, view.Session, choice)

		default:
			return fmt.Errorf("session %s in %s has neither audio nor choices", sessionID, view.Session.State)
		}

		if err = r.settle(ctx, sessionID, err); err != nil {
			return err
		}
	}
}

// play treats a failed clip as finished so the listener is never stuck.
func (r *Runner) play(ctx context.Context, audio string) {
	if audio == "" {
		return
	}
	if err := r.Player.Play(ctx, audio); err != nil && ctx.Err() == nil {
		r.Logger.Warn("audio failed, continuing as finished", "audio", audio, "err", err)
	}
}

func (r *Runner) choose(ctx context.Context, s *domain.Session, id string) error {
	switch s.State {
	case domain.StateMainSelection:
		_, err := r.Engine.SelectMajorBranch(ctx, s.ID, id)
		return err
	case domain.StateSubSelection:
		_, err := r.Engine.SelectSubBranch(ctx, s.ID, id)
		return err
	case domain.StateAccusationSelection:
		_, verdict, err := r.Engine.SelectAccusation(ctx, s.ID, id)
		if err != nil {
			return err
		}
		if err := r.Handler.Verdict(ctx, verdict); err != nil {
			return err
		}
		r.play(ctx, verdict.ResultAudio)
		return nil
	}
	return fmt.Errorf("state %s does not take a selection", s.State)
}

// settle decides whether an operation error ends the loop.
// Benign rejections are dropped, rejections of the listener's pick are reported
// and the listener is asked again. Anything else is fatal.
func (r *Runner) settle(ctx context.Context, sessionID string, err error) error {
	if err == nil {
		return nil
	}
	if domain.IsBenign(err) {
		r.Logger.Debug("ignoring stale signal", "session_id", sessionID, "err", err)
		return nil
	}
	if isRetryable(err) {
		return r.Handler.SystemOutput(ctx, err.Error())
	}
	return err
}

// isRetryable is true for rejections caused by the chosen id, as opposed to a
// missing session or podcast.
func isRetryable(err error) bool {
	var de *domain.Error
	if !errors.As(err, &de) {
		return false
	}
	if de.Kind == domain.KindNotFound {
		return de.Entity != domain.EntitySession && de.Entity != domain.EntityPodcast
	}
	return true
}
