package runtime

import (
	"context"

	"github.com/aretw0/casefile/pkg/domain"
)

// Resolve maps an "audio finished" signal issued while the Session was in from onto
// the transition it triggers. The signal is pinned to from, so a late duplicate that
// arrives after the Session moved on is rejected as InvalidState instead of being
// reinterpreted against the new state.
func (e *Engine) Resolve(ctx context.Context, s *domain.Session, from domain.State) (Command, error) {
	if s.State != from {
		return Command{}, &domain.Error{
			Kind:  domain.KindInvalidState,
			State: s.State,
			Msg:   "signal was issued in " + string(from),
		}
	}
	majors, err := e.content.ListMajorBranches(ctx, s.PodcastID)
	if err != nil {
		return Command{}, err
	}
	op, ok := domain.AutoOperation(s, len(majors))
	if !ok {
		return Command{}, &domain.Error{
			Kind:  domain.KindInvalidState,
			State: s.State,
			Msg:   "state waits for a selection, not an audio signal",
		}
	}
	return Command{Op: op}, nil
}
