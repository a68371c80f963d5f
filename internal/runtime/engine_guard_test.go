package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/casefile/internal/runtime"
	"github.com/aretw0/casefile/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionIn builds a Session parked in state with a plausible history.
func sessionIn(state domain.State) *domain.Session {
	s := newSession()
	s.State = state
	if state.InMajorSubFlow() {
		s.SelectedMajorBranches = []string{majorA}
		s.CurrentMajorBranchID = majorA
	}
	if state == domain.StateSubPlaying {
		s.SelectedSubBranches[majorA] = []string{minorA1}
	}
	return s
}

func TestEngine_InvalidStateLeavesSessionUnchanged(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	targets := map[domain.Operation]string{
		domain.OpSelectMajorBranch: majorB,
		domain.OpSelectSubBranch:   minorA2,
		domain.OpSelectAccusation:  accuseOK,
	}

	for op, guards := range domain.Guards {
		for _, state := range domain.States {
			if op.Allows(state) || state == domain.StateResult {
				continue
			}
			t.Run(string(op)+"_from_"+string(state), func(t *testing.T) {
				s := sessionIn(state)
				before := s.Clone()

				next, verdict, err := e.Apply(ctx, s, runtime.Command{Op: op, Target: targets[op]})

				assert.ErrorIs(t, err, domain.ErrInvalidState, "guards=%v", guards)
				assert.Nil(t, next)
				assert.Nil(t, verdict)
				assert.Equal(t, before, s, "rejected call must not mutate the session")
			})
		}
	}
}

func TestEngine_SelectMajorBranchGuards(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	t.Run("Unknown Major", func(t *testing.T) {
		_, _, err := e.Apply(ctx, sessionIn(domain.StateMainSelection), runtime.Command{Op: domain.OpSelectMajorBranch, Target: "ghost"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Duplicate Major", func(t *testing.T) {
		s := sessionIn(domain.StateMainSelection)
		s.SelectedMajorBranches = []string{majorA}
		_, _, err := e.Apply(ctx, s, runtime.Command{Op: domain.OpSelectMajorBranch, Target: majorA})
		assert.ErrorIs(t, err, domain.ErrDuplicateSelection)
	})

	t.Run("Quota Reached", func(t *testing.T) {
		s := sessionIn(domain.StateMainSelection)
		s.SelectedMajorBranches = []string{majorA, majorB}
		_, _, err := e.Apply(ctx, s, runtime.Command{Op: domain.OpSelectMajorBranch, Target: "major-social-circle"})
		assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
		assert.Len(t, s.SelectedMajorBranches, 2)
	})
}

func TestEngine_SelectSubBranchGuards(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	t.Run("Foreign Minor", func(t *testing.T) {
		s := sessionIn(domain.StateSubSelection)
		_, _, err := e.Apply(ctx, s, runtime.Command{Op: domain.OpSelectSubBranch, Target: minorB1})
		assert.ErrorIs(t, err, domain.ErrOwnershipMismatch)
	})

	t.Run("Duplicate Minor", func(t *testing.T) {
		s := sessionIn(domain.StateSubSelection)
		s.SelectedSubBranches[majorA] = []string{minorA1}
		_, _, err := e.Apply(ctx, s, runtime.Command{Op: domain.OpSelectSubBranch, Target: minorA1})
		assert.ErrorIs(t, err, domain.ErrDuplicateSelection)
	})

	t.Run("Third Minor", func(t *testing.T) {
		s := sessionIn(domain.StateMainSelection)
		s.State = domain.StateMainSelection
		s.CurrentMajorBranchID = ""
		s.SelectedMajorBranches = nil

		s = step(t, e, s, domain.OpSelectMajorBranch, majorA)
		s = step(t, e, s, domain.OpFinishMainIntro, "")
		s = step(t, e, s, domain.OpSelectSubBranch, minorA1)
		s = step(t, e, s, domain.OpReturnToSubSelection, "")
		s = step(t, e, s, domain.OpSelectSubBranch, minorA2)
		before := s.Clone()

		_, _, err := e.Apply(ctx, s, runtime.Command{Op: domain.OpSelectSubBranch, Target: minorA3})
		assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
		assert.Equal(t, before, s)
	})
}

func TestEngine_LoopEdgeFollowsCount(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	t.Run("Finish Before Two Picks", func(t *testing.T) {
		s := sessionIn(domain.StateSubPlaying)
		_, _, err := e.Apply(ctx, s, runtime.Command{Op: domain.OpFinishSubBranch})
		assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
	})

	t.Run("Return After Two Picks", func(t *testing.T) {
		s := sessionIn(domain.StateSubPlaying)
		s.SelectedSubBranches[majorA] = []string{minorA1, minorA2}
		_, _, err := e.Apply(ctx, s, runtime.Command{Op: domain.OpReturnToSubSelection})
		assert.ErrorIs(t, err, domain.ErrQuotaExceeded)

		next, _, err := e.Apply(ctx, s, runtime.Command{Op: domain.OpFinishSubBranch})
		require.NoError(t, err)
		assert.Equal(t, domain.StateMainSelection, next.State)
	})
}

func TestEngine_ProceedBeforeQuota(t *testing.T) {
	e := newEngine(t)
	s := sessionIn(domain.StateMainSelection)
	s.SelectedMajorBranches = []string{majorA}
	s.SelectedSubBranches[majorA] = []string{minorA1, minorA2}
	before := s.Clone()

	_, _, err := e.Apply(context.Background(), s, runtime.Command{Op: domain.OpProceedToAccusations})

	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
	assert.Equal(t, domain.StateMainSelection, s.State)
	assert.Equal(t, before, s)
}

func TestEngine_CorruptSnapshotIsNotReturned(t *testing.T) {
	e := newEngine(t)
	s := sessionIn(domain.StateMainIntro)
	s.SelectedMajorBranches = []string{majorA, majorA}

	next, _, err := e.Apply(context.Background(), s, runtime.Command{Op: domain.OpFinishMainIntro})

	require.Error(t, err)
	assert.Nil(t, next)
	assert.Contains(t, err.Error(), "inconsistent")
	assert.Empty(t, domain.KindOf(err), "a broken snapshot is a fault, not a guard rejection")
}

func TestEngine_ForeignAccusation(t *testing.T) {
	e := newEngine(t)
	s := sessionIn(domain.StateAccusationSelection)
	s.PodcastID = "other-podcast"

	_, _, err := e.Apply(context.Background(), s, runtime.Command{Op: domain.OpSelectAccusation, Target: accuseOK})
	assert.ErrorIs(t, err, domain.ErrOwnershipMismatch)
}
