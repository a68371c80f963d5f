package runtime_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/casefile/internal/runtime"
	"github.com/aretw0/casefile/pkg/adapters/memory"
	"github.com/aretw0/casefile/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	majorA   = "major-body"
	majorB   = "major-digital-trace"
	minorA1  = "major-body-1"
	minorA2  = "major-body-2"
	minorA3  = "major-body-3"
	minorB1  = "major-digital-trace-1"
	minorB2  = "major-digital-trace-2"
	accuseOK = "accuse-suspect-b"
	accuseNo = "accuse-suspect-a"
)

func newEngine(t *testing.T) *runtime.Engine {
	t.Helper()
	return runtime.NewEngine(memory.SeedTestInvestigation())
}

func newSession() *domain.Session {
	return domain.NewSession("sess-1", memory.TestPodcastID, time.Unix(0, 0))
}

// step applies cmd and fails the test on rejection.
func step(t *testing.T, e *runtime.Engine, s *domain.Session, op domain.Operation, target string) *domain.Session {
	t.Helper()
	next, _, err := e.Apply(context.Background(), s, runtime.Command{Op: op, Target: target})
	require.NoError(t, err, "%s(%s) from %s", op, target, s.State)
	require.NoError(t, next.CheckInvariants(2), "invariants after %s", op)
	return next
}

// exploreMajor plays a full major branch sub-flow: pick, intro, two minors.
func exploreMajor(t *testing.T, e *runtime.Engine, s *domain.Session, major, first, second string) *domain.Session {
	t.Helper()
	s = step(t, e, s, domain.OpSelectMajorBranch, major)
	assert.Equal(t, domain.StateMainIntro, s.State)
	assert.Equal(t, major, s.CurrentMajorBranchID)
	s = step(t, e, s, domain.OpFinishMainIntro, "")
	s = step(t, e, s, domain.OpSelectSubBranch, first)
	assert.Equal(t, domain.StateSubPlaying, s.State)
	s = step(t, e, s, domain.OpReturnToSubSelection, "")
	s = step(t, e, s, domain.OpSelectSubBranch, second)
	s = step(t, e, s, domain.OpFinishSubBranch, "")
	assert.Equal(t, domain.StateMainSelection, s.State)
	assert.Empty(t, s.CurrentMajorBranchID)
	return s
}

func TestEngine_FullInvestigation(t *testing.T) {
	e := newEngine(t)
	s := newSession()

	s = step(t, e, s, domain.OpStartInvestigation, "")
	assert.Equal(t, domain.StateMainSelection, s.State)

	s = exploreMajor(t, e, s, majorA, minorA1, minorA2)
	s = exploreMajor(t, e, s, majorB, minorB1, minorB2)

	s = step(t, e, s, domain.OpProceedToAccusations, "")
	assert.Equal(t, domain.StateAccusationIntro, s.State)
	s = step(t, e, s, domain.OpFinishAccusationIntro, "")

	final, verdict, err := e.Apply(context.Background(), s, runtime.Command{Op: domain.OpSelectAccusation, Target: accuseOK})
	require.NoError(t, err)
	require.NotNil(t, verdict)
	assert.True(t, verdict.IsCorrect)
	assert.Equal(t, "https://example.com/accusation/suspect-b.mp3", verdict.ResultAudio)
	assert.Equal(t, domain.StateResult, final.State)

	assert.Equal(t, []string{majorA, majorB}, final.SelectedMajorBranches)
	assert.Equal(t, []string{minorA1, minorA2}, final.SelectedSubBranches[majorA])
	assert.Equal(t, []string{minorB1, minorB2}, final.SelectedSubBranches[majorB])
}

func TestEngine_WrongAccusation(t *testing.T) {
	e := newEngine(t)
	s := newSession()
	s.State = domain.StateAccusationSelection

	next, verdict, err := e.Apply(context.Background(), s, runtime.Command{Op: domain.OpSelectAccusation, Target: accuseNo})
	require.NoError(t, err)
	assert.False(t, verdict.IsCorrect)
	assert.Equal(t, domain.StateResult, next.State)
}

func TestEngine_ResultIsTerminal(t *testing.T) {
	e := newEngine(t)
	s := newSession()
	s.State = domain.StateResult

	ops := []domain.Operation{
		domain.OpStartInvestigation, domain.OpSelectMajorBranch, domain.OpFinishMainIntro,
		domain.OpSelectSubBranch, domain.OpReturnToSubSelection, domain.OpFinishSubBranch,
		domain.OpProceedToAccusations, domain.OpFinishAccusationIntro, domain.OpSelectAccusation,
	}
	for _, op := range ops {
		_, _, err := e.Apply(context.Background(), s, runtime.Command{Op: op, Target: accuseOK})
		assert.ErrorIs(t, err, domain.ErrInvalidState, "%s after RESULT", op)
	}
}

func TestEngine_UnknownOperation(t *testing.T) {
	e := newEngine(t)
	_, _, err := e.Apply(context.Background(), newSession(), runtime.Command{Op: "jump"})
	assert.Error(t, err)
	assert.Equal(t, domain.Kind(""), domain.KindOf(err))
}
