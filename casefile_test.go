package casefile_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/casefile"
	"github.com/aretw0/casefile/pkg/adapters/memory"
	"github.com/aretw0/casefile/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, opts ...casefile.Option) *casefile.Engine {
	t.Helper()
	seq := 0
	opts = append([]casefile.Option{
		casefile.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("session-%d", seq)
		}),
	}, opts...)
	eng, err := casefile.New(memory.SeedTestInvestigation(), opts...)
	require.NoError(t, err)
	return eng
}

func TestEngine_FullInvestigation(t *testing.T) {
	eng := newEngine(t)
	ctx := context.Background()

	s, err := eng.CreateSession(ctx, memory.TestPodcastID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateIntro, s.State)
	assert.Equal(t, int64(1), s.Version)

	_, err = eng.StartInvestigation(ctx, s.ID)
	require.NoError(t, err)

	for _, major := range []string{"major-body", "major-social-circle"} {
		_, err = eng.SelectMajorBranch(ctx, s.ID, major)
		require.NoError(t, err)
		_, err = eng.FinishMainIntro(ctx, s.ID)
		require.NoError(t, err)

		_, err = eng.SelectSubBranch(ctx, s.ID, major+"-1")
		require.NoError(t, err)
		_, err = eng.ReturnToSubSelection(ctx, s.ID)
		require.NoError(t, err)
		_, err = eng.SelectSubBranch(ctx, s.ID, major+"-3")
		require.NoError(t, err)
		s, err = eng.FinishSubBranch(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StateMainSelection, s.State)
		assert.Empty(t, s.CurrentMajorBranchID)
	}

	_, err = eng.ProceedToAccusations(ctx, s.ID)
	require.NoError(t, err)
	_, err = eng.FinishAccusationIntro(ctx, s.ID)
	require.NoError(t, err)

	final, verdict, err := eng.SelectAccusation(ctx, s.ID, "accuse-suspect-b")
	require.NoError(t, err)
	assert.True(t, verdict.IsCorrect)
	assert.Equal(t, "https://example.com/accusation/suspect-b.mp3", verdict.ResultAudio)
	assert.Equal(t, domain.StateResult, final.State)
	assert.Equal(t, []string{"major-body", "major-social-circle"}, final.SelectedMajorBranches)
	assert.Equal(t, []string{"major-body-1", "major-body-3"}, final.SelectedSubBranches["major-body"])

	_, err = eng.StartInvestigation(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "RESULT is terminal")
}

func TestEngine_FailureScenarios(t *testing.T) {
	eng := newEngine(t)
	ctx := context.Background()

	t.Run("Unknown Podcast", func(t *testing.T) {
		_, err := eng.CreateSession(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("Unknown Session", func(t *testing.T) {
		_, err := eng.StartInvestigation(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Third Minor Branch", func(t *testing.T) {
		s, err := eng.CreateSession(ctx, memory.TestPodcastID)
		require.NoError(t, err)
		_, err = eng.StartInvestigation(ctx, s.ID)
		require.NoError(t, err)
		_, err = eng.SelectMajorBranch(ctx, s.ID, "major-body")
		require.NoError(t, err)
		_, err = eng.FinishMainIntro(ctx, s.ID)
		require.NoError(t, err)
		_, err = eng.SelectSubBranch(ctx, s.ID, "major-body-1")
		require.NoError(t, err)
		_, err = eng.ReturnToSubSelection(ctx, s.ID)
		require.NoError(t, err)
		_, err = eng.SelectSubBranch(ctx, s.ID, "major-body-2")
		require.NoError(t, err)

		_, err = eng.SelectSubBranch(ctx, s.ID, "major-body-3")
		assert.ErrorIs(t, err, domain.ErrQuotaExceeded)

		stored, err := eng.Session(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, stored.SelectedSubBranches.Count("major-body"))
	})

	t.Run("Minor Of Another Major", func(t *testing.T) {
		s, err := eng.CreateSession(ctx, memory.TestPodcastID)
		require.NoError(t, err)
		_, err = eng.StartInvestigation(ctx, s.ID)
		require.NoError(t, err)
		_, err = eng.SelectMajorBranch(ctx, s.ID, "major-body")
		require.NoError(t, err)
		_, err = eng.FinishMainIntro(ctx, s.ID)
		require.NoError(t, err)

		_, err = eng.SelectSubBranch(ctx, s.ID, "major-digital-trace-1")
		assert.ErrorIs(t, err, domain.ErrOwnershipMismatch)
	})
}

func TestEngine_DuplicateSignalIsIgnored(t *testing.T) {
	eng := newEngine(t)
	ctx := context.Background()

	s, err := eng.CreateSession(ctx, memory.TestPodcastID)
	require.NoError(t, err)
	_, err = eng.StartInvestigation(ctx, s.ID)
	require.NoError(t, err)
	_, err = eng.SelectMajorBranch(ctx, s.ID, "major-body")
	require.NoError(t, err)

	first, err := eng.Advance(ctx, s.ID, domain.StateMainIntro)
	require.NoError(t, err)
	assert.Equal(t, domain.StateSubSelection, first.State)

	_, err = eng.Advance(ctx, s.ID, domain.StateMainIntro)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.True(t, domain.IsBenign(err))

	_, err = eng.FinishMainIntro(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	after, err := eng.Session(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, first.State, after.State)
	assert.Equal(t, first.Version, after.Version)
}

func TestEngine_LifecycleHooks(t *testing.T) {
	var (
		created     []string
		transitions []domain.TransitionEvent
		rejections  []domain.RejectionEvent
	)
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	eng := newEngine(t,
		casefile.WithClock(func() time.Time { return clock }),
		casefile.WithLifecycleHooks(domain.LifecycleHooks{
			OnCreate: func(_ context.Context, s *domain.Session) {
				created = append(created, s.ID)
			},
			OnTransition: func(_ context.Context, ev *domain.TransitionEvent) {
				transitions = append(transitions, *ev)
			},
			OnReject: func(_ context.Context, ev *domain.RejectionEvent) {
				rejections = append(rejections, *ev)
			},
		}),
	)
	ctx := context.Background()

	s, err := eng.CreateSession(ctx, memory.TestPodcastID)
	require.NoError(t, err)
	assert.Equal(t, clock, s.CreatedAt)

	_, err = eng.Advance(ctx, s.ID, domain.StateIntro)
	require.NoError(t, err)
	_, err = eng.FinishMainIntro(ctx, s.ID)
	require.Error(t, err)

	assert.Equal(t, []string{"session-1"}, created)
	require.Len(t, transitions, 1)
	assert.Equal(t, domain.OpStartInvestigation, transitions[0].Op)
	assert.Equal(t, domain.StateIntro, transitions[0].From)
	assert.Equal(t, domain.StateMainSelection, transitions[0].To)

	require.Len(t, rejections, 1)
	assert.Equal(t, domain.OpFinishMainIntro, rejections[0].Op)
	assert.Equal(t, domain.KindInvalidState, rejections[0].Kind)
	assert.Equal(t, domain.StateMainSelection, rejections[0].State)
}

func TestEngine_SessionsAreIsolated(t *testing.T) {
	eng := newEngine(t)
	ctx := context.Background()

	a, err := eng.CreateSession(ctx, memory.TestPodcastID)
	require.NoError(t, err)
	b, err := eng.CreateSession(ctx, memory.TestPodcastID)
	require.NoError(t, err)

	_, err = eng.StartInvestigation(ctx, a.ID)
	require.NoError(t, err)

	stored, err := eng.Session(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateIntro, stored.State)

	ids, err := eng.ListSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"session-1", "session-2"}, ids)

	require.NoError(t, eng.DeleteSession(ctx, a.ID))
	_, err = eng.Session(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestEngine_View(t *testing.T) {
	eng := newEngine(t)
	ctx := context.Background()

	s, err := eng.CreateSession(ctx, memory.TestPodcastID)
	require.NoError(t, err)

	v, err := eng.View(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/intro.mp3", v.Audio)
	assert.Equal(t, domain.OpStartInvestigation, v.Next)
}
