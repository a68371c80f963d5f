package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/casefile/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func choiceIDs(v *domain.View) []string {
	ids := make([]string, 0, len(v.Choices))
	for _, c := range v.Choices {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestEngine_View(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	t.Run("Intro", func(t *testing.T) {
		v, err := e.View(ctx, sessionIn(domain.StateIntro))
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/intro.mp3", v.Audio)
		assert.Equal(t, domain.OpStartInvestigation, v.Next)
		assert.Empty(t, v.Choices)
	})

	t.Run("Main Selection Hides Picked Branches", func(t *testing.T) {
		s := sessionIn(domain.StateMainSelection)
		s.SelectedMajorBranches = []string{majorA}
		v, err := e.View(ctx, s)
		require.NoError(t, err)
		assert.NotContains(t, choiceIDs(v), majorA)
		assert.Len(t, v.Choices, 3)
		assert.Empty(t, v.Next)
	})

	t.Run("Main Selection After Quota", func(t *testing.T) {
		s := sessionIn(domain.StateMainSelection)
		s.SelectedMajorBranches = []string{majorA, majorB}
		v, err := e.View(ctx, s)
		require.NoError(t, err)
		assert.Empty(t, v.Choices)
		assert.Equal(t, domain.OpProceedToAccusations, v.Next)
	})

	t.Run("Main Intro", func(t *testing.T) {
		v, err := e.View(ctx, sessionIn(domain.StateMainIntro))
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/main/body-intro.mp3", v.Audio)
		assert.Equal(t, domain.OpFinishMainIntro, v.Next)
	})

	t.Run("Sub Selection", func(t *testing.T) {
		s := sessionIn(domain.StateSubSelection)
		s.SelectedSubBranches[majorA] = []string{minorA1}
		v, err := e.View(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, []string{minorA2, minorA3}, choiceIDs(v))
	})

	t.Run("Sub Playing", func(t *testing.T) {
		v, err := e.View(ctx, sessionIn(domain.StateSubPlaying))
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/sub/body/1.mp3", v.Audio)
		assert.Equal(t, domain.OpReturnToSubSelection, v.Next)
	})

	t.Run("Accusation Selection", func(t *testing.T) {
		v, err := e.View(ctx, sessionIn(domain.StateAccusationSelection))
		require.NoError(t, err)
		assert.Len(t, v.Choices, 3)
		assert.Equal(t, "Suspect B", v.Choices[1].Label)
	})

	t.Run("Result", func(t *testing.T) {
		v, err := e.View(ctx, sessionIn(domain.StateResult))
		require.NoError(t, err)
		assert.True(t, v.Terminal)
		assert.Empty(t, v.Next)
	})
}
