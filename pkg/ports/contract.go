package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/casefile/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore implementation
// adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405.000000000")

	newSession := func(id string) *domain.Session {
		s := domain.NewSession(id, "podcast-1", time.Now().UTC().Truncate(time.Millisecond))
		s.Version = 1
		return s
	}

	t.Run("Create and Load", func(t *testing.T) {
		s := newSession(sessionID)
		s.State = domain.StateMainIntro
		s.SelectedMajorBranches = []string{"m1"}
		s.CurrentMajorBranchID = "m1"
		require.NoError(t, s.SelectedSubBranches.Add("m1", "a"))

		require.NoError(t, store.Save(ctx, s, 0), "create should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, s.ID, loaded.ID)
		assert.Equal(t, s.PodcastID, loaded.PodcastID)
		assert.Equal(t, domain.StateMainIntro, loaded.State)
		assert.Equal(t, []string{"m1"}, loaded.SelectedMajorBranches)
		assert.Equal(t, []string{"a"}, loaded.SelectedSubBranches["m1"])
		assert.Equal(t, "m1", loaded.CurrentMajorBranchID)
		assert.Equal(t, int64(1), loaded.Version)
	})

	t.Run("Loaded Copy Is Isolated", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.SelectedMajorBranches = append(loaded.SelectedMajorBranches, "mutated")
		loaded.SelectedSubBranches["m1"] = nil

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, []string{"m1"}, again.SelectedMajorBranches)
		assert.Equal(t, []string{"a"}, again.SelectedSubBranches["m1"])
	})

	t.Run("Create Twice Conflicts", func(t *testing.T) {
		err := store.Save(ctx, newSession(sessionID), 0)
		assert.ErrorIs(t, err, domain.ErrVersionConflict)
	})

	t.Run("Compare And Swap", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)

		next := loaded.Clone()
		next.State = domain.StateSubSelection
		next.Version = loaded.Version + 1
		require.NoError(t, store.Save(ctx, next, loaded.Version))

		stale := loaded.Clone()
		stale.State = domain.StateResult
		stale.Version = loaded.Version + 1
		err = store.Save(ctx, stale, loaded.Version)
		assert.ErrorIs(t, err, domain.ErrVersionConflict, "stale writer must lose")

		current, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, domain.StateSubSelection, current.State)
		assert.Equal(t, loaded.Version+1, current.Version)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.Save(ctx, newSession(id1), 0))
		require.NoError(t, store.Save(ctx, newSession(id2), 0))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, sessionID), "Delete should not return error")

		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, sessionID), "Delete is idempotent")
	})
}

// RunContentStoreContract verifies that store serves exactly the content of catalog.
// catalog must hold at least one podcast with major branches, minor branches and accusations.
func RunContentStoreContract(t *testing.T, store ContentStore, catalog domain.Catalog) {
	ctx := context.Background()
	require.NotEmpty(t, catalog.Podcasts, "contract needs a podcast")
	podcast := catalog.Podcasts[0]

	t.Run("GetPodcast", func(t *testing.T) {
		got, err := store.GetPodcast(ctx, podcast.ID)
		require.NoError(t, err)
		assert.Equal(t, podcast, got)

		_, err = store.GetPodcast(ctx, "missing-podcast")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("ListMajorBranches", func(t *testing.T) {
		got, err := store.ListMajorBranches(ctx, podcast.ID)
		require.NoError(t, err)
		var want []domain.MajorBranch
		for _, m := range catalog.MajorBranches {
			if m.PodcastID == podcast.ID {
				want = append(want, m)
			}
		}
		assert.Equal(t, want, got, "authoring order is preserved")

		_, err = store.ListMajorBranches(ctx, "missing-podcast")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("ListMinorBranches", func(t *testing.T) {
		for _, major := range catalog.MajorBranches {
			got, err := store.ListMinorBranches(ctx, major.ID)
			require.NoError(t, err)
			for _, minor := range got {
				assert.Equal(t, major.ID, minor.MajorBranchID)
			}
		}
		_, err := store.ListMinorBranches(ctx, "missing-major")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("ListAccusations", func(t *testing.T) {
		got, err := store.ListAccusations(ctx, podcast.ID)
		require.NoError(t, err)
		correct := 0
		for _, a := range got {
			assert.Equal(t, podcast.ID, a.PodcastID)
			if a.IsCorrect {
				correct++
			}
		}
		assert.NotEmpty(t, got)
		assert.LessOrEqual(t, correct, 1)
	})

	t.Run("Point Lookups", func(t *testing.T) {
		m := catalog.MajorBranches[0]
		gotM, err := store.GetMajorBranch(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, m, gotM)

		s := catalog.MinorBranches[0]
		gotS, err := store.GetMinorBranch(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, s, gotS)

		a := catalog.Accusations[0]
		gotA, err := store.GetAccusation(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, a, gotA)

		_, err = store.GetMajorBranch(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = store.GetMinorBranch(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = store.GetAccusation(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
