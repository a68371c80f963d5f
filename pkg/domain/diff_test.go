package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	base := NewSession("sess-1", "p1", time.Unix(0, 0))

	t.Run("Initial Load (Old is Nil)", func(t *testing.T) {
		d := Diff(nil, base)
		require.NotNil(t, d)
		assert.Equal(t, StateIntro, *d.State)
		assert.Nil(t, d.CurrentMajorBranchID)
	})

	t.Run("No Changes", func(t *testing.T) {
		assert.Nil(t, Diff(base, base.Clone()))
	})

	t.Run("Major Picked", func(t *testing.T) {
		next := base.Clone()
		next.State = StateMainIntro
		next.SelectedMajorBranches = []string{"m1"}
		next.CurrentMajorBranchID = "m1"

		d := Diff(base, next)
		require.NotNil(t, d)
		assert.Equal(t, StateMainIntro, *d.State)
		assert.Equal(t, "m1", *d.CurrentMajorBranchID)
		assert.Equal(t, []string{"m1"}, d.AppendedMajorBranches)
	})

	t.Run("Minor Picked And Major Cleared", func(t *testing.T) {
		old := base.Clone()
		old.State = StateSubSelection
		old.SelectedMajorBranches = []string{"m1"}
		old.CurrentMajorBranchID = "m1"
		old.SelectedSubBranches["m1"] = []string{"a"}

		next := old.Clone()
		next.SelectedSubBranches["m1"] = []string{"a", "b"}
		next.CurrentMajorBranchID = ""
		next.State = StateMainSelection

		d := Diff(old, next)
		require.NotNil(t, d)
		assert.Equal(t, "", *d.CurrentMajorBranchID)
		assert.Equal(t, map[string][]string{"m1": {"b"}}, d.AppendedSubBranches)

		raw, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"current_major_branch_id":""`)
	})
}
