package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_CloneIsDeep(t *testing.T) {
	s := NewSession("s1", "p1", time.Now())
	s.SelectedMajorBranches = []string{"m1"}
	require.NoError(t, s.SelectedSubBranches.Add("m1", "a"))

	c := s.Clone()
	c.SelectedMajorBranches = append(c.SelectedMajorBranches, "m2")
	require.NoError(t, c.SelectedSubBranches.Add("m1", "b"))
	c.State = StateResult

	assert.Equal(t, []string{"m1"}, s.SelectedMajorBranches)
	assert.Equal(t, []string{"a"}, s.SelectedSubBranches["m1"])
	assert.Equal(t, StateIntro, s.State)
}

func TestSession_CheckInvariants(t *testing.T) {
	valid := func() *Session {
		s := NewSession("s1", "p1", time.Now())
		s.State = StateSubSelection
		s.SelectedMajorBranches = []string{"m1"}
		s.CurrentMajorBranchID = "m1"
		return s
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, valid().CheckInvariants(2))
	})

	t.Run("Too Many Majors", func(t *testing.T) {
		s := valid()
		s.SelectedMajorBranches = []string{"m1", "m2", "m3"}
		assert.ErrorIs(t, s.CheckInvariants(2), ErrQuotaExceeded)
	})

	t.Run("Current Major Outside Sub Flow", func(t *testing.T) {
		s := valid()
		s.State = StateMainSelection
		assert.ErrorIs(t, s.CheckInvariants(2), ErrInvalidState)
	})

	t.Run("Missing Current Major In Sub Flow", func(t *testing.T) {
		s := valid()
		s.CurrentMajorBranchID = ""
		assert.ErrorIs(t, s.CheckInvariants(2), ErrInvalidState)
	})

	t.Run("Current Major Not Selected", func(t *testing.T) {
		s := valid()
		s.CurrentMajorBranchID = "m9"
		assert.ErrorIs(t, s.CheckInvariants(2), ErrOwnershipMismatch)
	})

	t.Run("Too Many Minors", func(t *testing.T) {
		s := valid()
		s.SelectedSubBranches["m1"] = []string{"a", "b", "c"}
		assert.ErrorIs(t, s.CheckInvariants(2), ErrQuotaExceeded)
	})
}

func TestParseState(t *testing.T) {
	for _, s := range States {
		got, err := ParseState(string(s))
		assert.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseState("LOBBY")
	assert.Error(t, err)
}
