package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/casefile/internal/presentation/graph"
	"github.com/aretw0/casefile/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	out := graph.GenerateMermaid(nil)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	for _, want := range []string{
		`INTRO(("INTRO"))`,
		`MAIN_SELECTION[/"MAIN_SELECTION"/]`,
		`SUB_PLAYING["SUB_PLAYING"]`,
		`RESULT[["RESULT"]]`,
		`INTRO -- "startInvestigation" --> MAIN_SELECTION`,
		`MAIN_SELECTION -- "proceedToAccusations" --> ACCUSATION_INTRO`,
		`SUB_PLAYING -- "finishSubBranch" --> MAIN_SELECTION`,
		`ACCUSATION_SELECTION -- "selectAccusation" --> RESULT`,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Session Overlay")

	edges := 0
	for _, targets := range domain.Edges {
		edges += len(targets)
	}
	assert.Equal(t, edges, strings.Count(out, "-->"))
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	s := &domain.Session{
		ID:                    "s1",
		State:                 domain.StateSubPlaying,
		SelectedMajorBranches: []string{"m1"},
		SelectedSubBranches:   domain.SubSelections{"m1": {"m1a"}},
		CurrentMajorBranchID:  "m1",
	}
	out := graph.GenerateMermaid(graph.OverlayFor(s))

	assert.Contains(t, out, "class SUB_PLAYING current")
	assert.Contains(t, out, "class MAIN_INTRO reached")
	assert.Contains(t, out, "%% session s1: 1 major, 1 minor picked")
	assert.NotContains(t, out, "class SUB_PLAYING reached")
	assert.NotContains(t, out, "class ACCUSATION_INTRO")
}

func TestOverlayFor_Result(t *testing.T) {
	s := &domain.Session{ID: "s1", State: domain.StateResult, SelectedMajorBranches: []string{"m1"}}
	o := graph.OverlayFor(s)
	assert.Equal(t, domain.StateResult, o.CurrentState)
	assert.Contains(t, o.Reached, domain.StateAccusationSelection)
	assert.Contains(t, o.Reached, domain.StateAccusationIntro)
	assert.NotContains(t, o.Reached, domain.StateSubPlaying)
}
