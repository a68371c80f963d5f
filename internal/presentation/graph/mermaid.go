package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/casefile/pkg/domain"
)

// GraphOverlay contains dynamic session data to visualize on the graph.
type GraphOverlay struct {
	CurrentState domain.State
	// Reached marks states the session has provably passed through.
	Reached []domain.State
	Caption string
}

// OverlayFor derives an overlay from a persisted session.
// Only states implied by the session's selections are marked as reached.
func OverlayFor(s *domain.Session) *GraphOverlay {
	o := &GraphOverlay{
		CurrentState: s.State,
		Caption: fmt.Sprintf("session %s: %d major, %d minor picked",
			s.ID, len(s.SelectedMajorBranches), countMinors(s)),
	}
	if s.State != domain.StateIntro {
		o.Reached = append(o.Reached, domain.StateIntro, domain.StateMainSelection)
	}
	if len(s.SelectedMajorBranches) > 0 {
		o.Reached = append(o.Reached, domain.StateMainIntro, domain.StateSubSelection)
	}
	if countMinors(s) > 0 {
		o.Reached = append(o.Reached, domain.StateSubPlaying)
	}
	switch s.State {
	case domain.StateAccusationSelection, domain.StateResult:
		o.Reached = append(o.Reached, domain.StateAccusationIntro)
	}
	if s.State == domain.StateResult {
		o.Reached = append(o.Reached, domain.StateAccusationSelection)
	}
	return o
}

func countMinors(s *domain.Session) int {
	n := 0
	for _, picks := range s.SelectedSubBranches {
		n += len(picks)
	}
	return n
}

type edge struct{ from, to domain.State }

// edgeLabels names the operation behind each edge of domain.Edges.
var edgeLabels = map[edge]domain.Operation{
	{domain.StateIntro, domain.StateMainSelection}:                 domain.OpStartInvestigation,
	{domain.StateMainSelection, domain.StateMainIntro}:             domain.OpSelectMajorBranch,
	{domain.StateMainSelection, domain.StateAccusationIntro}:       domain.OpProceedToAccusations,
	{domain.StateMainIntro, domain.StateSubSelection}:              domain.OpFinishMainIntro,
	{domain.StateSubSelection, domain.StateSubPlaying}:             domain.OpSelectSubBranch,
	{domain.StateSubSelection, domain.StateMainSelection}:          domain.OpFinishSubBranch,
	{domain.StateSubPlaying, domain.StateSubSelection}:             domain.OpReturnToSubSelection,
	{domain.StateSubPlaying, domain.StateMainSelection}:            domain.OpFinishSubBranch,
	{domain.StateAccusationIntro, domain.StateAccusationSelection}: domain.OpFinishAccusationIntro,
	{domain.StateAccusationSelection, domain.StateResult}:          domain.OpSelectAccusation,
}

// GenerateMermaid produces a Mermaid flowchart of the session state machine.
// Shapes:
// - Intro: ((Circle))
// - Selection states (listener input): [/Parallelogram/]
// - Result: [[Subroutine]]
// - Default (audio playing): [Rectangle]
// Overlay styles (Reached/Current) are applied if provided.
func GenerateMermaid(overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, st := range domain.States {
		opener, closer := "[", "]"
		switch {
		case st == domain.StateIntro:
			opener, closer = "((", "))"
		case st.Terminal():
			opener, closer = "[[", "]]"
		case isSelection(st):
			opener, closer = "[/", "/]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", st, opener, st, closer)

		for _, to := range domain.Edges[st] {
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", st, edgeLabels[edge{st, to}], to)
		}
	}

	if overlay == nil {
		return sb.String()
	}

	sb.WriteString("\n    %% Session Overlay\n")
	sb.WriteString("    classDef reached fill:#e0e7ff,stroke:#4338ca\n")
	sb.WriteString("    classDef current fill:#fbbf24,stroke:#b45309,stroke-width:3px\n")
	if overlay.Caption != "" {
		fmt.Fprintf(&sb, "    %%%% %s\n", strings.ReplaceAll(overlay.Caption, "\n", " "))
	}
	for _, st := range overlay.Reached {
		if st == overlay.CurrentState {
			continue
		}
		fmt.Fprintf(&sb, "    class %s reached\n", st)
	}
	if overlay.CurrentState != "" {
		fmt.Fprintf(&sb, "    class %s current\n", overlay.CurrentState)
	}
	return sb.String()
}

func isSelection(s domain.State) bool {
	return s == domain.StateMainSelection || s == domain.StateSubSelection || s == domain.StateAccusationSelection
}
