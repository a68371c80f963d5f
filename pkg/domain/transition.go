package domain

// Operation names a Session Engine transition.
type Operation string

const (
	OpCreate                Operation = "createSession"
	OpStartInvestigation    Operation = "startInvestigation"
	OpSelectMajorBranch     Operation = "selectMajorBranch"
	OpFinishMainIntro       Operation = "finishMainIntro"
	OpSelectSubBranch       Operation = "selectSubBranch"
	OpReturnToSubSelection  Operation = "returnToSubSelection"
	OpFinishSubBranch       Operation = "finishSubBranch"
	OpProceedToAccusations  Operation = "proceedToAccusations"
	OpFinishAccusationIntro Operation = "finishAccusationIntro"
	OpSelectAccusation      Operation = "selectAccusation"

	// OpAdvance is an "audio finished" signal. It resolves to one of the operations above.
	OpAdvance Operation = "advance"
)

// Edges is the complete set of legal state moves. Anything not listed here is rejected.
var Edges = map[State][]State{
	StateIntro:               {StateMainSelection},
	StateMainSelection:       {StateMainIntro, StateAccusationIntro},
	StateMainIntro:           {StateSubSelection},
	StateSubSelection:        {StateSubPlaying, StateMainSelection},
	StateSubPlaying:          {StateSubSelection, StateMainSelection},
	StateAccusationIntro:     {StateAccusationSelection},
	StateAccusationSelection: {StateResult},
	StateResult:              nil,
}

// Guards holds the states each operation may start from.
var Guards = map[Operation][]State{
	OpStartInvestigation:    {StateIntro},
	OpSelectMajorBranch:     {StateMainSelection},
	OpFinishMainIntro:       {StateMainIntro},
	OpSelectSubBranch:       {StateSubSelection},
	OpReturnToSubSelection:  {StateSubPlaying},
	OpFinishSubBranch:       {StateSubPlaying, StateSubSelection},
	OpProceedToAccusations:  {StateMainSelection},
	OpFinishAccusationIntro: {StateAccusationIntro},
	OpSelectAccusation:      {StateAccusationSelection},
}

// CanTransition reports whether from -> to is an edge of the state machine.
func CanTransition(from, to State) bool {
	for _, next := range Edges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Allows reports whether op may run while the Session is in s.
func (op Operation) Allows(s State) bool {
	for _, g := range Guards[op] {
		if g == s {
			return true
		}
	}
	return false
}

// AutoOperation returns the transition that follows the audio cue of state s.
// The branch taken out of SUB_PLAYING depends only on how many minor branches
// the current major branch already has. ok is false when s has no audio-driven exit.
func AutoOperation(s *Session, totalMajor int) (op Operation, ok bool) {
	switch s.State {
	case StateIntro:
		return OpStartInvestigation, true
	case StateMainIntro:
		return OpFinishMainIntro, true
	case StateSubPlaying:
		if IsSubSelectionComplete(s, s.CurrentMajorBranchID) {
			return OpFinishSubBranch, true
		}
		return OpReturnToSubSelection, true
	case StateMainSelection:
		if IsMajorSelectionComplete(s, totalMajor) {
			return OpProceedToAccusations, true
		}
	case StateAccusationIntro:
		return OpFinishAccusationIntro, true
	}
	return "", false
}
