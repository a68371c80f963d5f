package domain

import "fmt"

// State is the closed set of positions a Session can occupy.
type State string

const (
	StateIntro               State = "INTRO"
	StateMainSelection       State = "MAIN_SELECTION"
	StateMainIntro           State = "MAIN_INTRO"
	StateSubSelection        State = "SUB_SELECTION"
	StateSubPlaying          State = "SUB_PLAYING"
	StateAccusationIntro     State = "ACCUSATION_INTRO"
	StateAccusationSelection State = "ACCUSATION_SELECTION"
	StateResult              State = "RESULT"
)

// States lists every State in narrative order.
var States = []State{
	StateIntro,
	StateMainSelection,
	StateMainIntro,
	StateSubSelection,
	StateSubPlaying,
	StateAccusationIntro,
	StateAccusationSelection,
	StateResult,
}

// Valid reports whether s is one of the known states.
func (s State) Valid() bool {
	switch s {
	case StateIntro, StateMainSelection, StateMainIntro, StateSubSelection,
		StateSubPlaying, StateAccusationIntro, StateAccusationSelection, StateResult:
		return true
	}
	return false
}

// Terminal reports whether no edge leaves s.
func (s State) Terminal() bool {
	return s == StateResult
}

// InMajorSubFlow reports whether a current major branch must be set while in s.
func (s State) InMajorSubFlow() bool {
	return s == StateMainIntro || s == StateSubSelection || s == StateSubPlaying
}

// ParseState converts a wire value into a State.
func ParseState(v string) (State, error) {
	s := State(v)
	if !s.Valid() {
		return "", fmt.Errorf("unknown state %q", v)
	}
	return s, nil
}
