package domain

// Choice is one option the listener can pick in the current state.
type Choice struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// View describes what the driving collaborator should present for a Session right now.
type View struct {
	Session *Session `json:"session"`

	// Audio is the clip to play in this state, empty when the state has none.
	Audio string `json:"audio,omitempty"`

	// Choices are the entities the listener may select, if the state expects a selection.
	Choices []Choice `json:"choices,omitempty"`

	// Next is the operation to invoke once Audio finishes or fails.
	// Empty when the state waits for a selection instead.
	Next Operation `json:"next,omitempty"`

	Terminal bool `json:"terminal"`
}
