package domain

import (
	"slices"
	"time"
)

// SubSelections maps a major branch id to the minor branch ids picked inside it,
// in the order they were picked. Insertion goes through Add, which enforces the quota.
type SubSelections map[string][]string

// Count returns how many minor branches were picked for majorID.
func (ss SubSelections) Count(majorID string) int {
	return len(ss[majorID])
}

// Has reports whether minorID was already picked for majorID.
func (ss SubSelections) Has(majorID, minorID string) bool {
	return slices.Contains(ss[majorID], minorID)
}

// For returns a copy of the picks for majorID.
func (ss SubSelections) For(majorID string) []string {
	return slices.Clone(ss[majorID])
}

// Add appends minorID under majorID.
// It refuses duplicates and anything past MinorPerMajor, leaving ss untouched.
func (ss SubSelections) Add(majorID, minorID string) error {
	if ss.Has(majorID, minorID) {
		return &Error{Kind: KindDuplicateSelection, Entity: EntityMinorBranch, ID: minorID,
			Msg: "minor branch already selected for this major branch"}
	}
	if ss.Count(majorID) >= MinorPerMajor {
		return &Error{Kind: KindQuotaExceeded, Entity: EntityMinorBranch, ID: minorID,
			Msg: "major branch already has its two minor branches"}
	}
	ss[majorID] = append(ss[majorID], minorID)
	return nil
}

func (ss SubSelections) clone() SubSelections {
	out := make(SubSelections, len(ss))
	for k, v := range ss {
		out[k] = slices.Clone(v)
	}
	return out
}

// Session is the mutable progress record of one investigation run.
type Session struct {
	ID        string `json:"id"`
	PodcastID string `json:"podcast_id"`

	// SelectedMajorBranches keeps insertion order; each id appears once.
	SelectedMajorBranches []string      `json:"selected_major_branches"`
	SelectedSubBranches   SubSelections `json:"selected_sub_branches"`

	State State `json:"state"`

	// CurrentMajorBranchID is set only while State is MAIN_INTRO, SUB_SELECTION or SUB_PLAYING.
	CurrentMajorBranchID string `json:"current_major_branch_id,omitempty"`

	// Version increases by one on every persisted write. Stores use it for compare-and-swap.
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates a Session in StateIntro with empty selections.
func NewSession(id, podcastID string, now time.Time) *Session {
	return &Session{
		ID:                    id,
		PodcastID:             podcastID,
		SelectedMajorBranches: []string{},
		SelectedSubBranches:   SubSelections{},
		State:                 StateIntro,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// Clone returns a deep copy so callers can mutate it without touching the original.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.SelectedMajorBranches = slices.Clone(s.SelectedMajorBranches)
	if c.SelectedMajorBranches == nil {
		c.SelectedMajorBranches = []string{}
	}
	c.SelectedSubBranches = s.SelectedSubBranches.clone()
	return &c
}

// HasMajor reports whether majorID was already picked.
func (s *Session) HasMajor(majorID string) bool {
	return slices.Contains(s.SelectedMajorBranches, majorID)
}

// Terminal reports whether the Session reached StateResult.
func (s *Session) Terminal() bool {
	return s.State.Terminal()
}

// CheckInvariants verifies the structural invariants that must hold after every transition.
// The runtime engine asserts it before handing out a new snapshot.
// maxMajor is MaxSelectableMajor for the session's podcast.
func (s *Session) CheckInvariants(maxMajor int) error {
	if !s.State.Valid() {
		return &Error{Kind: KindInvalidState, State: s.State, Msg: "unknown state"}
	}
	if len(s.SelectedMajorBranches) > maxMajor {
		return &Error{Kind: KindQuotaExceeded, Entity: EntityMajorBranch, Msg: "major branch quota exceeded"}
	}
	seen := make(map[string]struct{}, len(s.SelectedMajorBranches))
	for _, m := range s.SelectedMajorBranches {
		if _, dup := seen[m]; dup {
			return &Error{Kind: KindDuplicateSelection, Entity: EntityMajorBranch, ID: m, Msg: "major branch selected twice"}
		}
		seen[m] = struct{}{}
	}
	for m, subs := range s.SelectedSubBranches {
		if len(subs) > MinorPerMajor {
			return &Error{Kind: KindQuotaExceeded, Entity: EntityMinorBranch, ID: m, Msg: "minor branch quota exceeded"}
		}
		if _, ok := seen[m]; !ok {
			return &Error{Kind: KindOwnershipMismatch, Entity: EntityMajorBranch, ID: m, Msg: "minor picks for an unselected major branch"}
		}
	}
	inSubFlow := s.State.InMajorSubFlow()
	if inSubFlow != (s.CurrentMajorBranchID != "") {
		return &Error{Kind: KindInvalidState, State: s.State, Msg: "current major branch does not match state"}
	}
	if s.CurrentMajorBranchID != "" && !s.HasMajor(s.CurrentMajorBranchID) {
		return &Error{Kind: KindOwnershipMismatch, Entity: EntityMajorBranch, ID: s.CurrentMajorBranchID,
			Msg: "current major branch is not selected"}
	}
	return nil
}
