package domain

// SessionDiff carries the changes between two snapshots of a Session.
// It is designed to be serialized to JSON for partial updates on the client.
type SessionDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	State *State `json:"state,omitempty"`

	// CurrentMajorBranchID uses an empty string to signal "cleared".
	CurrentMajorBranchID *string `json:"current_major_branch_id,omitempty"`

	// AppendedMajorBranches are ids picked since the old snapshot.
	AppendedMajorBranches []string `json:"appended_major_branches,omitempty"`

	// AppendedSubBranches are minor ids picked since the old snapshot, per major branch.
	AppendedSubBranches map[string][]string `json:"appended_sub_branches,omitempty"`

	Version int64 `json:"version"`
}

// Diff calculates the difference between oldS and newS.
// If oldS is nil, it returns a diff representing the entire newS (initial load).
// It returns nil when nothing changed.
func Diff(oldS, newS *Session) *SessionDiff {
	if newS == nil {
		return nil
	}

	diff := &SessionDiff{
		SessionID: newS.ID,
		Version:   newS.Version,
	}

	if oldS == nil || oldS.State != newS.State {
		state := newS.State
		diff.State = &state
	}
	if oldS == nil {
		if newS.CurrentMajorBranchID != "" {
			current := newS.CurrentMajorBranchID
			diff.CurrentMajorBranchID = &current
		}
	} else if oldS.CurrentMajorBranchID != newS.CurrentMajorBranchID {
		current := newS.CurrentMajorBranchID
		diff.CurrentMajorBranchID = &current
	}

	diff.AppendedMajorBranches = appended(majorsOf(oldS), newS.SelectedMajorBranches)

	for major, subs := range newS.SelectedSubBranches {
		var before []string
		if oldS != nil {
			before = oldS.SelectedSubBranches[major]
		}
		if added := appended(before, subs); len(added) > 0 {
			if diff.AppendedSubBranches == nil {
				diff.AppendedSubBranches = make(map[string][]string)
			}
			diff.AppendedSubBranches[major] = added
		}
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func majorsOf(s *Session) []string {
	if s == nil {
		return nil
	}
	return s.SelectedMajorBranches
}

// appended assumes append-only selections, which every transition guarantees.
func appended(before, after []string) []string {
	if len(after) <= len(before) {
		return nil
	}
	return append([]string(nil), after[len(before):]...)
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SessionDiff) IsEmpty() bool {
	return d.State == nil &&
		d.CurrentMajorBranchID == nil &&
		len(d.AppendedMajorBranches) == 0 &&
		len(d.AppendedSubBranches) == 0
}
