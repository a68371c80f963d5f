package domain

// MinorPerMajor is the exact number of minor branches a listener must pick
// before leaving a major branch.
const MinorPerMajor = 2

// MaxSelectableMajor truncates: with an odd total one major branch stays unreachable.
func MaxSelectableMajor(totalMajor int) int {
	if totalMajor <= 0 {
		return 0
	}
	return totalMajor / 2
}

// CanSelectMajor reports whether another major branch fits the quota.
func CanSelectMajor(s *Session, totalMajor int) bool {
	return len(s.SelectedMajorBranches) < MaxSelectableMajor(totalMajor)
}

// CanSelectSub reports whether majorID still accepts a minor branch.
func CanSelectSub(s *Session, majorID string) bool {
	return s.SelectedSubBranches.Count(majorID) < MinorPerMajor
}

// IsMajorSelectionComplete reports whether the major quota has been reached.
func IsMajorSelectionComplete(s *Session, totalMajor int) bool {
	return len(s.SelectedMajorBranches) >= MaxSelectableMajor(totalMajor)
}

// IsSubSelectionComplete is true iff exactly MinorPerMajor minor branches were picked for majorID.
func IsSubSelectionComplete(s *Session, majorID string) bool {
	return s.SelectedSubBranches.Count(majorID) == MinorPerMajor
}
