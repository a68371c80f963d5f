package runtime

import (
	"context"

	"github.com/aretw0/casefile/pkg/domain"
)

// Every function here checks its full guard before touching s, so a rejection
// never leaves a half-applied change behind (Apply also works on a clone).

func (e *Engine) startInvestigation(s *domain.Session) error {
	if err := e.requireState(domain.OpStartInvestigation, s); err != nil {
		return err
	}
	s.State = domain.StateMainSelection
	return nil
}

func (e *Engine) selectMajorBranch(ctx context.Context, s *domain.Session, majorID string) error {
	if err := e.requireState(domain.OpSelectMajorBranch, s); err != nil {
		return err
	}
	if _, err := e.ownedMajor(ctx, s, majorID); err != nil {
		return err
	}
	if s.HasMajor(majorID) {
		return duplicateErr(domain.EntityMajorBranch, majorID, "major branch already selected")
	}
	quota, err := e.majorQuota(ctx, s)
	if err != nil {
		return err
	}
	if len(s.SelectedMajorBranches) >= quota {
		return quotaErr(domain.EntityMajorBranch, majorID, "major branch quota reached")
	}

	s.SelectedMajorBranches = append(s.SelectedMajorBranches, majorID)
	s.CurrentMajorBranchID = majorID
	s.State = domain.StateMainIntro
	return nil
}

func (e *Engine) finishMainIntro(s *domain.Session) error {
	if err := e.requireState(domain.OpFinishMainIntro, s); err != nil {
		return err
	}
	s.State = domain.StateSubSelection
	return nil
}

func (e *Engine) selectSubBranch(ctx context.Context, s *domain.Session, minorID string) error {
	// A third pick inside the same major branch reports the exhausted quota
	// rather than the state mismatch it also is.
	if s.State.InMajorSubFlow() && s.State != domain.StateMainIntro &&
		s.CurrentMajorBranchID != "" && !domain.CanSelectSub(s, s.CurrentMajorBranchID) {
		return quotaErr(domain.EntityMinorBranch, minorID, "major branch already has its two minor branches")
	}
	if err := e.requireState(domain.OpSelectSubBranch, s); err != nil {
		return err
	}
	if s.CurrentMajorBranchID == "" {
		return e.reject(domain.OpSelectSubBranch, s, "no current major branch")
	}
	if _, err := e.ownedMinor(ctx, s, minorID); err != nil {
		return err
	}
	if err := s.SelectedSubBranches.Add(s.CurrentMajorBranchID, minorID); err != nil {
		return err
	}
	s.State = domain.StateSubPlaying
	return nil
}

func (e *Engine) returnToSubSelection(s *domain.Session) error {
	if err := e.requireState(domain.OpReturnToSubSelection, s); err != nil {
		return err
	}
	if !domain.CanSelectSub(s, s.CurrentMajorBranchID) {
		return quotaErr(domain.EntityMajorBranch, s.CurrentMajorBranchID,
			"both minor branches already chosen; finish the major branch instead")
	}
	s.State = domain.StateSubSelection
	return nil
}

func (e *Engine) finishSubBranch(s *domain.Session) error {
	if err := e.requireState(domain.OpFinishSubBranch, s); err != nil {
		return err
	}
	if !domain.IsSubSelectionComplete(s, s.CurrentMajorBranchID) {
		return quotaErr(domain.EntityMajorBranch, s.CurrentMajorBranchID,
			"two minor branches must be chosen before leaving the major branch")
	}
	s.CurrentMajorBranchID = ""
	s.State = domain.StateMainSelection
	return nil
}

func (e *Engine) proceedToAccusations(ctx context.Context, s *domain.Session) error {
	if err := e.requireState(domain.OpProceedToAccusations, s); err != nil {
		return err
	}
	quota, err := e.majorQuota(ctx, s)
	if err != nil {
		return err
	}
	if len(s.SelectedMajorBranches) < quota {
		return quotaErr(domain.EntityMajorBranch, "", "not all major branches have been selected yet")
	}
	s.State = domain.StateAccusationIntro
	return nil
}

func (e *Engine) finishAccusationIntro(s *domain.Session) error {
	if err := e.requireState(domain.OpFinishAccusationIntro, s); err != nil {
		return err
	}
	s.State = domain.StateAccusationSelection
	return nil
}

func (e *Engine) selectAccusation(ctx context.Context, s *domain.Session, accusationID string) (*domain.Verdict, error) {
	if err := e.requireState(domain.OpSelectAccusation, s); err != nil {
		return nil, err
	}
	a, err := e.ownedAccusation(ctx, s, accusationID)
	if err != nil {
		return nil, err
	}
	p, err := e.content.GetPodcast(ctx, s.PodcastID)
	if err != nil {
		return nil, err
	}
	s.State = domain.StateResult
	return &domain.Verdict{
		IsCorrect:   a.IsCorrect,
		ResultAudio: domain.ResultAudioFor(p, a),
	}, nil
}
