package runtime

import (
	"context"

	"github.com/aretw0/casefile/pkg/domain"
)

// requireState rejects op unless s sits in one of the op's guard states.
func (e *Engine) requireState(op domain.Operation, s *domain.Session) error {
	if op.Allows(s.State) {
		return nil
	}
	return e.reject(op, s, "operation not allowed in this state")
}

func (e *Engine) reject(op domain.Operation, s *domain.Session, msg string) error {
	return &domain.Error{Kind: domain.KindInvalidState, Op: op, State: s.State, Msg: msg}
}

func quotaErr(entity, id, msg string) error {
	return &domain.Error{Kind: domain.KindQuotaExceeded, Entity: entity, ID: id, Msg: msg}
}

func ownershipErr(entity, id, msg string) error {
	return &domain.Error{Kind: domain.KindOwnershipMismatch, Entity: entity, ID: id, Msg: msg}
}

func duplicateErr(entity, id, msg string) error {
	return &domain.Error{Kind: domain.KindDuplicateSelection, Entity: entity, ID: id, Msg: msg}
}

// majorQuota returns floor(total/2) for the session's podcast.
func (e *Engine) majorQuota(ctx context.Context, s *domain.Session) (int, error) {
	majors, err := e.content.ListMajorBranches(ctx, s.PodcastID)
	if err != nil {
		return 0, err
	}
	return domain.MaxSelectableMajor(len(majors)), nil
}

// ownedMajor loads majorID and checks it belongs to the session's podcast.
func (e *Engine) ownedMajor(ctx context.Context, s *domain.Session, majorID string) (domain.MajorBranch, error) {
	m, err := e.content.GetMajorBranch(ctx, majorID)
	if err != nil {
		return domain.MajorBranch{}, err
	}
	if m.PodcastID != s.PodcastID {
		return domain.MajorBranch{}, ownershipErr(domain.EntityMajorBranch, majorID,
			"major branch does not belong to the session's podcast")
	}
	return m, nil
}

// ownedMinor loads minorID and checks it belongs to the session's current major branch.
func (e *Engine) ownedMinor(ctx context.Context, s *domain.Session, minorID string) (domain.MinorBranch, error) {
	minor, err := e.content.GetMinorBranch(ctx, minorID)
	if err != nil {
		return domain.MinorBranch{}, err
	}
	if minor.MajorBranchID != s.CurrentMajorBranchID {
		return domain.MinorBranch{}, ownershipErr(domain.EntityMinorBranch, minorID,
			"minor branch does not belong to the current major branch")
	}
	return minor, nil
}

// ownedAccusation loads accusationID and checks it belongs to the session's podcast.
func (e *Engine) ownedAccusation(ctx context.Context, s *domain.Session, accusationID string) (domain.Accusation, error) {
	a, err := e.content.GetAccusation(ctx, accusationID)
	if err != nil {
		return domain.Accusation{}, err
	}
	if a.PodcastID != s.PodcastID {
		return domain.Accusation{}, ownershipErr(domain.EntityAccusation, accusationID,
			"accusation does not belong to the session's podcast")
	}
	return a, nil
}
