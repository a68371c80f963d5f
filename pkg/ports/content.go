package ports

import (
	"context"

	"github.com/aretw0/casefile/pkg/domain"
)

// ContentStore is the read-only view of investigation content.
// Missing ids are reported with a domain error of KindNotFound.
// List methods return an empty slice for a known parent with no children.
type ContentStore interface {
	GetPodcast(ctx context.Context, podcastID string) (domain.Podcast, error)
	ListMajorBranches(ctx context.Context, podcastID string) ([]domain.MajorBranch, error)
	ListMinorBranches(ctx context.Context, majorBranchID string) ([]domain.MinorBranch, error)
	ListAccusations(ctx context.Context, podcastID string) ([]domain.Accusation, error)

	GetMajorBranch(ctx context.Context, majorBranchID string) (domain.MajorBranch, error)
	GetMinorBranch(ctx context.Context, minorBranchID string) (domain.MinorBranch, error)
	GetAccusation(ctx context.Context, accusationID string) (domain.Accusation, error)
}
