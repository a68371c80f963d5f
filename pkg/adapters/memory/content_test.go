package memory_test

import (
	"testing"

	"github.com/aretw0/casefile/pkg/adapters/memory"
	"github.com/aretw0/casefile/pkg/domain"
	"github.com/aretw0/casefile/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentStore_Contract(t *testing.T) {
	ports.RunContentStoreContract(t, memory.SeedTestInvestigation(), memory.TestInvestigation())
}

func TestTestInvestigation_Shape(t *testing.T) {
	cat := memory.TestInvestigation()
	assert.Len(t, cat.Podcasts, 1)
	assert.Len(t, cat.MajorBranches, 4)
	assert.Len(t, cat.MinorBranches, 12)
	require.Len(t, cat.Accusations, 3)
	assert.True(t, cat.Accusations[1].IsCorrect)
}

func TestNewContentStore_RejectsBrokenReferences(t *testing.T) {
	tests := []struct {
		name    string
		catalog domain.Catalog
	}{
		{
			name: "Orphan Major Branch",
			catalog: domain.Catalog{
				MajorBranches: []domain.MajorBranch{{ID: "m1", PodcastID: "ghost"}},
			},
		},
		{
			name: "Orphan Minor Branch",
			catalog: domain.Catalog{
				Podcasts:      []domain.Podcast{{ID: "p"}},
				MinorBranches: []domain.MinorBranch{{ID: "s1", MajorBranchID: "ghost"}},
			},
		},
		{
			name: "Duplicate Podcast",
			catalog: domain.Catalog{
				Podcasts: []domain.Podcast{{ID: "p"}, {ID: "p"}},
			},
		},
		{
			name: "Orphan Accusation",
			catalog: domain.Catalog{
				Accusations: []domain.Accusation{{ID: "a", PodcastID: "ghost"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := memory.NewContentStore(tt.catalog)
			assert.Error(t, err)
		})
	}
}
