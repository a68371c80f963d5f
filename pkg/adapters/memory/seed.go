package memory

import (
	"fmt"
	"strings"

	"github.com/aretw0/casefile/pkg/domain"
)

// TestPodcastID is the id of the investigation built by TestInvestigation.
const TestPodcastID = "test-investigation"

// TestInvestigation returns a small, complete investigation for development and tests:
// four major branches of three minor branches each, and three suspects of which the second is correct.
func TestInvestigation() domain.Catalog {
	const base = "https://example.com"
	cat := domain.Catalog{
		Podcasts: []domain.Podcast{{
			ID:          TestPodcastID,
			Title:       "Test Investigation",
			Description: "Seed data for engine testing",
			IntroAudio:  base + "/intro.mp3",
		}},
	}

	for _, title := range []string{"Body", "Digital Trace", "External Evidence", "Social Circle"} {
		slug := strings.ReplaceAll(strings.ToLower(title), " ", "-")
		majorID := "major-" + slug
		cat.MajorBranches = append(cat.MajorBranches, domain.MajorBranch{
			ID:         majorID,
			PodcastID:  TestPodcastID,
			Title:      title,
			IntroAudio: fmt.Sprintf("%s/main/%s-intro.mp3", base, slug),
		})
		for i := 1; i <= 3; i++ {
			cat.MinorBranches = append(cat.MinorBranches, domain.MinorBranch{
				ID:            fmt.Sprintf("%s-%d", majorID, i),
				MajorBranchID: majorID,
				Title:         fmt.Sprintf("%s - Sub %d", title, i),
				Audio:         fmt.Sprintf("%s/sub/%s/%d.mp3", base, slug, i),
			})
		}
	}

	for _, suspect := range []struct {
		name    string
		correct bool
	}{
		{"Suspect A", false},
		{"Suspect B", true},
		{"Suspect C", false},
	} {
		slug := strings.ReplaceAll(strings.ToLower(suspect.name), " ", "-")
		cat.Accusations = append(cat.Accusations, domain.Accusation{
			ID:          "accuse-" + slug,
			PodcastID:   TestPodcastID,
			SuspectName: suspect.name,
			Audio:       fmt.Sprintf("%s/accusation/%s.mp3", base, slug),
			IsCorrect:   suspect.correct,
		})
	}
	return cat
}

// SeedTestInvestigation builds a ContentStore holding TestInvestigation.
func SeedTestInvestigation() *ContentStore {
	store, err := NewContentStore(TestInvestigation())
	if err != nil {
		panic(fmt.Sprintf("seed catalog is invalid: %v", err))
	}
	return store
}
