package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/aretw0/casefile/pkg/domain"
)

// ContentStore implements ports.ContentStore over an immutable in-memory catalog.
// It is safe for concurrent use because nothing mutates it after construction.
type ContentStore struct {
	podcasts    map[string]domain.Podcast
	majors      map[string]domain.MajorBranch
	minors      map[string]domain.MinorBranch
	accusations map[string]domain.Accusation

	majorsByPodcast      map[string][]string
	minorsByMajor        map[string][]string
	accusationsByPodcast map[string][]string

	catalog domain.Catalog
}

// NewContentStore indexes catalog. It rejects duplicate ids and children whose parent is missing.
func NewContentStore(catalog domain.Catalog) (*ContentStore, error) {
	c := &ContentStore{
		podcasts:             make(map[string]domain.Podcast),
		majors:               make(map[string]domain.MajorBranch),
		minors:               make(map[string]domain.MinorBranch),
		accusations:          make(map[string]domain.Accusation),
		majorsByPodcast:      make(map[string][]string),
		minorsByMajor:        make(map[string][]string),
		accusationsByPodcast: make(map[string][]string),
	}

	for _, p := range catalog.Podcasts {
		if p.ID == "" {
			return nil, fmt.Errorf("podcast %q: missing id", p.Title)
		}
		if _, dup := c.podcasts[p.ID]; dup {
			return nil, fmt.Errorf("duplicate podcast id %q", p.ID)
		}
		c.podcasts[p.ID] = p
	}
	for _, m := range catalog.MajorBranches {
		if m.ID == "" {
			return nil, fmt.Errorf("major branch %q: missing id", m.Title)
		}
		if _, dup := c.majors[m.ID]; dup {
			return nil, fmt.Errorf("duplicate major branch id %q", m.ID)
		}
		if _, ok := c.podcasts[m.PodcastID]; !ok {
			return nil, fmt.Errorf("major branch %q references unknown podcast %q", m.ID, m.PodcastID)
		}
		c.majors[m.ID] = m
		c.majorsByPodcast[m.PodcastID] = append(c.majorsByPodcast[m.PodcastID], m.ID)
	}
	for _, s := range catalog.MinorBranches {
		if s.ID == "" {
			return nil, fmt.Errorf("minor branch %q: missing id", s.Title)
		}
		if _, dup := c.minors[s.ID]; dup {
			return nil, fmt.Errorf("duplicate minor branch id %q", s.ID)
		}
		if _, ok := c.majors[s.MajorBranchID]; !ok {
			return nil, fmt.Errorf("minor branch %q references unknown major branch %q", s.ID, s.MajorBranchID)
		}
		c.minors[s.ID] = s
		c.minorsByMajor[s.MajorBranchID] = append(c.minorsByMajor[s.MajorBranchID], s.ID)
	}
	for _, a := range catalog.Accusations {
		if a.ID == "" {
			return nil, fmt.Errorf("accusation %q: missing id", a.SuspectName)
		}
		if _, dup := c.accusations[a.ID]; dup {
			return nil, fmt.Errorf("duplicate accusation id %q", a.ID)
		}
		if _, ok := c.podcasts[a.PodcastID]; !ok {
			return nil, fmt.Errorf("accusation %q references unknown podcast %q", a.ID, a.PodcastID)
		}
		c.accusations[a.ID] = a
		c.accusationsByPodcast[a.PodcastID] = append(c.accusationsByPodcast[a.PodcastID], a.ID)
	}

	c.catalog = domain.Catalog{
		Podcasts:      slices.Clone(catalog.Podcasts),
		MajorBranches: slices.Clone(catalog.MajorBranches),
		MinorBranches: slices.Clone(catalog.MinorBranches),
		Accusations:   slices.Clone(catalog.Accusations),
	}
	return c, nil
}

// Catalog returns a copy of the content the store was built from.
func (c *ContentStore) Catalog() domain.Catalog {
	return domain.Catalog{
		Podcasts:      slices.Clone(c.catalog.Podcasts),
		MajorBranches: slices.Clone(c.catalog.MajorBranches),
		MinorBranches: slices.Clone(c.catalog.MinorBranches),
		Accusations:   slices.Clone(c.catalog.Accusations),
	}
}

func (c *ContentStore) GetPodcast(ctx context.Context, podcastID string) (domain.Podcast, error) {
	p, ok := c.podcasts[podcastID]
	if !ok {
		return domain.Podcast{}, domain.NotFound(domain.EntityPodcast, podcastID)
	}
	return p, nil
}

func (c *ContentStore) ListMajorBranches(ctx context.Context, podcastID string) ([]domain.MajorBranch, error) {
	if _, ok := c.podcasts[podcastID]; !ok {
		return nil, domain.NotFound(domain.EntityPodcast, podcastID)
	}
	ids := c.majorsByPodcast[podcastID]
	out := make([]domain.MajorBranch, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.majors[id])
	}
	return out, nil
}

func (c *ContentStore) ListMinorBranches(ctx context.Context, majorBranchID string) ([]domain.MinorBranch, error) {
	if _, ok := c.majors[majorBranchID]; !ok {
		return nil, domain.NotFound(domain.EntityMajorBranch, majorBranchID)
	}
	ids := c.minorsByMajor[majorBranchID]
	out := make([]domain.MinorBranch, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.minors[id])
	}
	return out, nil
}

func (c *ContentStore) ListAccusations(ctx context.Context, podcastID string) ([]domain.Accusation, error) {
	if _, ok := c.podcasts[podcastID]; !ok {
		return nil, domain.NotFound(domain.EntityPodcast, podcastID)
	}
	ids := c.accusationsByPodcast[podcastID]
	out := make([]domain.Accusation, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.accusations[id])
	}
	return out, nil
}

func (c *ContentStore) GetMajorBranch(ctx context.Context, majorBranchID string) (domain.MajorBranch, error) {
	m, ok := c.majors[majorBranchID]
	if !ok {
		return domain.MajorBranch{}, domain.NotFound(domain.EntityMajorBranch, majorBranchID)
	}
	return m, nil
}

func (c *ContentStore) GetMinorBranch(ctx context.Context, minorBranchID string) (domain.MinorBranch, error) {
	s, ok := c.minors[minorBranchID]
	if !ok {
		return domain.MinorBranch{}, domain.NotFound(domain.EntityMinorBranch, minorBranchID)
	}
	return s, nil
}

func (c *ContentStore) GetAccusation(ctx context.Context, accusationID string) (domain.Accusation, error) {
	a, ok := c.accusations[accusationID]
	if !ok {
		return domain.Accusation{}, domain.NotFound(domain.EntityAccusation, accusationID)
	}
	return a, nil
}
