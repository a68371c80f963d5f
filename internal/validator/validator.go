package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/casefile/pkg/domain"
)

// Report collects authoring problems found in a catalog.
// Errors make a podcast unplayable; warnings only flag odd content.
type Report struct {
	Errors   []string
	Warnings []string
}

// OK is true when no errors were found.
func (r Report) OK() bool { return len(r.Errors) == 0 }

// Err folds the errors into a single error, or nil.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("found %d errors:\n- %s", len(r.Errors), strings.Join(r.Errors, "\n- "))
}

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ValidateCatalog checks ownership references, duplicate ids, the minor branch
// quota per major and the single correct accusation per podcast.
func ValidateCatalog(c domain.Catalog) Report {
	var r Report

	podcasts := make(map[string]bool, len(c.Podcasts))
	for _, p := range c.Podcasts {
		if p.ID == "" {
			r.errorf("podcast with empty id")
			continue
		}
		if podcasts[p.ID] {
			r.errorf("duplicate podcast %q", p.ID)
		}
		podcasts[p.ID] = true
		if p.IntroAudio == "" {
			r.warnf("podcast %q has no intro audio", p.ID)
		}
	}

	majors := make(map[string]string, len(c.MajorBranches))
	majorCount := make(map[string]int)
	for _, m := range c.MajorBranches {
		if _, dup := majors[m.ID]; dup {
			r.errorf("duplicate major branch %q", m.ID)
			continue
		}
		majors[m.ID] = m.PodcastID
		if !podcasts[m.PodcastID] {
			r.errorf("major branch %q references unknown podcast %q", m.ID, m.PodcastID)
			continue
		}
		majorCount[m.PodcastID]++
	}

	minors := make(map[string]bool, len(c.MinorBranches))
	minorCount := make(map[string]int)
	for _, m := range c.MinorBranches {
		if minors[m.ID] {
			r.errorf("duplicate minor branch %q", m.ID)
			continue
		}
		minors[m.ID] = true
		if _, ok := majors[m.MajorBranchID]; !ok {
			r.errorf("minor branch %q references unknown major branch %q", m.ID, m.MajorBranchID)
			continue
		}
		minorCount[m.MajorBranchID]++
	}

	accusations := make(map[string]bool, len(c.Accusations))
	correct := make(map[string]int)
	accusationCount := make(map[string]int)
	for _, a := range c.Accusations {
		if accusations[a.ID] {
			r.errorf("duplicate accusation %q", a.ID)
			continue
		}
		accusations[a.ID] = true
		if !podcasts[a.PodcastID] {
			r.errorf("accusation %q references unknown podcast %q", a.ID, a.PodcastID)
			continue
		}
		accusationCount[a.PodcastID]++
		if a.IsCorrect {
			correct[a.PodcastID]++
		}
	}

	for _, m := range c.MajorBranches {
		if !podcasts[m.PodcastID] {
			continue
		}
		if n := minorCount[m.ID]; n < domain.MinorPerMajor {
			r.errorf("major branch %q has %d minor branches, need at least %d", m.ID, n, domain.MinorPerMajor)
		}
	}

	for _, p := range c.Podcasts {
		if p.ID == "" {
			continue
		}
		n := majorCount[p.ID]
		if n == 0 {
			r.errorf("podcast %q has no major branches", p.ID)
		} else if n%2 == 1 {
			r.warnf("podcast %q has an odd number of major branches (%d); only %d can be picked", p.ID, n, domain.MaxSelectableMajor(n))
		}
		if accusationCount[p.ID] == 0 {
			r.errorf("podcast %q has no accusations", p.ID)
		} else if correct[p.ID] != 1 {
			r.errorf("podcast %q has %d correct accusations, want exactly 1", p.ID, correct[p.ID])
		}
	}

	return r
}
