package runtime

import (
	"context"

	"github.com/aretw0/casefile/pkg/domain"
)

// View calculates what the driving collaborator should present for s without advancing it.
func (e *Engine) View(ctx context.Context, s *domain.Session) (*domain.View, error) {
	p, err := e.content.GetPodcast(ctx, s.PodcastID)
	if err != nil {
		return nil, err
	}
	majors, err := e.content.ListMajorBranches(ctx, s.PodcastID)
	if err != nil {
		return nil, err
	}

	v := &domain.View{
		Session:  s.Clone(),
		Terminal: s.Terminal(),
	}
	if op, ok := domain.AutoOperation(s, len(majors)); ok {
		v.Next = op
	}

	switch s.State {
	case domain.StateIntro:
		v.Audio = p.IntroAudio

	case domain.StateMainSelection:
		if !domain.CanSelectMajor(s, len(majors)) {
			break
		}
		for _, m := range majors {
			if !s.HasMajor(m.ID) {
				v.Choices = append(v.Choices, domain.Choice{ID: m.ID, Label: m.Title})
			}
		}

	case domain.StateMainIntro:
		m, err := e.content.GetMajorBranch(ctx, s.CurrentMajorBranchID)
		if err != nil {
			return nil, err
		}
		v.Audio = m.IntroAudio

	case domain.StateSubSelection:
		minors, err := e.content.ListMinorBranches(ctx, s.CurrentMajorBranchID)
		if err != nil {
			return nil, err
		}
		for _, minor := range minors {
			if !s.SelectedSubBranches.Has(s.CurrentMajorBranchID, minor.ID) {
				v.Choices = append(v.Choices, domain.Choice{ID: minor.ID, Label: minor.Title})
			}
		}

	case domain.StateSubPlaying:
		picks := s.SelectedSubBranches[s.CurrentMajorBranchID]
		if len(picks) > 0 {
			minor, err := e.content.GetMinorBranch(ctx, picks[len(picks)-1])
			if err != nil {
				return nil, err
			}
			v.Audio = minor.Audio
		}

	case domain.StateAccusationIntro:
		v.Audio = p.AccusationIntroAudio

	case domain.StateAccusationSelection:
		accusations, err := e.content.ListAccusations(ctx, s.PodcastID)
		if err != nil {
			return nil, err
		}
		for _, a := range accusations {
			v.Choices = append(v.Choices, domain.Choice{ID: a.ID, Label: a.SuspectName})
		}
	}
	return v, nil
}
