package domain

// Podcast is the root of an investigation's content tree.
type Podcast struct {
	ID                   string `json:"id" mapstructure:"id"`
	Title                string `json:"title" mapstructure:"title"`
	Description          string `json:"description" mapstructure:"description"`
	IntroAudio           string `json:"intro_audio" mapstructure:"intro_audio"`
	AccusationIntroAudio string `json:"accusation_intro_audio,omitempty" mapstructure:"accusation_intro_audio"`
	ResultCorrectAudio   string `json:"result_correct_audio,omitempty" mapstructure:"result_correct_audio"`
	ResultIncorrectAudio string `json:"result_incorrect_audio,omitempty" mapstructure:"result_incorrect_audio"`
}

// MajorBranch is a top-level narrative thread owned by a Podcast.
type MajorBranch struct {
	ID         string `json:"id" mapstructure:"id"`
	PodcastID  string `json:"podcast_id" mapstructure:"podcast_id"`
	Title      string `json:"title" mapstructure:"title"`
	IntroAudio string `json:"intro_audio" mapstructure:"intro_audio"`
}

// MinorBranch is a sub-thread nested under exactly one MajorBranch.
type MinorBranch struct {
	ID            string `json:"id" mapstructure:"id"`
	MajorBranchID string `json:"major_branch_id" mapstructure:"major_branch_id"`
	Title         string `json:"title" mapstructure:"title"`
	Audio         string `json:"audio" mapstructure:"audio"`
}

// Accusation is a terminal suspect choice. Exactly one per podcast is correct;
// that is guaranteed by content authoring, not by the engine.
type Accusation struct {
	ID          string `json:"id" mapstructure:"id"`
	PodcastID   string `json:"podcast_id" mapstructure:"podcast_id"`
	SuspectName string `json:"suspect_name" mapstructure:"suspect_name"`
	Audio       string `json:"audio" mapstructure:"audio"`
	IsCorrect   bool   `json:"is_correct" mapstructure:"is_correct"`
}

// Verdict is delivered once, synchronously with the move to StateResult.
// It is never stored on the Session.
type Verdict struct {
	IsCorrect   bool   `json:"is_correct"`
	ResultAudio string `json:"result_audio"`
}

// ResultAudioFor picks the result audio for an accusation.
// The podcast-level correct/incorrect clips win; the accusation's own audio is the fallback.
func ResultAudioFor(p Podcast, a Accusation) string {
	if a.IsCorrect && p.ResultCorrectAudio != "" {
		return p.ResultCorrectAudio
	}
	if !a.IsCorrect && p.ResultIncorrectAudio != "" {
		return p.ResultIncorrectAudio
	}
	return a.Audio
}

// Catalog is a flat bundle of content, as authored in a content file.
type Catalog struct {
	Podcasts      []Podcast     `json:"podcasts" mapstructure:"podcasts"`
	MajorBranches []MajorBranch `json:"major_branches" mapstructure:"major_branches"`
	MinorBranches []MinorBranch `json:"minor_branches" mapstructure:"minor_branches"`
	Accusations   []Accusation  `json:"accusations" mapstructure:"accusations"`
}
