package dto

// CatalogDocument is the authoring format of investigation content.
// Branches and accusations nest under their podcast, so parent ids are implied.
// It uses "mapstructure" tags so YAML and JSON sources decode the same way.
type CatalogDocument struct {
	Podcasts []PodcastDocument `json:"podcasts" mapstructure:"podcasts"`
}

type PodcastDocument struct {
	ID                   string `json:"id" mapstructure:"id"`
	Title                string `json:"title" mapstructure:"title"`
	Description          string `json:"description" mapstructure:"description"`
	IntroAudio           string `json:"intro_audio" mapstructure:"intro_audio"`
	AccusationIntroAudio string `json:"accusation_intro_audio" mapstructure:"accusation_intro_audio"`
	ResultCorrectAudio   string `json:"result_correct_audio" mapstructure:"result_correct_audio"`
	ResultIncorrectAudio string `json:"result_incorrect_audio" mapstructure:"result_incorrect_audio"`

	MajorBranches []MajorBranchDocument `json:"major_branches" mapstructure:"major_branches"`
	Accusations   []AccusationDocument  `json:"accusations" mapstructure:"accusations"`
}

type MajorBranchDocument struct {
	ID         string `json:"id" mapstructure:"id"`
	Title      string `json:"title" mapstructure:"title"`
	IntroAudio string `json:"intro_audio" mapstructure:"intro_audio"`

	MinorBranches []MinorBranchDocument `json:"minor_branches" mapstructure:"minor_branches"`
}

type MinorBranchDocument struct {
	ID    string `json:"id" mapstructure:"id"`
	Title string `json:"title" mapstructure:"title"`
	Audio string `json:"audio" mapstructure:"audio"`
}

type AccusationDocument struct {
	ID          string `json:"id" mapstructure:"id"`
	SuspectName string `json:"suspect_name" mapstructure:"suspect_name"`
	Audio       string `json:"audio" mapstructure:"audio"`
	IsCorrect   bool   `json:"is_correct" mapstructure:"is_correct"`
}
