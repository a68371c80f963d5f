package compiler

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/casefile/internal/dto"
	"github.com/aretw0/casefile/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format selects the syntax of a catalog document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromExt maps a file extension to a Format.
func FormatFromExt(ext string) (Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		return FormatYAML, true
	case "json":
		return FormatJSON, true
	}
	return "", false
}

// Parser is responsible for converting raw catalog bytes into domain content.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes one catalog document and flattens it into a domain.Catalog.
// Unknown keys are rejected so typos in authored content surface early.
func (p *Parser) Parse(data []byte, format Format) (domain.Catalog, error) {
	var raw map[string]any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return domain.Catalog{}, fmt.Errorf("failed to parse yaml catalog: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return domain.Catalog{}, fmt.Errorf("failed to parse json catalog: %w", err)
		}
	default:
		return domain.Catalog{}, fmt.Errorf("unsupported catalog format %q", format)
	}

	var doc dto.CatalogDocument
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &doc,
		ErrorUnused: true,
	})
	if err != nil {
		return domain.Catalog{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return Flatten(doc), nil
}

// Flatten converts the nested authoring document into the flat domain.Catalog,
// filling in parent ids and keeping authoring order.
func Flatten(doc dto.CatalogDocument) domain.Catalog {
	var cat domain.Catalog
	for _, pd := range doc.Podcasts {
		cat.Podcasts = append(cat.Podcasts, domain.Podcast{
			ID:                   pd.ID,
			Title:                pd.Title,
			Description:          pd.Description,
			IntroAudio:           pd.IntroAudio,
			AccusationIntroAudio: pd.AccusationIntroAudio,
			ResultCorrectAudio:   pd.ResultCorrectAudio,
			ResultIncorrectAudio: pd.ResultIncorrectAudio,
		})
		for _, md := range pd.MajorBranches {
			cat.MajorBranches = append(cat.MajorBranches, domain.MajorBranch{
				ID:         md.ID,
				PodcastID:  pd.ID,
				Title:      md.Title,
				IntroAudio: md.IntroAudio,
			})
			for _, sd := range md.MinorBranches {
				cat.MinorBranches = append(cat.MinorBranches, domain.MinorBranch{
					ID:            sd.ID,
					MajorBranchID: md.ID,
					Title:         sd.Title,
					Audio:         sd.Audio,
				})
			}
		}
		for _, ad := range pd.Accusations {
			cat.Accusations = append(cat.Accusations, domain.Accusation{
				ID:          ad.ID,
				PodcastID:   pd.ID,
				SuspectName: ad.SuspectName,
				Audio:       ad.Audio,
				IsCorrect:   ad.IsCorrect,
			})
		}
	}
	return cat
}

// Merge concatenates catalogs in order.
func Merge(parts ...domain.Catalog) domain.Catalog {
	var out domain.Catalog
	for _, c := range parts {
		out.Podcasts = append(out.Podcasts, c.Podcasts...)
		out.MajorBranches = append(out.MajorBranches, c.MajorBranches...)
		out.MinorBranches = append(out.MinorBranches, c.MinorBranches...)
		out.Accusations = append(out.Accusations, c.Accusations...)
	}
	return out
}
