package services

import (
	"strings"

	"github.com/bytedance/sonic"

	"alfredoptarigan/resume-mocker/internal/models"
)

// Wire shapes with pointer fields so absent keys and nulls are told apart
// from zero values.
type rawRoastSection struct {
	Title   *string `json:"title"`
	Emoji   *string `json:"emoji"`
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

type rawRoastResult struct {
	Introduction *string            `json:"introduction"`
	Sections     *[]rawRoastSection `json:"sections"`
	FinalVerdict *string            `json:"finalVerdict"`
	MockScore    *int               `json:"mockScore"`
	MockLabel    *string            `json:"mockLabel"`
}

// ParseRoastResult strictly parses model output into a RoastResult. Any
// parse failure or missing required field yields ErrMalformedResponse and
// no partial result. Scores and ratings pass through unclamped.
func ParseRoastResult(raw string) (*models.RoastResult, error) {
	text := stripCodeFence(raw)
	if text == "" {
		return nil, newRoastError(KindMalformedResponse, "empty response")
	}

	var parsed rawRoastResult
	if err := sonic.ConfigStd.UnmarshalFromString(text, &parsed); err != nil {
		return nil, newRoastError(KindMalformedResponse, "invalid JSON: %w", err)
	}

	var missing []string
	if parsed.Introduction == nil {
		missing = append(missing, "introduction")
	}
	if parsed.MockScore == nil {
		missing = append(missing, "mockScore")
	}
	if parsed.MockLabel == nil {
		missing = append(missing, "mockLabel")
	}
	if parsed.Sections == nil {
		missing = append(missing, "sections")
	}
	if parsed.FinalVerdict == nil {
		missing = append(missing, "finalVerdict")
	}
	if len(missing) > 0 {
		return nil, newRoastError(KindMalformedResponse, "missing required fields: %s", strings.Join(missing, ", "))
	}

	if len(*parsed.Sections) == 0 {
		return nil, newRoastError(KindMalformedResponse, "sections is empty")
	}

	sections := make([]models.RoastSection, 0, len(*parsed.Sections))
	for i, s := range *parsed.Sections {
		if s.Title == nil || s.Emoji == nil || s.Rating == nil || s.Comment == nil {
			return nil, newRoastError(KindMalformedResponse, "section %d is missing required fields", i)
		}
		sections = append(sections, models.RoastSection{
			Title:   *s.Title,
			Emoji:   *s.Emoji,
			Rating:  *s.Rating,
			Comment: *s.Comment,
		})
	}

	return &models.RoastResult{
		Introduction: *parsed.Introduction,
		Sections:     sections,
		FinalVerdict: *parsed.FinalVerdict,
		MockScore:    *parsed.MockScore,
		MockLabel:    *parsed.MockLabel,
	}, nil
}

// stripCodeFence trims whitespace and one surrounding Markdown fence.
func stripCodeFence(input string) string {
	clean := strings.TrimSpace(input)
	if !strings.HasPrefix(clean, "```") {
		return clean
	}

	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")

	return strings.TrimSpace(clean)
}
