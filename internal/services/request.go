package services

import (
	"strings"

	"google.golang.org/genai"

	"alfredoptarigan/resume-mocker/internal/models"
)

// RoastPayload is everything one model call needs.
type RoastPayload struct {
	Model             string
	SystemInstruction string
	UserPrompt        string
	File              *EncodedFile
	Schema            *genai.Schema
	Intensity         int
	Temperature       float32
}

type RequestBuilder struct {
	prompts     *PromptBuilder
	model       string
	temperature float32
}

func NewRequestBuilder(model string, temperature float32) *RequestBuilder {
	return &RequestBuilder{
		prompts:     NewPromptBuilder(),
		model:       model,
		temperature: temperature,
	}
}

// ValidateIntensity rejects levels outside [1,10]. Values are never clamped.
func ValidateIntensity(intensity int) error {
	if intensity < models.MinIntensity || intensity > models.MaxIntensity {
		return newRoastError(KindInvalidIntensity, "intensity %d is outside %d-%d",
			intensity, models.MinIntensity, models.MaxIntensity)
	}
	return nil
}

func (b *RequestBuilder) Build(file *EncodedFile, intensity int) (*RoastPayload, error) {
	if err := ValidateIntensity(intensity); err != nil {
		return nil, err
	}
	if file == nil || file.Base64 == "" {
		return nil, newRoastError(KindInvalidFile, "no encoded file to send")
	}
	if !IsAllowedMimeType(file.MimeType) {
		return nil, newRoastError(KindUnsupportedFileType, "mime type %q is not allowed", file.MimeType)
	}

	return &RoastPayload{
		Model:             b.model,
		SystemInstruction: b.prompts.BuildSystemInstruction(),
		UserPrompt:        b.prompts.BuildUserPrompt(intensity),
		File:              file,
		Schema:            RoastResultSchema(),
		Intensity:         intensity,
		Temperature:       b.temperature,
	}, nil
}

var (
	roastResultFields  = []string{"introduction", "mockScore", "mockLabel", "sections", "finalVerdict"}
	roastSectionFields = []string{"title", "emoji", "rating", "comment"}
)

// RoastResultSchema declares the response shape handed to the model's
// structured output feature.
func RoastResultSchema() *genai.Schema {
	section := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":   {Type: genai.TypeString, Description: "Name of the resume section being roasted."},
			"emoji":   {Type: genai.TypeString, Description: "A single relevant emoji."},
			"rating":  {Type: genai.TypeInteger, Description: "Star rating from 1 to 5."},
			"comment": {Type: genai.TypeString, Description: "Witty comment about the section."},
		},
		Required:         roastSectionFields,
		PropertyOrdering: roastSectionFields,
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"introduction": {Type: genai.TypeString, Description: "A funny intro line."},
			"mockScore":    {Type: genai.TypeInteger, Description: "Humorous score from 0 to 100."},
			"mockLabel":    {Type: genai.TypeString, Description: "Short funny title matching the score."},
			"sections": {
				Type:        genai.TypeArray,
				Description: "Critiques of individual resume sections.",
				Items:       section,
			},
			"finalVerdict": {Type: genai.TypeString, Description: "Witty closing summary."},
		},
		Required:         roastResultFields,
		PropertyOrdering: roastResultFields,
	}
}

// JSONSchema renders a genai schema as a plain JSON Schema document with
// closed objects, for providers that take strict JSON Schema.
func JSONSchema(s *genai.Schema) map[string]any {
	if s == nil {
		return nil
	}

	out := map[string]any{
		"type": strings.ToLower(string(s.Type)),
	}
	if s.Description != "" {
		out["description"] = s.Description
	}

	if s.Type == genai.TypeObject {
		props := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = JSONSchema(prop)
		}
		out["properties"] = props
		out["required"] = s.Required
		out["additionalProperties"] = false
	}

	if s.Items != nil {
		out["items"] = JSONSchema(s.Items)
	}

	return out
}
