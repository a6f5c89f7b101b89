package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"alfredoptarigan/resume-mocker/internal/config"
)

type openAIService struct {
	client    *openai.Client
	modelName string
}

// NewOpenAIService builds a model backed by an OpenAI-compatible chat
// completions endpoint. SDK retries are disabled so each roast is one call.
func NewOpenAIService(cfg config.OpenAIConfig) RoastModel {
	svc := &openAIService{modelName: cfg.Model}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		log.Println("⚠️  OPENAI_API_KEY is not set; roasts will fail until it is configured")
		return svc
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(0),
	)
	svc.client = &client

	return svc
}

func (o *openAIService) Provider() string {
	return config.ProviderOpenAI
}

// GenerateRoast implements RoastModel.
func (o *openAIService) GenerateRoast(ctx context.Context, payload *RoastPayload) (string, error) {
	if o.client == nil {
		return "", newRoastError(KindMissingCredential, "OPENAI_API_KEY environment variable not set")
	}

	model := payload.Model
	if model == "" {
		model = o.modelName
	}

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(payload.SystemInstruction),
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				filePart(payload.File),
				openai.TextContentPart(payload.UserPrompt),
			}),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "roast_result",
					Schema: JSONSchema(payload.Schema),
					Strict: openai.Bool(true),
				},
			},
		},
	}
	if payload.Temperature > 0 {
		params.Temperature = openai.Float(float64(payload.Temperature))
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		log.Printf("❌ OpenAI API error: %v", err)
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", classifyCallError(ctx, err, apiErr.StatusCode, "")
		}
		return "", classifyCallError(ctx, err, 0, "")
	}

	if resp == nil || len(resp.Choices) == 0 {
		return "", newRoastError(KindMalformedResponse, "no choices in response")
	}

	choice := resp.Choices[0]
	if choice.Message.Refusal != "" {
		return "", newRoastError(KindMalformedResponse, "model refused: %s", choice.Message.Refusal)
	}

	text := strings.TrimSpace(choice.Message.Content)
	if text == "" {
		return "", newRoastError(KindMalformedResponse, "no text content, finish reason %s", choice.FinishReason)
	}

	return text, nil
}

// filePart attaches images as image parts and PDFs as file parts.
func filePart(file *EncodedFile) openai.ChatCompletionContentPartUnionParam {
	if strings.HasPrefix(file.MimeType, "image/") {
		return openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: file.DataURL(),
		})
	}

	name := file.Name
	if name == "" {
		name = "resume.pdf"
	}
	return openai.FileContentPart(openai.ChatCompletionContentPartFileFileParam{
		FileData: openai.String(file.DataURL()),
		Filename: openai.String(name),
	})
}
