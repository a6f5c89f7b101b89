package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"alfredoptarigan/resume-mocker/internal/config"
)

type geminiService struct {
	client    *genai.Client
	modelName string
}

// NewGeminiService builds the Gemini model. A missing key is not an error
// here; every call then fails with ErrMissingCredential without touching
// the network.
func NewGeminiService(cfg config.GeminiConfig) (RoastModel, error) {
	svc := &geminiService{modelName: cfg.Model}

	apiKey := cfg.Key()
	if apiKey == "" {
		log.Println("⚠️  GEMINI_API_KEY is not set; roasts will fail until it is configured")
		return svc, nil
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(context.Background(), clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	svc.client = client

	return svc, nil
}

func (g *geminiService) Provider() string {
	return config.ProviderGemini
}

// GenerateRoast implements RoastModel.
func (g *geminiService) GenerateRoast(ctx context.Context, payload *RoastPayload) (string, error) {
	if g.client == nil {
		return "", newRoastError(KindMissingCredential, "GEMINI_API_KEY environment variable not set")
	}

	data, err := payload.File.Bytes()
	if err != nil {
		return "", newRoastError(KindInvalidFile, "failed to decode file payload: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, payload.File.MimeType),
			genai.NewPartFromText(payload.UserPrompt),
		}, genai.RoleUser),
	}

	generateCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(payload.SystemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    payload.Schema,
	}
	if payload.Temperature > 0 {
		temperature := payload.Temperature
		generateCfg.Temperature = &temperature
	}

	model := payload.Model
	if model == "" {
		model = g.modelName
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, contents, generateCfg)
	if err != nil {
		log.Printf("❌ Gemini API error: %v", err)
		code, status := geminiErrorStatus(err)
		return "", classifyCallError(ctx, err, code, status)
	}

	if resp == nil {
		return "", newRoastError(KindMalformedResponse, "no response generated (nil response)")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		reason := "no text content in response"
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			reason = fmt.Sprintf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		} else if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != "" {
			reason = fmt.Sprintf("no text content, finish reason %s", resp.Candidates[0].FinishReason)
		}
		return "", newRoastError(KindMalformedResponse, "%s", reason)
	}

	return text, nil
}

func geminiErrorStatus(err error) (int, string) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr.Status
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, apiErrPtr.Status
	}
	return 0, ""
}
