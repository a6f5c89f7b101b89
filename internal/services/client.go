package services

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"alfredoptarigan/resume-mocker/internal/config"
)

// RoastModel is the external generative model. Implementations issue
// exactly one call per GenerateRoast and return the raw response text.
type RoastModel interface {
	Provider() string
	GenerateRoast(ctx context.Context, payload *RoastPayload) (string, error)
}

// NewRoastModel returns the model for the configured provider.
func NewRoastModel(cfg *config.Config) (RoastModel, error) {
	if cfg.LLM.Provider == config.ProviderOpenAI {
		return NewOpenAIService(cfg.OpenAI), nil
	}
	return NewGeminiService(cfg.Gemini)
}

// classifyCallError maps a failed model call onto the roast error taxonomy.
// code and status come from the provider's API error when there is one.
func classifyCallError(ctx context.Context, err error, code int, status string) error {
	if err == nil {
		return nil
	}

	var re *RoastError
	if errors.As(err, &re) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &RoastError{Kind: KindRequestTimeout, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &RoastError{Kind: KindRequestTimeout, Err: err}
	}

	status = strings.ToUpper(status)
	switch {
	case code == http.StatusGatewayTimeout || status == "DEADLINE_EXCEEDED":
		return &RoastError{Kind: KindRequestTimeout, Err: err}
	case code == http.StatusUnauthorized || code == http.StatusForbidden ||
		status == "UNAUTHENTICATED" || status == "PERMISSION_DENIED":
		return &RoastError{Kind: KindMissingCredential, Err: err}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "deadline"):
		return &RoastError{Kind: KindRequestTimeout, Err: err}
	case strings.Contains(msg, "api key") || strings.Contains(msg, "api_key"):
		return &RoastError{Kind: KindMissingCredential, Err: err}
	}

	return &RoastError{Kind: KindServiceCallFailed, Err: err}
}
