package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"textcat/internal/models"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiProvider implements Completer using the Google Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a new Gemini completion provider.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	log.Debugf("Gemini provider initialized with model %s", model)

	return &GeminiProvider{client: client, model: model}, nil
}

// Name returns the provider name.
func (p *GeminiProvider) Name() string { return ProviderGemini }

// ModelName returns the specific model identifier.
func (p *GeminiProvider) ModelName() string { return p.model }

// GenerateChatCompletion maps system messages onto the model's system
// instruction and sends the remaining messages as a single-turn request.
func (p *GeminiProvider) GenerateChatCompletion(ctx context.Context, messages []ChatMessage) (Completion, error) {
	gm := p.client.GenerativeModel(p.model)

	var system []genai.Part
	var parts []genai.Part
	for _, m := range messages {
		switch m.Role {
		case ChatMessageRoleSystem:
			system = append(system, genai.Text(m.Content))
		default:
			parts = append(parts, genai.Text(m.Content))
		}
	}
	if len(system) > 0 {
		gm.SystemInstruction = &genai.Content{Parts: system}
	}

	resp, err := gm.GenerateContent(ctx, parts...)
	if err != nil {
		return Completion{}, classifyGeminiError(err)
	}

	var out Completion
	if resp.UsageMetadata != nil {
		out.Usage = Usage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		log.Warnf("Gemini returned no candidates for model %s", p.model)
		return out, nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	out.Text = sb.String()
	return out, nil
}

// classifyGeminiError wraps err with the matching models sentinel.
func classifyGeminiError(err error) error {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) && gErr.Code == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w", models.ErrRateLimited, err)
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPCode() == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w", models.ErrRateLimited, err)
	}

	if isConnectivityError(err) {
		return fmt.Errorf("%w: %w", models.ErrConnectivity, err)
	}
	return fmt.Errorf("%w: %w", models.ErrProviderFailure, err)
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

var _ Completer = (*GeminiProvider)(nil)
