package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"textcat/internal/models"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

// OpenAIProvider implements Completer using the OpenAI chat completions API.
type OpenAIProvider struct {
	client interface {
		CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	}
	model string
}

// NewOpenAIProvider creates a new OpenAI completion provider. baseURL may be
// empty to use the public API.
func NewOpenAIProvider(apiKey, model, baseURL string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	log.Debugf("OpenAI provider initialized with model %s", model)

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string { return ProviderOpenAI }

// ModelName returns the specific model identifier.
func (p *OpenAIProvider) ModelName() string { return p.model }

// Close is a no-op; the OpenAI client holds no resources of its own.
func (p *OpenAIProvider) Close() error { return nil }

func (p *OpenAIProvider) GenerateChatCompletion(ctx context.Context, messages []ChatMessage) (Completion, error) {
	req := openai.ChatCompletionRequest{
		Model:    p.model,
		Messages: make([]openai.ChatCompletionMessage, len(messages)),
	}
	for i, m := range messages {
		req.Messages[i] = openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return Completion{}, classifyOpenAIError(err)
	}

	out := Completion{
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
		},
	}
	if len(resp.Choices) == 0 {
		log.Warnf("OpenAI returned no choices for model %s", p.model)
		return out, nil
	}
	out.Text = resp.Choices[0].Message.Content
	return out, nil
}

// classifyOpenAIError wraps err with the matching models sentinel.
func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests ||
			apiErr.Code == "insufficient_quota" || apiErr.Code == "rate_limit_exceeded" {
			return fmt.Errorf("%w: %w", models.ErrRateLimited, err)
		}
		return fmt.Errorf("%w: %w", models.ErrProviderFailure, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w", models.ErrRateLimited, err)
	}

	if isConnectivityError(err) {
		return fmt.Errorf("%w: %w", models.ErrConnectivity, err)
	}
	return fmt.Errorf("%w: %w", models.ErrProviderFailure, err)
}

// isConnectivityError reports transport-level failures: dial errors, resets,
// timeouts. Caller cancellation is not one of them.
func isConnectivityError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

var _ Completer = (*OpenAIProvider)(nil)
