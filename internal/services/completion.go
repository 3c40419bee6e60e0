package services

import (
	"context"
	"fmt"

	"textcat/internal/models"
)

// ChatMessageRole defines the role of the message sender (system, user, assistant).
type ChatMessageRole string

const (
	ChatMessageRoleSystem    ChatMessageRole = "system"
	ChatMessageRoleUser      ChatMessageRole = "user"
	ChatMessageRoleAssistant ChatMessageRole = "assistant" // "model" for Gemini
)

// Provider names as used in the categorizer's model table.
const (
	ProviderOpenAI = "OpenAI"
	ProviderGemini = "Gemini"
)

// ChatMessage represents a single message in a chat conversation.
type ChatMessage struct {
	Role    ChatMessageRole
	Content string
}

// Usage is the token accounting reported by a provider for one call.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// Total returns prompt plus completion tokens.
func (u Usage) Total() int { return u.PromptTokens + u.CompletionTokens }

// Completion is the first returned choice of a chat completion.
type Completion struct {
	Text  string
	Usage Usage
}

// Completer is a handle bound to one provider, model and credential.
type Completer interface {
	// GenerateChatCompletion returns the first completion. Errors wrap one of
	// models.ErrRateLimited, models.ErrConnectivity or models.ErrProviderFailure.
	GenerateChatCompletion(ctx context.Context, messages []ChatMessage) (Completion, error)
	Name() string      // Provider name (e.g., "OpenAI", "Gemini")
	ModelName() string // Specific model used
	Close() error
}

// ProviderOptions carries everything needed to build a Completer.
type ProviderOptions struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string // Optional endpoint override (OpenAI-compatible servers)
}

// NewCompleter selects the provider implementation once, by name.
func NewCompleter(opts ProviderOptions) (Completer, error) {
	switch opts.Provider {
	case ProviderOpenAI:
		return NewOpenAIProvider(opts.APIKey, opts.Model, opts.BaseURL)
	case ProviderGemini:
		return NewGeminiProvider(context.Background(), opts.APIKey, opts.Model)
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownProvider, opts.Provider)
	}
}
