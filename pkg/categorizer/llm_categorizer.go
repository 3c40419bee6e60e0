package categorizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"textcat/internal/config"
	"textcat/internal/costtracker"
	"textcat/internal/models"
	"textcat/internal/services"

	log "github.com/sirupsen/logrus"
)

// CategoriesPlaceholder is replaced with the comma-joined category list in
// custom prompt templates.
const CategoriesPlaceholder = "{{CATEGORIES}}"

// Dialer builds the provider handle for a categorizer.
type Dialer func(opts services.ProviderOptions) (services.Completer, error)

// Options configures NewLLMCategorizer. The zero value reads credentials from
// the environment and dials the real providers.
type Options struct {
	Credentials    config.CredentialSource
	Dial           Dialer
	BaseURL        string // passed to the provider as an endpoint override
	PromptTemplate string // empty uses DefaultPrompt

	// Cost tracking
	CostTracker costtracker.CostTracker
	Pricing     map[string]config.PricingInfo
}

// LLMCategorizer implements ContentCategorizer on top of a chat completion
// provider. An instance is bound to one model and one credential.
type LLMCategorizer struct {
	model    string
	provider string
	client   services.Completer
	prompt   string

	costTracker costtracker.CostTracker
	pricing     map[string]config.PricingInfo
}

// NewLLMCategorizer validates model and its credential and dials the
// provider. Empty model selects DefaultModel. Unknown models fail with
// models.ErrInvalidModel and a missing credential with *MissingCredentialError,
// both before any remote call.
func NewLLMCategorizer(model string, opts Options) (*LLMCategorizer, error) {
	if model == "" {
		model = DefaultModel
	}

	provider, ok := ProviderFor(model)
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidModel, model)
	}
	key, ok := CredentialKey(provider)
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownProvider, provider)
	}

	creds := opts.Credentials
	if creds == nil {
		creds = config.EnvCredentials()
	}
	apiKey, ok := creds.Lookup(key)
	if !ok {
		return nil, &MissingCredentialError{Model: model, Key: key}
	}

	dial := opts.Dial
	if dial == nil {
		dial = services.NewCompleter
	}
	client, err := dial(services.ProviderOptions{
		Provider: provider,
		Model:    model,
		APIKey:   apiKey,
		BaseURL:  opts.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize %s client: %w", provider, err)
	}

	tracker := opts.CostTracker
	if tracker == nil {
		tracker = costtracker.Noop()
	}

	return &LLMCategorizer{
		model:       model,
		provider:    provider,
		client:      client,
		prompt:      BuildPrompt(opts.PromptTemplate),
		costTracker: tracker,
		pricing:     opts.Pricing,
	}, nil
}

// DefaultPrompt returns the built-in classification instruction.
func DefaultPrompt() string {
	return "Classify the following text as one of the following categories: " + categoryList() + ". " +
		"Your answer should contain only the category and nothing else, not even punctuation."
}

// BuildPrompt fills tmpl's CategoriesPlaceholder. Empty tmpl yields DefaultPrompt.
func BuildPrompt(tmpl string) string {
	if strings.TrimSpace(tmpl) == "" {
		return DefaultPrompt()
	}
	return strings.ReplaceAll(tmpl, CategoriesPlaceholder, categoryList())
}

func categoryList() string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// Model returns the model identifier this categorizer is bound to.
func (c *LLMCategorizer) Model() string { return c.model }

// Provider returns the provider name resolved for the model.
func (c *LLMCategorizer) Provider() string { return c.provider }

// Categorize sends the instruction and text to the model and maps the
// sanitized answer onto the category set. An unrecognized answer is not an
// error: it yields FailedToClassify. Remote failures return *CompletionError
// and are never retried here.
func (c *LLMCategorizer) Categorize(ctx context.Context, text string) (Category, error) {
	messages := []services.ChatMessage{
		{Role: services.ChatMessageRoleSystem, Content: c.prompt},
		{Role: services.ChatMessageRoleUser, Content: text},
	}

	completion, err := c.client.GenerateChatCompletion(ctx, messages)
	if err != nil {
		return "", newCompletionError(c.provider, err)
	}
	c.recordUsage(ctx, completion.Usage)

	log.Debugf("Raw %s output for model %s: %q", c.provider, c.model, completion.Text)
	category := Validate(Sanitize(completion.Text))
	if category == FailedToClassify {
		log.Warnf("Model %s answered %q, which is not a known category", c.model, completion.Text)
	}
	return category, nil
}

// Close releases the provider handle.
func (c *LLMCategorizer) Close() error {
	return c.client.Close()
}

func (c *LLMCategorizer) recordUsage(ctx context.Context, usage services.Usage) {
	if usage.Total() == 0 {
		return
	}

	entry := &models.AIUsageLog{
		Timestamp:    time.Now().UTC(),
		RequestID:    costtracker.RequestIDFromContext(ctx),
		ProviderName: c.provider,
		ServiceType:  "categorization",
		ModelName:    c.model,
		InputTokens:  usage.PromptTokens,
		OutputTokens: usage.CompletionTokens,
	}
	if price, ok := c.pricing[c.model]; ok {
		entry.Cost = float64(usage.PromptTokens)*price.InputPerToken +
			float64(usage.CompletionTokens)*price.OutputPerToken
		entry.Priced = true
	} else {
		log.Debugf("Pricing info not found for model '%s'. Cannot record cost for categorization.", c.model)
	}

	if err := c.costTracker.RecordUsage(ctx, entry); err != nil {
		log.Errorf("Failed to record AI usage log for categorization: %v", err)
	}
}

var _ ContentCategorizer = (*LLMCategorizer)(nil)
