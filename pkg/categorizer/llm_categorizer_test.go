package categorizer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"textcat/internal/config"
	"textcat/internal/models"
	"textcat/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock Completer ---
type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) GenerateChatCompletion(ctx context.Context, messages []services.ChatMessage) (services.Completion, error) {
	args := m.Called(ctx, messages)
	return args.Get(0).(services.Completion), args.Error(1)
}

func (m *mockCompleter) Name() string      { return services.ProviderOpenAI }
func (m *mockCompleter) ModelName() string { return "gpt-test" }
func (m *mockCompleter) Close() error      { return nil }

// --- Recording cost tracker ---
type recordingTracker struct {
	entries []*models.AIUsageLog
}

func (r *recordingTracker) RecordUsage(ctx context.Context, entry *models.AIUsageLog) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *recordingTracker) TotalCost(ctx context.Context) (float64, error) { return 0, nil }

var dummyCreds = config.StaticCredentials{"OPENAI_API_KEY": "dummy_key", "GEMINI_API_KEY": "dummy_gemini"}

// dialTo returns a Dialer that hands out c and records the options it was given.
func dialTo(c services.Completer, got *services.ProviderOptions) Dialer {
	return func(opts services.ProviderOptions) (services.Completer, error) {
		if got != nil {
			*got = opts
		}
		return c, nil
	}
}

func failDial(t *testing.T) Dialer {
	return func(opts services.ProviderOptions) (services.Completer, error) {
		t.Fatalf("dial must not be called, got %+v", opts)
		return nil, nil
	}
}

func TestNewLLMCategorizer_DefaultModel(t *testing.T) {
	var got services.ProviderOptions
	bot, err := NewLLMCategorizer("", Options{Credentials: dummyCreds, Dial: dialTo(&mockCompleter{}, &got)})
	require.NoError(t, err)

	assert.Equal(t, DefaultModel, bot.Model())
	assert.Equal(t, services.ProviderOpenAI, bot.Provider())
	assert.Equal(t, services.ProviderOptions{
		Provider: services.ProviderOpenAI,
		Model:    DefaultModel,
		APIKey:   "dummy_key",
	}, got)
}

func TestNewLLMCategorizer_GeminiModel(t *testing.T) {
	var got services.ProviderOptions
	bot, err := NewLLMCategorizer("gemini-1.5-flash", Options{Credentials: dummyCreds, Dial: dialTo(&mockCompleter{}, &got)})
	require.NoError(t, err)

	assert.Equal(t, services.ProviderGemini, bot.Provider())
	assert.Equal(t, "dummy_gemini", got.APIKey)
}

func TestNewLLMCategorizer_InvalidModel(t *testing.T) {
	_, err := NewLLMCategorizer("not-a-model", Options{Credentials: dummyCreds, Dial: failDial(t)})

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidModel)
	assert.Contains(t, err.Error(), "not-a-model")
}

func TestNewLLMCategorizer_MissingCredential(t *testing.T) {
	testCases := []struct {
		model string
		key   string
	}{
		{model: "gpt-3.5-turbo", key: "OPENAI_API_KEY"},
		{model: "gemini-1.5-pro", key: "GEMINI_API_KEY"},
	}

	for _, tc := range testCases {
		t.Run(tc.model, func(t *testing.T) {
			_, err := NewLLMCategorizer(tc.model, Options{Credentials: config.StaticCredentials{}, Dial: failDial(t)})

			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrMissingCredential)

			var missing *MissingCredentialError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tc.key, missing.Key)
			assert.Contains(t, err.Error(), tc.key, "error message should name the missing key")
		})
	}
}

func TestNewLLMCategorizer_EnvironmentCredentials(t *testing.T) {
	t.Run("Set", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "dummy_key")
		var got services.ProviderOptions
		_, err := NewLLMCategorizer("", Options{Dial: dialTo(&mockCompleter{}, &got)})
		require.NoError(t, err)
		assert.Equal(t, "dummy_key", got.APIKey)
	})

	t.Run("Empty counts as missing", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		_, err := NewLLMCategorizer("", Options{Dial: failDial(t)})
		assert.ErrorIs(t, err, models.ErrMissingCredential)
	})
}

func TestNewLLMCategorizer_DialError(t *testing.T) {
	dialErr := errors.New("dial failed")
	_, err := NewLLMCategorizer("", Options{
		Credentials: dummyCreds,
		Dial: func(services.ProviderOptions) (services.Completer, error) {
			return nil, dialErr
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, dialErr)
}

func TestLLMCategorizer_Categorize(t *testing.T) {
	testCases := []struct {
		name     string
		output   string
		expected Category
	}{
		{name: "Exact label", output: "Sports", expected: Sports},
		{name: "Trailing period stripped", output: "Technology.", expected: Technology},
		{name: "Whitespace and punctuation", output: "  Politics!\n", expected: Politics},
		{name: "Other", output: "Other", expected: Other},
		{name: "Unknown label", output: "UnknownCategory", expected: FailedToClassify},
		{name: "Wrong case", output: "technology", expected: FailedToClassify},
		{name: "Extra words", output: "Technology news", expected: FailedToClassify},
		{name: "Empty output", output: "", expected: FailedToClassify},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := &mockCompleter{}
			client.On("GenerateChatCompletion", mock.Anything, mock.Anything).
				Return(services.Completion{Text: tc.output}, nil).Once()

			bot, err := NewLLMCategorizer("", Options{Credentials: dummyCreds, Dial: dialTo(client, nil)})
			require.NoError(t, err)

			category, err := bot.Categorize(context.Background(), "Some text.")
			require.NoError(t, err, "an unrecognized answer is not an error")
			assert.Equal(t, tc.expected, category)
			client.AssertExpectations(t)
		})
	}
}

func TestLLMCategorizer_Categorize_SendsSystemAndUserMessages(t *testing.T) {
	text := "Football is a popular sport."
	client := &mockCompleter{}
	client.On("GenerateChatCompletion", mock.Anything, []services.ChatMessage{
		{Role: services.ChatMessageRoleSystem, Content: DefaultPrompt()},
		{Role: services.ChatMessageRoleUser, Content: text},
	}).Return(services.Completion{Text: "Sports"}, nil).Once()

	bot, err := NewLLMCategorizer("", Options{Credentials: dummyCreds, Dial: dialTo(client, nil)})
	require.NoError(t, err)

	category, err := bot.Categorize(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, Sports, category)
	client.AssertExpectations(t)
}

func TestLLMCategorizer_Categorize_ProviderErrors(t *testing.T) {
	testCases := []struct {
		name      string
		err       error
		sentinel  error
		message   string
		retryable bool
	}{
		{
			name:     "Rate limited",
			err:      fmt.Errorf("%w: 429", models.ErrRateLimited),
			sentinel: models.ErrRateLimited,
			message:  "quota",
		},
		{
			name:      "Connectivity",
			err:       fmt.Errorf("%w: connection refused", models.ErrConnectivity),
			sentinel:  models.ErrConnectivity,
			message:   "Network issues",
			retryable: true,
		},
		{
			name:     "Generic",
			err:      fmt.Errorf("%w: 500 boom", models.ErrProviderFailure),
			sentinel: models.ErrProviderFailure,
			message:  "OpenAI request error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := &mockCompleter{}
			client.On("GenerateChatCompletion", mock.Anything, mock.Anything).
				Return(services.Completion{}, tc.err).Once()

			bot, err := NewLLMCategorizer("", Options{Credentials: dummyCreds, Dial: dialTo(client, nil)})
			require.NoError(t, err)

			_, err = bot.Categorize(context.Background(), "text")
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.sentinel)

			var compErr *CompletionError
			require.ErrorAs(t, err, &compErr)
			assert.Contains(t, compErr.Error(), tc.message)
			assert.Equal(t, tc.retryable, compErr.Retryable())
			client.AssertNumberOfCalls(t, "GenerateChatCompletion", 1) // no retry
		})
	}
}

func TestLLMCategorizer_RecordsUsage(t *testing.T) {
	client := &mockCompleter{}
	client.On("GenerateChatCompletion", mock.Anything, mock.Anything).Return(services.Completion{
		Text:  "Technology",
		Usage: services.Usage{PromptTokens: 100, CompletionTokens: 2},
	}, nil)

	tracker := &recordingTracker{}
	bot, err := NewLLMCategorizer("", Options{
		Credentials: dummyCreds,
		Dial:        dialTo(client, nil),
		CostTracker: tracker,
		Pricing: map[string]config.PricingInfo{
			DefaultModel: {InputPerToken: 0.001, OutputPerToken: 0.002},
		},
	})
	require.NoError(t, err)

	_, err = bot.Categorize(context.Background(), "text")
	require.NoError(t, err)

	require.Len(t, tracker.entries, 1)
	entry := tracker.entries[0]
	assert.Equal(t, "categorization", entry.ServiceType)
	assert.Equal(t, DefaultModel, entry.ModelName)
	assert.Equal(t, 100, entry.InputTokens)
	assert.Equal(t, 2, entry.OutputTokens)
	assert.True(t, entry.Priced)
	assert.InDelta(t, 0.104, entry.Cost, 1e-9)
}

func TestLLMCategorizer_UsageWithoutPricing(t *testing.T) {
	client := &mockCompleter{}
	client.On("GenerateChatCompletion", mock.Anything, mock.Anything).Return(services.Completion{
		Text:  "Technology",
		Usage: services.Usage{PromptTokens: 10, CompletionTokens: 1},
	}, nil)

	tracker := &recordingTracker{}
	bot, err := NewLLMCategorizer("", Options{Credentials: dummyCreds, Dial: dialTo(client, nil), CostTracker: tracker})
	require.NoError(t, err)

	category, err := bot.Categorize(context.Background(), "text")
	require.NoError(t, err, "missing pricing must not fail classification")
	assert.Equal(t, Technology, category)
	require.Len(t, tracker.entries, 1)
	assert.False(t, tracker.entries[0].Priced)
}

func TestBuildPrompt(t *testing.T) {
	assert.Equal(t, DefaultPrompt(), BuildPrompt(""))
	assert.Equal(t, DefaultPrompt(), BuildPrompt("  \n"))
	assert.Equal(t, "Pick one of: Politics, Sports, Technology, Other", BuildPrompt("Pick one of: {{CATEGORIES}}"))

	prompt := DefaultPrompt()
	for _, c := range Categories() {
		assert.Contains(t, prompt, string(c))
	}
	assert.Contains(t, prompt, "only the category")
}

func TestSupportedModels(t *testing.T) {
	all := SupportedModels()
	require.NotEmpty(t, all)

	var sawDefault bool
	for _, m := range all {
		provider, ok := ProviderFor(m.Model)
		require.True(t, ok)
		assert.Equal(t, provider, m.Provider)
		key, ok := CredentialKey(m.Provider)
		require.True(t, ok, "every provider needs a credential key")
		assert.Equal(t, key, m.CredentialKey)
		if m.Model == DefaultModel {
			sawDefault = true
		}
	}
	assert.True(t, sawDefault, "the default model must be supported")
}
