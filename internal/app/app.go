package app

import (
	"context"
	"fmt"
	"os"

	"textcat/internal/config"
	"textcat/internal/costtracker"
	"textcat/pkg/categorizer"

	log "github.com/sirupsen/logrus"
)

type App struct {
	Config *config.Config

	// Credentials is consulted every time a categorizer is built, so a key
	// exported after startup is picked up by the next request.
	Credentials config.CredentialSource
	CostTracker costtracker.CostTracker

	// Dial overrides provider construction; nil uses the real providers.
	Dial categorizer.Dialer

	prompt string
}

func NewApp(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	if err := app.initLogging(); err != nil {
		return nil, err
	}
	if err := app.initPrompt(); err != nil {
		return nil, err
	}
	app.Credentials = config.EnvCredentials()
	app.CostTracker = costtracker.New(log.StandardLogger())

	log.Debugf("Application initialization complete (default model %s).", cfg.Categorizer.Model)
	return app, nil
}

// --- Private Helper Methods ---

func (a *App) initLogging() error {
	level, err := log.ParseLevel(a.Config.Log.Level)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	if a.Config.Log.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func (a *App) initPrompt() error {
	promptContent, err := config.LoadPromptContent(a.Config.Categorizer.PromptTemplate)
	if err != nil {
		return fmt.Errorf("load categorization prompt: %w", err)
	}
	if promptContent != "" {
		log.Infof("Using categorization prompt from %s", a.Config.Categorizer.PromptTemplate)
	}
	a.prompt = promptContent
	return nil
}

// ValidateModel checks that the configured default model is supported.
func (a *App) ValidateModel() error {
	if _, ok := categorizer.ProviderFor(a.Config.Categorizer.Model); !ok {
		return fmt.Errorf("categorizer.model %q is not a supported model", a.Config.Categorizer.Model)
	}
	return nil
}

// NewCategorizer builds a categorizer for model (empty uses the configured
// default). Callers own the result and must Close it.
func (a *App) NewCategorizer(model string) (*categorizer.LLMCategorizer, error) {
	if model == "" {
		model = a.Config.Categorizer.Model
	}
	return categorizer.NewLLMCategorizer(model, categorizer.Options{
		Credentials:    a.Credentials,
		Dial:           a.Dial,
		BaseURL:        a.Config.Providers.OpenAI.BaseURL,
		PromptTemplate: a.prompt,
		CostTracker:    a.CostTracker,
		Pricing:        a.Config.PricingTable(),
	})
}

// CategorizeText classifies text with a fresh categorizer for the default
// model. Nothing is shared between calls except the cost tracker.
func (a *App) CategorizeText(ctx context.Context, text string) (categorizer.Category, error) {
	bot, err := a.NewCategorizer("")
	if err != nil {
		return "", err
	}
	defer func() {
		if err := bot.Close(); err != nil {
			log.Warnf("Failed to close %s client: %v", bot.Provider(), err)
		}
	}()

	if timeout := a.Config.Categorizer.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return bot.Categorize(ctx, text)
}
