package categorizer

import (
	"sort"

	"textcat/internal/services"
)

// DefaultModel is used when no model identifier is given.
const DefaultModel = "gpt-3.5-turbo"

// validModels maps supported model identifiers to their provider.
var validModels = map[string]string{
	"gpt-3.5-turbo":    services.ProviderOpenAI,
	"gpt-4o-mini":      services.ProviderOpenAI,
	"gpt-4o":           services.ProviderOpenAI,
	"gemini-1.5-flash": services.ProviderGemini,
	"gemini-1.5-pro":   services.ProviderGemini,
}

// credentialKeys maps providers to the environment variable holding their API key.
var credentialKeys = map[string]string{
	services.ProviderOpenAI: "OPENAI_API_KEY",
	services.ProviderGemini: "GEMINI_API_KEY",
}

// ProviderFor returns the provider backing model.
func ProviderFor(model string) (string, bool) {
	p, ok := validModels[model]
	return p, ok
}

// CredentialKey returns the credential variable name required by provider.
func CredentialKey(provider string) (string, bool) {
	k, ok := credentialKeys[provider]
	return k, ok
}

// ModelInfo describes one supported model.
type ModelInfo struct {
	Model         string
	Provider      string
	CredentialKey string
}

// SupportedModels lists every supported model, sorted by provider then model.
func SupportedModels() []ModelInfo {
	out := make([]ModelInfo, 0, len(validModels))
	for m, p := range validModels {
		out = append(out, ModelInfo{Model: m, Provider: p, CredentialKey: credentialKeys[p]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Provider != out[j].Provider {
			return out[i].Provider < out[j].Provider
		}
		return out[i].Model < out[j].Model
	})
	return out
}
