package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultPromptDir is the subdirectory within the user's home directory.
const defaultPromptDir = ".config/textcat/prompts"

// LoadPromptContent resolves the path for a prompt template and reads its content.
// An empty configuredPath returns "", meaning the built-in prompt is used.
// Absolute paths are read directly; relative paths are looked up first in the
// working directory and then under ~/.config/textcat/prompts/.
func LoadPromptContent(configuredPath string) (string, error) {
	if configuredPath == "" {
		return "", nil
	}

	candidates := []string{configuredPath}
	if !filepath.IsAbs(configuredPath) {
		if homeDir, err := os.UserHomeDir(); err == nil {
			candidates = append(candidates, filepath.Join(homeDir, defaultPromptDir, configuredPath))
		}
	}

	for _, path := range candidates {
		promptBytes, err := os.ReadFile(path)
		if err == nil {
			return string(promptBytes), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to read prompt file '%s': %w", path, err)
		}
	}
	return "", fmt.Errorf("prompt file '%s' not found (searched %v)", configuredPath, candidates)
}
