package config

import (
	"errors"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// Validate checks the loaded configuration. Model membership is checked by
// the caller against the categorizer's model table, since config does not
// know which models exist.
func (c *Config) Validate() error {
	// Server config
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("server.port must be a number between 1 and 65535, got %q", c.Server.Port)
	}
	switch c.Server.Mode {
	case "release", "debug", "test":
	default:
		return fmt.Errorf("server.mode must be one of release, debug, test, got %q", c.Server.Mode)
	}

	// Categorizer config
	if c.Categorizer.Model == "" {
		return errors.New("categorizer.model is required")
	}
	if c.Categorizer.Timeout < 0 {
		return fmt.Errorf("categorizer.timeout must not be negative, got %s", c.Categorizer.Timeout)
	}

	// Log config
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'text' or 'json', got %q", c.Log.Format)
	}

	// Pricing config (optional, but if present, must be valid)
	for i, price := range c.Pricing {
		if price.Model == "" {
			return fmt.Errorf("pricing[%d] has an empty model name", i)
		}
		if price.InputPerToken < 0 || price.OutputPerToken < 0 {
			return fmt.Errorf("pricing for model '%s' has negative token cost", price.Model)
		}
	}

	return nil
}
