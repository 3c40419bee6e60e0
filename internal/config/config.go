package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// PricingInfo holds cost details per token for a specific model.
type PricingInfo struct {
	InputPerToken  float64 `mapstructure:"input_per_token"`
	OutputPerToken float64 `mapstructure:"output_per_token"`
}

// ModelPricing is one entry of the pricing list. Model names contain dots
// ("gpt-3.5-turbo"), which viper would split as key paths, so pricing is a
// list rather than a map keyed by model.
type ModelPricing struct {
	Model       string `mapstructure:"model"`
	PricingInfo `mapstructure:",squash"`
}

type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
		Port string `mapstructure:"port"`
		Mode string `mapstructure:"mode"` // gin mode: "release", "debug" or "test"
	} `mapstructure:"server"`

	Categorizer struct {
		Model          string        `mapstructure:"model"`
		PromptTemplate string        `mapstructure:"prompt_template"` // Path to a prompt file; empty uses the built-in prompt
		Timeout        time.Duration `mapstructure:"timeout"`         // 0 disables the per-request deadline
	} `mapstructure:"categorizer"`

	Providers struct {
		OpenAI struct {
			BaseURL string `mapstructure:"base_url"`
		} `mapstructure:"openai"`
	} `mapstructure:"providers"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"` // "text" or "json"
	} `mapstructure:"log"`

	Pricing []ModelPricing `mapstructure:"pricing"`
}

// EnvPrefix namespaces environment overrides, e.g. TEXTCAT_SERVER_PORT.
const EnvPrefix = "TEXTCAT"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "0.0.0.0")
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("categorizer.model", "gpt-3.5-turbo")
	v.SetDefault("categorizer.prompt_template", "")
	v.SetDefault("categorizer.timeout", "0s")
	v.SetDefault("providers.openai.base_url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadConfig reads config.yaml from the working directory (if present) and
// applies TEXTCAT_* environment overrides on top of the defaults.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(viper.New(), ".")
}

// LoadConfigFrom is LoadConfig with an explicit viper instance and search path.
func LoadConfigFrom(v *viper.Viper, paths ...string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; defaults and env vars still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return &config, nil
}

// ListenAddr joins the server address and port.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Addr, c.Server.Port)
}

// PricingTable indexes the pricing list by model name. Later entries win.
func (c *Config) PricingTable() map[string]PricingInfo {
	table := make(map[string]PricingInfo, len(c.Pricing))
	for _, p := range c.Pricing {
		table[p.Model] = p.PricingInfo
	}
	return table
}
