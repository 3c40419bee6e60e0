package config

import (
	"github.com/spf13/viper"
)

// CredentialSource resolves a provider credential by its configuration key
// (e.g. OPENAI_API_KEY). The bool reports whether a non-empty value exists.
type CredentialSource interface {
	Lookup(key string) (string, bool)
}

// envCredentials reads credentials from the process environment. viper
// consults the environment on every Get, so values are read at lookup time
// rather than cached at startup.
type envCredentials struct {
	v *viper.Viper
}

// EnvCredentials returns a CredentialSource backed by the process environment.
// Empty variables are treated as absent.
func EnvCredentials() CredentialSource {
	v := viper.New()
	v.AutomaticEnv()
	return &envCredentials{v: v}
}

func (e *envCredentials) Lookup(key string) (string, bool) {
	val := e.v.GetString(key)
	return val, val != ""
}

// StaticCredentials is a fixed CredentialSource, mainly for tests and for
// callers that resolve secrets elsewhere.
type StaticCredentials map[string]string

func (s StaticCredentials) Lookup(key string) (string, bool) {
	val, ok := s[key]
	return val, ok && val != ""
}
