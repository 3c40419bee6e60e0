package categorizer

import (
	"errors"
	"fmt"

	"textcat/internal/models"
)

// MissingCredentialError reports that the credential required by a model's
// provider is not configured. It matches models.ErrMissingCredential.
type MissingCredentialError struct {
	Model string
	Key   string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("your selected model `%s` requires environment variable `%s` that was not found", e.Model, e.Key)
}

func (e *MissingCredentialError) Is(target error) bool {
	return target == models.ErrMissingCredential
}

// CompletionError is the runtime failure returned when the remote call fails.
// Message is meant for humans; Err keeps the classified provider error.
type CompletionError struct {
	Provider string
	Message  string
	Err      error
}

func (e *CompletionError) Error() string { return e.Message }

func (e *CompletionError) Unwrap() error { return e.Err }

// Retryable reports whether the failure was a connectivity problem. Nothing
// retries automatically; callers decide.
func (e *CompletionError) Retryable() bool {
	return errors.Is(e.Err, models.ErrConnectivity)
}

func newCompletionError(provider string, err error) *CompletionError {
	var msg string
	switch {
	case errors.Is(err, models.ErrRateLimited):
		msg = fmt.Sprintf("Out of %s quota or rate limited. Check your plan and billing details.", provider)
	case errors.Is(err, models.ErrConnectivity):
		msg = fmt.Sprintf("Network issues reaching %s. Try again.", provider)
	default:
		msg = fmt.Sprintf("%s request error: %v", provider, err)
	}
	return &CompletionError{Provider: provider, Message: msg, Err: err}
}
