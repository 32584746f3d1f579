package summarizer

import "fmt"

// ValidationError reports a caller-fixable input problem: an empty
// document set or an unknown provider name. It is always returned
// before any upstream call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConfigurationError reports a missing or unusable backend credential.
// It is returned at provider construction, never mid-call.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// ProviderError wraps an upstream failure while uploading, polling, or
// generating. The failed call is never retried internally.
type ProviderError struct {
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *ProviderError) Unwrap() error { return e.Err }
