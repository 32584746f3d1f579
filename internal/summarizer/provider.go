package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Provider is a pluggable backend able to turn attached documents and
// instructions into report text.
type Provider interface {
	// Summarize uploads the documents, issues exactly one generation
	// call combining the attachments with the built prompt, and
	// returns the report text.
	Summarize(ctx context.Context, documents []DocumentInput, model string, extraPrompt string) (string, error)
	// AvailableModels returns the informational list of supported
	// model names. It is not enforced against Summarize's model
	// argument; unsupported models are rejected upstream.
	AvailableModels() []string
}

// Config carries the process-wide provider credentials. It is set once
// at startup and read-only afterwards.
type Config struct {
	OpenAIAPIKey string
	GoogleAPIKey string
	// CleanupUploads makes the Gemini provider delete uploaded files
	// after generation. Off by default: remote file lifecycle is
	// otherwise left to the backend.
	CleanupUploads bool
}

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// NewProvider resolves a provider name to a fresh instance. The name
// is matched case-insensitively against the known registry.
func NewProvider(ctx context.Context, name string, cfg Config, log *slog.Logger) (Provider, error) {
	switch strings.ToLower(name) {
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg, log)
	case ProviderGemini:
		return NewGeminiProvider(ctx, cfg, log)
	default:
		return nil, &ValidationError{Message: fmt.Sprintf(
			"unknown provider: %s. Supported providers: %s, %s",
			name, ProviderOpenAI, ProviderGemini)}
	}
}

// Service is the inbound facade consumed by the surrounding layers.
// It holds no per-call state, so one instance serves concurrent calls.
type Service struct {
	cfg Config
	log *slog.Logger
}

func NewService(cfg Config, log *slog.Logger) *Service {
	return &Service{cfg: cfg, log: log}
}

// Summarize resolves the named provider and runs one summarization.
func (s *Service) Summarize(
	ctx context.Context,
	providerName string,
	documents []DocumentInput,
	model string,
	extraPrompt string,
) (string, error) {
	provider, err := NewProvider(ctx, providerName, s.cfg, s.log)
	if err != nil {
		return "", err
	}

	return provider.Summarize(ctx, documents, model, extraPrompt)
}

// AvailableModels reports the named provider's model list.
func (s *Service) AvailableModels(ctx context.Context, providerName string) ([]string, error) {
	provider, err := NewProvider(ctx, providerName, s.cfg, s.log)
	if err != nil {
		return nil, err
	}

	return provider.AvailableModels(), nil
}
