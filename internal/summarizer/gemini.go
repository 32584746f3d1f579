package summarizer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	filePollInterval = 2 * time.Second
	filePollTimeout  = 60 * time.Second
)

// geminiBackend is the slice of the Gemini client the provider needs.
type geminiBackend interface {
	uploadFile(ctx context.Context, name string, data []byte) (*genai.File, error)
	getFile(ctx context.Context, name string) (*genai.File, error)
	generateContent(ctx context.Context, model string, parts ...genai.Part) (*genai.GenerateContentResponse, error)
	deleteFile(ctx context.Context, name string) error
}

type geminiClient struct {
	client *genai.Client
}

func (c *geminiClient) uploadFile(ctx context.Context, name string, data []byte) (*genai.File, error) {
	return c.client.UploadFile(ctx, "", bytes.NewReader(data), &genai.UploadFileOptions{
		DisplayName: name,
		MIMEType:    pdfMIMEType,
	})
}

func (c *geminiClient) getFile(ctx context.Context, name string) (*genai.File, error) {
	return c.client.GetFile(ctx, name)
}

func (c *geminiClient) generateContent(
	ctx context.Context,
	model string,
	parts ...genai.Part,
) (*genai.GenerateContentResponse, error) {
	return c.client.GenerativeModel(model).GenerateContent(ctx, parts...)
}

func (c *geminiClient) deleteFile(ctx context.Context, name string) error {
	return c.client.DeleteFile(ctx, name)
}

// GeminiProvider generates reports through the Gemini API. Uploaded
// files are processed asynchronously, so each upload is polled until
// its state machine reaches a terminal state before the next document
// is sent.
type GeminiProvider struct {
	backend        geminiBackend
	cleanupUploads bool
	sleep          func(ctx context.Context, d time.Duration) error
	log            *slog.Logger
}

func NewGeminiProvider(ctx context.Context, cfg Config, log *slog.Logger) (*GeminiProvider, error) {
	if cfg.GoogleAPIKey == "" {
		return nil, &ConfigurationError{Message: "GOOGLE_API_KEY is required for the gemini provider"}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GoogleAPIKey))
	if err != nil {
		return nil, &ConfigurationError{Message: fmt.Sprintf("create gemini client: %v", err)}
	}

	return &GeminiProvider{
		backend:        &geminiClient{client: client},
		cleanupUploads: cfg.CleanupUploads,
		sleep:          sleepContext,
		log:            log,
	}, nil
}

func (p *GeminiProvider) AvailableModels() []string {
	return []string{"gemini-2.0-flash", "gemini-1.5-pro", "gemini-1.5-flash"}
}

// Summarize attaches every document in caller order, strictly one at a
// time, then issues one generation call over all references. A single
// failed attachment fails the whole call: generation needs every
// reference present, so partial success has no value.
func (p *GeminiProvider) Summarize(
	ctx context.Context,
	documents []DocumentInput,
	model string,
	extraPrompt string,
) (string, error) {
	if len(documents) == 0 {
		return "", &ValidationError{Message: "at least one document is required"}
	}

	files := make([]*genai.File, 0, len(documents))
	for _, document := range documents {
		file, err := p.awaitUpload(ctx, document)
		if err != nil {
			return "", err
		}
		files = append(files, file)
	}

	parts := make([]genai.Part, 0, len(files)+2)
	parts = append(parts, genai.Text(leadInText))
	for _, file := range files {
		parts = append(parts, genai.FileData{MIMEType: file.MIMEType, URI: file.URI})
	}
	parts = append(parts, genai.Text(BuildPrompt(extraPrompt)))

	resp, err := p.backend.generateContent(ctx, model, parts...)
	if err != nil {
		return "", &ProviderError{Message: "generate content", Err: err}
	}

	if p.cleanupUploads {
		p.deleteFiles(ctx, files)
	}

	return extractGeminiText(resp), nil
}

// awaitUpload submits one document and waits for its reference to
// leave the PROCESSING state. The wait is bounded: fixed 2s steps
// against a 60s ceiling, after which any state other than ACTIVE
// fails the call.
func (p *GeminiProvider) awaitUpload(ctx context.Context, document DocumentInput) (*genai.File, error) {
	file, err := p.backend.uploadFile(ctx, document.Name, document.Data)
	if err != nil {
		return nil, &ProviderError{
			Message: fmt.Sprintf("upload document %q", document.Name),
			Err:     err,
		}
	}

	for waited := time.Duration(0); file.State == genai.FileStateProcessing && waited < filePollTimeout; {
		if err := p.sleep(ctx, filePollInterval); err != nil {
			return nil, &ProviderError{
				Message: fmt.Sprintf("wait for document %q", document.Name),
				Err:     err,
			}
		}
		waited += filePollInterval

		file, err = p.backend.getFile(ctx, file.Name)
		if err != nil {
			return nil, &ProviderError{
				Message: fmt.Sprintf("poll document %q", document.Name),
				Err:     err,
			}
		}
		p.log.DebugContext(ctx, "Polled uploaded document",
			"document", document.Name,
			"state", fileStateName(file.State),
			"waitedSeconds", waited.Seconds())
	}

	if file.State != genai.FileStateActive {
		return nil, &ProviderError{Message: fmt.Sprintf(
			"document %q is not usable (state = %s)",
			document.Name, fileStateName(file.State))}
	}

	return file, nil
}

// deleteFiles is best effort: a failed delete is logged, never fatal.
func (p *GeminiProvider) deleteFiles(ctx context.Context, files []*genai.File) {
	for _, file := range files {
		if err := p.backend.deleteFile(ctx, file.Name); err != nil {
			p.log.WarnContext(ctx, "Failed to delete uploaded file",
				"file", file.Name,
				"error", err)
		}
	}
}

// extractGeminiText normalizes a generation payload to plain text.
// Strategies run in order and the function never fails: the first
// candidate's text parts, then any candidate's, then a raw rendering
// of the payload for diagnostics.
func extractGeminiText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) > 0 {
		if text := candidateText(resp.Candidates[0]); text != "" {
			return text
		}
	}

	var chunks []string
	for _, candidate := range resp.Candidates {
		if text := candidateText(candidate); text != "" {
			chunks = append(chunks, text)
		}
	}
	if len(chunks) > 0 {
		return strings.TrimSpace(strings.Join(chunks, "\n\n"))
	}

	return fmt.Sprintf("%+v", resp)
}

func candidateText(candidate *genai.Candidate) string {
	if candidate == nil || candidate.Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	return strings.TrimSpace(b.String())
}

func fileStateName(state genai.FileState) string {
	switch state {
	case genai.FileStateActive:
		return "ACTIVE"
	case genai.FileStateProcessing:
		return "PROCESSING"
	case genai.FileStateFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("STATE_%d", int32(state))
	}
}

// sleepContext waits for d unless the caller's context ends first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
