package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/openai/openai-go/v3/responses"
)

type stubOpenAIBackend struct {
	uploads    []string
	generates  int
	uploadErr  error
	response   *responses.Response
	lastParams responses.ResponseNewParams
}

func (s *stubOpenAIBackend) uploadFile(_ context.Context, name string, _ []byte) (string, error) {
	s.uploads = append(s.uploads, name)
	if s.uploadErr != nil {
		return "", s.uploadErr
	}

	return fmt.Sprintf("file-%d", len(s.uploads)), nil
}

func (s *stubOpenAIBackend) createResponse(
	_ context.Context,
	params responses.ResponseNewParams,
) (*responses.Response, error) {
	s.generates++
	s.lastParams = params

	return s.response, nil
}

func messageResponse(text string) *responses.Response {
	return &responses.Response{
		Output: []responses.ResponseOutputItemUnion{{
			Type: "message",
			Content: []responses.ResponseOutputMessageContentUnion{{
				Type: "output_text",
				Text: text,
			}},
		}},
	}
}

func newTestOpenAIProvider(backend openAIBackend) *OpenAIProvider {
	return &OpenAIProvider{backend: backend, log: slog.Default()}
}

func TestOpenAISummarizeRejectsEmptyDocuments(t *testing.T) {
	stub := &stubOpenAIBackend{}
	provider := newTestOpenAIProvider(stub)

	_, err := provider.Summarize(context.Background(), nil, "gpt-4.1", "")

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	if len(stub.uploads) != 0 || stub.generates != 0 {
		t.Fatalf("expected no upstream calls, got %d uploads and %d generations",
			len(stub.uploads), stub.generates)
	}
}

func TestOpenAISummarizeSingleDocument(t *testing.T) {
	stub := &stubOpenAIBackend{response: messageResponse("1. Rights Benefitting the Property\nNo data found")}
	provider := newTestOpenAIProvider(stub)

	documents := []DocumentInput{{Name: "lease.pdf", Data: []byte("%PDF-1.7 lease")}}

	report, err := provider.Summarize(context.Background(), documents, "m1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report == "" {
		t.Fatalf("expected a non-empty report")
	}

	if strings.Contains(report, "error") {
		t.Fatalf("report contains a raw error marker: %q", report)
	}

	if len(stub.uploads) != 1 || stub.uploads[0] != "lease.pdf" {
		t.Fatalf("unexpected uploads: %v", stub.uploads)
	}

	if stub.generates != 1 {
		t.Fatalf("expected exactly one generation call, got %d", stub.generates)
	}
}

func TestOpenAISummarizeContentOrdering(t *testing.T) {
	stub := &stubOpenAIBackend{response: messageResponse("report")}
	provider := newTestOpenAIProvider(stub)

	documents := []DocumentInput{
		{Name: "lease.pdf", Data: []byte("a")},
		{Name: "title.pdf", Data: []byte("b")},
	}

	if _, err := provider.Summarize(context.Background(), documents, "m1", "extra"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items := stub.lastParams.Input.OfInputItemList
	if len(items) != 1 || items[0].OfMessage == nil {
		t.Fatalf("expected a single user message input item")
	}

	content := items[0].OfMessage.Content.OfInputItemContentList
	if len(content) != len(documents)+2 {
		t.Fatalf("expected %d content blocks, got %d", len(documents)+2, len(content))
	}

	if content[0].OfInputText == nil || content[0].OfInputText.Text != leadInText {
		t.Fatalf("expected the lead-in text first")
	}

	for i := range documents {
		block := content[i+1]
		if block.OfInputFile == nil {
			t.Fatalf("expected content block %d to be a file attachment", i+1)
		}

		wantID := fmt.Sprintf("file-%d", i+1)
		if got := block.OfInputFile.FileID.Or(""); got != wantID {
			t.Fatalf("expected attachment %d to reference %s, got %s", i+1, wantID, got)
		}
	}

	last := content[len(content)-1]
	if last.OfInputText == nil || last.OfInputText.Text != BuildPrompt("extra") {
		t.Fatalf("expected the built prompt as the final content block")
	}
}

func TestOpenAISummarizeUploadFailureAbortsCall(t *testing.T) {
	stub := &stubOpenAIBackend{uploadErr: errors.New("boom")}
	provider := newTestOpenAIProvider(stub)

	documents := []DocumentInput{{Name: "lease.pdf", Data: []byte("a")}}

	_, err := provider.Summarize(context.Background(), documents, "m1", "")

	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}

	if !strings.Contains(providerErr.Error(), "lease.pdf") {
		t.Fatalf("expected error to name the document, got %q", providerErr.Error())
	}

	if stub.generates != 0 {
		t.Fatalf("expected no generation call after a failed upload, got %d", stub.generates)
	}
}

func TestExtractOpenAITextPrefersDirectOutput(t *testing.T) {
	resp := messageResponse("direct text")

	if got := extractOpenAIText(resp); got != "direct text" {
		t.Fatalf("expected the direct output text, got %q", got)
	}
}

func TestCollectOutputTextWalksStructuredOutput(t *testing.T) {
	raw := `{
		"output": [
			{"type": "output_text", "text": "first"},
			{"type": "message", "content": [
				{"type": "output_text", "text": "second"},
				{"type": "refusal", "refusal": "nope"}
			]},
			{"type": "message", "content": [{"type": "output_text", "text": ""}]}
		]
	}`

	if got := collectOutputText(raw); got != "first\n\nsecond" {
		t.Fatalf("unexpected collected text: %q", got)
	}
}

func TestExtractOpenAITextNeverReturnsEmpty(t *testing.T) {
	if got := extractOpenAIText(&responses.Response{}); got == "" {
		t.Fatalf("expected a diagnostic string for an empty response")
	}
}

func TestOpenAIAvailableModels(t *testing.T) {
	provider := newTestOpenAIProvider(&stubOpenAIBackend{})

	models := provider.AvailableModels()
	if len(models) != 4 || models[0] != "gpt-4.1" {
		t.Fatalf("unexpected model list: %v", models)
	}
}
