package summarizer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/tidwall/gjson"
)

const pdfMIMEType = "application/pdf"

// openAIBackend is the slice of the OpenAI client the provider needs.
// Narrowed to an interface so tests can count calls without a network.
type openAIBackend interface {
	uploadFile(ctx context.Context, name string, data []byte) (string, error)
	createResponse(ctx context.Context, params responses.ResponseNewParams) (*responses.Response, error)
}

type openAIClient struct {
	client openai.Client
}

func (c *openAIClient) uploadFile(ctx context.Context, name string, data []byte) (string, error) {
	file, err := c.client.Files.New(ctx, openai.FileNewParams{
		File:    openai.File(bytes.NewReader(data), name, pdfMIMEType),
		Purpose: openai.FilePurposeAssistants,
	})
	if err != nil {
		return "", err
	}

	return file.ID, nil
}

func (c *openAIClient) createResponse(
	ctx context.Context,
	params responses.ResponseNewParams,
) (*responses.Response, error) {
	return c.client.Responses.New(ctx, params)
}

// OpenAIProvider generates reports through OpenAI's Files and
// Responses APIs. Each upload blocks until the backend returns a
// ready-to-use file ID, so no polling is involved.
type OpenAIProvider struct {
	backend openAIBackend
	log     *slog.Logger
}

func NewOpenAIProvider(cfg Config, log *slog.Logger) (*OpenAIProvider, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, &ConfigurationError{Message: "OPENAI_API_KEY is required for the openai provider"}
	}

	return &OpenAIProvider{
		backend: &openAIClient{client: openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))},
		log:     log,
	}, nil
}

func (p *OpenAIProvider) AvailableModels() []string {
	return []string{"gpt-4.1", "gpt-4.1-mini", "o4-mini", "gpt-5.1"}
}

// Summarize uploads every document in caller order and issues one
// Responses call whose single user message carries the lead-in text,
// the file attachments, and the built prompt.
func (p *OpenAIProvider) Summarize(
	ctx context.Context,
	documents []DocumentInput,
	model string,
	extraPrompt string,
) (string, error) {
	if len(documents) == 0 {
		return "", &ValidationError{Message: "at least one document is required"}
	}

	content := responses.ResponseInputMessageContentListParam{
		responses.ResponseInputContentUnionParam{
			OfInputText: &responses.ResponseInputTextParam{Text: leadInText},
		},
	}

	for _, document := range documents {
		fileID, err := p.backend.uploadFile(ctx, document.Name, document.Data)
		if err != nil {
			return "", &ProviderError{
				Message: fmt.Sprintf("upload document %q", document.Name),
				Err:     err,
			}
		}
		p.log.DebugContext(ctx, "Document is uploaded",
			"document", document.Name,
			"fileID", fileID)

		content = append(content, responses.ResponseInputContentUnionParam{
			OfInputFile: &responses.ResponseInputFileParam{FileID: openai.String(fileID)},
		})
	}

	content = append(content, responses.ResponseInputContentUnionParam{
		OfInputText: &responses.ResponseInputTextParam{Text: BuildPrompt(extraPrompt)},
	})

	resp, err := p.backend.createResponse(ctx, responses.ResponseNewParams{
		Model: model,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemUnionParam{
					OfMessage: &responses.EasyInputMessageParam{
						Role: responses.EasyInputMessageRoleUser,
						Content: responses.EasyInputMessageContentUnionParam{
							OfInputItemContentList: content,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", &ProviderError{Message: "create response", Err: err}
	}

	return extractOpenAIText(resp), nil
}

// extractOpenAIText normalizes a Responses API payload to plain text.
// Strategies run in order and the function never fails: the SDK's
// aggregated output text, then a walk over the structured output
// list, then the raw payload as a diagnostic string.
func extractOpenAIText(resp *responses.Response) string {
	if text := strings.TrimSpace(resp.OutputText()); text != "" {
		return text
	}

	raw := resp.RawJSON()
	if text := collectOutputText(raw); text != "" {
		return text
	}

	if raw != "" {
		return raw
	}

	return fmt.Sprintf("%+v", resp)
}

// collectOutputText gathers direct output_text items and the
// output_text blocks of message items, joined by blank lines.
func collectOutputText(raw string) string {
	var chunks []string

	for _, item := range gjson.Get(raw, "output").Array() {
		switch item.Get("type").String() {
		case "output_text":
			if text := item.Get("text").String(); text != "" {
				chunks = append(chunks, text)
			}
		case "message":
			for _, block := range item.Get("content").Array() {
				if block.Get("type").String() != "output_text" {
					continue
				}

				if text := block.Get("text").String(); text != "" {
					chunks = append(chunks, text)
				}
			}
		}
	}

	return strings.TrimSpace(strings.Join(chunks, "\n\n"))
}
