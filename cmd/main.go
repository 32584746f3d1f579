package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"convey/internal/config"
	"convey/internal/summarizer"

	"github.com/joho/godotenv"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(log)

	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The .env file is optional; real deployments set the environment
	// directly.
	if err := godotenv.Load(); err != nil {
		log.DebugContext(ctx, "No .env file is loaded",
			"error", err)
	}

	cfg := config.LoadConfig()

	providerName := flag.String("provider", cfg.DefaultProvider, "provider name (openai or gemini)")
	model := flag.String("model", "", "model name passed to the provider (default: provider's first model)")
	extraPrompt := flag.String("prompt", "", "optional additional guidance appended to the instructions")
	listModels := flag.Bool("list-models", false, "print the provider's model list and exit")
	flag.Parse()

	service := summarizer.NewService(summarizer.Config{
		OpenAIAPIKey:   cfg.OpenAIAPIKey,
		GoogleAPIKey:   cfg.GoogleAPIKey,
		CleanupUploads: cfg.CleanupUploads,
	}, log)

	if *listModels {
		models, err := service.AvailableModels(ctx, *providerName)
		if err != nil {
			log.ErrorContext(ctx, "Failed to list models",
				"error", err,
				"provider", *providerName)
			os.Exit(1)
		}

		fmt.Println(strings.Join(models, "\n"))

		return
	}

	paths := flag.Args()
	if len(paths) == 0 {
		log.ErrorContext(ctx, "At least one PDF path is required",
			"usage", "convey [flags] lease.pdf [title.pdf ...]")
		os.Exit(1)
	}

	if *model == "" {
		models, err := service.AvailableModels(ctx, *providerName)
		if err != nil {
			log.ErrorContext(ctx, "Failed to pick a default model",
				"error", err,
				"provider", *providerName)
			os.Exit(1)
		}
		*model = models[0]
	}

	documents, err := readDocuments(paths)
	if err != nil {
		log.ErrorContext(ctx, "Failed to read documents",
			"error", err)
		os.Exit(1)
	}
	log.InfoContext(ctx, "Documents are read",
		"count", len(documents),
		"provider", *providerName,
		"model", *model)

	report, err := service.Summarize(ctx, *providerName, documents, *model, *extraPrompt)
	if err != nil {
		log.ErrorContext(ctx, "Summarization failed",
			"error", err,
			"provider", *providerName,
			"model", *model)
		os.Exit(1)
	}

	fmt.Println(report)

	log.InfoContext(ctx, "Report is generated",
		"provider", *providerName,
		"model", *model,
		"documentCount", len(documents),
		"reportLength", len(report),
		"elapsedSeconds", time.Since(start).Seconds())
}

func readDocuments(paths []string) ([]summarizer.DocumentInput, error) {
	documents := make([]summarizer.DocumentInput, 0, len(paths))

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		documents = append(documents, summarizer.DocumentInput{
			Name: filepath.Base(path),
			Data: data,
		})
	}

	return documents, nil
}
