package extract

import (
	"context"
	"log/slog"

	"google.golang.org/genai"

	"github.com/dealscan/dealscan/internal/common"
	"github.com/dealscan/dealscan/internal/llm"
	"github.com/dealscan/dealscan/internal/llm/anthropic"
	"github.com/dealscan/dealscan/internal/llm/gemini"
	"github.com/dealscan/dealscan/internal/llm/openai"
)

// BuildAdapters assembles the available model adapters in priority
// order: OpenAI, then Anthropic, then Gemini. A provider whose
// credential is absent or fails the format check is simply not
// configured; that is never a runtime error during extraction.
func BuildAdapters(ctx context.Context, cfg *common.Config, logger *slog.Logger) []llm.ModelAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	var adapters []llm.ModelAdapter

	if openai.ValidKey(cfg.OpenAI.APIKey) {
		adapters = append(adapters, openai.NewClient(cfg.OpenAI, logger))
	} else if cfg.OpenAI.APIKey != "" {
		logger.Warn("adapters.openai_key_malformed")
	}

	if anthropic.ValidKey(cfg.Anthropic.APIKey) {
		adapters = append(adapters, anthropic.NewClient(cfg.Anthropic, logger))
	} else if cfg.Anthropic.APIKey != "" {
		logger.Warn("adapters.anthropic_key_malformed")
	}

	if gemini.ValidKey(cfg.Gemini.APIKey) {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			logger.Warn("adapters.gemini_init_failed", "error", err)
		} else {
			adapters = append(adapters, gemini.NewClient(client, cfg.Gemini, logger))
		}
	} else if cfg.Gemini.APIKey != "" {
		logger.Warn("adapters.gemini_key_malformed")
	}

	names := make([]string, len(adapters))
	for i, a := range adapters {
		names[i] = a.Name()
	}
	logger.Info("adapters.configured", "adapters", names)
	return adapters
}
