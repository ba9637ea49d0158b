package gemini

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/dealscan/dealscan/constants"
	"github.com/dealscan/dealscan/internal/common"
	"github.com/dealscan/dealscan/internal/llm"
)

var _ llm.ModelAdapter = (*Client)(nil)

// ValidKey is a cheap format sanity check for Gemini keys: long enough
// and not an obvious placeholder.
func ValidKey(key string) bool {
	key = strings.TrimSpace(key)
	if len(key) < 20 {
		return false
	}
	lower := strings.ToLower(key)
	return !strings.Contains(lower, "your") && !strings.Contains(lower, "xxx")
}

type Client struct {
	client *genai.Client
	model  string
	temp   float32
	log    *slog.Logger
}

// NewClient wraps an initialized genai client. Construction of the
// genai client itself happens in main so its lifetime matches the
// process.
func NewClient(client *genai.Client, cfg common.ProviderConfig, logger *slog.Logger) *Client {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{client: client, model: model, temp: cfg.Temperature, log: logger}
}

func (c *Client) Name() string { return constants.MethodGemini }

// Call sends the prompt and returns the concatenated response text.
func (c *Client) Call(ctx context.Context, prompt string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("gemini.call.start",
		"req_id", rid,
		"model", c.model,
		"prompt_len", len(prompt),
	)

	temp := c.temp
	config := &genai.GenerateContentConfig{
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		c.log.Error("gemini.call.error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", common.NewAppError("GEMINI_CALL", "generate content failed", common.ErrProviderCallFailed)
	}
	if result == nil {
		return "", common.NewAppError("GEMINI_EMPTY", "nil result from gemini", common.ErrProviderCallFailed)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		c.log.Error("gemini.call.no_text", "req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds())
		return "", common.NewAppError("GEMINI_EMPTY", "empty response text", common.ErrProviderCallFailed)
	}

	c.log.Info("gemini.call.ok",
		"req_id", rid,
		"response_len", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}
