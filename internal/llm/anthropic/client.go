package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dealscan/dealscan/constants"
	"github.com/dealscan/dealscan/internal/common"
	"github.com/dealscan/dealscan/internal/llm"
)

const apiVersion = "2023-06-01"

var _ llm.ModelAdapter = (*Client)(nil)

// ValidKey is a cheap format sanity check for Anthropic keys.
func ValidKey(key string) bool {
	key = strings.TrimSpace(key)
	return strings.HasPrefix(key, "sk-ant-") && len(key) > 20
}

type Client struct {
	cfg  common.ProviderConfig
	http *http.Client
	log  *slog.Logger
}

func NewClient(cfg common.ProviderConfig, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.anthropic.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "claude-3-5-haiku-latest"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger,
	}
}

func (c *Client) Name() string { return constants.MethodAnthropic }

// Call sends a single-turn message and returns the first text block.
func (c *Client) Call(ctx context.Context, prompt string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("anthropic.call.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"prompt_len", len(prompt),
	)

	body := map[string]any{
		"model":       c.cfg.Model,
		"max_tokens":  1024,
		"temperature": c.cfg.Temperature,
		"messages": []map[string]any{
			{"role": "user", "content": prompt},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/messages"
	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		c.log.Error("anthropic.call.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", common.NewAppError("ANTHROPIC_CALL", "message request failed", common.ErrProviderCallFailed)
	}

	var msg struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.log.Error("anthropic.call.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", common.NewAppError("ANTHROPIC_DECODE", "decode response", common.ErrProviderCallFailed)
	}
	for _, block := range msg.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			c.log.Info("anthropic.call.ok",
				"req_id", rid,
				"response_len", len(block.Text),
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return strings.TrimSpace(block.Text), nil
		}
	}

	c.log.Error("anthropic.call.no_text", "req_id", rid,
		"elapsed_ms", time.Since(start).Milliseconds())
	return "", common.NewAppError("ANTHROPIC_EMPTY", "no text block in response", common.ErrProviderCallFailed)
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("anthropic http error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if cerr := Body.Close(); cerr != nil {
			c.log.Warn("anthropic response body close error", "error", cerr)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("anthropic status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}
