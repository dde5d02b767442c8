package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tacitus-api/internal/models"

	"github.com/rs/zerolog"
)

// OllamaBackend talks to an Ollama server's /api/chat endpoint.
type OllamaBackend struct {
	url         string
	model       string
	temperature float64
	hc          *http.Client
}

// NewOllamaBackend creates a backend. If httpClient is nil, a default with a 60s timeout is used.
func NewOllamaBackend(url, model string, temperature float64, httpClient *http.Client) *OllamaBackend {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &OllamaBackend{
		url:         url,
		model:       model,
		temperature: temperature,
		hc:          httpClient,
	}
}

func (b *OllamaBackend) Name() string { return "ollama" }

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  struct {
		Temperature float64 `json:"temperature"`
	} `json:"options"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
	Error   string        `json:"error"`
}

// Complete sends a non-streaming chat request and returns the assistant message content.
func (b *OllamaBackend) Complete(ctx context.Context, prompt Prompt) (string, error) {
	body := ollamaChatRequest{
		Model: b.model,
		Messages: []ollamaMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
	}
	body.Options.Temperature = b.temperature

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("llm: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("llm: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := b.hc.Do(req)
	zerolog.Ctx(ctx).Debug().
		Str("url", b.url).
		Str("model", b.model).
		Dur("latency", time.Since(start)).
		Err(err).
		Msg("ollama chat request")
	if err != nil {
		return "", fmt.Errorf("llm: %w: %w", models.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("llm: %w: read response: %w", models.ErrUpstreamUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("llm: %w: status=%d body=%s", models.ErrUpstreamUnavailable, resp.StatusCode, string(respBody))
	}

	var parsed ollamaChatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("llm: %w: decode response: %w", models.ErrUpstreamUnavailable, err)
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("llm: %w: %s", models.ErrUpstreamUnavailable, parsed.Error)
	}

	return joinText([]string{parsed.Message.Content}), nil
}
