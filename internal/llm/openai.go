package llm

import (
	"context"
	"fmt"

	"tacitus-api/internal/models"

	llmsdk "github.com/hoangvvo/llm-sdk/sdk-go"
	"github.com/hoangvvo/llm-sdk/sdk-go/openai"
)

// OpenAIBackend uses any OpenAI-compatible chat completions endpoint,
// including Ollama's /v1 compatibility layer.
type OpenAIBackend struct {
	model       generator
	temperature float64
}

// NewOpenAIBackend creates a backend for modelID served at baseURL.
func NewOpenAIBackend(baseURL, apiKey, modelID string, temperature float64) *OpenAIBackend {
	return &OpenAIBackend{
		model: openai.NewOpenAIChatModel(modelID, openai.OpenAIChatModelOptions{
			BaseURL: baseURL,
			APIKey:  apiKey,
		}),
		temperature: temperature,
	}
}

type generator interface {
	Generate(ctx context.Context, input *llmsdk.LanguageModelInput) (*llmsdk.ModelResponse, error)
}

func (b *OpenAIBackend) Name() string { return "openai" }

// Complete generates a single response and concatenates its text parts.
func (b *OpenAIBackend) Complete(ctx context.Context, prompt Prompt) (string, error) {
	system := prompt.System
	temperature := b.temperature

	resp, err := b.model.Generate(ctx, &llmsdk.LanguageModelInput{
		SystemPrompt: &system,
		Messages: []llmsdk.Message{{
			UserMessage: &llmsdk.UserMessage{
				Content: []llmsdk.Part{{TextPart: &llmsdk.TextPart{Text: prompt.User}}},
			},
		}},
		Temperature: &temperature,
	})
	if err != nil {
		return "", fmt.Errorf("llm: %w: %w", models.ErrUpstreamUnavailable, err)
	}

	var texts []string
	for _, part := range resp.Content {
		if part.TextPart != nil {
			texts = append(texts, part.TextPart.Text)
		}
	}
	return joinText(texts), nil
}
