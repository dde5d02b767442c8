package llm

import (
	"context"
	"fmt"

	"tacitus-api/internal/models"

	"google.golang.org/genai"
)

// GeminiBackend answers with Google Gemini.
type GeminiBackend struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGeminiBackend creates a backend from an existing genai client.
func NewGeminiBackend(client *genai.Client, model string, temperature float64) *GeminiBackend {
	return &GeminiBackend{
		client:      client,
		model:       model,
		temperature: float32(temperature),
	}
}

func (b *GeminiBackend) Name() string { return "gemini" }

// BuildConfig returns the generation config carrying the system instruction.
func (b *GeminiBackend) BuildConfig(system string) *genai.GenerateContentConfig {
	temp := b.temperature
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		},
		Temperature: &temp,
	}
}

func (b *GeminiBackend) Complete(ctx context.Context, prompt Prompt) (string, error) {
	result, err := b.client.Models.GenerateContent(ctx, b.model,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt.User}},
		}},
		b.BuildConfig(prompt.System),
	)
	if err != nil {
		return "", fmt.Errorf("llm: %w: %w", models.ErrUpstreamUnavailable, err)
	}
	if result == nil {
		return "", fmt.Errorf("llm: %w: gemini returned nil result", models.ErrUpstreamUnavailable)
	}

	return joinText([]string{result.Text()}), nil
}
