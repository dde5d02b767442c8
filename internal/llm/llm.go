// Package llm adapts language-model backends to a single system+user completion call.
package llm

import (
	"context"
	"strings"
)

// Prompt is the message pair sent to a backend for one answer.
type Prompt struct {
	System string
	User   string
}

// Backend produces a completion for a prompt.
type Backend interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
	Name() string
}

func joinText(parts []string) string {
	return strings.TrimSpace(strings.Join(parts, ""))
}
