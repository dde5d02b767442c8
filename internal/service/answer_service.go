package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tacitus-api/internal/llm"
	"tacitus-api/internal/models"

	"github.com/rs/zerolog"
)

// DefaultAnswerTimeout bounds one language-model call. Local models can be slow.
const DefaultAnswerTimeout = 60 * time.Second

const (
	systemPreamble = "You are a helpful assistant providing information about locations. " +
		"You have access to the following Wikipedia articles:"
	emptyReplyText = "I couldn't generate a proper response. " +
		"Please check if the language model service is running correctly."
	failureText = "I apologize, but I encountered an error processing your request. " +
		"Please check if the language model service is running correctly. (Technical details: %s)"
)

// AnswerService turns a query and its location context into answer text.
type AnswerService struct {
	backend llm.Backend
	timeout time.Duration
}

// NewAnswerService creates an answer service. A non-positive timeout uses DefaultAnswerTimeout.
func NewAnswerService(backend llm.Backend, timeout time.Duration) *AnswerService {
	if timeout <= 0 {
		timeout = DefaultAnswerTimeout
	}
	return &AnswerService{backend: backend, timeout: timeout}
}

// Answer always returns displayable text. Backend failures and empty replies produce a
// degraded answer with a fallback message.
func (s *AnswerService) Answer(ctx context.Context, queryText string, qc models.QueryContext) models.Answer {
	logger := zerolog.Ctx(ctx)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	text, err := s.backend.Complete(ctx, BuildPrompt(queryText, qc))
	if err != nil {
		logger.Warn().Err(err).Str("backend", s.backend.Name()).Msg("language model failed, returning fallback answer")
		return models.Answer{
			Text:    fmt.Sprintf(failureText, err.Error()),
			Outcome: models.OutcomeDegraded,
			Cause:   err,
		}
	}

	if strings.TrimSpace(text) == "" {
		logger.Warn().Str("backend", s.backend.Name()).Msg("language model returned an empty reply")
		return models.Answer{Text: emptyReplyText, Outcome: models.OutcomeDegraded}
	}

	logger.Debug().
		Str("backend", s.backend.Name()).
		Dur("latency", time.Since(start)).
		Msg("answer generated")

	return models.Answer{Text: text, Outcome: models.OutcomeSuccess}
}

// BuildPrompt assembles the system and user messages for a query.
func BuildPrompt(queryText string, qc models.QueryContext) llm.Prompt {
	system := systemPreamble
	if len(qc.Articles) > 0 {
		system += fmt.Sprintf(" Available articles about %s: %s", qc.Name, strings.Join(qc.Articles, ", "))
	}

	user := fmt.Sprintf("%s. I'm currently at coordinates (%s, %s), which is in or near %s.",
		queryText, formatDegrees(qc.Latitude), formatDegrees(qc.Longitude), qc.Name)

	return llm.Prompt{System: system, User: user}
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
