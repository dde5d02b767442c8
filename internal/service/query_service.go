package service

import (
	"context"
	"fmt"
	"strings"

	"tacitus-api/internal/models"
)

// QueryService answers a user's question about where they are.
type QueryService struct {
	resolver *ContextResolver
	answers  *AnswerService
}

// NewQueryService creates a query service.
func NewQueryService(resolver *ContextResolver, answers *AnswerService) *QueryService {
	return &QueryService{resolver: resolver, answers: answers}
}

// Query resolves the location context for the coordinates and asks the language model.
// Only an empty query or a store failure is an error; model failures yield a degraded answer.
func (s *QueryService) Query(ctx context.Context, text string, lat, lon float64) (models.Answer, error) {
	if strings.TrimSpace(text) == "" {
		return models.Answer{}, fmt.Errorf("service: query cannot be empty: %w", models.ErrInvalidInput)
	}

	qc, err := s.resolver.ResolveQueryContext(ctx, lat, lon)
	if err != nil {
		return models.Answer{}, err
	}

	return s.answers.Answer(ctx, text, qc), nil
}
