package aiquiz

import (
	"context"

	"github.com/placement-portal/quiz-api/internal/config"
)

type AIQuizContainer struct {
	Generator Generator
}

func NewAIQuizContainer(ctx context.Context, cfg config.AI) (*AIQuizContainer, error) {
	provider, err := NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return nil, err
	}

	generator := NewGenerator(provider, Options{
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
	})

	return &AIQuizContainer{
		Generator: generator,
	}, nil
}
