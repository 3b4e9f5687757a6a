package quiz

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/placement-portal/quiz-api/internal/aiquiz"
)

type QuizContainer struct {
	Handler *Handler
	Service QuizService
}

// NewQuizContainer wires the quiz module. A nil cache disables the Redis layer.
func NewQuizContainer(db *gorm.DB, cache *redis.Client, cacheTTL time.Duration, generator aiquiz.Generator) *QuizContainer {
	var repo QuizRepository = NewRepository(db)
	if cache != nil {
		repo = NewCachedRepository(repo, cache, cacheTTL)
	}
	service := NewService(repo, generator)
	handler := NewHandler(service)

	return &QuizContainer{
		Handler: handler,
		Service: service,
	}
}
