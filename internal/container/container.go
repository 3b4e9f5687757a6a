package container

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/placement-portal/quiz-api/internal/aiquiz"
	"github.com/placement-portal/quiz-api/internal/auth"
	"github.com/placement-portal/quiz-api/internal/config"
	"github.com/placement-portal/quiz-api/internal/quiz"
	"github.com/placement-portal/quiz-api/internal/router"
)

type Container struct {
	AIQuizContainer *aiquiz.AIQuizContainer
	QuizContainer   *quiz.QuizContainer

	redis *redis.Client
}

func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	auth.Init(cfg.JWT.Secret)

	if err := config.Connect(ctx, cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	cache := newRedisClient(ctx, cfg.Redis)

	aiQuizContainer, err := aiquiz.NewAIQuizContainer(ctx, cfg.AI)
	if err != nil {
		return nil, err
	}
	quizContainer := quiz.NewQuizContainer(config.DB, cache, cfg.Redis.TTL, aiQuizContainer.Generator)

	return &Container{
		AIQuizContainer: aiQuizContainer,
		QuizContainer:   quizContainer,
		redis:           cache,
	}, nil
}

func (c *Container) Handler() http.Handler {
	return router.New(router.RouterConfig{
		QuizHandler: c.QuizContainer.Handler,
	})
}

func (c *Container) Close() error {
	var errs []error
	if c.redis != nil {
		errs = append(errs, c.redis.Close())
	}
	if config.DB != nil {
		if sqlDB, err := config.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}

// newRedisClient returns nil when no address is configured or the server is
// unreachable at startup; the quiz module then reads straight from Postgres.
func newRedisClient(ctx context.Context, cfg config.Redis) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		config.Log.WithError(err).Warn("Redis unavailable, quiz cache disabled")
		_ = client.Close()
		return nil
	}

	config.Log.WithField("addr", cfg.Addr).Info("Quiz cache enabled")
	return client
}
