package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/placement-portal/quiz-api/internal/config"
)

const fillTimeout = 5 * time.Second

// CachedRepository keeps quiz documents in Redis in front of another
// repository. Redis failures degrade to the backing repository.
type CachedRepository struct {
	QuizRepository
	client *redis.Client
	ttl    time.Duration
	sf     singleflight.Group
}

func NewCachedRepository(next QuizRepository, client *redis.Client, ttl time.Duration) *CachedRepository {
	return &CachedRepository{
		QuizRepository: next,
		client:         client,
		ttl:            ttl,
	}
}

func (r *CachedRepository) GetByID(ctx context.Context, id uuid.UUID) (*Quiz, error) {
	key := cacheKey(id)
	if quiz, ok := r.fromCache(ctx, key); ok {
		return quiz, nil
	}

	ch := r.sf.DoChan(key, func() (any, error) {
		// The fill is shared by every waiting caller, so it must not inherit
		// the cancellation of whichever request started it.
		fillCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fillTimeout)
		defer cancel()

		if quiz, ok := r.fromCache(fillCtx, key); ok {
			return *quiz, nil
		}

		quiz, err := r.QuizRepository.GetByID(fillCtx, id)
		if err != nil {
			return Quiz{}, err
		}
		r.fill(fillCtx, key, quiz)
		return *quiz, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		// Each caller gets its own copy; the submit path mutates the quiz it loads.
		quiz := res.Val.(Quiz)
		return &quiz, nil
	}
}

// UpdateSubmission writes the submitted quiz over the cached document, so a
// fill that loaded the previous version cannot replace it afterwards.
func (r *CachedRepository) UpdateSubmission(ctx context.Context, q *Quiz, expectedVersion int) error {
	err := r.QuizRepository.UpdateSubmission(ctx, q, expectedVersion)
	switch {
	case err == nil:
		if !r.store(ctx, cacheKey(q.ID), q) {
			r.evict(ctx, cacheKey(q.ID))
		}
	case errors.Is(err, ErrConflict):
		r.evict(ctx, cacheKey(q.ID))
	}
	return err
}

func (r *CachedRepository) fromCache(ctx context.Context, key string) (*Quiz, bool) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			config.WithContext(ctx).WithError(err).Warn("Quiz cache read failed")
		}
		return nil, false
	}

	var quiz Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Discarding undecodable cached quiz")
		r.evict(ctx, key)
		return nil, false
	}
	return &quiz, true
}

// fill caches a quiz read from the backing repository unless a newer
// document was written in the meantime.
func (r *CachedRepository) fill(ctx context.Context, key string, quiz *Quiz) {
	raw, err := json.Marshal(quiz)
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("Failed to encode quiz for cache")
		return
	}
	if err := r.client.SetNX(ctx, key, raw, r.ttlWithJitter()).Err(); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Quiz cache write failed")
	}
}

func (r *CachedRepository) store(ctx context.Context, key string, quiz *Quiz) bool {
	raw, err := json.Marshal(quiz)
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("Failed to encode quiz for cache")
		return false
	}
	if err := r.client.Set(ctx, key, raw, r.ttlWithJitter()).Err(); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Quiz cache write failed")
		return false
	}
	return true
}

func (r *CachedRepository) evict(ctx context.Context, key string) {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Quiz cache eviction failed")
	}
}

// ttlWithJitter adds up to 10% to the TTL to spread expirations.
func (r *CachedRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(rand.Int64N(jitterMax+1))
}

func cacheKey(id uuid.UUID) string {
	return "quiz:" + id.String()
}
