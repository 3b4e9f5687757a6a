package quiz

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newCachedTestRepository(t *testing.T) (*CachedRepository, *memoryRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	backing := newMemoryRepository()
	return NewCachedRepository(backing, client, time.Minute), backing, mr
}

func newCachedRepositoryOver(t *testing.T, backing QuizRepository) (*CachedRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCachedRepository(backing, client, time.Minute), mr
}

// gatedRepository holds every read after it has loaded the quiz until
// release is closed.
type gatedRepository struct {
	*memoryRepository
	loaded  chan struct{}
	release chan struct{}
}

func newGatedRepository() *gatedRepository {
	return &gatedRepository{
		memoryRepository: newMemoryRepository(),
		loaded:           make(chan struct{}, 1),
		release:          make(chan struct{}),
	}
}

func (r *gatedRepository) GetByID(ctx context.Context, id uuid.UUID) (*Quiz, error) {
	q, err := r.memoryRepository.GetByID(ctx, id)
	select {
	case r.loaded <- struct{}{}:
	default:
	}
	select {
	case <-r.release:
		return q, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func markSubmitted(q *Quiz) {
	completedAt := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	q.UserAnswers = datatypes.NewJSONType(map[string]string{"q1": "Transport"})
	q.Score = 1
	q.Completed = true
	q.CompletedAt = &completedAt
	q.Version = 1
}

func seedQuiz(t *testing.T, repo QuizRepository) *Quiz {
	t.Helper()
	quiz := &Quiz{
		ID:                     uuid.New(),
		Topic:                  "Networking",
		RequestedQuestionCount: 1,
		Questions: datatypes.NewJSONType([]Question{{
			ID:            "q1",
			Question:      "Which layer does TCP live in?",
			Options:       []string{"Network", "Transport", "Session", "Link"},
			CorrectAnswer: "Transport",
			Explanation:   "TCP is a transport protocol.",
		}}),
		UserAnswers: datatypes.NewJSONType(map[string]string{}),
		OwnerID:     owner("u1"),
		CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(context.Background(), quiz))
	return quiz
}

func TestCachedRepositoryGetByID(t *testing.T) {
	ctx := context.Background()
	repo, backing, mr := newCachedTestRepository(t)
	seeded := seedQuiz(t, repo)

	first, err := repo.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, seeded.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, backing.gets, "second read should be served from redis")
	assert.True(t, mr.Exists(cacheKey(seeded.ID)))
	assert.Equal(t, first.QuestionList(), second.QuestionList())
	assert.Equal(t, "Transport", second.QuestionList()[0].CorrectAnswer)
	assert.Equal(t, "u1", *second.OwnerID)
	assert.True(t, seeded.CreatedAt.Equal(second.CreatedAt))

	ttl := mr.TTL(cacheKey(seeded.ID))
	assert.GreaterOrEqual(t, ttl, time.Minute)
	assert.LessOrEqual(t, ttl, time.Minute+6*time.Second)
}

func TestCachedRepositoryNotFoundIsNotCached(t *testing.T) {
	ctx := context.Background()
	repo, backing, mr := newCachedTestRepository(t)
	id := uuid.New()

	_, err := repo.GetByID(ctx, id)
	assert.True(t, errors.Is(err, ErrQuizNotFound))
	_, err = repo.GetByID(ctx, id)
	assert.True(t, errors.Is(err, ErrQuizNotFound))

	assert.Equal(t, 2, backing.gets)
	assert.False(t, mr.Exists(cacheKey(id)))
}

func TestCachedRepositoryRefreshesOnSubmission(t *testing.T) {
	ctx := context.Background()
	repo, backing, mr := newCachedTestRepository(t)
	seeded := seedQuiz(t, repo)

	loaded, err := repo.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists(cacheKey(seeded.ID)))

	markSubmitted(loaded)
	require.NoError(t, repo.UpdateSubmission(ctx, loaded, 0))

	assert.True(t, mr.Exists(cacheKey(seeded.ID)))

	reloaded, err := repo.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, backing.gets, "submitted quiz should be served from redis")
	assert.True(t, reloaded.Completed)
	assert.Equal(t, 1, reloaded.Score)
	assert.Equal(t, 1, reloaded.Version)
	assert.Equal(t, map[string]string{"q1": "Transport"}, reloaded.Answers())
}

func TestCachedRepositoryEvictsOnConflict(t *testing.T) {
	ctx := context.Background()
	repo, _, mr := newCachedTestRepository(t)
	seeded := seedQuiz(t, repo)

	_, err := repo.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists(cacheKey(seeded.ID)))

	stale := *seeded
	markSubmitted(&stale)
	err = repo.UpdateSubmission(ctx, &stale, 7)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, mr.Exists(cacheKey(seeded.ID)))
}

func TestCachedRepositoryStaleFillDoesNotOverwriteSubmission(t *testing.T) {
	ctx := context.Background()
	backing := newGatedRepository()
	repo, _ := newCachedRepositoryOver(t, backing)
	seeded := seedQuiz(t, backing.memoryRepository)

	type readResult struct {
		quiz *Quiz
		err  error
	}
	readDone := make(chan readResult, 1)
	go func() {
		q, err := repo.GetByID(ctx, seeded.ID)
		readDone <- readResult{q, err}
	}()

	// The reader has loaded version 0 and is about to fill the cache.
	<-backing.loaded

	submitted := *seeded
	markSubmitted(&submitted)
	require.NoError(t, repo.UpdateSubmission(ctx, &submitted, 0))

	close(backing.release)
	res := <-readDone
	require.NoError(t, res.err)
	assert.Equal(t, 0, res.quiz.Version)

	cached, err := repo.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.True(t, cached.Completed)
	assert.Equal(t, 1, cached.Score)
	assert.Equal(t, 1, cached.Version)
}

func TestCachedRepositoryFillSurvivesCancelledLeader(t *testing.T) {
	backing := newGatedRepository()
	repo, _ := newCachedRepositoryOver(t, backing)
	seeded := seedQuiz(t, backing.memoryRepository)

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	leaderDone := make(chan error, 1)
	go func() {
		_, err := repo.GetByID(leaderCtx, seeded.ID)
		leaderDone <- err
	}()
	<-backing.loaded

	followerDone := make(chan *Quiz, 1)
	go func() {
		q, err := repo.GetByID(context.Background(), seeded.ID)
		assert.NoError(t, err)
		followerDone <- q
	}()
	// Give the follower time to join the in-flight read.
	time.Sleep(50 * time.Millisecond)

	cancelLeader()
	select {
	case err := <-leaderDone:
		assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller did not return")
	}

	close(backing.release)
	select {
	case q := <-followerDone:
		require.NotNil(t, q)
		assert.Equal(t, seeded.ID, q.ID)
	case <-time.After(time.Second):
		t.Fatal("follower did not return")
	}
	assert.Equal(t, 1, backing.gets, "follower should share the leader's read")
}

func TestCachedRepositoryFallsBackWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	repo, backing, mr := newCachedTestRepository(t)
	seeded := seedQuiz(t, repo)

	mr.Close()

	quiz, err := repo.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, quiz.ID)
	assert.Equal(t, 1, backing.gets)
}

func TestCachedRepositoryDiscardsCorruptEntries(t *testing.T) {
	ctx := context.Background()
	repo, backing, mr := newCachedTestRepository(t)
	seeded := seedQuiz(t, repo)

	require.NoError(t, mr.Set(cacheKey(seeded.ID), "{not json"))

	quiz, err := repo.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.Topic, quiz.Topic)
	assert.Equal(t, 1, backing.gets)
}
