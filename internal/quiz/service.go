package quiz

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/placement-portal/quiz-api/internal/aiquiz"
	"github.com/placement-portal/quiz-api/internal/config"
)

type QuizService interface {
	GenerateQuiz(ctx context.Context, topic string, requestedCount int, ownerID *string) (*Quiz, error)
	GetQuiz(ctx context.Context, quizID string) (*Quiz, error)
	SubmitAnswers(ctx context.Context, quizID string, answers map[string]string) (*SubmitResult, error)
	ListHistory(ctx context.Context, ownerID string) ([]QuizSummary, error)
}

type quizService struct {
	repo      QuizRepository
	generator aiquiz.Generator
	now       func() time.Time
}

func NewService(repo QuizRepository, generator aiquiz.Generator) QuizService {
	return &quizService{
		repo:      repo,
		generator: generator,
		now:       time.Now,
	}
}

func (s *quizService) GenerateQuiz(ctx context.Context, topic string, requestedCount int, ownerID *string) (*Quiz, error) {
	log := config.WithContext(ctx)

	topic = strings.TrimSpace(topic)
	if topic == "" || requestedCount < 1 {
		return nil, fmt.Errorf("%w: topic and a positive question count are required", ErrValidation)
	}

	drafts, err := s.generator.Generate(ctx, topic, requestedCount)
	if err != nil {
		return nil, err
	}

	questions := make([]Question, len(drafts))
	for i, d := range drafts {
		questions[i] = Question{
			ID:            uuid.NewString(),
			Question:      d.Question,
			Options:       d.Options,
			CorrectAnswer: d.CorrectAnswer,
			Explanation:   d.Explanation,
		}
	}

	quiz := &Quiz{
		ID:                     uuid.New(),
		Topic:                  topic,
		RequestedQuestionCount: aiquiz.EffectiveCount(requestedCount),
		Questions:              datatypes.NewJSONType(questions),
		UserAnswers:            datatypes.NewJSONType(map[string]string{}),
		OwnerID:                ownerID,
		CreatedAt:              s.now(),
	}

	if err := s.repo.Create(ctx, quiz); err != nil {
		log.WithError(err).Error("Failed to persist generated quiz")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"quiz_id":   quiz.ID,
		"questions": len(questions),
		"anonymous": ownerID == nil,
	}).Info("Quiz created")
	return quiz, nil
}

func (s *quizService) GetQuiz(ctx context.Context, quizID string) (*Quiz, error) {
	id, err := uuid.Parse(quizID)
	if err != nil {
		config.WithContext(ctx).WithField("quiz_id", quizID).Warn("Malformed quiz id")
		return nil, ErrQuizNotFound
	}

	quiz, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrQuizNotFound) {
			config.WithContext(ctx).WithError(err).Error("Failed to load quiz")
		}
		return nil, err
	}
	return quiz, nil
}

// SubmitAnswers scores answers against the stored quiz and records the
// submission. A quiz may be resubmitted; the last successful write wins, and
// a write racing another submission fails with ErrConflict.
func (s *quizService) SubmitAnswers(ctx context.Context, quizID string, answers map[string]string) (*SubmitResult, error) {
	log := config.WithContext(ctx).WithField("quiz_id", quizID)

	quiz, err := s.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	questions := quiz.QuestionList()
	score := Score(questions, answers)
	completedAt := s.now()
	expectedVersion := quiz.Version

	if quiz.Completed {
		log.WithField("previous_score", quiz.Score).Info("Overwriting previous submission")
	}

	quiz.UserAnswers = datatypes.NewJSONType(maps.Clone(answers))
	quiz.Score = score
	quiz.Completed = true
	quiz.CompletedAt = &completedAt
	quiz.Version = expectedVersion + 1

	if err := s.repo.UpdateSubmission(ctx, quiz, expectedVersion); err != nil {
		if errors.Is(err, ErrConflict) {
			log.Warn("Concurrent submission detected")
		} else {
			log.WithError(err).Error("Failed to record submission")
		}
		return nil, err
	}

	log.WithFields(logrus.Fields{"score": score, "total": len(questions)}).Info("Quiz submitted")
	return &SubmitResult{
		Quiz:           quiz,
		Score:          score,
		TotalQuestions: len(questions),
	}, nil
}

func (s *quizService) ListHistory(ctx context.Context, ownerID string) ([]QuizSummary, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}

	quizzes, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list quiz history")
		return nil, err
	}

	summaries := make([]QuizSummary, 0, len(quizzes))
	for _, q := range quizzes {
		summaries = append(summaries, toSummary(q))
	}
	return summaries, nil
}
