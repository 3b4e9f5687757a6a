package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(ctx context.Context, q *Quiz) error
	GetByID(ctx context.Context, id uuid.UUID) (*Quiz, error)
	// UpdateSubmission writes the submission fields of q only if the stored
	// version still equals expectedVersion.
	UpdateSubmission(ctx context.Context, q *Quiz, expectedVersion int) error
	ListByOwner(ctx context.Context, ownerID string) ([]*Quiz, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

// Migrate creates or updates the quizzes table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Quiz{})
}

func (r *quizRepository) Create(ctx context.Context, q *Quiz) error {
	if err := r.db.WithContext(ctx).Create(q).Error; err != nil {
		return fmt.Errorf("%w: create quiz: %w", ErrStorage, err)
	}
	return nil
}

func (r *quizRepository) GetByID(ctx context.Context, id uuid.UUID) (*Quiz, error) {
	var quiz Quiz
	if err := r.db.WithContext(ctx).First(&quiz, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("%w: get quiz: %w", ErrStorage, err)
	}
	return &quiz, nil
}

func (r *quizRepository) UpdateSubmission(ctx context.Context, q *Quiz, expectedVersion int) error {
	res := r.db.WithContext(ctx).
		Model(&Quiz{}).
		Where("id = ? AND version = ?", q.ID, expectedVersion).
		Updates(map[string]any{
			"user_answers": q.UserAnswers,
			"score":        q.Score,
			"completed":    q.Completed,
			"completed_at": q.CompletedAt,
			"version":      q.Version,
		})
	if res.Error != nil {
		return fmt.Errorf("%w: update quiz: %w", ErrStorage, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&Quiz{}).Where("id = ?", q.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("%w: update quiz: %w", ErrStorage, err)
	}
	if count == 0 {
		return ErrQuizNotFound
	}
	return ErrConflict
}

func (r *quizRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Quiz, error) {
	var quizzes []*Quiz
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&quizzes).Error; err != nil {
		return nil, fmt.Errorf("%w: list quizzes: %w", ErrStorage, err)
	}
	return quizzes, nil
}
