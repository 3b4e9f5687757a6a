package quiz

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spf13/cast"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type GenerateQuizRequest struct {
	// Topic is interpolated into the generation prompt, so its length is capped.
	Topic string `json:"topic" validate:"required,max=200"`
	// QuestionCount accepts a JSON number or a numeric string.
	QuestionCount any `json:"questionCount"`
}

// Count validates the request and returns the coerced question count.
func (r *GenerateQuizRequest) Count() (int, error) {
	r.Topic = strings.TrimSpace(r.Topic)
	if err := validate.Struct(r); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if r.QuestionCount == nil {
		return 0, fmt.Errorf("%w: questionCount is required", ErrValidation)
	}
	switch r.QuestionCount.(type) {
	case float64, float32, int, int32, int64, json.Number, string:
	default:
		return 0, fmt.Errorf("%w: questionCount must be a number, got %T", ErrValidation, r.QuestionCount)
	}
	n, err := cast.ToIntE(r.QuestionCount)
	if err != nil {
		return 0, fmt.Errorf("%w: questionCount: %v", ErrValidation, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: questionCount must be at least 1", ErrValidation)
	}
	return n, nil
}

type SubmitAnswersRequest struct {
	UserAnswers map[string]string `json:"userAnswers" validate:"required,min=1"`
}

func (r *SubmitAnswersRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: userAnswers must be a non-empty object", ErrValidation)
	}
	return nil
}

type QuizResponse struct {
	Success bool  `json:"success"`
	Quiz    *Quiz `json:"quiz"`
}

type SubmitResult struct {
	Quiz           *Quiz
	Score          int
	TotalQuestions int
}

type SubmitResponse struct {
	Success        bool  `json:"success"`
	Quiz           *Quiz `json:"quiz"`
	Score          int   `json:"score"`
	TotalQuestions int   `json:"totalQuestions"`
}

type HistoryResponse struct {
	Success bool          `json:"success"`
	Quizzes []QuizSummary `json:"quizzes"`
}

// QuizSummary is the history view of a quiz. It has no field that could
// carry a correct answer or explanation.
type QuizSummary struct {
	ID                     uuid.UUID         `json:"id"`
	Topic                  string            `json:"topic"`
	RequestedQuestionCount int               `json:"requestedQuestionCount"`
	Questions              []QuestionView    `json:"questions"`
	UserAnswers            map[string]string `json:"userAnswers"`
	Score                  int               `json:"score"`
	Completed              bool              `json:"completed"`
	Owner                  *string           `json:"owner,omitempty"`
	CreatedAt              time.Time         `json:"createdAt"`
	CompletedAt            *time.Time        `json:"completedAt,omitempty"`
}

type QuestionView struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

func toSummary(q *Quiz) QuizSummary {
	questions := q.QuestionList()
	views := make([]QuestionView, len(questions))
	for i, question := range questions {
		views[i] = QuestionView{
			ID:       question.ID,
			Question: question.Question,
			Options:  question.Options,
		}
	}

	answers := q.Answers()
	if answers == nil {
		answers = map[string]string{}
	}

	return QuizSummary{
		ID:                     q.ID,
		Topic:                  q.Topic,
		RequestedQuestionCount: q.RequestedQuestionCount,
		Questions:              views,
		UserAnswers:            answers,
		Score:                  q.Score,
		Completed:              q.Completed,
		Owner:                  q.OwnerID,
		CreatedAt:              q.CreatedAt,
		CompletedAt:            q.CompletedAt,
	}
}
