package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Quiz is stored as one row; questions and answers live in JSONB columns so
// the record is read and written as a single document.
type Quiz struct {
	ID                     uuid.UUID                             `gorm:"type:uuid;primaryKey" json:"id"`
	Topic                  string                                `gorm:"type:text;not null" json:"topic"`
	RequestedQuestionCount int                                   `gorm:"not null" json:"requestedQuestionCount"`
	Questions              datatypes.JSONType[[]Question]        `gorm:"type:jsonb;not null" json:"questions"`
	UserAnswers            datatypes.JSONType[map[string]string] `gorm:"type:jsonb;not null" json:"userAnswers"`
	Score                  int                                   `gorm:"not null;default:0" json:"score"`
	Completed              bool                                  `gorm:"not null;default:false" json:"completed"`
	OwnerID                *string                               `gorm:"type:text;index:idx_quizzes_owner_created,priority:1" json:"owner,omitempty"`
	Version                int                                   `gorm:"not null;default:0" json:"version"`
	CreatedAt              time.Time                             `gorm:"autoCreateTime;index:idx_quizzes_owner_created,priority:2" json:"createdAt"`
	CompletedAt            *time.Time                            `json:"completedAt,omitempty"`
}

// Question is fixed at creation. ID is what clients echo back when submitting.
type Question struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

func (q *Quiz) QuestionList() []Question {
	return q.Questions.Data()
}

func (q *Quiz) Answers() map[string]string {
	return q.UserAnswers.Data()
}
