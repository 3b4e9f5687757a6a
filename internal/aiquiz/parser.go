package aiquiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var fenceMarker = regexp.MustCompile("(?i)```(?:json)?")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		q := sl.Current().Interface().(Question)
		if q.CorrectAnswer != "" && !q.hasOption(q.CorrectAnswer) {
			sl.ReportError(q.CorrectAnswer, "CorrectAnswer", "correctAnswer", "inoptions", "")
		}
	}, Question{})
	return v
}

// Sanitize strips markdown code fences and surrounding whitespace.
func Sanitize(raw string) string {
	return strings.TrimSpace(fenceMarker.ReplaceAllString(raw, ""))
}

// ParseQuestions sanitizes raw and decodes it into a validated question list.
// Any malformed question rejects the whole batch.
func ParseQuestions(raw string) ([]Question, error) {
	clean := Sanitize(raw)
	if clean == "" {
		return nil, fmt.Errorf("%w: empty response", ErrParseError)
	}

	var doc json.RawMessage
	if err := json.Unmarshal([]byte(clean), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseError, err)
	}

	doc = bytes.TrimSpace(doc)
	if len(doc) == 0 || doc[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrInvalidResponseFormat)
	}

	var questions []Question
	if err := json.Unmarshal(doc, &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponseFormat, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no questions", ErrInvalidResponseFormat)
	}

	for i, q := range questions {
		if err := validate.Struct(q); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrInvalidResponseFormat, i+1, err)
		}
	}

	return questions, nil
}
