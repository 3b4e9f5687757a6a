package quiz

import "errors"

var (
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrConflict        = errors.New("quiz was modified concurrently")
	ErrStorage         = errors.New("storage error")
	ErrValidation      = errors.New("validation error")
)
