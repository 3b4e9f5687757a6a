package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/placement-portal/quiz-api/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.With(auth.OptionalAuthMiddleware).Post("/generate", h.GenerateQuiz)
	r.With(auth.AuthMiddleware).Get("/user/history", h.ListHistory)
	r.Get("/{id}", h.GetQuiz)
	r.Post("/{id}/submit", h.SubmitAnswers)
	return r
}
