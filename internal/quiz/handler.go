package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/placement-portal/quiz-api/internal/aiquiz"
	"github.com/placement-portal/quiz-api/internal/auth"
	"github.com/placement-portal/quiz-api/internal/config"
)

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

// GenerateQuiz godoc
// @Summary  Generate a practice quiz
// @Tags     quizzes
// @Accept   json
// @Produce  json
// @Param    body body GenerateQuizRequest true "topic and question count"
// @Success  201 {object} QuizResponse
// @Router   /quizzes/generate [post]
func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid request body for quiz generation")
		config.Error(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	count, err := req.Count()
	if err != nil {
		log.WithError(err).Warn("Rejected quiz generation request")
		config.Error(w, http.StatusBadRequest, "topic and questionCount are required", err)
		return
	}

	quiz, err := h.service.GenerateQuiz(r.Context(), req.Topic, count, auth.OwnerFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	config.JSON(w, http.StatusCreated, QuizResponse{Success: true, Quiz: quiz})
}

// GetQuiz godoc
// @Summary  Get a quiz including answers and explanations
// @Tags     quizzes
// @Produce  json
// @Param    id path string true "quiz id"
// @Success  200 {object} QuizResponse
// @Router   /quizzes/{id} [get]
func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.service.GetQuiz(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, QuizResponse{Success: true, Quiz: quiz})
}

// SubmitAnswers godoc
// @Summary  Submit answers and score a quiz
// @Tags     quizzes
// @Accept   json
// @Produce  json
// @Param    id   path string true "quiz id"
// @Param    body body SubmitAnswersRequest true "answers keyed by question id"
// @Success  200 {object} SubmitResponse
// @Router   /quizzes/{id}/submit [post]
func (h *Handler) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req SubmitAnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid request body for quiz submission")
		config.Error(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		log.WithError(err).Warn("Rejected quiz submission")
		config.Error(w, http.StatusBadRequest, "userAnswers are required", err)
		return
	}

	result, err := h.service.SubmitAnswers(r.Context(), chi.URLParam(r, "id"), req.UserAnswers)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, SubmitResponse{
		Success:        true,
		Quiz:           result.Quiz,
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
	})
}

// ListHistory godoc
// @Summary   List the caller's quizzes without answers
// @Tags      quizzes
// @Produce   json
// @Security  BearerAuth
// @Success   200 {object} HistoryResponse
// @Router    /quizzes/user/history [get]
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	var ownerID string
	if owner := auth.OwnerFromContext(r.Context()); owner != nil {
		ownerID = *owner
	}

	quizzes, err := h.service.ListHistory(r.Context(), ownerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, HistoryResponse{Success: true, Quizzes: quizzes})
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := config.WithContext(r.Context())

	switch {
	case errors.Is(err, ErrValidation):
		config.Error(w, http.StatusBadRequest, "invalid request", err)
	case errors.Is(err, ErrUnauthenticated):
		config.Error(w, http.StatusUnauthorized, "unauthorized", nil)
	case errors.Is(err, ErrQuizNotFound):
		config.Error(w, http.StatusNotFound, "quiz not found", nil)
	case errors.Is(err, ErrConflict):
		config.Error(w, http.StatusConflict, "quiz was submitted concurrently, reload and try again", err)
	case errors.Is(err, aiquiz.ErrUpstream),
		errors.Is(err, aiquiz.ErrParseError),
		errors.Is(err, aiquiz.ErrInvalidResponseFormat):
		log.WithError(err).Error("Quiz generation failed")
		config.Error(w, http.StatusInternalServerError, "failed to generate quiz", err)
	default:
		log.WithError(err).Error("Quiz request failed")
		config.Error(w, http.StatusInternalServerError, "internal server error", err)
	}
}
