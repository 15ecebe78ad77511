package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/studydeck/internal/api/shared"
	"github.com/phrazzld/studydeck/internal/domain"
	"github.com/phrazzld/studydeck/internal/study"
)

// CourseHandler handles course management HTTP requests. It shares the
// engine mutex with the study handler: the study core is single-threaded by
// contract, so every engine call across both handlers is serialized.
type CourseHandler struct {
	mu       *sync.Mutex
	registry *study.Registry
	logger   *slog.Logger
}

// NewCourseHandler creates a new CourseHandler. The mutex must be the same
// instance guarding the StudyHandler bound to the same registry.
func NewCourseHandler(mu *sync.Mutex, registry *study.Registry, logger *slog.Logger) *CourseHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CourseHandler")
	}

	return &CourseHandler{
		mu:       mu,
		registry: registry,
		logger:   logger.With(slog.String("component", "course_handler")),
	}
}

// CourseResponse describes one course in list responses.
type CourseResponse struct {
	Name      string `json:"name"`
	CardCount int    `json:"card_count"`
}

// ListCourses handles GET /courses requests, returning every course in
// creation order.
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	names := h.registry.List()
	courses := make([]CourseResponse, 0, len(names))
	for _, name := range names {
		cards, _ := h.registry.Get(name)
		courses = append(courses, CourseResponse{Name: name, CardCount: len(cards)})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, courses)
}

// CreateCourseRequest is the request body for POST /courses.
type CreateCourseRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateCourse handles POST /courses requests. Creating a course that
// already exists reports 409; the existing course is untouched.
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req CreateCourseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.registry.CreateCourse(r.Context(), req.Name); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.logger.Info("course created", slog.String("course", req.Name))
	shared.RespondWithJSON(w, r, http.StatusCreated, CourseResponse{Name: req.Name})
}

// CreateCardRequest is the request body for POST /courses/{name}/cards.
type CreateCardRequest struct {
	Question       string   `json:"question"`
	Answer         string   `json:"answer"`
	QuestionImages []string `json:"question_imgs"`
	AnswerImages   []string `json:"answer_imgs"`
}

// CreateCard handles POST /courses/{name}/cards requests, appending a card
// to the named course.
func (h *CourseHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || name == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Course name is required")
		return
	}

	var req CreateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	card, err := domain.NewCard(req.Question, req.Answer, req.QuestionImages, req.AnswerImages)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.registry.CreateCard(r.Context(), name, card); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.logger.Info("card created", slog.String("course", name))
	w.WriteHeader(http.StatusCreated)
}
