package api

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/phrazzld/studydeck/internal/api/shared"
	"github.com/phrazzld/studydeck/internal/domain"
	"github.com/phrazzld/studydeck/internal/study"
)

// StudyHandler drives the study session over HTTP. The session state machine
// is not designed for concurrent callers, so every handler takes the engine
// mutex for the duration of the operation.
type StudyHandler struct {
	mu      *sync.Mutex
	session *study.Session
	logger  *slog.Logger
}

// NewStudyHandler creates a new StudyHandler. The mutex must be the same
// instance guarding the CourseHandler bound to the same registry.
func NewStudyHandler(mu *sync.Mutex, session *study.Session, logger *slog.Logger) *StudyHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StudyHandler")
	}

	return &StudyHandler{
		mu:      mu,
		session: session,
		logger:  logger.With(slog.String("component", "study_handler")),
	}
}

// SelectCourseRequest is the request body for POST /study/select.
type SelectCourseRequest struct {
	Course string `json:"course" validate:"required"`
}

// SessionResponse reports the session's position for status endpoints.
type SessionResponse struct {
	Course   string `json:"course,omitempty"`
	State    string `json:"state"`
	Seen     int    `json:"seen"`
	DeckSize int    `json:"deck_size"`
}

// SelectCourse handles POST /study/select requests, binding the session to a
// course and restarting its pass.
func (h *StudyHandler) SelectCourse(w http.ResponseWriter, r *http.Request) {
	var req SelectCourseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.session.SelectCourse(req.Course); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.logger.Info("course selected for study", slog.String("course", req.Course))
	shared.RespondWithJSON(w, r, http.StatusOK, h.sessionResponse())
}

// NextCard handles POST /study/next requests, drawing the next card of the
// pass. A course with no cards yields 204 No Content: an expected outcome,
// not an error.
func (h *StudyHandler) NextCard(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	view, err := h.session.Next()
	if errors.Is(err, domain.ErrEmptyCourse) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// RevealAnswer handles POST /study/reveal requests, showing the answer side
// of the current card.
func (h *StudyHandler) RevealAnswer(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	view, err := h.session.Reveal()
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// EditCardRequest is the request body for PUT /study/current.
type EditCardRequest struct {
	Question       string   `json:"question"`
	Answer         string   `json:"answer"`
	QuestionImages []string `json:"question_imgs"`
	AnswerImages   []string `json:"answer_imgs"`
}

// EditCurrentCard handles PUT /study/current requests, mutating the
// displayed card in place and re-displaying it in the current state.
func (h *StudyHandler) EditCurrentCard(w http.ResponseWriter, r *http.Request) {
	var req EditCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	view, err := h.session.EditCurrent(r.Context(),
		req.Question, req.Answer, req.QuestionImages, req.AnswerImages)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.logger.Info("card edited", slog.String("course", h.session.ActiveCourse()))
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// DeleteCurrentCard handles DELETE /study/current requests, removing the
// displayed card from its course.
func (h *StudyHandler) DeleteCurrentCard(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.session.DeleteCurrent(r.Context()); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.logger.Info("card deleted", slog.String("course", h.session.ActiveCourse()))
	w.WriteHeader(http.StatusNoContent)
}

// Progress handles GET /study/progress requests.
func (h *StudyHandler) Progress(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	shared.RespondWithJSON(w, r, http.StatusOK, h.sessionResponse())
}

// sessionResponse snapshots the session position. Callers must hold the
// engine mutex.
func (h *StudyHandler) sessionResponse() SessionResponse {
	seen, deckSize := h.session.Progress()
	return SessionResponse{
		Course:   h.session.ActiveCourse(),
		State:    h.session.State().String(),
		Seen:     seen,
		DeckSize: deckSize,
	}
}
