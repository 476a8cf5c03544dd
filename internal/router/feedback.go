package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"classhub/internal/models"
	"classhub/internal/qerrors"
)

// FeedbackRoutes are mounted at both /feedback and /feedbacks, so the two paths share one create handler.
func (e *Env) FeedbackRoutes() *chi.Mux {
	router := chi.NewRouter()

	router.Get("/", e.listFeedbackHandler)
	router.With(e.requireAuth()).Post("/", e.createFeedbackHandler)

	return router
}

// POST: /feedback, /feedbacks
func (e *Env) createFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFeedbackRequest
	if err := e.decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	feedback, err := e.Repository.CreateFeedback(r.Context(), &req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondCreated(w, r, models.WriteResult{Success: true, Message: "Feedback submitted", InsertedID: feedback.ID})
}

// GET: /feedback?classId=
func (e *Env) listFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	classID := r.URL.Query().Get("classId")
	if classID != "" && !models.ValidID(classID) {
		respondError(w, r, qerrors.InvalidIDError)
		return
	}

	feedback, err := e.Repository.ListFeedback(r.Context(), classID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, feedback)
}
