package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"classhub/internal/analytics"
	"classhub/internal/middleware"
	"classhub/internal/models"
	"classhub/internal/qerrors"
)

// ClassRoutes are the public class catalogue routes.
func (e *Env) ClassRoutes() *chi.Mux {
	router := chi.NewRouter()

	router.Get("/approved", e.listApprovedClassesHandler)

	router.Route("/{classID}", func(router chi.Router) {
		// Sets the class ID from the URL param in the context
		router.Use(middleware.DocumentCtx("classID"))

		router.Get("/", e.getClassHandler)
		router.Get("/rating", e.getClassRatingHandler)
	})

	return router
}

// TeacherRoutes are the routes a teacher uses to manage their classes and to apply to teach.
func (e *Env) TeacherRoutes() *chi.Mux {
	router := chi.NewRouter()

	router.Group(func(router chi.Router) {
		router.Use(e.requireAuth(), e.requireRole(models.RoleTeacher, models.RoleAdmin))

		router.Post("/classes", e.createClassHandler)
		router.Get("/classes", e.listTeacherClassesHandler)

		router.With(middleware.DocumentCtx("classID")).Patch("/classes/{classID}", e.editClassHandler)
		router.With(middleware.DocumentCtx("classID")).Delete("/classes/{classID}", e.deleteClassHandler)
	})

	// Any signed-in user may apply to become a teacher.
	router.Group(func(router chi.Router) {
		router.Use(e.requireAuth())

		router.Post("/request", e.createTeacherRequestHandler)
		router.Get("/request", e.getTeacherRequestHandler)
		router.Patch("/request/resend", e.resendTeacherRequestHandler)
	})

	return router
}

// POST: /teacher/classes
func (e *Env) createClassHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateClassRequest
	if err := e.decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	class, err := e.Repository.CreateClass(r.Context(), &req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondCreated(w, r, models.WriteResult{Success: true, Message: "Class created successfully", InsertedID: class.ID})
}

// GET: /teacher/classes?email=
func (e *Env) listTeacherClassesHandler(w http.ResponseWriter, r *http.Request) {
	email, err := requiredQuery(r, "email")
	if err != nil {
		respondError(w, r, err)
		return
	}

	classes, err := e.Repository.ListClassesByTeacher(r.Context(), email)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, classes)
}

// PATCH: /teacher/classes/{classID}
func (e *Env) editClassHandler(w http.ResponseWriter, r *http.Request) {
	var req models.EditClassRequest
	if err := e.decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if req.Empty() {
		respondError(w, r, fmt.Errorf("%w: nothing to update", qerrors.ValidationError))
		return
	}

	if err := e.Repository.EditClass(r.Context(), middleware.DocumentID(r), &req); err != nil {
		respondError(w, r, err)
		return
	}

	respondModified(w, r, "Class updated successfully")
}

// DELETE: /teacher/classes/{classID}
func (e *Env) deleteClassHandler(w http.ResponseWriter, r *http.Request) {
	if err := e.Repository.DeleteClass(r.Context(), middleware.DocumentID(r)); err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, models.WriteResult{Success: true, Message: "Class deleted successfully"})
}

// GET: /classes/approved
func (e *Env) listApprovedClassesHandler(w http.ResponseWriter, r *http.Request) {
	classes, err := e.Repository.ListClassesByStatus(r.Context(), models.ClassApproved)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, classes)
}

// GET: /classes/{classID}
func (e *Env) getClassHandler(w http.ResponseWriter, r *http.Request) {
	class, err := e.Repository.GetClass(r.Context(), middleware.DocumentID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, class)
}

// GET: /classes/{classID}/rating
func (e *Env) getClassRatingHandler(w http.ResponseWriter, r *http.Request) {
	classID := middleware.DocumentID(r)

	feedback, err := e.Repository.ListFeedback(r.Context(), classID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, analytics.SummarizeRatings(classID, feedback))
}
