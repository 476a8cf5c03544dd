package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"classhub/internal/middleware"
	"classhub/internal/models"
)

// AdminRoutes are the moderation routes. Every route requires the admin role.
func (e *Env) AdminRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(e.requireAuth(), e.requireRole(models.RoleAdmin))

	router.Get("/classes", e.listAllClassesHandler)
	router.With(middleware.DocumentCtx("classID")).Patch("/classes/approve/{classID}", e.setClassStatusHandler(models.ClassApproved))
	router.With(middleware.DocumentCtx("classID")).Patch("/classes/reject/{classID}", e.setClassStatusHandler(models.ClassRejected))

	router.Get("/teacher-requests", e.listTeacherRequestsHandler)
	router.With(middleware.DocumentCtx("requestID")).Patch("/teacher-requests/approve/{requestID}", e.approveTeacherRequestHandler)
	router.With(middleware.DocumentCtx("requestID")).Patch("/teacher-requests/reject/{requestID}", e.rejectTeacherRequestHandler)

	return router
}

// GET: /admin/classes
func (e *Env) listAllClassesHandler(w http.ResponseWriter, r *http.Request) {
	classes, err := e.Repository.ListClasses(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, classes)
}

// PATCH: /admin/classes/approve/{classID}, /admin/classes/reject/{classID}
func (e *Env) setClassStatusHandler(status models.ClassStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := e.Repository.SetClassStatus(r.Context(), middleware.DocumentID(r), status); err != nil {
			respondError(w, r, err)
			return
		}

		respondModified(w, r, "Class "+string(status))
	}
}
