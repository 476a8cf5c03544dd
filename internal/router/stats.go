package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"classhub/internal/analytics"
	"classhub/internal/middleware"
	"classhub/internal/models"
)

// StatsRoutes are the public landing-page totals, mounted at /stats.
func (e *Env) StatsRoutes() *chi.Mux {
	router := chi.NewRouter()

	router.Get("/", e.platformStatsHandler)
	router.Get("/total-users", e.totalUsersHandler)
	router.Get("/total-classes", e.totalClassesHandler)
	router.Get("/total-enrollments", e.totalEnrollmentsHandler)

	return router
}

// ClassProgressRoutes are mounted at /class-progress.
func (e *Env) ClassProgressRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(e.requireAuth())

	router.With(middleware.DocumentCtx("classID")).Get("/{classID}", e.classProgressHandler)

	return router
}

// GET: /class-progress/{classID}
func (e *Env) classProgressHandler(w http.ResponseWriter, r *http.Request) {
	progress, err := analytics.ClassProgress(r.Context(), e.Repository, middleware.DocumentID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, progress)
}

// GET: /stats
func (e *Env) platformStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := analytics.PlatformTotals(r.Context(), e.Repository)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, stats)
}

// GET: /stats/total-users
func (e *Env) totalUsersHandler(w http.ResponseWriter, r *http.Request) {
	n, err := e.Repository.CountUsers(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]int64{"totalUsers": n})
}

// GET: /stats/total-classes
func (e *Env) totalClassesHandler(w http.ResponseWriter, r *http.Request) {
	n, err := e.Repository.CountClassesByStatus(r.Context(), models.ClassApproved)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]int64{"totalClasses": n})
}

// GET: /stats/total-enrollments
func (e *Env) totalEnrollmentsHandler(w http.ResponseWriter, r *http.Request) {
	n, err := e.Repository.CountEnrollments(r.Context(), "")
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]int64{"totalEnrollments": n})
}
