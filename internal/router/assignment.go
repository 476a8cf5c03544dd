package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"classhub/internal/middleware"
	"classhub/internal/models"
	"classhub/internal/qerrors"
)

// AssignmentRoutes are mounted at /assignments. Students may list assignments; only staff may change them.
func (e *Env) AssignmentRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(e.requireAuth())

	router.Get("/", e.listAssignmentsHandler)

	router.Group(func(router chi.Router) {
		router.Use(e.requireRole(models.RoleTeacher, models.RoleAdmin))

		router.Post("/", e.createAssignmentHandler)
		router.Route("/{assignmentID}", func(router chi.Router) {
			router.Use(middleware.DocumentCtx("assignmentID"))

			router.Patch("/", e.editAssignmentHandler)
			router.Patch("/increment", e.incrementSubmissionCountHandler)
		})
	})

	return router
}

// SubmissionRoutes are mounted at /submissions.
func (e *Env) SubmissionRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(e.requireAuth())

	router.Post("/", e.createSubmissionHandler)
	router.With(e.requireRole(models.RoleTeacher, models.RoleAdmin)).Get("/count", e.countSubmissionsHandler)

	return router
}

// POST: /assignments
func (e *Env) createAssignmentHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAssignmentRequest
	if err := e.decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	assignment, err := e.Repository.CreateAssignment(r.Context(), &req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondCreated(w, r, models.WriteResult{Success: true, Message: "Assignment created successfully", InsertedID: assignment.ID})
}

// GET: /assignments?classId=
func (e *Env) listAssignmentsHandler(w http.ResponseWriter, r *http.Request) {
	classID, err := classIDQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	assignments, err := e.Repository.ListAssignments(r.Context(), classID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, assignments)
}

// PATCH: /assignments/{assignmentID}
func (e *Env) editAssignmentHandler(w http.ResponseWriter, r *http.Request) {
	var req models.EditAssignmentRequest
	if err := e.decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if req.Empty() {
		respondError(w, r, fmt.Errorf("%w: nothing to update", qerrors.ValidationError))
		return
	}

	if err := e.Repository.EditAssignment(r.Context(), middleware.DocumentID(r), &req); err != nil {
		respondError(w, r, err)
		return
	}

	respondModified(w, r, "Assignment updated successfully")
}

// PATCH: /assignments/{assignmentID}/increment
func (e *Env) incrementSubmissionCountHandler(w http.ResponseWriter, r *http.Request) {
	if err := e.Repository.IncrementSubmissionCount(r.Context(), middleware.DocumentID(r)); err != nil {
		respondError(w, r, err)
		return
	}

	respondModified(w, r, "Submission count incremented")
}

// POST: /submissions
func (e *Env) createSubmissionHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSubmissionRequest
	if err := e.decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	submission, err := e.Repository.CreateSubmission(r.Context(), &req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondCreated(w, r, models.WriteResult{Success: true, Message: "Submission received", InsertedID: submission.ID})
}

// GET: /submissions/count?classId=
func (e *Env) countSubmissionsHandler(w http.ResponseWriter, r *http.Request) {
	classID, err := classIDQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	n, err := e.Repository.CountSubmissions(r.Context(), classID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, models.SubmissionCount{ClassID: classID, SubmissionCount: n})
}

// classIDQuery reads the required classId query parameter and checks its shape.
func classIDQuery(r *http.Request) (string, error) {
	classID, err := requiredQuery(r, "classId")
	if err != nil {
		return "", err
	}
	if !models.ValidID(classID) {
		return "", qerrors.InvalidIDError
	}
	return classID, nil
}
