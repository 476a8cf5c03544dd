package router

import (
	"net/http"

	"github.com/go-chi/render"

	"classhub/internal/middleware"
	"classhub/internal/models"
)

// POST: /teacher/request
func (e *Env) createTeacherRequestHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTeacherRequest
	if err := e.decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	request, err := e.Repository.CreateTeacherRequest(r.Context(), &req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondCreated(w, r, models.WriteResult{Success: true, Message: "Teacher request submitted", InsertedID: request.ID})
}

// GET: /teacher/request?email=
func (e *Env) getTeacherRequestHandler(w http.ResponseWriter, r *http.Request) {
	email, err := requiredQuery(r, "email")
	if err != nil {
		respondError(w, r, err)
		return
	}

	request, err := e.Repository.GetTeacherRequestByEmail(r.Context(), email)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, request)
}

// PATCH: /teacher/request/resend
func (e *Env) resendTeacherRequestHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ResendTeacherRequest
	if err := e.decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if _, err := e.Repository.ResendTeacherRequest(r.Context(), &req); err != nil {
		respondError(w, r, err)
		return
	}

	respondModified(w, r, "Teacher request resent")
}

// GET: /admin/teacher-requests
func (e *Env) listTeacherRequestsHandler(w http.ResponseWriter, r *http.Request) {
	requests, err := e.Repository.ListTeacherRequests(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, requests)
}

// PATCH: /admin/teacher-requests/approve/{requestID}
func (e *Env) approveTeacherRequestHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := e.Repository.ApproveTeacherRequest(r.Context(), middleware.DocumentID(r)); err != nil {
		respondError(w, r, err)
		return
	}

	respondModified(w, r, "Teacher request approved")
}

// PATCH: /admin/teacher-requests/reject/{requestID}
func (e *Env) rejectTeacherRequestHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := e.Repository.RejectTeacherRequest(r.Context(), middleware.DocumentID(r)); err != nil {
		respondError(w, r, err)
		return
	}

	respondModified(w, r, "Teacher request rejected")
}
