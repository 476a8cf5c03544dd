package models

import (
	"time"

	"classhub/internal/qerrors"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// TeacherRequest is an application to teach on the platform. There is at most one request per email.
type TeacherRequest struct {
	ID         string        `json:"id" mapstructure:"id"`
	Email      string        `json:"email" mapstructure:"email"`
	Name       string        `json:"name" mapstructure:"name"`
	Photo      string        `json:"photo" mapstructure:"photo"`
	Experience string        `json:"experience" mapstructure:"experience"`
	Title      string        `json:"title" mapstructure:"title"`
	Category   string        `json:"category" mapstructure:"category"`
	Status     RequestStatus `json:"status" mapstructure:"status"`
	CreatedAt  time.Time     `json:"createdAt" mapstructure:"createdAt"`
}

// Approve moves the request to accepted. A rejected request must be resent before it can be approved.
func (t *TeacherRequest) Approve() error {
	if t.Status == RequestRejected {
		return qerrors.TeacherRequestRejectedError
	}
	t.Status = RequestAccepted
	return nil
}

// Reject moves the request to rejected. Accepted is terminal.
func (t *TeacherRequest) Reject() error {
	if t.Status == RequestAccepted {
		return qerrors.TeacherRequestAcceptedError
	}
	t.Status = RequestRejected
	return nil
}

// Resend puts a rejected request back into the pending state with the resubmitted details.
func (t *TeacherRequest) Resend(r *ResendTeacherRequest, now time.Time) error {
	if t.Status != RequestRejected {
		return qerrors.TeacherRequestNotRejectedError
	}
	if r.Name != "" {
		t.Name = r.Name
	}
	if r.Photo != "" {
		t.Photo = r.Photo
	}
	if r.Experience != "" {
		t.Experience = r.Experience
	}
	if r.Title != "" {
		t.Title = r.Title
	}
	if r.Category != "" {
		t.Category = r.Category
	}
	t.Status = RequestPending
	t.CreatedAt = now
	return nil
}

// CreateTeacherRequest is the parameter struct for the CreateTeacherRequest function.
type CreateTeacherRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name" validate:"required"`
	Photo      string `json:"photo"`
	Experience string `json:"experience" validate:"required"`
	Title      string `json:"title" validate:"required"`
	Category   string `json:"category" validate:"required"`
}

// ResendTeacherRequest is the parameter struct for the ResendTeacherRequest function. Empty fields keep their
// previous values.
type ResendTeacherRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name"`
	Photo      string `json:"photo"`
	Experience string `json:"experience"`
	Title      string `json:"title"`
	Category   string `json:"category"`
}
