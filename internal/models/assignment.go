package models

import "time"

// Assignment belongs to a class. SubmissionCount is incremented once per submission.
type Assignment struct {
	ID              string    `json:"id" mapstructure:"id"`
	ClassID         string    `json:"classId" mapstructure:"classId"`
	Title           string    `json:"title" mapstructure:"title"`
	Deadline        string    `json:"deadline" mapstructure:"deadline"`
	Description     string    `json:"description" mapstructure:"description"`
	SubmissionCount int64     `json:"submissionCount" mapstructure:"submissionCount"`
	CreatedAt       time.Time `json:"createdAt" mapstructure:"createdAt"`
}

// CreateAssignmentRequest is the parameter struct for the CreateAssignment function.
type CreateAssignmentRequest struct {
	ClassID     string `json:"classId" validate:"required,docid"`
	Title       string `json:"title" validate:"required"`
	Deadline    string `json:"deadline" validate:"required"`
	Description string `json:"description"`
}

// EditAssignmentRequest is the parameter struct for the EditAssignment function. Nil fields are left unchanged.
type EditAssignmentRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Deadline    *string `json:"deadline" validate:"omitempty,min=1"`
	Description *string `json:"description"`
}

func (r *EditAssignmentRequest) Empty() bool {
	return r.Title == nil && r.Deadline == nil && r.Description == nil
}

// Submission is one student's answer to an assignment. Repeat submissions are kept.
type Submission struct {
	ID           string    `json:"id" mapstructure:"id"`
	AssignmentID string    `json:"assignmentId" mapstructure:"assignmentId"`
	ClassID      string    `json:"classId" mapstructure:"classId"`
	StudentEmail string    `json:"studentEmail" mapstructure:"studentEmail"`
	Answer       string    `json:"answer" mapstructure:"answer"`
	SubmittedAt  time.Time `json:"submittedAt" mapstructure:"submittedAt"`
}

// CreateSubmissionRequest is the parameter struct for the CreateSubmission function.
type CreateSubmissionRequest struct {
	AssignmentID string `json:"assignmentId" validate:"required,docid"`
	ClassID      string `json:"classId" validate:"required,docid"`
	StudentEmail string `json:"studentEmail" validate:"required,email"`
	Answer       string `json:"answer" validate:"required"`
}

type SubmissionCount struct {
	ClassID         string `json:"classId"`
	SubmissionCount int64  `json:"submissionCount"`
}
