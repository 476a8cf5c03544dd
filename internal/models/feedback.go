package models

import "time"

const (
	DefaultStudentName  = "Anonymous"
	DefaultStudentImage = "https://i.ibb.co/4pDNDk1/avatar.png"
)

// Feedback is a student's rating and review of a class.
type Feedback struct {
	ID           string    `json:"id" mapstructure:"id"`
	ClassID      string    `json:"classId" mapstructure:"classId"`
	StudentEmail string    `json:"studentEmail" mapstructure:"studentEmail"`
	StudentName  string    `json:"studentName" mapstructure:"studentName"`
	StudentImage string    `json:"studentImage" mapstructure:"studentImage"`
	Description  string    `json:"description" mapstructure:"description"`
	Rating       float64   `json:"rating" mapstructure:"rating"`
	CreatedAt    time.Time `json:"createdAt" mapstructure:"createdAt"`
}

// CreateFeedbackRequest is the parameter struct for the CreateFeedback function.
type CreateFeedbackRequest struct {
	ClassID      string     `json:"classId" validate:"required,docid"`
	StudentEmail string     `json:"studentEmail" validate:"required,email"`
	StudentName  string     `json:"studentName"`
	StudentImage string     `json:"studentImage"`
	Description  string     `json:"description" validate:"required"`
	Rating       *float64   `json:"rating" validate:"required,min=1,max=5"`
	CreatedAt    *time.Time `json:"createdAt" validate:"required"`
}

// ApplyDefaults fills in the optional display fields.
func (r *CreateFeedbackRequest) ApplyDefaults() {
	if r.StudentName == "" {
		r.StudentName = DefaultStudentName
	}
	if r.StudentImage == "" {
		r.StudentImage = DefaultStudentImage
	}
}
