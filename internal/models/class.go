package models

import "time"

type ClassStatus string

const (
	ClassPending  ClassStatus = "pending"
	ClassApproved ClassStatus = "approved"
	ClassRejected ClassStatus = "rejected"
)

// Class is a course offering submitted by a teacher. Enrolled counts the enrollments that reference the class and
// is only ever changed by atomic increments.
type Class struct {
	ID           string      `json:"id" mapstructure:"id"`
	Title        string      `json:"title" mapstructure:"title"`
	TeacherEmail string      `json:"teacherEmail" mapstructure:"teacherEmail"`
	TeacherName  string      `json:"teacherName" mapstructure:"teacherName"`
	Price        float64     `json:"price" mapstructure:"price"`
	Description  string      `json:"description" mapstructure:"description"`
	Image        string      `json:"image" mapstructure:"image"`
	Status       ClassStatus `json:"status" mapstructure:"status"`
	Enrolled     int64       `json:"enrolled" mapstructure:"enrolled"`
	CreatedAt    time.Time   `json:"createdAt" mapstructure:"createdAt"`
}

// CreateClassRequest is the parameter struct for the CreateClass function.
type CreateClassRequest struct {
	Title        string `json:"title" validate:"required"`
	TeacherEmail string `json:"teacherEmail" validate:"required,email"`
	TeacherName  string `json:"teacherName"`
	Price        Amount `json:"price" validate:"required,gt=0"`
	Description  string `json:"description"`
	Image        string `json:"image"`
}

// EditClassRequest is the parameter struct for the EditClass function. Nil fields are left unchanged.
type EditClassRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Price       *Amount `json:"price" validate:"omitempty,gt=0"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

// Empty reports whether the request would not change anything.
func (r *EditClassRequest) Empty() bool {
	return r.Title == nil && r.Price == nil && r.Description == nil && r.Image == nil
}
