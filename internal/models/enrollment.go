package models

import "time"

// Enrollment links a student to a class they have paid for. ClassTitle, TeacherName and Image are copied from the
// class when the enrollment is created.
type Enrollment struct {
	ID          string    `json:"id" mapstructure:"id"`
	Email       string    `json:"email" mapstructure:"email"`
	ClassID     string    `json:"classId" mapstructure:"classId"`
	ClassTitle  string    `json:"classTitle" mapstructure:"classTitle"`
	TeacherName string    `json:"teacherName" mapstructure:"teacherName"`
	Image       string    `json:"image" mapstructure:"image"`
	Price       float64   `json:"price" mapstructure:"price"`
	EnrolledAt  time.Time `json:"enrolledAt" mapstructure:"enrolledAt"`
}

// CreateEnrollmentRequest is the parameter struct for the Enroll function.
type CreateEnrollmentRequest struct {
	Email   string `json:"email" validate:"required,email"`
	ClassID string `json:"classId" validate:"required,docid"`
}

type PaymentStatus string

const (
	PaymentSucceeded PaymentStatus = "succeeded"
)

// Payment records one completed purchase of a class.
type Payment struct {
	ID            string        `json:"id" mapstructure:"id"`
	Email         string        `json:"email" mapstructure:"email"`
	ClassID       string        `json:"classId" mapstructure:"classId"`
	TransactionID string        `json:"transactionId" mapstructure:"transactionId"`
	Price         float64       `json:"price" mapstructure:"price"`
	PaidAt        time.Time     `json:"paidAt" mapstructure:"paidAt"`
	Method        string        `json:"method" mapstructure:"method"`
	Status        PaymentStatus `json:"status" mapstructure:"status"`
}

// CreatePaymentRequest is the parameter struct for the RecordPayment function.
type CreatePaymentRequest struct {
	Email         string        `json:"email" validate:"required,email"`
	ClassID       string        `json:"classId" validate:"required,docid"`
	TransactionID string        `json:"transactionId" validate:"required"`
	Price         Amount        `json:"price" validate:"gte=0"`
	Method        string        `json:"method"`
	Status        PaymentStatus `json:"status"`
}

// PaymentIntentRequest is the body of a create-payment-intent call.
type PaymentIntentRequest struct {
	Price Amount `json:"price" validate:"required,gt=0"`
	Email string `json:"email" validate:"omitempty,email"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// PaymentResult is returned after a payment has been recorded together with its enrollment.
type PaymentResult struct {
	WriteResult
	EnrollmentID string `json:"enrollmentId"`
}
