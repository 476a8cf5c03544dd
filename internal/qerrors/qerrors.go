package qerrors

import (
	"errors"
	"net/http"
)

var (
	// Request errors
	InvalidIDError          = errors.New("invalid id")
	InvalidRequestBodyError = errors.New("invalid request body")
	ValidationError         = errors.New("invalid request")
	InvalidPriceError       = errors.New("price must be a number")
	MissingEmailError       = errors.New("email is required")

	// Auth errors
	MissingTokenError = errors.New("unauthorized access")
	InvalidTokenError = errors.New("forbidden access")
	ForbiddenError    = errors.New("you do not have permission to access this resource")

	// Class errors
	ClassNotFoundError = errors.New("class not found")

	// User errors
	UserNotFoundError = errors.New("user not found")

	// Assignment errors
	AssignmentNotFoundError = errors.New("assignment not found")

	// Teacher request errors
	TeacherRequestNotFoundError    = errors.New("teacher request not found")
	TeacherRequestExistsError      = errors.New("a teacher request already exists for this email")
	TeacherRequestNotRejectedError = errors.New("no rejected teacher request found for this email")
	TeacherRequestRejectedError    = errors.New("teacher request was already rejected")
	TeacherRequestAcceptedError    = errors.New("teacher request was already accepted")

	// Payment errors
	PaymentGatewayError = errors.New("payment gateway error")

	// InternalError is what callers see in place of any unexpected failure.
	InternalError = errors.New("internal server error")
)

var statusCodes = []struct {
	err  error
	code int
}{
	{InvalidIDError, http.StatusBadRequest},
	{InvalidRequestBodyError, http.StatusBadRequest},
	{ValidationError, http.StatusBadRequest},
	{InvalidPriceError, http.StatusBadRequest},
	{MissingEmailError, http.StatusBadRequest},
	{TeacherRequestExistsError, http.StatusBadRequest},
	{TeacherRequestRejectedError, http.StatusBadRequest},
	{TeacherRequestAcceptedError, http.StatusBadRequest},

	{MissingTokenError, http.StatusUnauthorized},
	{InvalidTokenError, http.StatusForbidden},
	{ForbiddenError, http.StatusForbidden},

	{ClassNotFoundError, http.StatusNotFound},
	{UserNotFoundError, http.StatusNotFound},
	{AssignmentNotFoundError, http.StatusNotFound},
	{TeacherRequestNotFoundError, http.StatusNotFound},
	{TeacherRequestNotRejectedError, http.StatusNotFound},
}

// StatusCode returns the HTTP status that err should be reported with. Errors that are not one of the sentinels
// above (store and gateway failures) map to 500.
func StatusCode(err error) int {
	for _, sc := range statusCodes {
		if errors.Is(err, sc.err) {
			return sc.code
		}
	}
	return http.StatusInternalServerError
}
