package models

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"classhub/internal/qerrors"
)

const (
	FirestoreUsersCollection           = "users"
	FirestoreClassesCollection         = "classes"
	FirestoreEnrollmentsCollection     = "enrollments"
	FirestorePaymentsCollection        = "payments"
	FirestoreAssignmentsCollection     = "assignments"
	FirestoreSubmissionsCollection     = "submissions"
	FirestoreFeedbacksCollection       = "feedbacks"
	FirestoreTeacherRequestsCollection = "teacherRequests"
)

// Firestore auto-generated document IDs are 20 characters drawn from [A-Za-z0-9].
var docIDPattern = regexp.MustCompile(`^[A-Za-z0-9]{20}$`)

// ValidID reports whether id has the shape of a store-generated document ID.
func ValidID(id string) bool {
	return docIDPattern.MatchString(id)
}

// Amount is a price. Clients send it either as a JSON number or as a numeric string, so it is coerced to a float
// when decoded.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return qerrors.InvalidPriceError
		}
		s = strings.TrimSpace(unquoted)
		if s == "" {
			return nil
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return qerrors.InvalidPriceError
	}
	*a = Amount(f)
	return nil
}

// WriteResult is the envelope returned by every route that writes to the store.
type WriteResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	InsertedID    string `json:"insertedId,omitempty"`
	ModifiedCount int    `json:"modifiedCount,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
