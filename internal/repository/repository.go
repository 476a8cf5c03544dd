package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/mitchellh/mapstructure"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"classhub/internal/models"
)

// UserRepository encapsulates the logic to access users from a database.
type UserRepository interface {
	// UpsertUser inserts a user with the student role unless one already exists for the email. The returned bool
	// reports whether a new user was created; an existing user is returned unchanged.
	UpsertUser(ctx context.Context, u *models.CreateUserRequest) (*models.User, bool, error)
	// GetUserByEmail returns the user with the given (case-insensitive) email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// SearchUsers returns one page of users whose display name or email contains the search string.
	SearchUsers(ctx context.Context, q *models.UserSearchRequest) (*models.UserPage, error)
	// MakeAdmin gives the user with the given ID the admin role.
	MakeAdmin(ctx context.Context, id string) error
	// CountUsers counts all users.
	CountUsers(ctx context.Context) (int64, error)
}

// ClassRepository encapsulates the logic to access classes from a database.
type ClassRepository interface {
	CreateClass(ctx context.Context, c *models.CreateClassRequest) (*models.Class, error)
	GetClass(ctx context.Context, id string) (*models.Class, error)
	ListClasses(ctx context.Context) ([]*models.Class, error)
	ListClassesByTeacher(ctx context.Context, email string) ([]*models.Class, error)
	ListClassesByStatus(ctx context.Context, status models.ClassStatus) ([]*models.Class, error)
	EditClass(ctx context.Context, id string, c *models.EditClassRequest) error
	DeleteClass(ctx context.Context, id string) error
	SetClassStatus(ctx context.Context, id string, status models.ClassStatus) error
	CountClassesByStatus(ctx context.Context, status models.ClassStatus) (int64, error)
}

// EnrollmentRepository encapsulates the logic to access payments and enrollments from a database.
type EnrollmentRepository interface {
	// RecordPayment stores the payment, creates the matching enrollment and increments the class's enrolled
	// counter as one atomic unit.
	RecordPayment(ctx context.Context, p *models.CreatePaymentRequest) (*models.Payment, *models.Enrollment, error)
	// Enroll creates an enrollment and increments the class's enrolled counter as one atomic unit.
	Enroll(ctx context.Context, e *models.CreateEnrollmentRequest) (*models.Enrollment, error)
	// ListEnrollmentsByEmail returns a student's enrollments with the class details refreshed from the class.
	ListEnrollmentsByEmail(ctx context.Context, email string) ([]*models.Enrollment, error)
	// CountEnrollments counts the enrollments of a class, or of every class when classID is empty.
	CountEnrollments(ctx context.Context, classID string) (int64, error)
}

// AssignmentRepository encapsulates the logic to access assignments and submissions from a database.
type AssignmentRepository interface {
	CreateAssignment(ctx context.Context, a *models.CreateAssignmentRequest) (*models.Assignment, error)
	ListAssignments(ctx context.Context, classID string) ([]*models.Assignment, error)
	EditAssignment(ctx context.Context, id string, a *models.EditAssignmentRequest) error
	IncrementSubmissionCount(ctx context.Context, id string) error
	CountAssignments(ctx context.Context, classID string) (int64, error)
	CreateSubmission(ctx context.Context, s *models.CreateSubmissionRequest) (*models.Submission, error)
	CountSubmissions(ctx context.Context, classID string) (int64, error)
}

// FeedbackRepository encapsulates the logic to access feedback from a database.
type FeedbackRepository interface {
	CreateFeedback(ctx context.Context, f *models.CreateFeedbackRequest) (*models.Feedback, error)
	// ListFeedback returns feedback newest first, for one class or for every class when classID is empty.
	ListFeedback(ctx context.Context, classID string) ([]*models.Feedback, error)
}

// TeacherRequestRepository encapsulates the logic to access teacher requests from a database.
type TeacherRequestRepository interface {
	CreateTeacherRequest(ctx context.Context, t *models.CreateTeacherRequest) (*models.TeacherRequest, error)
	GetTeacherRequestByEmail(ctx context.Context, email string) (*models.TeacherRequest, error)
	ResendTeacherRequest(ctx context.Context, t *models.ResendTeacherRequest) (*models.TeacherRequest, error)
	ListTeacherRequests(ctx context.Context) ([]*models.TeacherRequest, error)
	// ApproveTeacherRequest accepts the request and promotes the requesting student to teacher.
	ApproveTeacherRequest(ctx context.Context, id string) (*models.TeacherRequest, error)
	RejectTeacherRequest(ctx context.Context, id string) (*models.TeacherRequest, error)
}

// Repository is the full document store used by the route handlers.
type Repository interface {
	UserRepository
	ClassRepository
	EnrollmentRepository
	AssignmentRepository
	FeedbackRepository
	TeacherRequestRepository
}

type FirebaseRepository struct {
	firestoreClient *firestore.Client
}

// NewFirebaseRepository creates a repository backed by the given Firestore client. The client is shared and owned
// by the caller.
func NewFirebaseRepository(client *firestore.Client) *FirebaseRepository {
	return &FirebaseRepository{firestoreClient: client}
}

func (fr *FirebaseRepository) collection(name string) *firestore.CollectionRef {
	return fr.firestoreClient.Collection(name)
}

// Helpers

// decode destructures a document into a model. The document ID is exposed to the model under "id".
func decode[T any](doc *firestore.DocumentSnapshot) (*T, error) {
	data := doc.Data()
	data["id"] = doc.Ref.ID

	var v T
	if err := mapstructure.Decode(data, &v); err != nil {
		return nil, fmt.Errorf("error destructuring document %s: %w", doc.Ref.Path, err)
	}
	return &v, nil
}

// collect decodes every document an iterator yields. It always returns a non-nil slice so that empty results
// encode as [] rather than null.
func collect[T any](iter *firestore.DocumentIterator) ([]*T, error) {
	defer iter.Stop()

	out := make([]*T, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("Documents.Next: %w", err)
		}

		v, err := decode[T](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// count runs a server-side count aggregation over q.
func count(ctx context.Context, q firestore.Query) (int64, error) {
	res, err := q.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("error counting documents: %w", err)
	}

	v, ok := res["all"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("unexpected count result type %T", res["all"])
	}
	return v.GetIntegerValue(), nil
}

// notFound translates a Firestore NotFound status into the given domain error, and wraps anything else.
func notFound(err error, domainErr error, op string) error {
	if status.Code(err) == codes.NotFound {
		return domainErr
	}
	return fmt.Errorf("%s: %w", op, err)
}
