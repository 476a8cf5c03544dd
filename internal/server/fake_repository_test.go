package server

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"classhub/internal/models"
	"classhub/internal/payments"
	"classhub/internal/qerrors"
	"classhub/internal/repository"
)

// fakeRepository is an in-memory repository.Repository with the same observable rules as the Firestore one.
type fakeRepository struct {
	mu     sync.Mutex
	nextID int
	clock  time.Time

	users       map[string]*models.User
	classes     map[string]*models.Class
	enrollments []*models.Enrollment
	payments    []*models.Payment
	assignments map[string]*models.Assignment
	submissions []*models.Submission
	feedback    []*models.Feedback
	requests    map[string]*models.TeacherRequest

	// countErr, when set, is returned by every count.
	countErr error
}

var _ repository.Repository = (*fakeRepository)(nil)

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		clock:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:       make(map[string]*models.User),
		classes:     make(map[string]*models.Class),
		assignments: make(map[string]*models.Assignment),
		requests:    make(map[string]*models.TeacherRequest),
	}
}

// id returns a 20 character document ID, shaped like the ones Firestore generates.
func (f *fakeRepository) id() string {
	f.nextID++
	return fmt.Sprintf("%020d", f.nextID)
}

// now advances the clock so that documents created later always sort as newer.
func (f *fakeRepository) now() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

// Users

func (f *fakeRepository) UpsertUser(ctx context.Context, u *models.CreateUserRequest) (*models.User, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(u.Email))
	if user := f.userByEmail(email); user != nil {
		return user, false, nil
	}

	user := &models.User{
		ID:          f.id(),
		Email:       email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		Role:        models.RoleStudent,
		CreatedAt:   f.now(),
	}
	f.users[user.ID] = user
	return user, true, nil
}

func (f *fakeRepository) userByEmail(email string) *models.User {
	for _, u := range f.users {
		if u.Email == strings.ToLower(email) {
			return u
		}
	}
	return nil
}

func (f *fakeRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if u := f.userByEmail(email); u != nil {
		return u, nil
	}
	return nil, qerrors.UserNotFoundError
}

func (f *fakeRepository) SearchUsers(ctx context.Context, q *models.UserSearchRequest) (*models.UserPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return repository.PaginateUsers(all, q), nil
}

func (f *fakeRepository) MakeAdmin(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return qerrors.UserNotFoundError
	}
	u.Role = models.RoleAdmin
	return nil
}

func (f *fakeRepository) CountUsers(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), f.countErr
}

// Classes

func (f *fakeRepository) CreateClass(ctx context.Context, c *models.CreateClassRequest) (*models.Class, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	class := &models.Class{
		ID:           f.id(),
		Title:        c.Title,
		TeacherEmail: strings.ToLower(c.TeacherEmail),
		TeacherName:  c.TeacherName,
		Price:        float64(c.Price),
		Description:  c.Description,
		Image:        c.Image,
		Status:       models.ClassPending,
		CreatedAt:    f.now(),
	}
	f.classes[class.ID] = class
	return class, nil
}

func (f *fakeRepository) GetClass(ctx context.Context, id string) (*models.Class, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.classes[id]
	if !ok {
		return nil, qerrors.ClassNotFoundError
	}
	return c, nil
}

func (f *fakeRepository) listClasses(keep func(*models.Class) bool) []*models.Class {
	out := make([]*models.Class, 0)
	for _, c := range f.classes {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeRepository) ListClasses(ctx context.Context) ([]*models.Class, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listClasses(func(*models.Class) bool { return true }), nil
}

func (f *fakeRepository) ListClassesByTeacher(ctx context.Context, email string) ([]*models.Class, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listClasses(func(c *models.Class) bool { return c.TeacherEmail == strings.ToLower(email) }), nil
}

func (f *fakeRepository) ListClassesByStatus(ctx context.Context, status models.ClassStatus) ([]*models.Class, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listClasses(func(c *models.Class) bool { return c.Status == status }), nil
}

func (f *fakeRepository) EditClass(ctx context.Context, id string, r *models.EditClassRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.classes[id]
	if !ok {
		return qerrors.ClassNotFoundError
	}
	if r.Title != nil {
		c.Title = *r.Title
	}
	if r.Price != nil {
		c.Price = float64(*r.Price)
	}
	if r.Description != nil {
		c.Description = *r.Description
	}
	if r.Image != nil {
		c.Image = *r.Image
	}
	return nil
}

func (f *fakeRepository) DeleteClass(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.classes[id]; !ok {
		return qerrors.ClassNotFoundError
	}
	delete(f.classes, id)
	return nil
}

func (f *fakeRepository) SetClassStatus(ctx context.Context, id string, status models.ClassStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.classes[id]
	if !ok {
		return qerrors.ClassNotFoundError
	}
	c.Status = status
	return nil
}

func (f *fakeRepository) CountClassesByStatus(ctx context.Context, status models.ClassStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.listClasses(func(c *models.Class) bool { return c.Status == status }))), f.countErr
}

// Enrollments and payments

func (f *fakeRepository) RecordPayment(ctx context.Context, p *models.CreatePaymentRequest) (*models.Payment, *models.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	class, ok := f.classes[p.ClassID]
	if !ok {
		return nil, nil, qerrors.ClassNotFoundError
	}

	payment := &models.Payment{
		ID:            f.id(),
		Email:         strings.ToLower(p.Email),
		ClassID:       class.ID,
		TransactionID: p.TransactionID,
		Price:         float64(p.Price),
		PaidAt:        f.now(),
		Method:        p.Method,
		Status:        p.Status,
	}
	if payment.Method == "" {
		payment.Method = "card"
	}
	if payment.Status == "" {
		payment.Status = models.PaymentSucceeded
	}
	f.payments = append(f.payments, payment)

	return payment, f.enroll(class, payment.Email, payment.Price), nil
}

func (f *fakeRepository) enroll(class *models.Class, email string, price float64) *models.Enrollment {
	e := &models.Enrollment{
		ID:          f.id(),
		Email:       email,
		ClassID:     class.ID,
		ClassTitle:  class.Title,
		TeacherName: class.TeacherName,
		Image:       class.Image,
		Price:       price,
		EnrolledAt:  f.now(),
	}
	f.enrollments = append(f.enrollments, e)
	class.Enrolled++
	return e
}

func (f *fakeRepository) Enroll(ctx context.Context, r *models.CreateEnrollmentRequest) (*models.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	class, ok := f.classes[r.ClassID]
	if !ok {
		return nil, qerrors.ClassNotFoundError
	}
	return f.enroll(class, strings.ToLower(r.Email), class.Price), nil
}

func (f *fakeRepository) ListEnrollmentsByEmail(ctx context.Context, email string) ([]*models.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*models.Enrollment, 0)
	for _, e := range f.enrollments {
		if e.Email != strings.ToLower(email) {
			continue
		}
		joined := *e
		if c, ok := f.classes[e.ClassID]; ok {
			repository.JoinClass(&joined, c)
		}
		out = append(out, &joined)
	}
	return out, nil
}

func (f *fakeRepository) CountEnrollments(ctx context.Context, classID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for _, e := range f.enrollments {
		if classID == "" || e.ClassID == classID {
			n++
		}
	}
	return n, f.countErr
}

// Assignments and submissions

func (f *fakeRepository) CreateAssignment(ctx context.Context, a *models.CreateAssignmentRequest) (*models.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.classes[a.ClassID]; !ok {
		return nil, qerrors.ClassNotFoundError
	}
	assignment := &models.Assignment{
		ID:          f.id(),
		ClassID:     a.ClassID,
		Title:       a.Title,
		Deadline:    a.Deadline,
		Description: a.Description,
		CreatedAt:   f.now(),
	}
	f.assignments[assignment.ID] = assignment
	return assignment, nil
}

func (f *fakeRepository) ListAssignments(ctx context.Context, classID string) ([]*models.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*models.Assignment, 0)
	for _, a := range f.assignments {
		if a.ClassID == classID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRepository) EditAssignment(ctx context.Context, id string, r *models.EditAssignmentRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	a, ok := f.assignments[id]
	if !ok {
		return qerrors.AssignmentNotFoundError
	}
	if r.Title != nil {
		a.Title = *r.Title
	}
	if r.Deadline != nil {
		a.Deadline = *r.Deadline
	}
	if r.Description != nil {
		a.Description = *r.Description
	}
	return nil
}

func (f *fakeRepository) IncrementSubmissionCount(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	a, ok := f.assignments[id]
	if !ok {
		return qerrors.AssignmentNotFoundError
	}
	a.SubmissionCount++
	return nil
}

func (f *fakeRepository) CountAssignments(ctx context.Context, classID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for _, a := range f.assignments {
		if a.ClassID == classID {
			n++
		}
	}
	return n, f.countErr
}

func (f *fakeRepository) CreateSubmission(ctx context.Context, s *models.CreateSubmissionRequest) (*models.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	submission := &models.Submission{
		ID:           f.id(),
		AssignmentID: s.AssignmentID,
		ClassID:      s.ClassID,
		StudentEmail: strings.ToLower(s.StudentEmail),
		Answer:       s.Answer,
		SubmittedAt:  f.now(),
	}
	f.submissions = append(f.submissions, submission)
	return submission, nil
}

func (f *fakeRepository) CountSubmissions(ctx context.Context, classID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for _, s := range f.submissions {
		if s.ClassID == classID {
			n++
		}
	}
	return n, f.countErr
}

// Feedback

func (f *fakeRepository) CreateFeedback(ctx context.Context, r *models.CreateFeedbackRequest) (*models.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r.ApplyDefaults()
	feedback := &models.Feedback{
		ID:           f.id(),
		ClassID:      r.ClassID,
		StudentEmail: strings.ToLower(r.StudentEmail),
		StudentName:  r.StudentName,
		StudentImage: r.StudentImage,
		Description:  r.Description,
		Rating:       *r.Rating,
		CreatedAt:    *r.CreatedAt,
	}
	f.feedback = append(f.feedback, feedback)
	return feedback, nil
}

func (f *fakeRepository) ListFeedback(ctx context.Context, classID string) ([]*models.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*models.Feedback, 0)
	for _, fb := range f.feedback {
		if classID == "" || fb.ClassID == classID {
			out = append(out, fb)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Teacher requests

func (f *fakeRepository) requestByEmail(email string) *models.TeacherRequest {
	for _, t := range f.requests {
		if t.Email == strings.ToLower(email) {
			return t
		}
	}
	return nil
}

func (f *fakeRepository) CreateTeacherRequest(ctx context.Context, r *models.CreateTeacherRequest) (*models.TeacherRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.requestByEmail(r.Email) != nil {
		return nil, qerrors.TeacherRequestExistsError
	}
	request := &models.TeacherRequest{
		ID:         f.id(),
		Email:      strings.ToLower(r.Email),
		Name:       r.Name,
		Photo:      r.Photo,
		Experience: r.Experience,
		Title:      r.Title,
		Category:   r.Category,
		Status:     models.RequestPending,
		CreatedAt:  f.now(),
	}
	f.requests[request.ID] = request
	return request, nil
}

func (f *fakeRepository) GetTeacherRequestByEmail(ctx context.Context, email string) (*models.TeacherRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if t := f.requestByEmail(email); t != nil {
		return t, nil
	}
	return nil, qerrors.TeacherRequestNotFoundError
}

func (f *fakeRepository) ResendTeacherRequest(ctx context.Context, r *models.ResendTeacherRequest) (*models.TeacherRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t := f.requestByEmail(r.Email)
	if t == nil {
		return nil, qerrors.TeacherRequestNotRejectedError
	}
	if err := t.Resend(r, f.now()); err != nil {
		return nil, err
	}
	return t, nil
}

func (f *fakeRepository) ListTeacherRequests(ctx context.Context) ([]*models.TeacherRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*models.TeacherRequest, 0, len(f.requests))
	for _, t := range f.requests {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRepository) ApproveTeacherRequest(ctx context.Context, id string) (*models.TeacherRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.requests[id]
	if !ok {
		return nil, qerrors.TeacherRequestNotFoundError
	}
	if err := t.Approve(); err != nil {
		return nil, err
	}
	if u := f.userByEmail(t.Email); u != nil && u.Role == models.RoleStudent {
		u.Role = models.RoleTeacher
	}
	return t, nil
}

func (f *fakeRepository) RejectTeacherRequest(ctx context.Context, id string) (*models.TeacherRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.requests[id]
	if !ok {
		return nil, qerrors.TeacherRequestNotFoundError
	}
	if err := t.Reject(); err != nil {
		return nil, err
	}
	return t, nil
}

// fakeGateway records the last intent it was asked to create.
type fakeGateway struct {
	mu   sync.Mutex
	last *payments.Intent
	err  error
}

func (g *fakeGateway) CreatePaymentIntent(ctx context.Context, intent *payments.Intent) (*payments.IntentResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.err != nil {
		return nil, g.err
	}
	g.last = intent
	return &payments.IntentResult{ID: "pi_test", ClientSecret: "pi_test_secret"}, nil
}

// fakeIdentities maps ID tokens to the email they assert.
type fakeIdentities map[string]string

func (ids fakeIdentities) VerifyIdentity(ctx context.Context, idToken string) (string, error) {
	if idToken == "" {
		return "", qerrors.MissingTokenError
	}
	email, ok := ids[idToken]
	if !ok {
		return "", qerrors.InvalidTokenError
	}
	return email, nil
}
