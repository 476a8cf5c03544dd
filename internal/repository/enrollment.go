package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	"classhub/internal/models"
	"classhub/internal/qerrors"
)

func (fr *FirebaseRepository) enrollments() *firestore.CollectionRef {
	return fr.collection(models.FirestoreEnrollmentsCollection)
}

func (fr *FirebaseRepository) payments() *firestore.CollectionRef {
	return fr.collection(models.FirestorePaymentsCollection)
}

func (fr *FirebaseRepository) RecordPayment(ctx context.Context, p *models.CreatePaymentRequest) (*models.Payment, *models.Enrollment, error) {
	var (
		payment    *models.Payment
		enrollment *models.Enrollment
	)
	err := fr.firestoreClient.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		class, err := fr.getClassTx(tx, p.ClassID)
		if err != nil {
			return err
		}

		now := time.Now()
		payRef := fr.payments().NewDoc()
		payment = &models.Payment{
			ID:            payRef.ID,
			Email:         strings.ToLower(p.Email),
			ClassID:       class.ID,
			TransactionID: p.TransactionID,
			Price:         float64(p.Price),
			PaidAt:        now,
			Method:        p.Method,
			Status:        p.Status,
		}
		if payment.Method == "" {
			payment.Method = "card"
		}
		if payment.Status == "" {
			payment.Status = models.PaymentSucceeded
		}
		err = tx.Create(payRef, map[string]interface{}{
			"email":         payment.Email,
			"classId":       payment.ClassID,
			"transactionId": payment.TransactionID,
			"price":         payment.Price,
			"paidAt":        payment.PaidAt,
			"method":        payment.Method,
			"status":        payment.Status,
		})
		if err != nil {
			return err
		}

		enrollment, err = fr.enrollTx(tx, class, payment.Email, payment.Price, now)
		return err
	})
	if err != nil {
		return nil, nil, wrapTx(err, "error recording payment")
	}
	return payment, enrollment, nil
}

func (fr *FirebaseRepository) Enroll(ctx context.Context, e *models.CreateEnrollmentRequest) (*models.Enrollment, error) {
	var enrollment *models.Enrollment
	err := fr.firestoreClient.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		class, err := fr.getClassTx(tx, e.ClassID)
		if err != nil {
			return err
		}
		enrollment, err = fr.enrollTx(tx, class, strings.ToLower(e.Email), class.Price, time.Now())
		return err
	})
	if err != nil {
		return nil, wrapTx(err, "error creating enrollment")
	}
	return enrollment, nil
}

// getClassTx reads a class inside a transaction. Transactions require all reads to happen before any write.
func (fr *FirebaseRepository) getClassTx(tx *firestore.Transaction, id string) (*models.Class, error) {
	doc, err := tx.Get(fr.classes().Doc(id))
	if err != nil {
		return nil, notFound(err, qerrors.ClassNotFoundError, "error getting class")
	}
	return decode[models.Class](doc)
}

// enrollTx writes the enrollment and bumps the class's enrolled counter in the same transaction.
func (fr *FirebaseRepository) enrollTx(tx *firestore.Transaction, class *models.Class, email string, price float64, now time.Time) (*models.Enrollment, error) {
	ref := fr.enrollments().NewDoc()
	enrollment := &models.Enrollment{
		ID:          ref.ID,
		Email:       email,
		ClassID:     class.ID,
		ClassTitle:  class.Title,
		TeacherName: class.TeacherName,
		Image:       class.Image,
		Price:       price,
		EnrolledAt:  now,
	}
	err := tx.Create(ref, map[string]interface{}{
		"email":       enrollment.Email,
		"classId":     enrollment.ClassID,
		"classTitle":  enrollment.ClassTitle,
		"teacherName": enrollment.TeacherName,
		"image":       enrollment.Image,
		"price":       enrollment.Price,
		"enrolledAt":  enrollment.EnrolledAt,
	})
	if err != nil {
		return nil, err
	}

	err = tx.Update(fr.classes().Doc(class.ID), []firestore.Update{
		{Path: "enrolled", Value: firestore.Increment(1)},
	})
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (fr *FirebaseRepository) ListEnrollmentsByEmail(ctx context.Context, email string) ([]*models.Enrollment, error) {
	enrollments, err := collect[models.Enrollment](fr.enrollments().Where("email", "==", strings.ToLower(email)).Documents(ctx))
	if err != nil {
		return nil, err
	}
	if len(enrollments) == 0 {
		return enrollments, nil
	}

	refs := make([]*firestore.DocumentRef, len(enrollments))
	for i, e := range enrollments {
		refs[i] = fr.classes().Doc(e.ClassID)
	}
	docs, err := fr.firestoreClient.GetAll(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("error joining enrollments to classes: %w", err)
	}

	for i, doc := range docs {
		if !doc.Exists() {
			// The class was deleted after enrolling; keep the snapshot taken at enrollment time.
			continue
		}
		class, err := decode[models.Class](doc)
		if err != nil {
			return nil, err
		}
		JoinClass(enrollments[i], class)
	}
	return enrollments, nil
}

// JoinClass refreshes the class details an enrollment displays from the class itself.
func JoinClass(e *models.Enrollment, c *models.Class) {
	e.ClassTitle = c.Title
	e.Image = c.Image
	e.TeacherName = c.TeacherName
}

func (fr *FirebaseRepository) CountEnrollments(ctx context.Context, classID string) (int64, error) {
	if classID == "" {
		return count(ctx, fr.enrollments().Query)
	}
	return count(ctx, fr.enrollments().Where("classId", "==", classID))
}

// wrapTx keeps domain errors returned from inside a transaction recognizable to callers.
func wrapTx(err error, op string) error {
	if qerrors.StatusCode(err) < 500 {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
