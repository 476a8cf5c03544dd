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

func (fr *FirebaseRepository) assignments() *firestore.CollectionRef {
	return fr.collection(models.FirestoreAssignmentsCollection)
}

func (fr *FirebaseRepository) submissions() *firestore.CollectionRef {
	return fr.collection(models.FirestoreSubmissionsCollection)
}

func (fr *FirebaseRepository) CreateAssignment(ctx context.Context, a *models.CreateAssignmentRequest) (*models.Assignment, error) {
	var assignment *models.Assignment
	err := fr.firestoreClient.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := fr.getClassTx(tx, a.ClassID); err != nil {
			return err
		}

		ref := fr.assignments().NewDoc()
		assignment = &models.Assignment{
			ID:              ref.ID,
			ClassID:         a.ClassID,
			Title:           a.Title,
			Deadline:        a.Deadline,
			Description:     a.Description,
			SubmissionCount: 0,
			CreatedAt:       time.Now(),
		}
		return tx.Create(ref, map[string]interface{}{
			"classId":         assignment.ClassID,
			"title":           assignment.Title,
			"deadline":        assignment.Deadline,
			"description":     assignment.Description,
			"submissionCount": assignment.SubmissionCount,
			"createdAt":       assignment.CreatedAt,
		})
	})
	if err != nil {
		return nil, wrapTx(err, "error creating assignment")
	}
	return assignment, nil
}

// ListAssignments needs the (classId, createdAt desc) composite index in firestore.indexes.json.
func (fr *FirebaseRepository) ListAssignments(ctx context.Context, classID string) ([]*models.Assignment, error) {
	q := fr.assignments().Where("classId", "==", classID).OrderBy("createdAt", firestore.Desc)
	return collect[models.Assignment](q.Documents(ctx))
}

func (fr *FirebaseRepository) EditAssignment(ctx context.Context, id string, a *models.EditAssignmentRequest) error {
	var updates []firestore.Update
	if a.Title != nil {
		updates = append(updates, firestore.Update{Path: "title", Value: *a.Title})
	}
	if a.Deadline != nil {
		updates = append(updates, firestore.Update{Path: "deadline", Value: *a.Deadline})
	}
	if a.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *a.Description})
	}

	_, err := fr.assignments().Doc(id).Update(ctx, updates)
	if err != nil {
		return notFound(err, qerrors.AssignmentNotFoundError, "error editing assignment")
	}
	return nil
}

func (fr *FirebaseRepository) IncrementSubmissionCount(ctx context.Context, id string) error {
	_, err := fr.assignments().Doc(id).Update(ctx, []firestore.Update{
		{Path: "submissionCount", Value: firestore.Increment(1)},
	})
	if err != nil {
		return notFound(err, qerrors.AssignmentNotFoundError, "error incrementing submission count")
	}
	return nil
}

func (fr *FirebaseRepository) CountAssignments(ctx context.Context, classID string) (int64, error) {
	return count(ctx, fr.assignments().Where("classId", "==", classID))
}

func (fr *FirebaseRepository) CreateSubmission(ctx context.Context, s *models.CreateSubmissionRequest) (*models.Submission, error) {
	submission := &models.Submission{
		AssignmentID: s.AssignmentID,
		ClassID:      s.ClassID,
		StudentEmail: strings.ToLower(s.StudentEmail),
		Answer:       s.Answer,
		SubmittedAt:  time.Now(),
	}

	ref, _, err := fr.submissions().Add(ctx, map[string]interface{}{
		"assignmentId": submission.AssignmentID,
		"classId":      submission.ClassID,
		"studentEmail": submission.StudentEmail,
		"answer":       submission.Answer,
		"submittedAt":  submission.SubmittedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating submission: %w", err)
	}
	submission.ID = ref.ID
	return submission, nil
}

func (fr *FirebaseRepository) CountSubmissions(ctx context.Context, classID string) (int64, error) {
	return count(ctx, fr.submissions().Where("classId", "==", classID))
}
