package repository

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"

	"classhub/internal/models"
)

func (fr *FirebaseRepository) feedbacks() *firestore.CollectionRef {
	return fr.collection(models.FirestoreFeedbacksCollection)
}

func (fr *FirebaseRepository) CreateFeedback(ctx context.Context, f *models.CreateFeedbackRequest) (*models.Feedback, error) {
	f.ApplyDefaults()
	feedback := &models.Feedback{
		ClassID:      f.ClassID,
		StudentEmail: strings.ToLower(f.StudentEmail),
		StudentName:  f.StudentName,
		StudentImage: f.StudentImage,
		Description:  f.Description,
		Rating:       *f.Rating,
		CreatedAt:    *f.CreatedAt,
	}

	ref, _, err := fr.feedbacks().Add(ctx, map[string]interface{}{
		"classId":      feedback.ClassID,
		"studentEmail": feedback.StudentEmail,
		"studentName":  feedback.StudentName,
		"studentImage": feedback.StudentImage,
		"description":  feedback.Description,
		"rating":       feedback.Rating,
		"createdAt":    feedback.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating feedback: %w", err)
	}
	feedback.ID = ref.ID
	return feedback, nil
}

// ListFeedback filtered by class needs the (classId, createdAt desc) composite index in firestore.indexes.json.
func (fr *FirebaseRepository) ListFeedback(ctx context.Context, classID string) ([]*models.Feedback, error) {
	q := fr.feedbacks().OrderBy("createdAt", firestore.Desc)
	if classID != "" {
		q = fr.feedbacks().Where("classId", "==", classID).OrderBy("createdAt", firestore.Desc)
	}
	return collect[models.Feedback](q.Documents(ctx))
}
