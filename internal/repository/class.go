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

func (fr *FirebaseRepository) classes() *firestore.CollectionRef {
	return fr.collection(models.FirestoreClassesCollection)
}

func (fr *FirebaseRepository) CreateClass(ctx context.Context, c *models.CreateClassRequest) (*models.Class, error) {
	class := &models.Class{
		Title:        c.Title,
		TeacherEmail: strings.ToLower(c.TeacherEmail),
		TeacherName:  c.TeacherName,
		Price:        float64(c.Price),
		Description:  c.Description,
		Image:        c.Image,
		Status:       models.ClassPending,
		Enrolled:     0,
		CreatedAt:    time.Now(),
	}

	ref, _, err := fr.classes().Add(ctx, map[string]interface{}{
		"title":        class.Title,
		"teacherEmail": class.TeacherEmail,
		"teacherName":  class.TeacherName,
		"price":        class.Price,
		"description":  class.Description,
		"image":        class.Image,
		"status":       class.Status,
		"enrolled":     class.Enrolled,
		"createdAt":    class.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating class: %w", err)
	}
	class.ID = ref.ID
	return class, nil
}

func (fr *FirebaseRepository) GetClass(ctx context.Context, id string) (*models.Class, error) {
	doc, err := fr.classes().Doc(id).Get(ctx)
	if err != nil {
		return nil, notFound(err, qerrors.ClassNotFoundError, "error getting class")
	}
	return decode[models.Class](doc)
}

func (fr *FirebaseRepository) ListClasses(ctx context.Context) ([]*models.Class, error) {
	return collect[models.Class](fr.classes().OrderBy("createdAt", firestore.Desc).Documents(ctx))
}

func (fr *FirebaseRepository) ListClassesByTeacher(ctx context.Context, email string) ([]*models.Class, error) {
	q := fr.classes().Where("teacherEmail", "==", strings.ToLower(email))
	return collect[models.Class](q.Documents(ctx))
}

func (fr *FirebaseRepository) ListClassesByStatus(ctx context.Context, status models.ClassStatus) ([]*models.Class, error) {
	return collect[models.Class](fr.classes().Where("status", "==", status).Documents(ctx))
}

func (fr *FirebaseRepository) EditClass(ctx context.Context, id string, c *models.EditClassRequest) error {
	var updates []firestore.Update
	if c.Title != nil {
		updates = append(updates, firestore.Update{Path: "title", Value: *c.Title})
	}
	if c.Price != nil {
		updates = append(updates, firestore.Update{Path: "price", Value: float64(*c.Price)})
	}
	if c.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *c.Description})
	}
	if c.Image != nil {
		updates = append(updates, firestore.Update{Path: "image", Value: *c.Image})
	}

	_, err := fr.classes().Doc(id).Update(ctx, updates)
	if err != nil {
		return notFound(err, qerrors.ClassNotFoundError, "error editing class")
	}
	return nil
}

func (fr *FirebaseRepository) DeleteClass(ctx context.Context, id string) error {
	_, err := fr.classes().Doc(id).Delete(ctx, firestore.Exists)
	if err != nil {
		return notFound(err, qerrors.ClassNotFoundError, "error deleting class")
	}
	return nil
}

func (fr *FirebaseRepository) SetClassStatus(ctx context.Context, id string, status models.ClassStatus) error {
	_, err := fr.classes().Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: status},
	})
	if err != nil {
		return notFound(err, qerrors.ClassNotFoundError, "error updating class status")
	}
	return nil
}

func (fr *FirebaseRepository) CountClassesByStatus(ctx context.Context, status models.ClassStatus) (int64, error) {
	return count(ctx, fr.classes().Where("status", "==", status))
}
