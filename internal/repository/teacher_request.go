package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	"classhub/internal/models"
	"classhub/internal/qerrors"
)

func (fr *FirebaseRepository) teacherRequests() *firestore.CollectionRef {
	return fr.collection(models.FirestoreTeacherRequestsCollection)
}

func (fr *FirebaseRepository) requestByEmail(email string) firestore.Query {
	return fr.teacherRequests().Where("email", "==", strings.ToLower(email)).Limit(1)
}

func (fr *FirebaseRepository) CreateTeacherRequest(ctx context.Context, t *models.CreateTeacherRequest) (*models.TeacherRequest, error) {
	var request *models.TeacherRequest
	err := fr.firestoreClient.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docs, err := tx.Documents(fr.requestByEmail(t.Email)).GetAll()
		if err != nil {
			return err
		}
		if len(docs) > 0 {
			return qerrors.TeacherRequestExistsError
		}

		ref := fr.teacherRequests().NewDoc()
		request = &models.TeacherRequest{
			ID:         ref.ID,
			Email:      strings.ToLower(t.Email),
			Name:       t.Name,
			Photo:      t.Photo,
			Experience: t.Experience,
			Title:      t.Title,
			Category:   t.Category,
			Status:     models.RequestPending,
			CreatedAt:  time.Now(),
		}
		return tx.Create(ref, teacherRequestData(request))
	})
	if err != nil {
		return nil, wrapTx(err, "error creating teacher request")
	}
	return request, nil
}

func (fr *FirebaseRepository) GetTeacherRequestByEmail(ctx context.Context, email string) (*models.TeacherRequest, error) {
	requests, err := collect[models.TeacherRequest](fr.requestByEmail(email).Documents(ctx))
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, qerrors.TeacherRequestNotFoundError
	}
	return requests[0], nil
}

func (fr *FirebaseRepository) ResendTeacherRequest(ctx context.Context, t *models.ResendTeacherRequest) (*models.TeacherRequest, error) {
	var request *models.TeacherRequest
	err := fr.firestoreClient.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docs, err := tx.Documents(fr.requestByEmail(t.Email)).GetAll()
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			return qerrors.TeacherRequestNotRejectedError
		}

		request, err = decode[models.TeacherRequest](docs[0])
		if err != nil {
			return err
		}
		if err := request.Resend(t, time.Now()); err != nil {
			return err
		}
		return tx.Set(docs[0].Ref, teacherRequestData(request))
	})
	if err != nil {
		return nil, wrapTx(err, "error resending teacher request")
	}
	return request, nil
}

func (fr *FirebaseRepository) ListTeacherRequests(ctx context.Context) ([]*models.TeacherRequest, error) {
	return collect[models.TeacherRequest](fr.teacherRequests().OrderBy("createdAt", firestore.Desc).Documents(ctx))
}

func (fr *FirebaseRepository) ApproveTeacherRequest(ctx context.Context, id string) (*models.TeacherRequest, error) {
	var request *models.TeacherRequest
	err := fr.firestoreClient.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := fr.teacherRequests().Doc(id)
		doc, err := tx.Get(ref)
		if err != nil {
			return notFound(err, qerrors.TeacherRequestNotFoundError, "error getting teacher request")
		}
		request, err = decode[models.TeacherRequest](doc)
		if err != nil {
			return err
		}

		users, err := tx.Documents(fr.users().Where("email", "==", request.Email).Limit(1)).GetAll()
		if err != nil {
			return err
		}

		if err := request.Approve(); err != nil {
			return err
		}
		if err := tx.Update(ref, []firestore.Update{{Path: "status", Value: request.Status}}); err != nil {
			return err
		}

		// Only students are promoted, so approving an admin's request never demotes them.
		if len(users) > 0 {
			user, err := decode[models.User](users[0])
			if err != nil {
				return err
			}
			if user.Role == models.RoleStudent {
				return tx.Update(users[0].Ref, []firestore.Update{{Path: "role", Value: models.RoleTeacher}})
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrapTx(err, "error approving teacher request")
	}
	return request, nil
}

func (fr *FirebaseRepository) RejectTeacherRequest(ctx context.Context, id string) (*models.TeacherRequest, error) {
	var request *models.TeacherRequest
	err := fr.firestoreClient.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := fr.teacherRequests().Doc(id)
		doc, err := tx.Get(ref)
		if err != nil {
			return notFound(err, qerrors.TeacherRequestNotFoundError, "error getting teacher request")
		}
		request, err = decode[models.TeacherRequest](doc)
		if err != nil {
			return err
		}

		if err := request.Reject(); err != nil {
			return err
		}
		return tx.Update(ref, []firestore.Update{{Path: "status", Value: request.Status}})
	})
	if err != nil {
		return nil, wrapTx(err, "error rejecting teacher request")
	}
	return request, nil
}

func teacherRequestData(t *models.TeacherRequest) map[string]interface{} {
	return map[string]interface{}{
		"email":      t.Email,
		"name":       t.Name,
		"photo":      t.Photo,
		"experience": t.Experience,
		"title":      t.Title,
		"category":   t.Category,
		"status":     t.Status,
		"createdAt":  t.CreatedAt,
	}
}
