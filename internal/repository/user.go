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

func (fr *FirebaseRepository) users() *firestore.CollectionRef {
	return fr.collection(models.FirestoreUsersCollection)
}

func (fr *FirebaseRepository) UpsertUser(ctx context.Context, u *models.CreateUserRequest) (*models.User, bool, error) {
	email := strings.ToLower(strings.TrimSpace(u.Email))

	var (
		user    *models.User
		created bool
	)
	err := fr.firestoreClient.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docs, err := tx.Documents(fr.users().Where("email", "==", email).Limit(1)).GetAll()
		if err != nil {
			return err
		}
		if len(docs) > 0 {
			created = false
			user, err = decode[models.User](docs[0])
			return err
		}

		ref := fr.users().NewDoc()
		created = true
		user = &models.User{
			ID:          ref.ID,
			Email:       email,
			DisplayName: u.DisplayName,
			PhotoURL:    u.PhotoURL,
			Role:        models.RoleStudent,
			CreatedAt:   time.Now(),
		}
		return tx.Create(ref, map[string]interface{}{
			"email":       user.Email,
			"displayName": user.DisplayName,
			"photoURL":    user.PhotoURL,
			"role":        user.Role,
			"created_at":  user.CreatedAt,
		})
	})
	if err != nil {
		return nil, false, fmt.Errorf("error upserting user: %w", err)
	}
	return user, created, nil
}

func (fr *FirebaseRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	iter := fr.users().Where("email", "==", strings.ToLower(email)).Limit(1).Documents(ctx)
	users, err := collect[models.User](iter)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, qerrors.UserNotFoundError
	}
	return users[0], nil
}

// SearchUsers filters in memory: Firestore has no case-insensitive substring queries.
func (fr *FirebaseRepository) SearchUsers(ctx context.Context, q *models.UserSearchRequest) (*models.UserPage, error) {
	all, err := collect[models.User](fr.users().OrderBy("created_at", firestore.Desc).Documents(ctx))
	if err != nil {
		return nil, err
	}
	return PaginateUsers(all, q), nil
}

// PaginateUsers applies a user search to an already loaded list of users, preserving its order.
func PaginateUsers(all []*models.User, q *models.UserSearchRequest) *models.UserPage {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	matched := make([]*models.User, 0, len(all))
	for _, u := range all {
		if needle == "" ||
			strings.Contains(strings.ToLower(u.DisplayName), needle) ||
			strings.Contains(strings.ToLower(u.Email), needle) {
			matched = append(matched, u)
		}
	}

	page := &models.UserPage{Users: []*models.User{}, Total: len(matched), Page: q.Page, Limit: q.Limit}
	if q.Page < 1 || q.Limit < 1 {
		return page
	}
	pages := len(matched) / q.Limit
	if len(matched)%q.Limit != 0 {
		pages++
	}
	if q.Page > pages {
		return page
	}
	start := (q.Page - 1) * q.Limit
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	page.Users = matched[start:end]
	return page
}

func (fr *FirebaseRepository) MakeAdmin(ctx context.Context, id string) error {
	_, err := fr.users().Doc(id).Update(ctx, []firestore.Update{
		{Path: "role", Value: models.RoleAdmin},
	})
	if err != nil {
		return notFound(err, qerrors.UserNotFoundError, "error making user admin")
	}
	return nil
}

func (fr *FirebaseRepository) CountUsers(ctx context.Context) (int64, error) {
	return count(ctx, fr.users().Query)
}
