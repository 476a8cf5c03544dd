package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/golang/glog"

	"classhub/internal/models"
	"classhub/internal/qerrors"
)

// UserLookup finds the stored user for a token's email claim.
type UserLookup interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// RequireRole rejects requests whose caller does not hold one of roles. The role is read from the stored user, never
// from the token: only the email claim is backed by a verified identity. Must be mounted after RequireAuth.
func RequireRole(users UserLookup, roles ...models.Role) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromRequest(r)
			if !ok {
				reject(w, r, qerrors.MissingTokenError)
				return
			}

			user, err := users.GetUserByEmail(r.Context(), claims.Email)
			if errors.Is(err, qerrors.UserNotFoundError) {
				reject(w, r, qerrors.ForbiddenError)
				return
			}
			if err != nil {
				glog.Errorf("error loading user %q for role check: %v\n", claims.Email, err)
				reject(w, r, qerrors.InternalError)
				return
			}

			if !hasRole(user, roles) {
				reject(w, r, qerrors.ForbiddenError)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func hasRole(u *models.User, roles []models.Role) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}
