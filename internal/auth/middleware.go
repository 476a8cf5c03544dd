package auth

import (
	"context"
	"net/http"

	"github.com/go-chi/render"

	"classhub/internal/models"
	"classhub/internal/qerrors"
)

type contextKey struct{ name string }

var claimsContextKey = &contextKey{"claims"}

// RequireAuth is a middleware that rejects requests without a valid bearer token. The verified claims are added to
// the request context, and can be accessed via ClaimsFromRequest.
func RequireAuth(verifier TokenVerifier) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := TokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				reject(w, r, qerrors.MissingTokenError)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				reject(w, r, qerrors.InvalidTokenError)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromRequest returns the verified claims of the request. Only works with routes that implement the
// RequireAuth middleware.
func ClaimsFromRequest(r *http.Request) (*Claims, bool) {
	claims, ok := r.Context().Value(claimsContextKey).(*Claims)
	return claims, ok && claims != nil
}

// Helpers

func reject(w http.ResponseWriter, r *http.Request, err error) {
	render.Status(r, qerrors.StatusCode(err))
	render.JSON(w, r, models.ErrorResponse{Success: false, Message: err.Error()})
}
