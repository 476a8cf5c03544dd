package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"classhub/internal/models"
	"classhub/internal/qerrors"
)

type contextKey struct{ name string }

var documentIDContextKey = &contextKey{"documentID"}

// DocumentCtx reads a document ID from the named URL param, rejects it with 400 unless it is a well-formed store ID,
// and sets it in the context for DocumentID.
func DocumentCtx(param string) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, param)
			if !models.ValidID(id) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, models.ErrorResponse{Success: false, Message: qerrors.InvalidIDError.Error()})
				return
			}

			ctx := context.WithValue(r.Context(), documentIDContextKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DocumentID returns the ID set by DocumentCtx, or "" when the route does not use it.
func DocumentID(r *http.Request) string {
	id, _ := r.Context().Value(documentIDContextKey).(string)
	return id
}
