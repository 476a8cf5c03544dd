package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"classhub/internal/qerrors"
)

type tokenResponse struct {
	Token string `json:"token"`
}

// TokenRoutes exchange a verified ID token for an access token, mounted at /jwt.
func (e *Env) TokenRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Post("/", e.issueTokenHandler)
	return router
}

// POST: /jwt
func (e *Env) issueTokenHandler(w http.ResponseWriter, r *http.Request) {
	var payload map[string]interface{}
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		respondError(w, r, qerrors.InvalidRequestBodyError)
		return
	}

	token, err := e.Tokens.IssueForIdentity(r.Context(), e.Identities, payload)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, tokenResponse{Token: token})
}
