package router

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"classhub/internal/middleware"
	"classhub/internal/models"
	"classhub/internal/qerrors"
)

const (
	defaultUsersPage  = 1
	defaultUsersLimit = 10
	maxUsersLimit     = 100
)

// UserRoutes handle sign-in registration and role lookup, mounted at /user.
func (e *Env) UserRoutes() *chi.Mux {
	router := chi.NewRouter()

	// Called on every sign-in, before the client holds a token.
	router.Post("/", e.upsertUserHandler)
	router.With(e.requireAuth()).Get("/role", e.getUserRoleHandler)

	return router
}

// UsersRoutes handle user lookup and management, mounted at /users.
func (e *Env) UsersRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(e.requireAuth())

	router.Get("/{email}", e.getUserHandler)

	router.Group(func(router chi.Router) {
		router.Use(e.requireRole(models.RoleAdmin))

		router.Get("/", e.searchUsersHandler)
		router.With(middleware.DocumentCtx("userID")).Patch("/admin/{userID}", e.makeAdminHandler)
	})

	return router
}

// POST: /user
func (e *Env) upsertUserHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := e.decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, created, err := e.Repository.UpsertUser(r.Context(), &req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if !created {
		render.JSON(w, r, models.WriteResult{Success: true, Message: "User already existed"})
		return
	}
	respondCreated(w, r, models.WriteResult{Success: true, Message: "User created successfully", InsertedID: user.ID})
}

// GET: /user/role?email=
func (e *Env) getUserRoleHandler(w http.ResponseWriter, r *http.Request) {
	email, err := requiredQuery(r, "email")
	if err != nil {
		respondError(w, r, err)
		return
	}

	user, err := e.Repository.GetUserByEmail(r.Context(), email)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, models.RoleResponse{Role: user.Role})
}

// GET: /users/{email}
func (e *Env) getUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := e.Repository.GetUserByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, user)
}

// GET: /users?search=&page=&limit=
func (e *Env) searchUsersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := positiveQueryInt(q.Get("page"), defaultUsersPage)
	if err != nil {
		respondError(w, r, err)
		return
	}
	limit, err := positiveQueryInt(q.Get("limit"), defaultUsersLimit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if limit > maxUsersLimit {
		limit = maxUsersLimit
	}

	result, err := e.Repository.SearchUsers(r.Context(), &models.UserSearchRequest{
		Search: q.Get("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, result)
}

// PATCH: /users/admin/{userID}
func (e *Env) makeAdminHandler(w http.ResponseWriter, r *http.Request) {
	if err := e.Repository.MakeAdmin(r.Context(), middleware.DocumentID(r)); err != nil {
		respondError(w, r, err)
		return
	}

	respondModified(w, r, "User promoted to admin")
}

func positiveQueryInt(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q must be a positive integer", qerrors.ValidationError, raw)
	}
	return n, nil
}
