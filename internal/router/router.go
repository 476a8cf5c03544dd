package router

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/golang/glog"

	"classhub/internal/auth"
	"classhub/internal/models"
	"classhub/internal/payments"
	"classhub/internal/qerrors"
	"classhub/internal/repository"
)

// Env carries the dependencies shared by every route handler.
type Env struct {
	Repository repository.Repository
	Payments   payments.Gateway
	Tokens     *auth.TokenIssuer
	Identities auth.IdentityVerifier

	validate *validator.Validate
}

func NewEnv(repo repository.Repository, gateway payments.Gateway, tokens *auth.TokenIssuer, identities auth.IdentityVerifier) *Env {
	return &Env{
		Repository: repo,
		Payments:   gateway,
		Tokens:     tokens,
		Identities: identities,
		validate:   newValidator(),
	}
}

// newValidator reports fields by their JSON names and knows the "docid" tag for store document IDs.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("docid", func(fl validator.FieldLevel) bool {
		return models.ValidID(fl.Field().String())
	})
	return v
}

// Middlewares

func (e *Env) requireAuth() func(http.Handler) http.Handler {
	return auth.RequireAuth(e.Tokens)
}

func (e *Env) requireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return auth.RequireRole(e.Repository, roles...)
}

// Helpers

// decodeAndValidate reads a JSON body into v and checks its validate tags.
func (e *Env) decodeAndValidate(r *http.Request, v interface{}) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		if errors.Is(err, qerrors.InvalidPriceError) {
			return err
		}
		return fmt.Errorf("%w: %v", qerrors.InvalidRequestBodyError, err)
	}

	if err := e.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("%w: %s", qerrors.ValidationError, describe(verrs))
		}
		return err
	}
	return nil
}

func describe(verrs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "docid":
			msgs = append(msgs, fe.Field()+" is not a valid id")
		case "email":
			msgs = append(msgs, fe.Field()+" must be an email address")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		}
	}
	return strings.Join(msgs, ", ")
}

// requiredQuery returns a query parameter, or a validation error naming it when it is absent.
func requiredQuery(r *http.Request, name string) (string, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return "", fmt.Errorf("%w: %s is required", qerrors.ValidationError, name)
	}
	return v, nil
}

// respondError writes err with the status qerrors assigns to it. Details of internal errors are logged, never
// returned.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := qerrors.StatusCode(err)
	msg := err.Error()
	if code >= http.StatusInternalServerError {
		glog.Errorf("%s %s: %v\n", r.Method, r.URL.Path, err)
		msg = qerrors.InternalError.Error()
	}

	render.Status(r, code)
	render.JSON(w, r, models.ErrorResponse{Success: false, Message: msg})
}

func respondCreated(w http.ResponseWriter, r *http.Request, v interface{}) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, v)
}

func respondModified(w http.ResponseWriter, r *http.Request, msg string) {
	render.JSON(w, r, models.WriteResult{Success: true, Message: msg, ModifiedCount: 1})
}

// GET: /
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	render.PlainText(w, r, "Edu Platform Backend is Running")
}
