package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classhub/internal/models"
	"classhub/internal/qerrors"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, err := issuer.IssueToken(map[string]interface{}{"email": "A@X.com", "name": "Ada"})
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "Ada", claims.Payload["name"])
	assert.Contains(t, claims.Payload, "exp")
	assert.Contains(t, claims.Payload, "iat")
}

func TestIssueTokenRequiresEmail(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	_, err := issuer.IssueToken(map[string]interface{}{"name": "Ada"})
	assert.ErrorIs(t, err, qerrors.MissingEmailError)

	_, err = issuer.IssueToken(map[string]interface{}{"email": ""})
	assert.ErrorIs(t, err, qerrors.MissingEmailError)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	issuer.now = func() time.Time { return issued }

	token, err := issuer.IssueToken(map[string]interface{}{"email": "a@x.com"})
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, qerrors.InvalidTokenError)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("one", time.Hour).IssueToken(map[string]interface{}{"email": "a@x.com"})
	require.NoError(t, err)

	_, err = NewTokenIssuer("two", time.Hour).Verify(token)
	assert.ErrorIs(t, err, qerrors.InvalidTokenError)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"email": "a@x.com",
		"exp":   jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret", time.Hour).Verify(signed)
	assert.ErrorIs(t, err, qerrors.InvalidTokenError)
}

func TestTokenFromHeader(t *testing.T) {
	token, err := TokenFromHeader("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	token, err = TokenFromHeader("bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer a b"} {
		_, err := TokenFromHeader(header)
		assert.ErrorIs(t, err, qerrors.MissingTokenError, "header %q", header)
	}
}

func guarded(issuer *TokenIssuer, users UserLookup, roles ...models.Role) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, found := ClaimsFromRequest(r)
		if !found {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		w.Write([]byte(claims.Email))
	})

	var h http.Handler = ok
	if len(roles) > 0 {
		h = RequireRole(users, roles...)(h)
	}
	return RequireAuth(issuer)(h)
}

func TestRequireAuth(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	h := guarded(issuer, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	token, err := issuer.IssueToken(map[string]interface{}{"email": "a@x.com"})
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@x.com", rec.Body.String())
}

type usersByEmail map[string]*models.User

func (u usersByEmail) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := u[email]; ok {
		return user, nil
	}
	return nil, qerrors.UserNotFoundError
}

func TestRequireRole(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	users := usersByEmail{
		"admin@x.com":   {Email: "admin@x.com", Role: models.RoleAdmin},
		"student@x.com": {Email: "student@x.com", Role: models.RoleStudent},
	}
	h := guarded(issuer, users, models.RoleAdmin)

	tests := []struct {
		payload map[string]interface{}
		want    int
	}{
		{map[string]interface{}{"email": "admin@x.com"}, http.StatusOK},
		{map[string]interface{}{"email": "student@x.com"}, http.StatusForbidden},
		// A role claim in the token does not grant access.
		{map[string]interface{}{"email": "student@x.com", "role": "admin"}, http.StatusForbidden},
		{map[string]interface{}{"email": "nobody@x.com"}, http.StatusForbidden},
	}
	for _, tt := range tests {
		token, err := issuer.IssueToken(tt.payload)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		h.ServeHTTP(rec, req)
		assert.Equal(t, tt.want, rec.Code, "payload %v", tt.payload)
	}
}

type failingUsers struct{}

func (failingUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, errors.New("store unavailable")
}

func TestRequireRoleStoreFailure(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	h := guarded(issuer, failingUsers{}, models.RoleAdmin)

	token, err := issuer.IssueToken(map[string]interface{}{"email": "admin@x.com"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "internal server error", body.Message)
}

// identities maps ID tokens to the email they assert.
type identities map[string]string

func (ids identities) VerifyIdentity(ctx context.Context, idToken string) (string, error) {
	if idToken == "" {
		return "", qerrors.MissingTokenError
	}
	email, ok := ids[idToken]
	if !ok {
		return "", qerrors.InvalidTokenError
	}
	return email, nil
}

func TestIssueForIdentity(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	ids := identities{"ada-id": "ada@x.com", "anon-id": ""}

	token, err := issuer.IssueForIdentity(context.Background(), ids, map[string]interface{}{"idToken": "ada-id", "name": "Ada"})
	require.NoError(t, err)
	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ada@x.com", claims.Email)
	assert.Equal(t, "Ada", claims.Payload["name"])
	assert.NotContains(t, claims.Payload, "idToken")

	// A matching email in the payload is accepted regardless of case.
	_, err = issuer.IssueForIdentity(context.Background(), ids, map[string]interface{}{"idToken": "ada-id", "email": "ADA@x.com"})
	assert.NoError(t, err)

	tests := []struct {
		payload map[string]interface{}
		want    error
	}{
		{map[string]interface{}{"email": "admin@x.com"}, qerrors.MissingTokenError},
		{map[string]interface{}{"idToken": "forged", "email": "admin@x.com"}, qerrors.InvalidTokenError},
		{map[string]interface{}{"idToken": "ada-id", "email": "admin@x.com"}, qerrors.InvalidTokenError},
		{map[string]interface{}{"idToken": "anon-id"}, qerrors.MissingEmailError},
	}
	for _, tt := range tests {
		_, err := issuer.IssueForIdentity(context.Background(), ids, tt.payload)
		assert.ErrorIs(t, err, tt.want, "payload %v", tt.payload)
	}
}
