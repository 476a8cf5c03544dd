package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"classhub/internal/qerrors"
)

// Claims are the verified contents of a bearer token.
type Claims struct {
	Email   string
	Payload jwt.MapClaims
}

// TokenVerifier verifies bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// TokenIssuer signs caller-supplied identity payloads into HS256 tokens and verifies them.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// IssueToken signs the whole payload, plus iat and exp, into a token. The payload must carry a non-empty email.
func (ti *TokenIssuer) IssueToken(payload map[string]interface{}) (string, error) {
	if emailClaim(payload) == "" {
		return "", qerrors.MissingEmailError
	}

	claims := jwt.MapClaims{}
	for k, v := range payload {
		claims[k] = v
	}

	now := ti.now()
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(ti.ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ti.secret)
}

// Verify checks the token's signature and expiry.
func (ti *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, qerrors.MissingTokenError
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return ti.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(ti.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, qerrors.InvalidTokenError
	}

	return &Claims{Email: emailClaim(claims), Payload: claims}, nil
}

func emailClaim(m map[string]interface{}) string {
	email, _ := m["email"].(string)
	return strings.ToLower(strings.TrimSpace(email))
}

// TokenFromHeader extracts the token from an "Authorization: Bearer <token>" header value.
func TokenFromHeader(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", qerrors.MissingTokenError
	}
	return parts[1], nil
}
