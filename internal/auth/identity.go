package auth

import (
	"context"
	"strings"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/golang/glog"

	"classhub/internal/qerrors"
)

// IdentityVerifier checks a sign-in credential from the identity provider and returns the email it asserts.
type IdentityVerifier interface {
	VerifyIdentity(ctx context.Context, idToken string) (string, error)
}

// FirebaseIdentity verifies Firebase ID tokens.
type FirebaseIdentity struct {
	client *firebaseauth.Client
}

func NewFirebaseIdentity(client *firebaseauth.Client) *FirebaseIdentity {
	return &FirebaseIdentity{client: client}
}

func (f *FirebaseIdentity) VerifyIdentity(ctx context.Context, idToken string) (string, error) {
	if strings.TrimSpace(idToken) == "" {
		return "", qerrors.MissingTokenError
	}

	token, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		glog.Warningf("error verifying ID token: %v\n", err)
		return "", qerrors.InvalidTokenError
	}

	return emailClaim(token.Claims), nil
}

// IssueForIdentity exchanges a verified ID token, carried in the payload's idToken field, for an access token. The
// email is taken from the verified identity; a payload email that disagrees with it is rejected. The remaining
// payload fields are signed as given.
func (ti *TokenIssuer) IssueForIdentity(ctx context.Context, identities IdentityVerifier, payload map[string]interface{}) (string, error) {
	idToken, _ := payload["idToken"].(string)
	email, err := identities.VerifyIdentity(ctx, idToken)
	if err != nil {
		return "", err
	}
	if email == "" {
		return "", qerrors.MissingEmailError
	}
	if claimed := emailClaim(payload); claimed != "" && claimed != email {
		return "", qerrors.InvalidTokenError
	}

	claims := make(map[string]interface{}, len(payload))
	for k, v := range payload {
		claims[k] = v
	}
	delete(claims, "idToken")
	claims["email"] = email

	return ti.IssueToken(claims)
}
