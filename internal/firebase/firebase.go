package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebaseSDK "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"classhub/internal/config"
)

// NewApp initializes the Firebase App from the server configuration. When no credentials file is configured,
// application default credentials are used (or the emulator, if FIRESTORE_EMULATOR_HOST is set).
func NewApp(ctx context.Context, cfg *config.ServerConfig) (*firebaseSDK.App, error) {
	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}

	var appConfig *firebaseSDK.Config
	if cfg.FirebaseProjectID != "" {
		appConfig = &firebaseSDK.Config{ProjectID: cfg.FirebaseProjectID}
	}

	app, err := firebaseSDK.NewApp(ctx, appConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}
	return app, nil
}

// NewFirestoreClient returns the long-lived Firestore client shared by every request. The caller owns the client
// and must Close it on shutdown.
func NewFirestoreClient(ctx context.Context, app *firebaseSDK.App) (*firestore.Client, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("Firestore client error: %w", err)
	}
	return client, nil
}

// NewAuthClient returns the client that verifies Firebase ID tokens.
func NewAuthClient(ctx context.Context, app *firebaseSDK.App) (*auth.Client, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Auth client: %w", err)
	}
	return client, nil
}
