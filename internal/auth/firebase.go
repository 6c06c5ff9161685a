package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/db"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"github.com/feelio/feelio-backend/config"
)

// Firebase bundles the admin clients used by the service.
type Firebase struct {
	Auth *auth.Client

	// DB is nil when no database URL is configured.
	DB *db.Client
}

// InitializeFirebase initializes the Firebase Admin SDK. Without a credentials
// file it falls back to application default credentials.
func InitializeFirebase(ctx context.Context, cfg *config.FirebaseConfig) (*Firebase, error) {
	var opt option.ClientOption
	if cfg.CredentialsPath != "" {
		opt = option.WithCredentialsFile(cfg.CredentialsPath)
	} else {
		creds, err := google.FindDefaultCredentials(ctx,
			"https://www.googleapis.com/auth/cloud-platform",
			"https://www.googleapis.com/auth/firebase.database",
			"https://www.googleapis.com/auth/userinfo.email",
		)
		if err != nil {
			return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is not set and no default credentials: %w", err)
		}
		opt = option.WithCredentials(creds)
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: cfg.DatabaseURL}, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	fb := &Firebase{Auth: authClient}
	if cfg.DatabaseURL != "" {
		dbClient, err := app.Database(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get Database client: %w", err)
		}
		fb.DB = dbClient
	}
	return fb, nil
}
