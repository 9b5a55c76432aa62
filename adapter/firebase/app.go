package firebase

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	firebasesdk "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Clients holds the SDK clients shared by the identity and profile adapters.
type Clients struct {
	Auth      *auth.Client
	Firestore *firestore.Client
}

// NewApp initializes the Admin SDK from a service-account key file. An empty
// projectID lets the SDK read it from the credentials.
func NewApp(ctx context.Context, credentialsPath, projectID string) (*Clients, error) {
	if credentialsPath == "" {
		return nil, errors.New("firebase: credentials path required")
	}
	var conf *firebasesdk.Config
	if projectID != "" {
		conf = &firebasesdk.Config{ProjectID: projectID}
	}

	app, err := firebasesdk.NewApp(ctx, conf, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("firebase: init app: %w", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: auth client: %w", err)
	}
	store, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: firestore client: %w", err)
	}
	return &Clients{Auth: authClient, Firestore: store}, nil
}

// Close releases the Firestore connection.
func (c *Clients) Close() error {
	if c == nil || c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}
