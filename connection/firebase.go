package connection

import (
	"context"
	"fmt"

	"dolanlur/config"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"
)

// MessagingClient initializes the Firebase app from the service account key
// and returns its Cloud Messaging client.
func MessagingClient(ctx context.Context, cfg config.Firebase) (*messaging.Client, error) {
	if cfg.CredentialsFile == "" {
		return nil, fmt.Errorf("firebase credentials file is not configured")
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("messaging client: %w", err)
	}
	return client, nil
}
