// Package firestorex builds the document-store client handle. The handle
// is created once at process start and injected into whatever needs it;
// nothing in the pipeline holds process-global store state.
package firestorex

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

type Config struct {
	ProjectID       string `envconfig:"PROJECT_ID" split_words:"true"`
	CredentialsFile string `envconfig:"CREDENTIALS_FILE" split_words:"true"`
}

func NewClient(ctx context.Context, cfg Config) (*firestore.Client, error) {
	projectID := strings.TrimSpace(cfg.ProjectID)
	if projectID == "" {
		return nil, fmt.Errorf("firestore project id is required")
	}

	var opts []option.ClientOption
	if creds := strings.TrimSpace(cfg.CredentialsFile); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore: create client: %w", err)
	}
	return client, nil
}
