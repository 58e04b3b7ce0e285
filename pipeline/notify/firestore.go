package notify

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"

	contractx "github.com/daltonw/bookline/pipeline/contract"
)

const pendingCallsCollection = "pending_calls"

// FirestorePendingCalls keeps one pending-call document per phone number.
// Set semantics give the overwrite behavior the trigger relies on: at
// most one pending context per number is ever meaningful.
type FirestorePendingCalls struct {
	client *firestore.Client
}

var _ contractx.PendingCallStore = (*FirestorePendingCalls)(nil)

func NewFirestorePendingCalls(client *firestore.Client) (*FirestorePendingCalls, error) {
	if client == nil {
		return nil, errors.New("firestore client is required")
	}
	return &FirestorePendingCalls{client: client}, nil
}

func (s *FirestorePendingCalls) Upsert(ctx context.Context, phoneNumber, booksContext string) error {
	_, err := s.client.Collection(pendingCallsCollection).Doc(phoneNumber).Set(ctx, contractx.PendingCall{
		BooksContext: booksContext,
	})
	if err != nil {
		return fmt.Errorf("upsert pending call %s/%s: %w", pendingCallsCollection, phoneNumber, err)
	}
	return nil
}
