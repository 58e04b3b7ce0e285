package interests

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	contractx "github.com/daltonw/bookline/pipeline/contract"
)

const (
	familiesCollection  = "families"
	summariesCollection = "summaries"
)

type summaryDoc struct {
	SummaryText string `firestore:"summary_text"`
}

// FirestoreSource reads families/{id}/summaries ordered by creation time
// descending, limited to MaxSummaries.
type FirestoreSource struct {
	client *firestore.Client
}

func NewFirestoreSource(client *firestore.Client) *FirestoreSource {
	return &FirestoreSource{client: client}
}

func (s *FirestoreSource) Fetch(ctx context.Context, familyID string) ([]string, error) {
	if s == nil || s.client == nil {
		return nil, contractx.ErrNoSummaries
	}

	iter := s.client.Collection(familiesCollection).
		Doc(familyID).
		Collection(summariesCollection).
		OrderBy("created_at", firestore.Desc).
		Limit(MaxSummaries).
		Documents(ctx)
	defer iter.Stop()

	var texts []string
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("query summaries for family=%s: %w", familyID, err)
		}
		var sd summaryDoc
		if err := doc.DataTo(&sd); err != nil {
			continue
		}
		texts = append(texts, sd.SummaryText)
	}

	texts = trimNonEmpty(texts)
	if len(texts) == 0 {
		return nil, contractx.ErrNoSummaries
	}
	return texts, nil
}
