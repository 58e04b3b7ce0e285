// Package interests collects recent reading-interest summaries for a
// family. Sources form an explicit ordered chain: each is tried in turn,
// and ErrNoSummaries (or any other failure from a non-final source) means
// "try the next one". Results are never merged across sources.
package interests

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/daltonw/bookline/pipeline/contract"
)

// MaxSummaries bounds the window of recent summaries consumed per
// Discovery run.
const MaxSummaries = 5

// Source yields the most-recent-first summary texts for a family, or
// contract.ErrNoSummaries when it has nothing to offer.
type Source interface {
	Fetch(ctx context.Context, familyID string) ([]string, error)
}

type Aggregator struct {
	sources []Source
}

func NewAggregator(sources ...Source) *Aggregator {
	return &Aggregator{sources: sources}
}

// Aggregate returns at most MaxSummaries summaries from the first source
// that produces any. Failures from every source but the last are
// swallowed; only the final source's error propagates.
func (a *Aggregator) Aggregate(ctx context.Context, familyID string) ([]string, error) {
	for i, src := range a.sources {
		summaries, err := src.Fetch(ctx, familyID)
		if err != nil {
			if i == len(a.sources)-1 {
				return nil, err
			}
			log.Debug().Err(err).Int("source", i).Msg("interest source unavailable, trying next")
			continue
		}
		if len(summaries) > MaxSummaries {
			summaries = summaries[:MaxSummaries]
		}
		return summaries, nil
	}
	return nil, contractx.ErrNoSummaries
}

// StaticSource is the degraded-mode substitution used when the document
// store is unreachable or empty, and for running without live
// infrastructure. It is a complete sample set, not a partial top-up.
type StaticSource struct{}

var staticSummaries = []string{
	"Obsessed with a picture book about a robot living in the woods; keeps asking how machines think.",
	"Spent the week pointing out rocket ships and wanting to know what astronauts eat.",
	"Asked to reread the dinosaur encyclopedia three nights in a row, favorite is the ankylosaurus.",
	"Built an elaborate cardboard spaceship and narrated the launch sequence to anyone listening.",
	"Loves stories where animals solve problems together, especially ones with maps.",
}

func (StaticSource) Fetch(ctx context.Context, familyID string) ([]string, error) {
	out := make([]string, len(staticSummaries))
	copy(out, staticSummaries)
	return out, nil
}

func trimNonEmpty(texts []string) []string {
	var out []string
	for _, t := range texts {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
